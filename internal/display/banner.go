package display

import (
	"fmt"
	"os"

	"github.com/backmassage/maskmaster/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` __  __           _    __  __           _
|  \/  | __ _ ___| | _|  \/  | __ _ ___| |_ ___ _ __
| |\/| |/ _`+"`"+` / __| |/ / |\/| |/ _`+"`"+` / __| __/ _ \ '__|
| |  | | (_| \__ \   <| |  | | (_| \__ \ ||  __/ |
|_|  |_|\__,_|___/_|\_\_|  |_|\__,_|___/\__\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
