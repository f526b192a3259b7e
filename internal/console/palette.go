package console

// ANSI color codes
const (
	Red    = "\033[91m"
	Green  = "\033[92m"
	Yellow = "\033[93m"
	Purple = "\033[95m"
	Cyan   = "\033[96m"
	Reset  = "\033[0m"
)

// Palette holds the escape sequences the console writes. The zero value
// prints plain text.
type Palette struct {
	Error  string
	Prompt string
	Name   string
	Menu   string
	Value  string
	Reset  string
}

// ColorPalette is the default terminal palette.
var ColorPalette = Palette{
	Error:  Red,
	Prompt: Green,
	Name:   Yellow,
	Menu:   Purple,
	Value:  Cyan,
	Reset:  Reset,
}

func (p Palette) paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + p.Reset
}
