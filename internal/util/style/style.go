// Package style builds ANSI escape sequences for terminal output.
package style

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

func supportsColor(f *os.File) bool {
	// Respect https://no-color.org/.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var (
	isColor    = supportsColor(os.Stdout)
	isErrColor = supportsColor(os.Stderr)
)

func StdoutSupportsColor() bool { return isColor }

// Seq builds an SGR escape sequence regardless of the terminal capabilities.
// Without arguments, it resets all the attributes.
func Seq(ms ...int) string {
	if len(ms) == 0 {
		return "\033[0m"
	}
	var b strings.Builder
	_, _ = b.WriteString("\033[")
	for i, m := range ms {
		if i != 0 {
			_ = b.WriteByte(';')
		}
		_, _ = b.WriteString(strconv.Itoa(m))
	}
	_ = b.WriteByte('m')
	return b.String()
}

// TrueColor returns the SGR codes for a 24-bit foreground or background.
func TrueColor(bg bool, r, g, b uint8) []int {
	base := 38
	if bg {
		base = 48
	}
	return []int{base, 2, int(r), int(g), int(b)}
}

// WithSE wraps s into the given attributes if stderr can show them.
func WithSE(s string, ms ...int) string {
	if !isErrColor {
		return s
	}
	return Seq(ms...) + s + Seq()
}
