package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// PrintProgressBar renders a textual progress bar of the given width.
func PrintProgressBar(current, total int64, width int) string {
	if total <= 0 {
		return ""
	}
	if width <= 0 {
		width = 30
	}
	ratio := float64(current) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat("━", filled) + strings.Repeat("╌", width-filled)
	return fmt.Sprintf("%s %3.0f%%", bar, ratio*100)
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func getTerminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24
	}
	return height
}
