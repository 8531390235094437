package render

import (
	"fmt"
	"strings"
)

// Preview renders the frame as block-character ASCII art, one character per
// pixel, shaded by brightness.
func Preview(frame *Frame) string {
	var b strings.Builder
	border := strings.Repeat("─", frame.Width)

	b.WriteString("  ┌" + border + "┐\n")
	for y := 0; y < frame.Height; y++ {
		fmt.Fprintf(&b, "%2d│", y)
		for x := 0; x < frame.Width; x++ {
			b.WriteString(shade(frame.GetPixel(x, y)))
		}
		b.WriteString("│\n")
	}
	b.WriteString("  └" + border + "┘\n")

	return b.String()
}

func shade(pixel *RGB) string {
	if pixel == nil {
		return " "
	}
	switch brightness := pixel.brightness(); {
	case brightness > 200:
		return "█"
	case brightness > 150:
		return "▓"
	case brightness > 100:
		return "▒"
	case brightness > 50:
		return "░"
	case brightness > 10:
		return "·"
	default:
		return " "
	}
}
