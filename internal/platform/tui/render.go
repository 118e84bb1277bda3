package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdsnake/internal/games/snake"
)

// glyphStyles colours frame glyphs. Anything else is drawn unstyled.
var glyphStyles = map[rune]lipgloss.Style{
	snake.GlyphWall:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	snake.GlyphFruit: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	snake.GlyphSnake: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

var plainStyle = lipgloss.NewStyle()

// styleKey returns r for styled glyphs and 0 for everything else.
func styleKey(r rune) rune {
	if _, ok := glyphStyles[r]; ok {
		return r
	}
	return 0
}

func styleFor(r rune) lipgloss.Style {
	if s, ok := glyphStyles[r]; ok {
		return s
	}
	return plainStyle
}

// RenderFrame colours a text frame for display.
// Groups adjacent glyphs with the same style to minimize ANSI escape sequences.
func RenderFrame(frame string) string {
	var sb strings.Builder
	sb.Grow(len(frame) * 2)

	for i, line := range strings.Split(frame, "\n") {
		if i > 0 {
			sb.WriteRune('\n')
		}

		runes := []rune(line)
		for x := 0; x < len(runes); {
			k := styleKey(runes[x])

			// Collect consecutive runes sharing a style
			var run strings.Builder
			for x < len(runes) && styleKey(runes[x]) == k {
				run.WriteRune(runes[x])
				x++
			}
			sb.WriteString(styleFor(k).Render(run.String()))
		}
	}
	return sb.String()
}
