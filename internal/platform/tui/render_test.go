package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderFramePreservesText(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{"empty", ""},
		{"single row", "#  @██ #"},
		{"multi row", "####\n#@ #\n#██#\n####"},
		{"unknown glyphs", "?x#y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderFrame(tt.frame))
			if got != tt.frame {
				t.Errorf("Strip(RenderFrame(%q)) = %q, expected the frame unchanged", tt.frame, got)
			}
		})
	}
}

func TestStyleKey(t *testing.T) {
	tests := []struct {
		r        rune
		expected rune
	}{
		{'#', '#'},
		{'@', '@'},
		{'█', '█'},
		{' ', 0},
		{'z', 0},
	}

	for _, tt := range tests {
		if got := styleKey(tt.r); got != tt.expected {
			t.Errorf("styleKey(%q) = %q, expected %q", tt.r, got, tt.expected)
		}
	}
}
