package snake

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

func TestRenderEmptyGrid(t *testing.T) {
	grid := newGrid(t, 20, 10)

	frame, err := RenderString(TextRenderer{}, grid)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	lines := strings.Split(frame, "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, expected 12", len(lines))
	}

	wall := strings.Repeat("#", 22)
	if lines[0] != wall || lines[11] != wall {
		t.Errorf("border rows = %q / %q, expected %q", lines[0], lines[11], wall)
	}

	row := "#" + strings.Repeat(" ", 20) + "#"
	for i, line := range lines[1:11] {
		if line != row {
			t.Errorf("row %d = %q, expected %q", i, line, row)
		}
	}
}

func TestRenderGlyphs(t *testing.T) {
	grid := newGrid(t, 3, 2)
	grid.PutFruit(0, 0)
	grid.SetType(4, core.TileSnake) // (1,1)
	grid.SetType(5, core.TileSnake) // (2,1)

	frame, err := RenderString(TextRenderer{}, grid)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	want := "#####\n#@  #\n# ██#\n#####"
	if frame != want {
		t.Errorf("Render() = %q, expected %q", frame, want)
	}

	for i, line := range strings.Split(frame, "\n") {
		if n := utf8.RuneCountInString(line); n != 5 {
			t.Errorf("line %d has %d glyphs, expected 5", i, n)
		}
	}
}

func TestRenderLineBreak(t *testing.T) {
	grid := newGrid(t, 2, 1)

	frame, err := RenderString(TextRenderer{LineBreak: "\n\r"}, grid)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if want := "####\n\r#  #\n\r####"; frame != want {
		t.Errorf("Render() = %q, expected %q", frame, want)
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	grid := newGrid(t, 6, 4)
	grid.PutFruit(1, 1)
	before := grid.Tiles()

	if _, err := RenderString(TextRenderer{}, grid); err != nil {
		t.Fatal(err)
	}
	after := grid.Tiles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("tile %d changed from %v to %v", i, before[i], after[i])
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestRenderSinkFailure(t *testing.T) {
	grid := newGrid(t, 4, 4)

	err := TextRenderer{}.Render(failingWriter{}, grid)
	if !errors.Is(err, core.ErrRendering) {
		t.Errorf("Render() error = %v, expected ErrRendering", err)
	}
}
