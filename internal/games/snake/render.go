package snake

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// Frame glyphs.
const (
	GlyphWall  = '#'
	GlyphEmpty = ' '
	GlyphFruit = '@'
	GlyphSnake = '█'
)

// Renderer turns grid state into a frame written to w.
// Implementations must not mutate the grid.
type Renderer interface {
	Render(w io.Writer, grid *core.Grid) error
}

// TextRenderer draws the grid framed by '#' walls, one line per row.
type TextRenderer struct {
	// LineBreak separates rows. Defaults to "\n"; raw terminals want "\n\r".
	LineBreak string
}

// Glyph returns the character used for a tile type.
func Glyph(t core.TileType) rune {
	switch t {
	case core.TileFruit:
		return GlyphFruit
	case core.TileSnake:
		return GlyphSnake
	default:
		return GlyphEmpty
	}
}

// Render writes the frame. Only sink failures are reported, as ErrRendering.
func (r TextRenderer) Render(w io.Writer, grid *core.Grid) error {
	lb := r.LineBreak
	if lb == "" {
		lb = "\n"
	}

	bw := bufio.NewWriter(w)
	wall := strings.Repeat(string(GlyphWall), grid.Width()+2)

	bw.WriteString(wall)
	for i, tile := range grid.Tiles() {
		if i%grid.Width() == 0 {
			if i > 0 {
				bw.WriteRune(GlyphWall)
			}
			bw.WriteString(lb)
			bw.WriteRune(GlyphWall)
		}
		bw.WriteRune(Glyph(tile.Type))
	}
	bw.WriteRune(GlyphWall)
	bw.WriteString(lb)
	bw.WriteString(wall)

	// bufio keeps the first write error; Flush reports it
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrRendering, err)
	}
	return nil
}

// RenderString renders into a string.
func RenderString(r Renderer, grid *core.Grid) (string, error) {
	var sb strings.Builder
	sb.Grow((grid.Width() + 3) * (grid.Height() + 2) * 3)
	if err := r.Render(&sb, grid); err != nil {
		return "", err
	}
	return sb.String(), nil
}
