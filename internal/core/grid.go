// Package core provides the fundamental types of the snake engine: the tile
// grid, movement directions, the error taxonomy and the random source
// abstraction. It has no external dependencies so game logic stays pure and
// testable.
package core

import "fmt"

// TileType is the content of a single grid cell.
type TileType int

const (
	TileEmpty TileType = iota
	TileSnake
	TileFruit
)

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileSnake:
		return "snake"
	case TileFruit:
		return "fruit"
	default:
		return "unknown"
	}
}

// Tile is one grid cell. Index never changes; Type is mutated through the Grid.
type Tile struct {
	Index int
	Type  TileType
}

// Grid is a fixed-size rectangular board of tiles.
// Tiles are stored in row-major order: index = y*width + x.
// The grid performs no wraparound; that is a policy of the snake.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid creates a grid with every tile Empty.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d must be at least 1x1", ErrConfig, width, height)
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = Tile{Index: i, Type: TileEmpty}
	}

	return &Grid{
		width:  width,
		height: height,
		tiles:  tiles,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns width*height.
func (g *Grid) Size() int {
	return len(g.tiles)
}

// Position converts a tile index into (x, y).
func (g *Grid) Position(index int) (x, y int) {
	y = index / g.width
	x = index - y*g.width
	return x, y
}

// Index converts (x, y) into a tile index.
// Returns false if the coordinate is outside the grid.
func (g *Grid) Index(x, y int) (int, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return y*g.width + x, true
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Tile returns the tile at the given index.
func (g *Grid) Tile(index int) (Tile, bool) {
	if index < 0 || index >= len(g.tiles) {
		return Tile{}, false
	}
	return g.tiles[index], true
}

// TileAt returns the tile at (x, y).
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	i, ok := g.Index(x, y)
	if !ok {
		return Tile{}, false
	}
	return g.tiles[i], true
}

// Center returns the coordinates of the center tile.
// For even dimensions the center leans toward the origin.
func (g *Grid) Center() (x, y int) {
	return (g.width - 1) / 2, (g.height - 1) / 2
}

// Neighbor returns the tile adjacent to t in direction d.
// Returns false exactly when that step would leave the grid.
func (g *Grid) Neighbor(t Tile, d Direction) (Tile, bool) {
	x, y := g.Position(t.Index)

	switch d {
	case DirUp:
		y--
	case DirDown:
		y++
	case DirLeft:
		x--
	case DirRight:
		x++
	default:
		return Tile{}, false
	}

	return g.TileAt(x, y)
}

// SetType changes the type of the tile at index.
// Returns false if the index is outside the grid.
func (g *Grid) SetType(index int, t TileType) bool {
	if index < 0 || index >= len(g.tiles) {
		return false
	}
	g.tiles[index].Type = t
	return true
}

// PutFruit marks the tile at (x, y) as fruit if it is currently empty.
// Anything else, including out-of-bounds coordinates, is a no-op.
func (g *Grid) PutFruit(x, y int) {
	i, ok := g.Index(x, y)
	if !ok {
		return
	}
	if g.tiles[i].Type == TileEmpty {
		g.tiles[i].Type = TileFruit
	}
}

// Tiles returns a copy of all tiles in index order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// TilesOfType returns every tile of the given type in index order.
func (g *Grid) TilesOfType(t TileType) []Tile {
	var out []Tile
	for _, tile := range g.tiles {
		if tile.Type == t {
			out = append(out, tile)
		}
	}
	return out
}

// CountOfType returns the number of tiles of the given type.
func (g *Grid) CountOfType(t TileType) int {
	n := 0
	for _, tile := range g.tiles {
		if tile.Type == t {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		tiles:  g.Tiles(),
	}
}
