// Package pathfind provides the tile-grid walkable-path service consumed
// by the AI system. Requests are asynchronous: they queue until the
// once-per-tick Calculate pump drains them and delivers results through
// callbacks. The grid search itself is a plain A* over 4-connected tiles.
package pathfind

// Tile is a grid coordinate.
type Tile struct {
	X, Y int
}

// Grid is a walkability bitmap over a tile map.
type Grid struct {
	width, height int
	tileSize      int
	walkable      []bool
}

// NewGrid creates a grid of the given dimensions with every tile blocked.
func NewGrid(width, height, tileSize int) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		walkable: make([]bool, width*height),
	}
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the tile edge length in pixels.
func (g *Grid) TileSize() int { return g.tileSize }

// SetWalkable marks a tile walkable or blocked.
func (g *Grid) SetWalkable(t Tile, ok bool) {
	if !g.InBounds(t) {
		return
	}
	g.walkable[t.Y*g.width+t.X] = ok
}

// Walkable reports whether a tile is inside the grid and walkable.
func (g *Grid) Walkable(t Tile) bool {
	if !g.InBounds(t) {
		return false
	}
	return g.walkable[t.Y*g.width+t.X]
}

// InBounds reports whether a tile is inside the grid.
func (g *Grid) InBounds(t Tile) bool {
	return t.X >= 0 && t.X < g.width && t.Y >= 0 && t.Y < g.height
}

// WorldToTile converts a world pixel position to its containing tile.
func (g *Grid) WorldToTile(x, y float64) Tile {
	return Tile{X: int(x) / g.tileSize, Y: int(y) / g.tileSize}
}

// TileCenter returns the world pixel position of a tile's center.
func (g *Grid) TileCenter(t Tile) (x, y float64) {
	half := float64(g.tileSize) / 2
	return float64(t.X*g.tileSize) + half, float64(t.Y*g.tileSize) + half
}
