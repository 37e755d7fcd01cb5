package game

import "fmt"

// Point is a single cell on the board. Coordinates are in cells, not pixels,
// with (0,0) in the top-left corner.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Equal checks if 2 points are the same x,y coordinate
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Add returns the point offset by delta.
func (p Point) Add(delta Point) Point {
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Wrap folds the point back onto a width x height torus, so stepping off one
// edge reappears on the opposite edge.
func (p Point) Wrap(width, height int32) Point {
	return Point{X: mod(p.X, width), Y: mod(p.Y, height)}
}

// In reports whether the point lies on a width x height board.
func (p Point) In(width, height int32) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func mod(v, n int32) int32 {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
