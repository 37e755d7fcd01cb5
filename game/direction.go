package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Direction is one of the four headings a snake can travel in.
type Direction string

// Directions a snake can move in. The string values are what the api and the
// cli accept.
const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// ErrInvalidDirection is returned when a direction string can't be parsed.
var ErrInvalidDirection = errors.New("game: invalid direction")

// ParseDirection converts user or wire input into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", errors.Wrapf(ErrInvalidDirection, "%q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Delta is the unit step for the direction. Y grows downwards.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// Opposite returns the reverse heading. Unknown directions return themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// IsOpposite reports whether other points exactly the other way.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && d.Opposite() == other
}

// Ptr returns a pointer to a copy of d, handy for optional moves.
func (d Direction) Ptr() *Direction {
	return &d
}
