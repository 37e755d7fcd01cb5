package rules

import (
	"github.com/battlesnakeio/snake/game"
)

// Step advances the snake one cell.
//
// A non-nil pending direction replaces whatever the snake had queued. The
// queued direction is applied unless it reverses the snake, the new head is
// pushed with wrap around, and the tail is dropped once the body is longer
// than TargetLength. The vacated tail cell is returned, or nil when the snake
// grew. Finally the head is checked against the rest of the body.
//
// A dead snake is frozen, Step leaves it untouched and returns nil.
func Step(g *game.Game, s *game.Snake, pending *game.Direction, turn int64) *game.Point {
	if s == nil || !s.Alive() || len(s.Body) == 0 {
		return nil
	}
	if pending != nil {
		s.Queue(*pending)
	}
	s.Turn()
	head := s.Move(g.Width, g.Height)

	var removed *game.Point
	if int32(len(s.Body)) > s.TargetLength {
		tail := s.Body[len(s.Body)-1]
		s.Body = s.Body[:len(s.Body)-1]
		removed = &tail
	}

	if deathBySelfCollision(head, s.Body[1:]) ||
		(g.StrictTail && removed != nil && head.Equal(*removed)) {
		s.Death = &game.Death{
			Turn:  turn,
			Cause: DeathCauseSelfCollision,
		}
	}
	return removed
}
