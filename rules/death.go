package rules

import "github.com/battlesnakeio/snake/game"

// deathBySelfCollision reports whether head sits on any of the given body
// cells. Callers pass the body without the head itself.
func deathBySelfCollision(head game.Point, body []game.Point) bool {
	for _, b := range body {
		if head.Equal(b) {
			return true
		}
	}
	return false
}

// CheckForGameOver checks if the game has ended. With a single snake the
// game is over as soon as it dies.
func CheckForGameOver(frame *game.GameFrame) bool {
	return frame == nil || frame.Over()
}
