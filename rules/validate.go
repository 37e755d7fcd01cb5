package rules

import (
	"github.com/battlesnakeio/snake/game"
	"github.com/pkg/errors"
)

// ErrInvalidGame is the cause of every error returned by ValidateGame.
var ErrInvalidGame = errors.New("invalid game settings")

// ValidateGame rejects settings a game can't be played with.
func ValidateGame(g *game.Game) error {
	if g == nil {
		return errors.Wrap(ErrInvalidGame, "game is nil")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return errors.Wrapf(ErrInvalidGame, "board must be at least 1x1, got %dx%d", g.Width, g.Height)
	}
	if g.InitialLength < 1 {
		return errors.Wrapf(ErrInvalidGame, "initial length must be at least 1, got %d", g.InitialLength)
	}
	if int64(g.InitialLength) >= int64(g.Width)*int64(g.Height) {
		return errors.Wrapf(ErrInvalidGame, "initial length %d does not fit on a %dx%d board",
			g.InitialLength, g.Width, g.Height)
	}
	if g.CellSize <= 0 {
		return errors.Wrapf(ErrInvalidGame, "cell size must be positive, got %d", g.CellSize)
	}
	if g.TickRate <= 0 {
		return errors.Wrapf(ErrInvalidGame, "tick rate must be positive, got %d", g.TickRate)
	}
	return nil
}
