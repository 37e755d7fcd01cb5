package rules

import (
	"github.com/battlesnakeio/snake/game"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrNilFrame is returned when there is no previous frame to advance.
	ErrNilFrame = errors.New("rules: invalid state, previous frame is nil")
	// ErrMalformedFrame is returned when the previous frame has no snake or food.
	ErrMalformedFrame = errors.New("rules: invalid state, frame is missing snake or food")
	// ErrGameOver is returned when asked to advance a frame whose snake is dead.
	ErrGameOver = errors.New("rules: game is over")
)

// GameTick runs the game one tick and returns the next frame. The previous
// frame is left untouched. move is the direction requested since the last
// tick, nil if there was none.
func GameTick(g *game.Game, lastFrame *game.GameFrame, move *game.Direction, rng Rand) (*game.GameFrame, error) {
	if lastFrame == nil {
		return nil, ErrNilFrame
	}
	if lastFrame.Snake == nil || lastFrame.Food == nil {
		return nil, ErrMalformedFrame
	}
	if !lastFrame.Snake.Alive() {
		return nil, ErrGameOver
	}

	nextFrame := lastFrame.Clone()
	nextFrame.Turn = lastFrame.Turn + 1
	nextFrame.Ate = false

	// 1. turn, move, grow or shift, check for self collision
	nextFrame.Removed = Step(g, nextFrame.Snake, move, nextFrame.Turn)

	// 2. eat and replace the food
	if FoodConsumed(nextFrame.Food, nextFrame.Snake.Head()) {
		nextFrame.Snake.TargetLength++
		nextFrame.Ate = true
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   nextFrame.Turn,
			"Food":   nextFrame.Food.Position,
			"Target": nextFrame.Snake.TargetLength,
		}).Debug("snake ate")
		RelocateFood(nextFrame.Food, g.Width, g.Height, rng)
	}

	// 3. death is data, the caller decides when to stop
	if death := nextFrame.Snake.Death; death != nil {
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   nextFrame.Turn,
			"Cause":  death.Cause,
			"Length": nextFrame.Snake.Len(),
		}).Info("snake died")
	}
	return nextFrame, nil
}
