package rules

import (
	"github.com/battlesnakeio/snake/game"
	uuid "github.com/satori/go.uuid"
)

// StartDirection is the heading every new snake starts with.
const StartDirection = game.Down

// CreateInitialGame validates the settings in g and builds the first frame of
// a new game. The returned game is a copy of g with an ID and a stopped
// status. The snake starts at a random cell with its whole body stacked
// there, the food at an independent random cell.
func CreateInitialGame(g *game.Game, rng Rand) (*game.Game, *game.GameFrame, error) {
	if err := ValidateGame(g); err != nil {
		return nil, nil, err
	}

	out := g.Clone()
	if len(out.ID) == 0 {
		out.ID = uuid.NewV4().String()
	}
	out.Status = game.GameStatusStopped

	snake := game.NewSnake(RandomPoint(out.Width, out.Height, rng), StartDirection, out.InitialLength)
	snake.Color = palette.take()

	food := &game.Food{
		Position: RandomPoint(out.Width, out.Height, rng),
		Color:    FoodColor,
	}

	frame := &game.GameFrame{
		Turn:  0,
		Snake: snake,
		Food:  food,
	}
	return out, frame, nil
}
