package commands

import (
	"context"
	"math/rand"

	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/worker"
)

// newGame validates c, stores the first frame of a new game and returns a
// worker ready to run it. Placement at creation and food relocation during
// the game draw from one generator seeded with c.Seed, so a seed replays a
// whole game. Input is left for the caller.
func newGame(ctx context.Context, c config.Config, store controller.Store, p worker.Presenter) (*game.Game, *worker.Worker, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewSource(c.Seed))
	g, err := worker.Create(ctx, store, c.Game(), rng)
	if err != nil {
		return nil, nil, err
	}
	return g, &worker.Worker{
		Store:     store,
		Presenter: p,
		Rand:      rng,
		Limit:     c.Limit(),
	}, nil
}
