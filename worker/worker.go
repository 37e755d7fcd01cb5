// Package worker runs the game loop. Each tick it drains input, advances the
// game with the rules package, stores the frame and hands it to a presenter.
// It is the only place game state is mutated while a game is running.
package worker

import (
	"context"
	"math/rand"
	"time"

	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/input"
	"github.com/battlesnakeio/snake/rules"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Presenter draws frames. The loop never touches a screen itself.
type Presenter interface {
	Render(g *game.Game, f *game.GameFrame) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(g *game.Game, f *game.GameFrame) error

// Render implements Presenter.
func (fn PresenterFunc) Render(g *game.Game, f *game.GameFrame) error {
	return fn(g, f)
}

// Worker runs a single game to completion.
type Worker struct {
	Store     controller.Store
	Input     input.Provider
	Presenter Presenter
	Rand      rules.Rand
	// Limit overrides the tick rate of the game when non zero.
	Limit rate.Limit
}

// Create builds the first frame of a new game from the settings in g and
// stores it, ready to Run.
func Create(ctx context.Context, store controller.Store, g *game.Game, rng rules.Rand) (*game.Game, error) {
	created, frame, err := rules.CreateInitialGame(g, rng)
	if err != nil {
		return nil, err
	}
	if err := store.CreateGame(ctx, created, []*game.GameFrame{frame}); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"GameID": created.ID,
		"Width":  created.Width,
		"Height": created.Height,
		"Head":   frame.Snake.Head(),
		"Food":   frame.Food.Position,
	}).Info("game created")
	return created, nil
}

// Run plays the game with the given id until the snake dies, the player
// quits or ctx is done. Dying and quitting return nil, a cancelled context
// returns the context error. The tick in flight when the context is cancelled
// is abandoned.
func (w *Worker) Run(ctx context.Context, id string) error {
	g, err := w.Store.GetGame(ctx, id)
	if err != nil {
		return err
	}
	lastFrame, err := w.Store.LastGameFrame(ctx, id)
	if err != nil {
		return err
	}
	logger := log.WithField("GameID", id)

	if rules.CheckForGameOver(lastFrame) {
		logger.Info("game already over")
		return w.Store.SetGameStatus(ctx, id, game.GameStatusComplete)
	}
	if err := w.Store.SetGameStatus(ctx, id, game.GameStatusRunning); err != nil {
		return err
	}
	if err := w.render(g, lastFrame); err != nil {
		w.setStatus(id, game.GameStatusError)
		return err
	}

	limit := w.Limit
	if limit == 0 {
		limit = config.TickLimit(g.TickRate)
	}
	limiter := rate.NewLimiter(limit, 1)
	// spend the initial token so the first move comes one tick after the
	// first frame is shown
	limiter.Allow()

	rng := w.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			logger.WithError(err).Info("game loop cancelled")
			w.setStatus(id, game.GameStatusAborted)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		move, quit := w.drain()
		if quit {
			logger.WithField("Turn", lastFrame.Turn).Info("player quit")
			w.setStatus(id, game.GameStatusAborted)
			return nil
		}

		start := time.Now()
		nextFrame, err := rules.GameTick(g, lastFrame, move, rng)
		if err != nil {
			// A GameTick error means the stored state is broken, no more
			// processing can take place.
			logger.WithError(err).Error("ending game due to fatal error")
			w.setStatus(id, game.GameStatusError)
			return err
		}
		tickDuration.Observe(time.Since(start).Seconds())
		if nextFrame.Ate {
			foodEaten.Inc()
		}

		logger.WithFields(log.Fields{
			"Turn":      nextFrame.Turn,
			"Head":      nextFrame.Snake.Head(),
			"Direction": nextFrame.Snake.Direction,
			"Length":    nextFrame.Snake.Len(),
		}).Debug("adding game frame")
		if err := w.Store.PushGameFrame(ctx, id, nextFrame); err != nil {
			w.setStatus(id, game.GameStatusError)
			return err
		}
		if err := w.render(g, nextFrame); err != nil {
			w.setStatus(id, game.GameStatusError)
			return err
		}

		if rules.CheckForGameOver(nextFrame) {
			logger.WithFields(log.Fields{
				"Turn":   nextFrame.Turn,
				"Length": nextFrame.Snake.Len(),
			}).Info("ending game")
			gamesFinished.WithLabelValues(nextFrame.Snake.Death.Cause).Inc()
			return w.Store.SetGameStatus(ctx, id, game.GameStatusComplete)
		}
		lastFrame = nextFrame
	}
}

func (w *Worker) drain() (*game.Direction, bool) {
	if w.Input == nil {
		return nil, false
	}
	return w.Input.Drain()
}

func (w *Worker) render(g *game.Game, f *game.GameFrame) error {
	if w.Presenter == nil {
		return nil
	}
	return w.Presenter.Render(g, f)
}

// setStatus records a final status. It runs detached from the game context,
// which may already be cancelled.
func (w *Worker) setStatus(id string, status game.GameStatus) {
	if err := w.Store.SetGameStatus(context.Background(), id, status); err != nil {
		log.WithError(err).
			WithField("GameID", id).
			WithField("Status", status).
			Error("unable to set game status")
	}
}
