package commands

import (
	"context"
	"math/rand"
	"time"

	"github.com/battlesnakeio/snake/api"
	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/input"
	"github.com/battlesnakeio/snake/worker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen  = ":3005"
	turnChance = 20
	remote     = false
	linger     = true
)

func init() {
	serveCmd.Flags().StringVar(&apiListen, "api-listen", apiListen, "address for the spectator api")
	serveCmd.Flags().IntVar(&turnChance, "turn-chance", turnChance, "percent chance per tick that the autopilot turns")
	serveCmd.Flags().BoolVar(&remote, "remote", remote, "steer through POST /games/:id/move instead of the autopilot")
	serveCmd.Flags().BoolVar(&linger, "linger", linger, "keep serving the finished game until interrupted")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "runs a headless game and serves it over http",
	RunE: func(c *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	ctx, cancel := signalContext()
	defer cancel()

	store := controller.InstrumentStore(controller.InMemStore())
	g, w, err := newGame(ctx, cfg, store, worker.PresenterFunc(logFrame))
	if err != nil {
		return err
	}
	prometheus()

	srv := api.New(apiListen, store)
	var provider input.Provider = &input.Autopilot{
		Rand:       rand.New(rand.NewSource(cfg.Seed + 1)),
		TurnChance: turnChance,
	}
	if remote {
		q := input.NewQueue()
		srv.Steer(g.ID, q)
		provider = q
	}

	served := make(chan error, 1)
	go func() {
		log.WithField("addr", apiListen).Info("api listening")
		served <- srv.WaitForExit()
	}()

	log.WithField("GameID", g.ID).Info("serving game")
	w.Input = provider
	runErr := w.Run(ctx, g.ID)
	if runErr == context.Canceled {
		runErr = nil
	}

	if linger && runErr == nil {
		select {
		case <-ctx.Done():
		case err := <-served:
			return err
		}
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("api shutdown")
	}
	if err := <-served; err != nil {
		return err
	}
	return runErr
}

// logFrame is the headless presenter.
func logFrame(g *game.Game, f *game.GameFrame) error {
	fields := log.Fields{
		"GameID": g.ID,
		"Turn":   f.Turn,
		"Length": f.Snake.Len(),
		"Head":   f.Snake.Head(),
		"Food":   f.Food.Position,
	}
	if f.Ate {
		log.WithFields(fields).Info("food eaten")
		return nil
	}
	log.WithFields(fields).Debug("frame")
	return nil
}
