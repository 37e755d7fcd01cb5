package commands

import (
	"context"
	"time"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/input"
	"github.com/battlesnakeio/snake/worker"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// gameOverPause is how long the final frame stays up after the snake dies.
const gameOverPause = time.Second

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a game in the terminal, steer with the arrow keys or WASD",
	RunE: func(c *cobra.Command, args []string) error {
		return play()
	},
}

var keyDirections = map[termbox.Key]game.Direction{
	termbox.KeyArrowUp:    game.Up,
	termbox.KeyArrowDown:  game.Down,
	termbox.KeyArrowLeft:  game.Left,
	termbox.KeyArrowRight: game.Right,
}

var runeDirections = map[rune]game.Direction{
	'w': game.Up, 'W': game.Up,
	's': game.Down, 'S': game.Down,
	'a': game.Left, 'A': game.Left,
	'd': game.Right, 'D': game.Right,
}

func play() error {
	ctx, cancel := signalContext()
	defer cancel()

	store := controller.InstrumentStore(controller.InMemStore())
	g, w, err := newGame(ctx, cfg, store, worker.PresenterFunc(render))
	if err != nil {
		return err
	}
	prometheus()

	if err := termbox.Init(); err != nil {
		return err
	}
	quietLogs()
	defer termbox.Close()

	queue := input.NewQueue()
	polled := pollKeys(queue)
	defer func() {
		termbox.Interrupt()
		<-polled
	}()

	w.Input = queue
	if err := w.Run(ctx, g.ID); err != nil && err != context.Canceled {
		return err
	}

	final, err := store.GetGame(context.Background(), g.ID)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"GameID": g.ID,
		"Status": final.Status,
	}).Info("game finished")
	if final.Status == game.GameStatusComplete {
		time.Sleep(gameOverPause)
	}
	return nil
}

// pollKeys feeds key presses into q until termbox.Interrupt is called. The
// returned channel closes when polling has stopped.
func pollKeys(q *input.Queue) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev := termbox.PollEvent()
			switch ev.Type {
			case termbox.EventInterrupt:
				return
			case termbox.EventError:
				log.WithError(ev.Err).Warn("terminal input failed")
				q.Quit()
				return
			case termbox.EventKey:
				switch ev.Key {
				case termbox.KeyEsc, termbox.KeyCtrlC:
					q.Quit()
					continue
				}
				if d, ok := keyDirections[ev.Key]; ok {
					q.Push(d)
					continue
				}
				if d, ok := runeDirections[ev.Ch]; ok {
					q.Push(d)
				}
			}
		}
	}()
	return done
}
