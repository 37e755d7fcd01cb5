package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/battlesnakeio/snake/game"
	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const replayInterval = 100 * time.Millisecond

func init() {
	replayCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to replay")
	replayCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the snake server")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a game from a running snake server",
	Args: func(c *cobra.Command, args []string) error {
		if len(gameID) == 0 {
			return errors.New("game id is required")
		}
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		return replayGame()
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *game.GameFrame, bool) {
	frameIndex++
	if frameIndex >= frames.count() {
		return frames.count() - 1, frames.get(frames.count() - 1), true
	}
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *game.GameFrame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func socketURL(addr, id string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", pkgerrors.Wrap(err, "invalid api address")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = fmt.Sprintf("/socket/%s", id)
	return u.String(), nil
}

func loadGame() (*game.Game, *frameHolder, error) {
	s, err := getStatus(gameID)
	if err != nil {
		return nil, nil, err
	}

	frames := &frameHolder{}

	u, err := socketURL(apiAddr, gameID)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("url", u).Info("connecting")

	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "dial")
	}

	go func() {
		defer func() {
			if err := c.Close(); err != nil {
				log.WithError(err).Warn("failure to close websocket connection")
			}
		}()

		for {
			mt, message, err := c.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.WithError(err).Warn("read")
				}
				return
			}

			switch mt {
			case websocket.TextMessage:
				frame := &game.GameFrame{}
				err = json.Unmarshal(message, frame)
				if err != nil {
					log.WithError(err).Warn("unmarshal frame")
					return
				}

				frames.append(frame)
			default:
				log.WithField("type", mt).Warn("unhandled message type")
			}
		}
	}()

	return s.Game, frames, nil
}

func replayGame() error {
	g, frames, err := loadGame()
	if err != nil {
		return err
	}

	if err = termbox.Init(); err != nil {
		return err
	}
	quietLogs()
	defer termbox.Close()

	eventQueue := setupEventQueue()
	currentFrame, err := getInitialFrame(frames)
	if err != nil {
		return err
	}
	if err = render(g, currentFrame); err != nil {
		return err
	}

	cycle := time.NewTicker(replayInterval)
	defer cycle.Stop()
	frameIndex := 0
	paused := false
	done := false

	for !done {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return nil
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err = render(g, currentFrame); err != nil {
					return err
				}
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame, _ = moveFrameForwards(frameIndex, frames)
				if err = render(g, currentFrame); err != nil {
					return err
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			var last bool
			frameIndex, currentFrame, last = moveFrameForwards(frameIndex, frames)
			if err = render(g, currentFrame); err != nil {
				return err
			}
			done = last && currentFrame.Over()
		}
	}

	if err = renderMessage(0, 0, "Press any key to exit..."); err != nil {
		return err
	}
	for ev := range eventQueue {
		if ev.Type == termbox.EventKey {
			break
		}
	}
	return nil
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}

func getInitialFrame(frames *frameHolder) (*game.GameFrame, error) {
	select {
	case f := <-frames.initialFrame():
		return f, nil
	case <-time.After(time.Second):
		return nil, errors.New("unable to find initial frame for game")
	}
}
