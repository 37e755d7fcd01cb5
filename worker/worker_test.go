package worker

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/input"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// script replays a fixed list of moves, one per tick, then quits.
type script struct {
	moves []*game.Direction
	next  int
}

func (s *script) Drain() (*game.Direction, bool) {
	if s.next >= len(s.moves) {
		return nil, true
	}
	m := s.moves[s.next]
	s.next++
	return m, false
}

type recorder struct {
	frames []*game.GameFrame
	err    error
}

func (r *recorder) Render(g *game.Game, f *game.GameFrame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func curledGame(t *testing.T, store controller.Store) string {
	g := &game.Game{ID: "curled", Width: 10, Height: 10, CellSize: 1, InitialLength: 5, TickRate: 10}
	frame := &game.GameFrame{
		Snake: &game.Snake{
			Body: []game.Point{
				{X: 2, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1},
			},
			Direction:    game.Up,
			TargetLength: 5,
		},
		Food: &game.Food{Position: game.Point{X: 8, Y: 8}},
	}
	require.NoError(t, store.CreateGame(context.Background(), g, []*game.GameFrame{frame}))
	return g.ID
}

func TestWorker_RunUntilDeath(t *testing.T) {
	store := controller.InMemStore()
	id := curledGame(t, store)
	rec := &recorder{}

	w := &Worker{
		Store:     store,
		Input:     &script{moves: []*game.Direction{game.Right.Ptr()}},
		Presenter: rec,
		Rand:      rand.New(rand.NewSource(1)),
		Limit:     rate.Inf,
	}
	require.NoError(t, w.Run(context.Background(), id))

	g, err := store.GetGame(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, game.GameStatusComplete, g.Status)

	// initial frame then the fatal turn
	require.Len(t, rec.frames, 2)
	last := rec.frames[1]
	require.True(t, last.Over())
	require.Equal(t, int64(1), last.Turn)
	require.Equal(t, game.Point{X: 3, Y: 2}, last.Snake.Head())

	frames, err := store.ListGameFrames(context.Background(), id, 0, 0)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, last, frames[1])

	// running again doesn't move a dead snake
	require.NoError(t, w.Run(context.Background(), id))
	frames, err = store.ListGameFrames(context.Background(), id, 0, 0)
	require.NoError(t, err)
	require.Len(t, frames, 2)
}

func TestWorker_Quit(t *testing.T) {
	store := controller.InMemStore()
	g, err := Create(context.Background(), store, &game.Game{
		Width: 32, Height: 24, CellSize: 20, InitialLength: 3, TickRate: 10,
	}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	q := input.NewQueue()
	q.Quit()
	rec := &recorder{}
	w := &Worker{Store: store, Input: q, Presenter: rec, Limit: rate.Inf}
	require.NoError(t, w.Run(context.Background(), g.ID))

	g, err = store.GetGame(context.Background(), g.ID)
	require.NoError(t, err)
	require.Equal(t, game.GameStatusAborted, g.Status)
	require.Len(t, rec.frames, 1, "quit before the first tick")
}

func TestWorker_ContextCancelled(t *testing.T) {
	store := controller.InMemStore()
	g, err := Create(context.Background(), store, &game.Game{
		Width: 32, Height: 24, CellSize: 20, InitialLength: 3, TickRate: 1,
	}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{Store: store}
	done := make(chan error)
	go func() { done <- w.Run(ctx, g.ID) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "worker did not stop")
	}
	require.Equal(t, context.Canceled, err)

	g, err = store.GetGame(context.Background(), g.ID)
	require.NoError(t, err)
	require.Equal(t, game.GameStatusAborted, g.Status)

	// the tick in flight was abandoned
	frames, err := store.ListGameFrames(context.Background(), g.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, frames, 1)
}

func TestWorker_RunnerErrors(t *testing.T) {
	ctx := context.Background()
	store := controller.InMemStore()
	w := &Worker{Store: store, Limit: rate.Inf}

	t.Run("NoGame", func(t *testing.T) {
		err := w.Run(ctx, "")
		require.Equal(t, controller.ErrNotFound, err)
	})

	t.Run("GameFrameError", func(t *testing.T) {
		err := store.CreateGame(ctx, &game.Game{ID: "1", Width: 5, Height: 5}, []*game.GameFrame{{
			Snake: game.NewSnake(game.Point{X: 1, Y: 1}, game.Up, 3),
		}})
		require.NoError(t, err)

		err = w.Run(ctx, "1")
		require.NotNil(t, err)
		require.Equal(t, "rules: invalid state, frame is missing snake or food", err.Error())

		g, err := store.GetGame(ctx, "1")
		require.NoError(t, err)
		require.Equal(t, game.GameStatusError, g.Status)
	})

	t.Run("PresenterError", func(t *testing.T) {
		id := curledGame(t, store)
		boom := errors.New("screen gone")
		pw := &Worker{Store: store, Presenter: &recorder{err: boom}, Limit: rate.Inf}
		require.Equal(t, boom, pw.Run(ctx, id))

		g, err := store.GetGame(ctx, id)
		require.NoError(t, err)
		require.Equal(t, game.GameStatusError, g.Status)
	})
}

func TestWorker_RandomGameInvariants(t *testing.T) {
	store := controller.InMemStore()
	rng := rand.New(rand.NewSource(99))
	g, err := Create(context.Background(), store, &game.Game{
		Width: 8, Height: 6, CellSize: 1, InitialLength: 3, TickRate: 10,
	}, rng)
	require.NoError(t, err)

	moves := make([]*game.Direction, 500)
	pilot := &input.Autopilot{Rand: rng, TurnChance: 30}
	for i := range moves {
		moves[i], _ = pilot.Drain()
	}

	var prev *game.GameFrame
	check := PresenterFunc(func(g *game.Game, f *game.GameFrame) error {
		s := f.Snake
		require.True(t, s.Head().In(g.Width, g.Height), "head off board: %s", spew.Sdump(f))
		require.True(t, f.Food.Position.In(g.Width, g.Height))
		require.True(t, int32(s.Len()) <= s.TargetLength)
		if prev != nil {
			d := s.Head().Add(s.Direction.Opposite().Delta()).Wrap(g.Width, g.Height)
			require.Equal(t, prev.Snake.Head(), d, "head must move one cell")
			require.True(t, s.Len() == prev.Snake.Len() || s.Len() == prev.Snake.Len()+1)
		}
		prev = f
		return nil
	})

	w := &Worker{Store: store, Input: &script{moves: moves}, Presenter: check, Rand: rng, Limit: rate.Inf}
	require.NoError(t, w.Run(context.Background(), g.ID))

	g, err = store.GetGame(context.Background(), g.ID)
	require.NoError(t, err)
	if prev.Over() {
		require.Equal(t, game.GameStatusComplete, g.Status)
	} else {
		require.Equal(t, game.GameStatusAborted, g.Status)
	}
}
