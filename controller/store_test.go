package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/battlesnakeio/snake/game"
	"github.com/stretchr/testify/require"
)

func frame(turn int64) *game.GameFrame {
	return &game.GameFrame{
		Turn:  turn,
		Snake: game.NewSnake(game.Point{X: 1, Y: 1}, game.Down, 3),
		Food:  &game.Food{Position: game.Point{X: 4, Y: 4}},
	}
}

func testStoreGames(t *testing.T, s Store) {
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, &game.Game{ID: "test", Status: game.GameStatusStopped}, nil)
	require.Nil(t, err)
	g, err := s.GetGame(ctx, "test")
	require.Nil(t, err)
	require.Equal(t, "test", g.ID)

	// Creating again is refused.
	err = s.CreateGame(ctx, &game.Game{ID: "test"}, nil)
	require.Equal(t, ErrGameExists, err)

	// NotFound error thrown.
	_, err = s.GetGame(ctx, "tes11221t")
	require.Equal(t, ErrNotFound, err)

	// Status updates are visible, returned games are copies.
	err = s.SetGameStatus(ctx, "test", game.GameStatusRunning)
	require.Nil(t, err)
	g.Status = game.GameStatusError
	g, err = s.GetGame(ctx, "test")
	require.Nil(t, err)
	require.Equal(t, game.GameStatusRunning, g.Status)

	err = s.SetGameStatus(ctx, "missing", game.GameStatusRunning)
	require.Equal(t, ErrNotFound, err)
}

func testStoreGameFrames(t *testing.T, s Store) {
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, &game.Game{ID: "test", Status: game.GameStatusRunning}, []*game.GameFrame{frame(0)})
	require.Nil(t, err)

	// Read game frames, too high offset.
	frames, err := s.ListGameFrames(ctx, "test", 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read game frames, 0 offset.
	frames, err = s.ListGameFrames(ctx, "test", 10, 0)
	require.Nil(t, err)
	require.Equal(t, 1, len(frames))

	// Push game frames.
	err = s.PushGameFrame(ctx, "test", frame(1))
	require.Nil(t, err)
	err = s.PushGameFrame(ctx, "test", frame(2))
	require.Nil(t, err)

	// Out of order frames are refused.
	err = s.PushGameFrame(ctx, "test", frame(2))
	require.Equal(t, ErrInvalidSequence, err)

	// Read the game frames.
	frames, err = s.ListGameFrames(ctx, "test", 2, 1)
	require.Nil(t, err)
	require.Equal(t, 2, len(frames))
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)

	// No limit reads everything after the offset.
	frames, err = s.ListGameFrames(ctx, "test", 0, 0)
	require.Nil(t, err)
	require.Equal(t, 3, len(frames))

	last, err := s.LastGameFrame(ctx, "test")
	require.Nil(t, err)
	require.Equal(t, int64(2), last.Turn)

	// Read game frames that don't exist.
	frames, err = s.ListGameFrames(ctx, "test22", 1, 0)
	require.Equal(t, ErrNotFound, err)
	require.Equal(t, 0, len(frames))
	err = s.PushGameFrame(ctx, "test22", frame(0))
	require.Equal(t, ErrNotFound, err)
	_, err = s.LastGameFrame(ctx, "test22")
	require.Equal(t, ErrNotFound, err)
}

func testStoreFramesAreCopied(t *testing.T, s Store) {
	ctx := context.Background()

	f := frame(0)
	err := s.CreateGame(ctx, &game.Game{ID: "copy"}, []*game.GameFrame{f})
	require.Nil(t, err)

	f.Snake.Body[0].X = 20
	last, err := s.LastGameFrame(ctx, "copy")
	require.Nil(t, err)
	require.Equal(t, int32(1), last.Snake.Head().X)

	last.Food.Position.X = 20
	last, err = s.LastGameFrame(ctx, "copy")
	require.Nil(t, err)
	require.Equal(t, int32(4), last.Food.Position.X)
}

func testStoreConcurrentWriters(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.CreateGame(ctx, &game.Game{ID: "test"}, []*game.GameFrame{frame(0)})
	require.Nil(t, err)

	var ok uint32 // How many pushed turn 1.
	var wg sync.WaitGroup
	wg.Add(20)

	for i := 0; i < 20; i++ {
		go func() {
			if errp := s.PushGameFrame(ctx, "test", frame(1)); errp == nil {
				atomic.AddUint32(&ok, 1)
			}
			wg.Done()
		}()
	}

	wg.Wait()

	require.Equal(t, uint32(1), ok)
}

func TestStore_InMem_Games(t *testing.T)             { testStoreGames(t, InMemStore()) }
func TestStore_InMem_GameFrames(t *testing.T)        { testStoreGameFrames(t, InMemStore()) }
func TestStore_InMem_FramesAreCopied(t *testing.T)   { testStoreFramesAreCopied(t, InMemStore()) }
func TestStore_InMem_ConcurrentWriters(t *testing.T) { testStoreConcurrentWriters(t, InMemStore()) }

func TestStore_Instrumented(t *testing.T) {
	testStoreGames(t, InstrumentStore(InMemStore()))
	testStoreGameFrames(t, InstrumentStore(InMemStore()))
}
