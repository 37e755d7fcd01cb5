// Package controller keeps the games of the running process. Frames are held
// in memory only, nothing outlives the process.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/battlesnakeio/snake/game"
)

var (
	// ErrNotFound is thrown when a game is not found.
	ErrNotFound = errors.New("controller: game not found")
	// ErrGameExists is returned when creating a game with an ID already in use.
	ErrGameExists = errors.New("controller: game already exists")
	// ErrInvalidSequence is returned when a frame does not follow the last
	// stored frame.
	ErrInvalidSequence = errors.New("controller: invalid frame sequence")
)

// Store is the interface to the backend store.
type Store interface {
	CreateGame(context.Context, *game.Game, []*game.GameFrame) error
	GetGame(context.Context, string) (*game.Game, error)
	SetGameStatus(c context.Context, id string, status game.GameStatus) error
	PushGameFrame(c context.Context, id string, f *game.GameFrame) error
	ListGameFrames(c context.Context, id string, limit, offset int) ([]*game.GameFrame, error)
	LastGameFrame(c context.Context, id string) (*game.GameFrame, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games:  map[string]*game.Game{},
		frames: map[string][]*game.GameFrame{},
	}
}

type inmem struct {
	games  map[string]*game.Game
	frames map[string][]*game.GameFrame
	lock   sync.Mutex
}

func (in *inmem) CreateGame(ctx context.Context, g *game.Game, frames []*game.GameFrame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[g.ID]; ok {
		return ErrGameExists
	}
	stored := make([]*game.GameFrame, 0, len(frames))
	for i, f := range frames {
		if i > 0 && f.Turn != stored[i-1].Turn+1 {
			return ErrInvalidSequence
		}
		stored = append(stored, f.Clone())
	}
	in.games[g.ID] = g.Clone()
	in.frames[g.ID] = stored
	return nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*game.Game, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if g, ok := in.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (in *inmem) SetGameStatus(ctx context.Context, id string, status game.GameStatus) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	g, ok := in.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = status
	return nil
}

func (in *inmem) PushGameFrame(ctx context.Context, id string, f *game.GameFrame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	frames, ok := in.frames[id]
	if !ok {
		return ErrNotFound
	}
	if n := len(frames); n > 0 && f.Turn != frames[n-1].Turn+1 {
		return ErrInvalidSequence
	}
	in.frames[id] = append(frames, f.Clone())
	return nil
}

func (in *inmem) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*game.GameFrame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	frames, ok := in.frames[id]
	if !ok {
		return nil, ErrNotFound
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(frames) {
		return []*game.GameFrame{}, nil
	}
	end := len(frames)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*game.GameFrame, 0, end-offset)
	for _, f := range frames[offset:end] {
		out = append(out, f.Clone())
	}
	return out, nil
}

func (in *inmem) LastGameFrame(ctx context.Context, id string) (*game.GameFrame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	frames, ok := in.frames[id]
	if !ok || len(frames) == 0 {
		return nil, ErrNotFound
	}
	return frames[len(frames)-1].Clone(), nil
}
