// Package input buffers player requests between ticks.
//
// Platforms push directions as keys arrive, the game loop drains the buffer
// once per tick. Only the latest direction pushed since the previous drain
// survives, anything before it is dropped.
package input

import (
	"math/rand"
	"sync"

	"github.com/battlesnakeio/snake/game"
	log "github.com/sirupsen/logrus"
)

// Provider is anything the game loop can pull input from.
type Provider interface {
	// Drain returns the direction requested since the last call, nil if
	// there was none, and whether the player asked to quit.
	Drain() (*game.Direction, bool)
}

// Queue is a Provider fed by another goroutine. The zero value is ready to
// use.
type Queue struct {
	mu      sync.Mutex
	next    *game.Direction
	quit    bool
	dropped int
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push records a direction request, replacing any request that hasn't been
// drained yet.
func (q *Queue) Push(d game.Direction) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.next != nil {
		q.dropped++
		log.WithFields(log.Fields{
			"Dropped":  *q.next,
			"Replaced": d,
		}).Debug("input overwritten before tick")
	}
	q.next = d.Ptr()
}

// Quit flags that the player wants to stop. It stays set.
func (q *Queue) Quit() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.quit = true
}

// Drain implements Provider.
func (q *Queue) Drain() (*game.Direction, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	d := q.next
	q.next = nil
	return d, q.quit
}

// Dropped is the number of requests replaced before they were drained.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dropped
}

// Autopilot wanders at random, for headless games. Each drain turns with the
// given percentage chance. It never quits.
type Autopilot struct {
	Rand       *rand.Rand
	TurnChance int
}

var directions = []game.Direction{game.Up, game.Down, game.Left, game.Right}

// Drain implements Provider.
func (a *Autopilot) Drain() (*game.Direction, bool) {
	if a.Rand.Intn(100) >= a.TurnChance {
		return nil, false
	}
	return directions[a.Rand.Intn(len(directions))].Ptr(), false
}
