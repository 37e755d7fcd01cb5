// Package game defines the state types for a single player snake game played
// on a toroidal board.
//
// The types are plain data. All transitions live in the rules package, so a
// frame can be cloned, stored and served without dragging behaviour along.
package game

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	// GameStatusStopped represents a game that hasn't started yet
	GameStatusStopped GameStatus = "stopped"
	// GameStatusRunning represents a running game
	GameStatusRunning GameStatus = "running"
	// GameStatusComplete represents a game that is done, the snake has died
	GameStatusComplete GameStatus = "complete"
	// GameStatusError represents a game that ended because of an error
	GameStatusError GameStatus = "error"
	// GameStatusAborted represents a game the player quit or that was
	// cancelled before the snake died
	GameStatusAborted GameStatus = "aborted"
)

// Finished reports whether no more frames will be added to a game with this
// status.
func (s GameStatus) Finished() bool {
	return s == GameStatusComplete || s == GameStatusError || s == GameStatusAborted
}

// Game holds the settings of a single run. Width and Height are in cells,
// CellSize is the pixel size of a cell and only matters to renderers.
type Game struct {
	ID            string     `json:"id"`
	Width         int32      `json:"width"`
	Height        int32      `json:"height"`
	CellSize      int32      `json:"cellSize"`
	InitialLength int32      `json:"initialLength"`
	TickRate      int32      `json:"tickRate"`
	StrictTail    bool       `json:"strictTail"`
	Status        GameStatus `json:"status"`
}

// Clone returns a copy of the game.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	return &out
}

// GameFrame is the state of the board after a turn. Removed holds the tail
// cell vacated on this turn, if any, for renderers that erase instead of
// redrawing.
type GameFrame struct {
	Turn    int64  `json:"turn"`
	Snake   *Snake `json:"snake"`
	Food    *Food  `json:"food"`
	Removed *Point `json:"removed,omitempty"`
	Ate     bool   `json:"ate,omitempty"`
}

// Clone performs a deep copy of the frame.
func (f *GameFrame) Clone() *GameFrame {
	if f == nil {
		return nil
	}
	out := &GameFrame{
		Turn:  f.Turn,
		Snake: f.Snake.Clone(),
		Food:  f.Food.Clone(),
		Ate:   f.Ate,
	}
	if f.Removed != nil {
		r := *f.Removed
		out.Removed = &r
	}
	return out
}

// Over reports whether the frame is terminal.
func (f *GameFrame) Over() bool {
	return f.Snake == nil || !f.Snake.Alive()
}
