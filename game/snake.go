package game

// Death records when and why a snake stopped moving.
type Death struct {
	Turn  int64  `json:"turn"`
	Cause string `json:"cause"`
}

// Snake is the player. Body[0] is the head and the last element is the tail.
// A snake with a nil Death is alive.
type Snake struct {
	Body         []Point    `json:"body"`
	Direction    Direction  `json:"direction"`
	Pending      *Direction `json:"pending,omitempty"`
	TargetLength int32      `json:"targetLength"`
	Death        *Death     `json:"death,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// NewSnake creates a snake of the given length with every segment stacked on
// head. The stack unfolds as the snake moves.
func NewSnake(head Point, direction Direction, length int32) *Snake {
	body := make([]Point, length)
	for i := range body {
		body[i] = head
	}
	return &Snake{
		Body:         body,
		Direction:    direction,
		TargetLength: length,
	}
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	if len(s.Body) == 0 {
		return Point{}
	}
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() Point {
	if len(s.Body) == 0 {
		return Point{}
	}
	return s.Body[len(s.Body)-1]
}

// Len is the number of cells the snake currently occupies.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Alive reports whether the snake is still moving.
func (s *Snake) Alive() bool {
	return s.Death == nil
}

// Queue records a requested direction for the next move. A later request
// replaces an earlier one that hasn't been applied yet.
func (s *Snake) Queue(d Direction) {
	s.Pending = d.Ptr()
}

// Turn applies the pending direction, unless it would reverse the snake into
// its own neck, and clears it. A reversal request is dropped silently.
func (s *Snake) Turn() {
	if s.Pending == nil {
		return
	}
	next := *s.Pending
	s.Pending = nil
	if !next.Valid() || s.Direction.IsOpposite(next) {
		return
	}
	s.Direction = next
}

// Move pushes a new head one cell in the current direction, wrapping around
// the board edges. Move does not remove the tail, that is done by the rules
// once growth has been decided.
func (s *Snake) Move(width, height int32) Point {
	head := s.Head().Add(s.Direction.Delta()).Wrap(width, height)
	s.Body = append([]Point{head}, s.Body...)
	return head
}

// Clone performs a deep copy of the snake.
func (s *Snake) Clone() *Snake {
	if s == nil {
		return nil
	}
	out := &Snake{
		Direction:    s.Direction,
		TargetLength: s.TargetLength,
		Color:        s.Color,
	}
	if s.Pending != nil {
		out.Pending = s.Pending.Ptr()
	}
	if s.Death != nil {
		d := *s.Death
		out.Death = &d
	}
	if len(s.Body) > 0 {
		out.Body = make([]Point, len(s.Body))
		copy(out.Body, s.Body)
	}
	return out
}
