package game

// Food is the single piece of food on the board.
type Food struct {
	Position Point  `json:"position"`
	Color    string `json:"color,omitempty"`
}

// Clone returns a copy of the food.
func (f *Food) Clone() *Food {
	if f == nil {
		return nil
	}
	out := *f
	return &out
}
