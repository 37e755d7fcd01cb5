package rules

import "sync"

// Colors of the board pieces, as CSS hex strings for spectators.
const (
	// SnakeGreen is the classic arcade snake color.
	SnakeGreen = "#00ff00"
	// FoodColor is the color given to every piece of food.
	FoodColor = "#ff0000"
)

// SnakeColors are handed to new snakes in turn, so games running side by side
// in one process can be told apart. The first game always gets SnakeGreen.
var SnakeColors = []string{
	SnakeGreen,
	"#1e4fcd",
	"#cdcb1e",
	"#cd1e91",
	"#1ecdc7",
	"#cd681e",
}

type snakePalette struct {
	mu   sync.Mutex
	next int
}

var palette = &snakePalette{}

// take returns the color for the next snake and advances the rotation.
func (p *snakePalette) take() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := SnakeColors[p.next%len(SnakeColors)]
	p.next = (p.next + 1) % len(SnakeColors)
	return c
}
