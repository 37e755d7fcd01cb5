package rules

import (
	"github.com/battlesnakeio/snake/game"
)

// Rand is the source of randomness used for placement. *math/rand.Rand
// satisfies it, which lets tests seed or script the draws.
type Rand interface {
	Int31n(n int32) int32
}

// RandomPoint draws a cell uniformly from the board, x and y independently.
func RandomPoint(width, height int32, rng Rand) game.Point {
	return game.Point{
		X: rng.Int31n(width),
		Y: rng.Int31n(height),
	}
}

// RelocateFood moves the food to a new random cell. Cells under the snake are
// not excluded, food can land on the body and is only eaten by the head.
func RelocateFood(food *game.Food, width, height int32, rng Rand) {
	food.Position = RandomPoint(width, height, rng)
}

// FoodConsumed reports whether the head sits on the food.
func FoodConsumed(food *game.Food, head game.Point) bool {
	return food != nil && food.Position.Equal(head)
}
