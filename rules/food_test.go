package rules

import (
	"math/rand"
	"testing"

	"github.com/battlesnakeio/snake/game"
	"github.com/stretchr/testify/require"
)

func TestRelocateFoodStaysOnBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	food := &game.Food{}
	for i := 0; i < 1000; i++ {
		RelocateFood(food, 32, 24, rng)
		require.True(t, food.Position.In(32, 24), "food off board at %s", food.Position)
	}
}

func TestRelocateFoodEventuallyMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	food := &game.Food{}
	RelocateFood(food, 32, 24, rng)
	start := food.Position

	moved := false
	for i := 0; i < 100 && !moved; i++ {
		RelocateFood(food, 32, 24, rng)
		moved = !food.Position.Equal(start)
	}
	require.True(t, moved)
}

func TestRelocateFoodMayLandOnSnake(t *testing.T) {
	snake := &game.Snake{Body: points(3, 3, 3, 4, 3, 5)}
	food := &game.Food{}
	RelocateFood(food, 10, 10, &scriptedRand{values: []int32{3, 4}})
	require.Equal(t, snake.Body[1], food.Position)
	require.False(t, FoodConsumed(food, snake.Head()), "only the head eats")
}

func TestFoodConsumed(t *testing.T) {
	food := &game.Food{Position: game.Point{X: 2, Y: 3}}
	require.True(t, FoodConsumed(food, game.Point{X: 2, Y: 3}))
	require.False(t, FoodConsumed(food, game.Point{X: 3, Y: 2}))
	require.False(t, FoodConsumed(nil, game.Point{X: 2, Y: 3}))
}
