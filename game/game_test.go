package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameStatusFinished(t *testing.T) {
	require.False(t, GameStatusStopped.Finished())
	require.False(t, GameStatusRunning.Finished())
	require.True(t, GameStatusComplete.Finished())
	require.True(t, GameStatusError.Finished())
	require.True(t, GameStatusAborted.Finished())
}

func TestGameClone(t *testing.T) {
	g := &Game{ID: "a", Width: 3, Height: 4, Status: GameStatusRunning}
	c := g.Clone()
	require.Equal(t, g, c)
	c.Status = GameStatusComplete
	require.Equal(t, GameStatusRunning, g.Status)

	var nilGame *Game
	require.Nil(t, nilGame.Clone())
}
