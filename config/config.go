// Package config holds the settings of a run. Defaults match the classic
// arcade layout, a 32x24 board of 20px cells stepping ten times a second.
package config

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Defaults.
const (
	DefaultGridWidth     = 32
	DefaultGridHeight    = 24
	DefaultCellSize      = 20
	DefaultInitialLength = 3
	DefaultTickRate      = 10
)

// Config is the full set of knobs for a game.
type Config struct {
	GridWidth     int
	GridHeight    int
	CellSize      int
	InitialLength int
	TickRate      int
	StrictTail    bool
	Seed          int64
}

// Default returns the stock configuration with a time based seed.
func Default() Config {
	return Config{
		GridWidth:     DefaultGridWidth,
		GridHeight:    DefaultGridHeight,
		CellSize:      DefaultCellSize,
		InitialLength: DefaultInitialLength,
		TickRate:      DefaultTickRate,
		Seed:          time.Now().UnixNano(),
	}
}

// FromEnv returns the default configuration overlaid with any SNAKE_*
// environment variables that are set and parse.
func FromEnv() Config {
	c := Default()
	c.GridWidth = getEnvInt("SNAKE_GRID_WIDTH", c.GridWidth)
	c.GridHeight = getEnvInt("SNAKE_GRID_HEIGHT", c.GridHeight)
	c.CellSize = getEnvInt("SNAKE_CELL_SIZE", c.CellSize)
	c.InitialLength = getEnvInt("SNAKE_INITIAL_LENGTH", c.InitialLength)
	c.TickRate = getEnvInt("SNAKE_TICK_RATE", c.TickRate)
	c.StrictTail = getEnvBool("SNAKE_STRICT_TAIL", c.StrictTail)
	return c
}

// Game converts the configuration into game settings. Values outside the
// int32 range are truncated, call Validate first.
func (c Config) Game() *game.Game {
	return &game.Game{
		Width:         int32(c.GridWidth),
		Height:        int32(c.GridHeight),
		CellSize:      int32(c.CellSize),
		InitialLength: int32(c.InitialLength),
		TickRate:      int32(c.TickRate),
		StrictTail:    c.StrictTail,
	}
}

// Validate rejects configurations a game can't be built from.
func (c Config) Validate() error {
	const maxDim = 1 << 15
	fields := []struct {
		name  string
		value int
	}{
		{"grid width", c.GridWidth},
		{"grid height", c.GridHeight},
		{"cell size", c.CellSize},
		{"initial length", c.InitialLength},
		{"tick rate", c.TickRate},
	}
	// checked before Game narrows them to int32
	for _, f := range fields {
		if f.value < 1 || int64(f.value) > math.MaxInt32 {
			return errors.Wrapf(rules.ErrInvalidGame, "config: %s %d is out of range", f.name, f.value)
		}
	}
	if c.GridWidth > maxDim || c.GridHeight > maxDim {
		return errors.Errorf("config: grid %dx%d is larger than %d cells a side", c.GridWidth, c.GridHeight, maxDim)
	}
	if err := rules.ValidateGame(c.Game()); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Limit is the tick rate as a rate limit.
func (c Config) Limit() rate.Limit {
	return TickLimit(int32(c.TickRate))
}

// TickLimit converts ticks per second into a rate limit. Non positive rates
// are unlimited.
func TickLimit(tickRate int32) rate.Limit {
	if tickRate <= 0 {
		return rate.Inf
	}
	return rate.Limit(tickRate)
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvBool(varName string, defaults bool) bool {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaults
	}
	return b
}
