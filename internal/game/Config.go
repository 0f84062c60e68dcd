package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultGridWidth  = 10
	DefaultGridHeight = 20

	DefaultBaseInterval  = 1000 * time.Millisecond
	DefaultIntervalStep  = 50 * time.Millisecond
	DefaultMinInterval   = 50 * time.Millisecond
	DefaultLinesPerLevel = 10
	DefaultSoftDropBonus = 1
	DefaultHardDropBonus = 2

	MaxStrategyCalculationTime = 50 * time.Millisecond
)

// DefaultLineValues are the base awards for clearing 1, 2, 3 and 4 rows at once.
var DefaultLineValues = [4]int{40, 100, 300, 1200}

var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the rules of a game.
type Config struct {
	Width  int
	Height int

	// Gravity interval is BaseInterval - level*IntervalStep, never below MinInterval.
	BaseInterval time.Duration
	IntervalStep time.Duration
	MinInterval  time.Duration

	LinesPerLevel int
	LineValues    [4]int
	SoftDropBonus int
	HardDropBonus int
}

func DefaultConfig() Config {
	return Config{
		Width:         DefaultGridWidth,
		Height:        DefaultGridHeight,
		BaseInterval:  DefaultBaseInterval,
		IntervalStep:  DefaultIntervalStep,
		MinInterval:   DefaultMinInterval,
		LinesPerLevel: DefaultLinesPerLevel,
		LineValues:    DefaultLineValues,
		SoftDropBonus: DefaultSoftDropBonus,
		HardDropBonus: DefaultHardDropBonus,
	}
}

// Validate checks the config describes a playable game.
func (c Config) Validate() error {
	// pieces spawn in a 4x4 box centered on the top row
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 4x4", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.BaseInterval <= 0 {
		return fmt.Errorf("%w: base interval must be positive, got %s", ErrInvalidConfig, c.BaseInterval)
	}
	if c.IntervalStep < 0 {
		return fmt.Errorf("%w: interval step must not be negative, got %s", ErrInvalidConfig, c.IntervalStep)
	}
	if c.MinInterval <= 0 || c.MinInterval > c.BaseInterval {
		return fmt.Errorf("%w: min interval must be in (0, %s], got %s", ErrInvalidConfig, c.BaseInterval, c.MinInterval)
	}
	if c.LinesPerLevel <= 0 {
		return fmt.Errorf("%w: lines per level must be positive, got %d", ErrInvalidConfig, c.LinesPerLevel)
	}
	for i, value := range c.LineValues {
		if value < 0 {
			return fmt.Errorf("%w: line value %d is negative", ErrInvalidConfig, i+1)
		}
	}
	if c.SoftDropBonus < 0 || c.HardDropBonus < 0 {
		return fmt.Errorf("%w: drop bonuses must not be negative", ErrInvalidConfig)
	}
	return nil
}

// GravityInterval returns how long a piece hangs on a row at the given level.
func (c Config) GravityInterval(level int) time.Duration {
	interval := c.BaseInterval - time.Duration(level)*c.IntervalStep
	if interval < c.MinInterval {
		return c.MinInterval
	}
	return interval
}
