package game

import (
	"fmt"
	"time"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/generator"
)

// MinBoardSize is the smallest row and column count accepted, large
// enough for the widest standard frame
const MinBoardSize = 4

// Config holds engine configuration
type Config struct {
	Rows            int           `mapstructure:"rows" json:"rows" yaml:"rows"`
	Cols            int           `mapstructure:"cols" json:"cols" yaml:"cols"`
	HiddenRows      int           `mapstructure:"hidden_rows" json:"hidden_rows" yaml:"hidden_rows"` // Spawn buffer at the top, not drawn
	Lookahead       int           `mapstructure:"lookahead" json:"lookahead" yaml:"lookahead"`
	GravityInterval time.Duration `mapstructure:"gravity_interval" json:"gravity_interval" yaml:"gravity_interval"`
}

// DefaultConfig returns the standard 22x10 board with a two row spawn buffer
func DefaultConfig() Config {
	return Config{
		Rows:            22,
		Cols:            10,
		HiddenRows:      2,
		Lookahead:       generator.DefaultLookahead,
		GravityInterval: 800 * time.Millisecond,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Rows < MinBoardSize || c.Cols < MinBoardSize {
		return fmt.Errorf("%w: %dx%d, minimum is %dx%d",
			model.ErrInvalidBoardSize, c.Rows, c.Cols, MinBoardSize, MinBoardSize)
	}
	if c.HiddenRows < 0 || c.HiddenRows >= c.Rows {
		return fmt.Errorf("%w: %d hidden rows on a %d row board",
			model.ErrInvalidBoardSize, c.HiddenRows, c.Rows)
	}
	if c.Lookahead < 1 {
		return fmt.Errorf("%w: got %d", model.ErrInvalidLookahead, c.Lookahead)
	}
	if c.GravityInterval <= 0 {
		return fmt.Errorf("%w: got %s", model.ErrInvalidInterval, c.GravityInterval)
	}
	return nil
}
