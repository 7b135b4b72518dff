package linemap

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a malformed MapLines call: a missing line slice or
// an unusable configuration.
var ErrInvalidInput = errors.New("linemap: invalid input")

// Config controls scoring and assignment. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// ContentWeight scales the cosine similarity of a line's own tokens.
	ContentWeight float64
	// ContextWeight scales the cosine similarity of the surrounding-window
	// token vectors.
	ContextWeight float64
	// PositionalBonus is added flat to any pair whose weighted base score
	// reaches PositionalBonusThreshold. The final score is capped at 1.0.
	PositionalBonus          float64
	PositionalBonusThreshold float64
	// AcceptanceThreshold discards assigned pairs scoring below it; the
	// lines involved fall back to delete/insert.
	AcceptanceThreshold float64
	// ContextWindowSize is the number of lines considered on each side of a
	// line when building its context vector. Must be positive. The window
	// may reach past a replace block into adjacent unchanged lines.
	ContextWindowSize int
	// MaxExactAssignmentSize bounds the block size handled by the exact
	// assignment solver; larger blocks use greedy matching instead. Zero
	// means no bound. Exact assignment is cubic in the block size.
	MaxExactAssignmentSize int
}

// DefaultConfig returns the stock scoring parameters.
func DefaultConfig() Config {
	return Config{
		ContentWeight:            0.7,
		ContextWeight:            0.3,
		PositionalBonus:          0.2,
		PositionalBonusThreshold: 0.05,
		AcceptanceThreshold:      0.1,
		ContextWindowSize:        3,
		MaxExactAssignmentSize:   0,
	}
}

// Validate reports whether the configuration can drive a matching run.
func (c Config) Validate() error {
	switch {
	case c.ContentWeight < 0 || c.ContextWeight < 0:
		return fmt.Errorf("%w: similarity weights must be non-negative", ErrInvalidInput)
	case c.ContentWeight == 0 && c.ContextWeight == 0:
		return fmt.Errorf("%w: at least one similarity weight must be positive", ErrInvalidInput)
	case c.PositionalBonus < 0 || c.PositionalBonusThreshold < 0:
		return fmt.Errorf("%w: positional bonus and threshold must be non-negative", ErrInvalidInput)
	case c.AcceptanceThreshold < 0:
		return fmt.Errorf("%w: acceptance threshold must be non-negative", ErrInvalidInput)
	case c.ContextWindowSize <= 0:
		return fmt.Errorf("%w: context window size must be positive", ErrInvalidInput)
	case c.MaxExactAssignmentSize < 0:
		return fmt.Errorf("%w: max exact assignment size must not be negative", ErrInvalidInput)
	}
	return nil
}
