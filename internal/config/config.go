// Package config provides YAML-based game configuration loading for the
// memory game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid memory configuration")

// MemoryConfig contains all tunable rules for the memory game.
type MemoryConfig struct {
	MaxLevel int           `yaml:"max_level"`
	Timing   MemoryTiming  `yaml:"timing"`
	Preview  []PreviewTier `yaml:"preview"`
	Bonus    []BonusRule   `yaml:"bonus"`
	Audio    MemoryAudio   `yaml:"audio"`
}

// MemoryTiming defines the delayed-resolution timings and the warning threshold.
type MemoryTiming struct {
	MatchDelayMS    int `yaml:"match_delay_ms"`    // Delay before a matched pair is confirmed
	MismatchDelayMS int `yaml:"mismatch_delay_ms"` // Delay before a mismatched pair flips back
	WarningSeconds  int `yaml:"warning_seconds"`   // Remaining time at or below which the clock warns
}

// PreviewTier shows the board face up for DurationMS when the deck has at least MinCards.
type PreviewTier struct {
	MinCards   int `yaml:"min_cards"`
	DurationMS int `yaml:"duration_ms"`
}

// BonusRule adds Add seconds when the remaining time is strictly below Below.
type BonusRule struct {
	Below int `yaml:"below"`
	Add   int `yaml:"add"`
}

// MemoryAudio defines cue playback defaults.
type MemoryAudio struct {
	Muted bool `yaml:"muted"` // Start muted
	Bell  bool `yaml:"bell"`  // Ring the terminal bell on cues
}

// MatchDelay returns the match confirmation delay.
func (c MemoryConfig) MatchDelay() time.Duration {
	return time.Duration(c.Timing.MatchDelayMS) * time.Millisecond
}

// MismatchDelay returns the mismatch flip-back delay.
func (c MemoryConfig) MismatchDelay() time.Duration {
	return time.Duration(c.Timing.MismatchDelayMS) * time.Millisecond
}

// PreviewDuration returns how long a deck of the given size is shown face up.
// Zero means the level starts without a preview.
func (c MemoryConfig) PreviewDuration(cards int) time.Duration {
	var d time.Duration
	best := -1
	for _, tier := range c.Preview {
		if cards >= tier.MinCards && tier.MinCards > best {
			best = tier.MinCards
			d = time.Duration(tier.DurationMS) * time.Millisecond
		}
	}
	return d
}

// ApplyBonus returns the remaining time after a successful match.
// Rules are checked in order, each against the already adjusted value.
func (c MemoryConfig) ApplyBonus(remaining int) int {
	for _, rule := range c.Bonus {
		if remaining < rule.Below {
			remaining += rule.Add
		}
	}
	return remaining
}

// Validate reports settings the game cannot run with.
func (c MemoryConfig) Validate() error {
	if c.MaxLevel < 1 {
		return fmt.Errorf("%w: max_level must be at least 1, got %d", ErrInvalidConfig, c.MaxLevel)
	}
	if c.Timing.MatchDelayMS <= 0 {
		return fmt.Errorf("%w: match_delay_ms must be positive", ErrInvalidConfig)
	}
	if c.Timing.MismatchDelayMS <= 0 {
		return fmt.Errorf("%w: mismatch_delay_ms must be positive", ErrInvalidConfig)
	}
	if c.Timing.WarningSeconds < 0 {
		return fmt.Errorf("%w: warning_seconds cannot be negative", ErrInvalidConfig)
	}
	for _, tier := range c.Preview {
		if tier.MinCards < 1 || tier.DurationMS <= 0 {
			return fmt.Errorf("%w: bad preview tier %+v", ErrInvalidConfig, tier)
		}
	}
	for _, rule := range c.Bonus {
		if rule.Add < 0 {
			return fmt.Errorf("%w: bonus add cannot be negative", ErrInvalidConfig)
		}
	}
	return nil
}
