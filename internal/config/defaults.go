package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the default memory game configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		MaxLevel: 100,
		Timing: MemoryTiming{
			MatchDelayMS:    200,
			MismatchDelayMS: 800,
			WarningSeconds:  5,
		},
		Preview: []PreviewTier{
			{MinCards: 8, DurationMS: 1200},
			{MinCards: 12, DurationMS: 2500},
			{MinCards: 24, DurationMS: 4000},
			{MinCards: 48, DurationMS: 8000},
		},
		Bonus: []BonusRule{
			{Below: 10, Add: 5},
			{Below: 20, Add: 5},
		},
		Audio: MemoryAudio{
			Muted: false,
			Bell:  true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMemoryYAML
}
