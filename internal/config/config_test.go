package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	want := DefaultMemoryConfig()

	if cfg.MaxLevel != want.MaxLevel {
		t.Errorf("MaxLevel = %d, want %d", cfg.MaxLevel, want.MaxLevel)
	}
	if cfg.Timing != want.Timing {
		t.Errorf("Timing = %+v, want %+v", cfg.Timing, want.Timing)
	}
	if len(cfg.Preview) != len(want.Preview) {
		t.Fatalf("Preview has %d tiers, want %d", len(cfg.Preview), len(want.Preview))
	}
	for i := range want.Preview {
		if cfg.Preview[i] != want.Preview[i] {
			t.Errorf("Preview[%d] = %+v, want %+v", i, cfg.Preview[i], want.Preview[i])
		}
	}
	if len(cfg.Bonus) != len(want.Bonus) {
		t.Fatalf("Bonus has %d rules, want %d", len(cfg.Bonus), len(want.Bonus))
	}
	if cfg.Audio != want.Audio {
		t.Errorf("Audio = %+v, want %+v", cfg.Audio, want.Audio)
	}
}

func TestPreviewDuration(t *testing.T) {
	cfg := DefaultMemoryConfig()

	tests := []struct {
		cards    int
		expected time.Duration
	}{
		{4, 0},
		{6, 0},
		{8, 1200 * time.Millisecond},
		{11, 1200 * time.Millisecond},
		{12, 2500 * time.Millisecond},
		{23, 2500 * time.Millisecond},
		{24, 4000 * time.Millisecond},
		{47, 4000 * time.Millisecond},
		{48, 8000 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := cfg.PreviewDuration(tc.cards); got != tc.expected {
			t.Errorf("PreviewDuration(%d) = %v, want %v", tc.cards, got, tc.expected)
		}
	}
}

func TestApplyBonus(t *testing.T) {
	cfg := DefaultMemoryConfig()

	tests := []struct {
		name      string
		remaining int
		expected  int
	}{
		{"critically low gets both", 7, 17},
		{"zero gets both", 0, 10},
		{"nine gets both", 9, 19},
		{"ten gets one", 10, 15},
		{"fifteen gets one", 15, 20},
		{"nineteen gets one", 19, 24},
		{"twenty gets none", 20, 20},
		{"plenty gets none", 25, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.ApplyBonus(tc.remaining); got != tc.expected {
				t.Errorf("ApplyBonus(%d) = %d, want %d", tc.remaining, got, tc.expected)
			}
		})
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("timing:\n  mismatch_delay_ms: 500\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Timing.MismatchDelayMS != 500 {
		t.Errorf("MismatchDelayMS = %d, want 500", cfg.Timing.MismatchDelayMS)
	}
	if cfg.MaxLevel != 100 {
		t.Errorf("MaxLevel = %d, want default 100", cfg.MaxLevel)
	}
	if cfg.MismatchDelay() != 500*time.Millisecond {
		t.Errorf("MismatchDelay() = %v, want 500ms", cfg.MismatchDelay())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MemoryConfig)
		valid  bool
	}{
		{"defaults", func(*MemoryConfig) {}, true},
		{"zero max level", func(c *MemoryConfig) { c.MaxLevel = 0 }, false},
		{"zero match delay", func(c *MemoryConfig) { c.Timing.MatchDelayMS = 0 }, false},
		{"negative mismatch delay", func(c *MemoryConfig) { c.Timing.MismatchDelayMS = -1 }, false},
		{"bad preview tier", func(c *MemoryConfig) { c.Preview = append(c.Preview, PreviewTier{MinCards: 0, DurationMS: 10}) }, false},
		{"negative bonus", func(c *MemoryConfig) { c.Bonus = []BonusRule{{Below: 10, Add: -5}} }, false},
		{"no preview at all", func(c *MemoryConfig) { c.Preview = nil }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMemoryConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMemoryCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	if err := os.WriteFile(path, []byte("max_level: 20\naudio:\n  muted: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMemory(path)
	if err != nil {
		t.Fatalf("LoadMemory() failed: %v", err)
	}
	if cfg.MaxLevel != 20 {
		t.Errorf("MaxLevel = %d, want 20", cfg.MaxLevel)
	}
	if !cfg.Audio.Muted {
		t.Error("Audio.Muted should be true")
	}
}

func TestLoadMemoryCustomPathErrors(t *testing.T) {
	if _, err := LoadMemory(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadMemory() with missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_level: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMemory(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadMemory() = %v, want ErrInvalidConfig", err)
	}
}
