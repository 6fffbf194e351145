package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
)

// ErrConfiguration marks structural faults such as an asset pool too small
// for the requested board. These are programmer errors, not transient ones.
var ErrConfiguration = errors.New("memory: configuration error")

// ConfigurationError reports a deck that cannot be built from the pool.
type ConfigurationError struct {
	Level     int // 0 when not tied to a level
	Requested int
	Available int
}

func (e *ConfigurationError) Error() string {
	if e.Level > 0 {
		return fmt.Sprintf("memory: level %d needs %d pairs but the asset pool has %d faces",
			e.Level, e.Requested, e.Available)
	}
	return fmt.Sprintf("memory: cannot build %d pairs from an asset pool of %d faces",
		e.Requested, e.Available)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Card is one tile on the board.
type Card struct {
	ID      int    // Position in the deck
	AssetID string // Face, shared by exactly two cards
	Flipped bool
	Matched bool
}

// FaceUp reports whether the face should be visible.
func (c Card) FaceUp() bool {
	return c.Flipped || c.Matched
}

// DefaultAssetPool returns the 51 card faces: spades, diamonds and hearts
// from 2 to ace, clubs from 2 to king.
func DefaultAssetPool() []string {
	suits := []struct {
		name string
		end  int // 14 = ace
	}{
		{"S", 14},
		{"D", 14},
		{"H", 14},
		{"C", 13},
	}

	pool := make([]string, 0, 51)
	for _, suit := range suits {
		for rank := 2; rank <= suit.end; rank++ {
			pool = append(pool, suit.name+rankName(rank))
		}
	}
	return pool
}

func rankName(rank int) string {
	switch rank {
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	default:
		return strconv.Itoa(rank)
	}
}

// BuildDeck samples pairCount distinct faces from pool, duplicates each and
// shuffles the result. Card IDs are the final positions.
func BuildDeck(pairCount int, pool []string, rng *rand.Rand) ([]Card, error) {
	faces := distinct(pool)
	if pairCount < 1 || pairCount > len(faces) {
		return nil, &ConfigurationError{Requested: pairCount, Available: len(faces)}
	}

	// Partial sample without replacement: shuffle a copy, keep the prefix.
	rng.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })
	faces = faces[:pairCount]

	ids := make([]string, 0, pairCount*2)
	for _, face := range faces {
		ids = append(ids, face, face)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	deck := make([]Card, len(ids))
	for i, id := range ids {
		deck[i] = Card{ID: i, AssetID: id}
	}
	return deck, nil
}

// ValidateLevels checks that every level up to maxLevel can be dealt from pool.
func ValidateLevels(pool []string, maxLevel int) error {
	available := len(distinct(pool))
	for level := 1; level <= maxLevel; level++ {
		if need := ResolveLevel(level).PairCount; need > available {
			return &ConfigurationError{Level: level, Requested: need, Available: available}
		}
	}
	return nil
}

// distinct returns a fresh copy of pool without duplicates, order preserved.
func distinct(pool []string) []string {
	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, id := range pool {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
