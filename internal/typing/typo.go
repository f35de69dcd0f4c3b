package typing

import "strings"

const typoPool = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TypoOutcome is the per-character typo decision.
type TypoOutcome int

const (
	// NoTypo means the character was typed right the first time.
	NoTypo TypoOutcome = iota
	// TypoCorrected means a wrong key was typed, deleted and replaced.
	TypoCorrected
	// TypoUncorrected means a wrong key was typed and deleted but the
	// intended character was never retyped.
	TypoUncorrected
)

func (o TypoOutcome) String() string {
	switch o {
	case NoTypo:
		return "none"
	case TypoCorrected:
		return "corrected"
	case TypoUncorrected:
		return "uncorrected"
	default:
		return "unknown"
	}
}

// Rand is the randomness a session draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// shouldTypo draws once and decides whether r gets a typo.
func shouldTypo(rng Rand, accuracy float64, inString bool) bool {
	roll := rng.Float64()
	if roll <= accuracy || inString {
		return false
	}
	return true
}

// substitute picks a wrong alphanumeric rune, never r itself.
func substitute(rng Rand, r rune) rune {
	pool := typoPool
	if strings.ContainsRune(pool, r) {
		pool = strings.Replace(pool, string(r), "", 1)
	}
	return rune(pool[rng.Intn(len(pool))])
}
