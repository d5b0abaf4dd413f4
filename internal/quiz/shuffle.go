package quiz

import (
	"math/rand/v2"

	"github.com/vytor/flashquiz/internal/models"
)

// source is the subset of *rand.Rand a session draws from.
type source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// shuffle returns a uniformly permuted copy of cards (Fisher-Yates).
// The input slice is left untouched.
func shuffle(cards []models.Flashcard, src source) []models.Flashcard {
	out := make([]models.Flashcard, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func coin(src source) bool {
	return src.IntN(2) == 1
}
