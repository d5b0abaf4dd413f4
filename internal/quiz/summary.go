package quiz

import (
	"math"

	"github.com/vytor/flashquiz/internal/models"
)

// Summary is the final tally of a session, whether it ran to completion or was
// ended early.
type Summary struct {
	CorrectCount   int                `json:"correct"`
	IncorrectCount int                `json:"incorrect"`
	IncorrectCards []models.Flashcard `json:"incorrect_cards"`
}

func (s Summary) Total() int {
	return s.CorrectCount + s.IncorrectCount
}

// Percentage is the share of correct answers, rounded to the nearest whole
// percent. An empty summary scores 0.
func (s Summary) Percentage() int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectCount) / float64(total) * 100))
}
