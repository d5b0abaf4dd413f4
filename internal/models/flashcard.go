package models

import "time"

type Flashcard struct {
	ID        int64     `json:"id" db:"id"`
	DeckID    int64     `json:"deck_id" db:"deck_id"`
	Front     string    `json:"front" db:"front"`
	Back      string    `json:"back" db:"back"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CardFace is the exported shape of a card: just its two faces.
type CardFace struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Faces strips ids and timestamps for export.
func Faces(cards []Flashcard) []CardFace {
	out := make([]CardFace, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardFace{Front: c.Front, Back: c.Back})
	}
	return out
}
