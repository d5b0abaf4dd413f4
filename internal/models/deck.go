package models

import "time"

type Deck struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CardCount   int       `json:"card_count" db:"card_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DeckFilter narrows deck listings. Zero values mean "no constraint".
type DeckFilter struct {
	UserID int64
	Name   string
	Limit  int
	Offset int
}
