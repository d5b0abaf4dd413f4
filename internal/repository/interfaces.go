package repository

import (
	"context"

	"github.com/vytor/flashquiz/internal/models"
)

// DeckRepository handles deck data access. Lookups of a missing id return
// (nil, nil); mutations report whether a row matched.
type DeckRepository interface {
	List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	InsertWithCards(ctx context.Context, deck models.Deck, cards []models.Flashcard) (int64, error)
	Update(ctx context.Context, id int64, name string, description *string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	ListByDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error)
	CountByDeck(ctx context.Context, deckID int64) (int, error)
	Get(ctx context.Context, id int64) (*models.Flashcard, error)
	// InsertIfBelow reports false, without inserting, when the deck already
	// holds limit cards.
	InsertIfBelow(ctx context.Context, card models.Flashcard, limit int) (int64, bool, error)
	Update(ctx context.Context, card models.Flashcard) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
