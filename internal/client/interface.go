package client

import (
	"context"
	"io"

	"github.com/vytor/flashquiz/internal/models"
)

// DeckStore is the deck half of the flashcard API.
type DeckStore interface {
	ListDecks(ctx context.Context, userID int64) ([]models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	CreateDeck(ctx context.Context, name string, description *string) (int64, error)
	RenameDeck(ctx context.Context, id int64, name string) error
	DeleteDeck(ctx context.Context, id int64) error
	DeleteDecks(ctx context.Context, ids []int64) (int64, error)
	ImportDeck(ctx context.Context, name string, csv io.Reader) (*ImportResult, error)
	ExportDeck(ctx context.Context, id int64) ([]models.CardFace, error)
}

// CardStore is the flashcard half of the flashcard API.
type CardStore interface {
	ListCardsForDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error)
	GetCard(ctx context.Context, id int64) (*models.Flashcard, error)
	CreateCard(ctx context.Context, deckID int64, front, back string) (int64, error)
	UpdateCard(ctx context.Context, id int64, front, back string) error
	DeleteCard(ctx context.Context, id int64) error
}

var (
	_ DeckStore = (*Client)(nil)
	_ CardStore = (*Client)(nil)
)
