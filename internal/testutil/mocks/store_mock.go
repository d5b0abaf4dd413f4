package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashquiz/internal/client"
	"github.com/vytor/flashquiz/internal/models"
)

// MockDeckStore is a mock implementation of client.DeckStore
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) ListDecks(ctx context.Context, userID int64) ([]models.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deck), args.Error(1)
}

func (m *MockDeckStore) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckStore) CreateDeck(ctx context.Context, name string, description *string) (int64, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeckStore) RenameDeck(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockDeckStore) DeleteDeck(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckStore) DeleteDecks(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeckStore) ImportDeck(ctx context.Context, name string, csv io.Reader) (*client.ImportResult, error) {
	args := m.Called(ctx, name, csv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.ImportResult), args.Error(1)
}

func (m *MockDeckStore) ExportDeck(ctx context.Context, id int64) ([]models.CardFace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardFace), args.Error(1)
}

// MockCardStore is a mock implementation of client.CardStore
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) ListCardsForDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockCardStore) GetCard(ctx context.Context, id int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockCardStore) CreateCard(ctx context.Context, deckID int64, front, back string) (int64, error) {
	args := m.Called(ctx, deckID, front, back)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardStore) UpdateCard(ctx context.Context, id int64, front, back string) error {
	args := m.Called(ctx, id, front, back)
	return args.Error(0)
}

func (m *MockCardStore) DeleteCard(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
