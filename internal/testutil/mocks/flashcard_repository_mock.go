package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashquiz/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) CountByDeck(ctx context.Context, deckID int64) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) InsertIfBelow(ctx context.Context, card models.Flashcard, limit int) (int64, bool, error) {
	args := m.Called(ctx, card, limit)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockFlashcardRepository) Update(ctx context.Context, card models.Flashcard) (bool, error) {
	args := m.Called(ctx, card)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
