package services

import (
	"context"
	"fmt"

	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository"
	"github.com/vytor/flashquiz/internal/validate"
)

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	ListForDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error)
	GetFlashcard(ctx context.Context, id int64) (*models.Flashcard, error)
	CreateFlashcard(ctx context.Context, req CreateFlashcardRequest) (int64, error)
	UpdateFlashcard(ctx context.Context, id int64, req UpdateFlashcardRequest) error
	DeleteFlashcard(ctx context.Context, id int64) error
}

type flashcardService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.FlashcardRepository
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(deckRepo repository.DeckRepository, cardRepo repository.FlashcardRepository) FlashcardService {
	return &flashcardService{deckRepo: deckRepo, cardRepo: cardRepo}
}

// ListForDeck returns the deck's cards in insertion order. A deck with no
// cards yields an empty slice; an unknown deck is NOT_FOUND.
func (s *flashcardService) ListForDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: deck_id=%d", deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, id int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, req CreateFlashcardRequest) (int64, error) {
	log := logger.FromContext(ctx)
	req.normalize()
	log.Debug("creating flashcard: deck_id=%d", req.DeckID)

	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	if err := s.requireDeck(ctx, req.DeckID); err != nil {
		return 0, err
	}

	card := models.Flashcard{DeckID: req.DeckID, Front: req.Front, Back: req.Back}
	id, ok, err := s.cardRepo.InsertIfBelow(ctx, card, models.MaxCardsPerDeck)
	if err != nil {
		log.Error("failed to create flashcard: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if !ok {
		return 0, errors.NewValidationError("deck_id", fmt.Sprintf("deck already holds the maximum of %d cards", models.MaxCardsPerDeck))
	}
	log.Info("flashcard created: id=%d, deck_id=%d", id, req.DeckID)
	return id, nil
}

func (s *flashcardService) UpdateFlashcard(ctx context.Context, id int64, req UpdateFlashcardRequest) error {
	log := logger.FromContext(ctx)
	req.normalize()
	log.Debug("updating flashcard: id=%d", id)

	if err := validate.Struct(req); err != nil {
		return err
	}

	ok, err := s.cardRepo.Update(ctx, models.Flashcard{ID: id, Front: req.Front, Back: req.Back})
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("flashcard", id)
	}
	return nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: id=%d", id)

	ok, err := s.cardRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("flashcard", id)
	}
	return nil
}

func (s *flashcardService) requireDeck(ctx context.Context, deckID int64) error {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}
