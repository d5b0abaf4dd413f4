package services

import (
	"context"

	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository"
	"github.com/vytor/flashquiz/internal/validate"
)

// DeckService handles deck-related business logic
type DeckService interface {
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	CreateDeck(ctx context.Context, req CreateDeckRequest) (int64, error)
	UpdateDeck(ctx context.Context, id int64, req UpdateDeckRequest) error
	DeleteDeck(ctx context.Context, id int64) error
	DeleteDecks(ctx context.Context, req DeleteDecksRequest) (int64, error)
	ExportDeck(ctx context.Context, id int64) ([]models.CardFace, error)
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.FlashcardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.FlashcardRepository) DeckService {
	return &deckService{deckRepo: deckRepo, cardRepo: cardRepo}
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: user_id=%d", filter.UserID)

	decks, err := s.deckRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d", id)

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, req CreateDeckRequest) (int64, error) {
	log := logger.FromContext(ctx)
	req.normalize()
	log.Debug("creating deck: user_id=%d, name=%q", req.UserID, req.Name)

	if err := validate.Struct(req); err != nil {
		return 0, err
	}

	id, err := s.deckRepo.Insert(ctx, models.Deck{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%d, name=%q", id, req.Name)
	return id, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id int64, req UpdateDeckRequest) error {
	log := logger.FromContext(ctx)
	req.normalize()
	log.Debug("updating deck: id=%d, name=%q", id, req.Name)

	if err := validate.Struct(req); err != nil {
		return err
	}

	ok, err := s.deckRepo.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		log.Error("failed to update deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("deck", id)
	}
	return nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d", id)

	ok, err := s.deckRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("deck", id)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}

// DeleteDecks removes every listed deck that exists and reports how many went.
// Unknown ids are skipped rather than failing the batch.
func (s *deckService) DeleteDecks(ctx context.Context, req DeleteDecksRequest) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("deleting decks: ids=%v", req.IDs)

	if err := validate.Struct(req); err != nil {
		return 0, err
	}

	n, err := s.deckRepo.DeleteMany(ctx, req.IDs)
	if err != nil {
		log.Error("failed to delete decks: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("deleted %d of %d decks", n, len(req.IDs))
	return n, nil
}

func (s *deckService) ExportDeck(ctx context.Context, id int64) ([]models.CardFace, error) {
	log := logger.FromContext(ctx)
	log.Debug("exporting deck: id=%d", id)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, id)
	if err != nil {
		log.Error("failed to list cards for export: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return models.Faces(cards), nil
}
