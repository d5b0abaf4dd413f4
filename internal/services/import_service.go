package services

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository"
	"github.com/vytor/flashquiz/internal/validate"
)

// ImportResult describes a deck created from a CSV upload.
type ImportResult struct {
	DeckID    int64 `json:"deck_id"`
	CardCount int   `json:"card_count"`
}

// ImportService creates whole decks from CSV uploads
type ImportService interface {
	ImportCSV(ctx context.Context, userID int64, name string, r io.Reader) (*ImportResult, error)
}

type importService struct {
	deckRepo repository.DeckRepository
}

// NewImportService creates a new ImportService
func NewImportService(deckRepo repository.DeckRepository) ImportService {
	return &importService{deckRepo: deckRepo}
}

// ImportCSV reads "front,back" records and stores them as a new deck in a
// single transaction. Records with fewer than two columns are skipped, extra
// columns are ignored.
func (s *importService) ImportCSV(ctx context.Context, userID int64, name string, r io.Reader) (*ImportResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": userID,
		"deck":    name,
	})
	log.Info("importing deck from csv")

	req := CreateDeckRequest{UserID: userID, Name: name}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	cards, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, errors.NewValidationError("file", "no front,back rows found")
	}
	if len(cards) > models.MaxCardsPerDeck {
		return nil, errors.NewValidationError("file", fmt.Sprintf("a deck holds at most %d cards, got %d", models.MaxCardsPerDeck, len(cards)))
	}

	id, err := s.deckRepo.InsertWithCards(ctx, models.Deck{UserID: req.UserID, Name: req.Name}, cards)
	if err != nil {
		log.Error("failed to store imported deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck imported: id=%d, cards=%d", id, len(cards))
	return &ImportResult{DeckID: id, CardCount: len(cards)}, nil
}

// ParseCSV turns CSV input into unsaved flashcards.
func ParseCSV(r io.Reader) ([]models.Flashcard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var cards []models.Flashcard
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.NewBadRequestError(fmt.Sprintf("invalid csv: %v", err))
		}
		if len(record) < 2 {
			continue
		}

		front := strings.TrimSpace(record[0])
		back := strings.TrimSpace(record[1])
		if front == "" || back == "" {
			continue
		}
		line, _ := reader.FieldPos(0)
		if utf8.RuneCountInString(front) > models.MaxCardFrontLength {
			return nil, errors.NewValidationError(fmt.Sprintf("line %d", line), fmt.Sprintf("front cannot exceed %d characters", models.MaxCardFrontLength))
		}
		if utf8.RuneCountInString(back) > models.MaxCardBackLength {
			return nil, errors.NewValidationError(fmt.Sprintf("line %d", line), fmt.Sprintf("back cannot exceed %d characters", models.MaxCardBackLength))
		}
		cards = append(cards, models.Flashcard{Front: front, Back: back})
	}
	return cards, nil
}
