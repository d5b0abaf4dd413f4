package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vytor/flashquiz/internal/models"
)

func (c *Client) ListCardsForDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	req := request{op: "list flashcards", resource: "deck", method: http.MethodGet, path: fmt.Sprintf("/decks/%d/flashcards", deckID)}
	if err := c.do(ctx, req, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) GetCard(ctx context.Context, id int64) (*models.Flashcard, error) {
	var card models.Flashcard
	req := request{op: "get flashcard", resource: "flashcard", method: http.MethodGet, path: fmt.Sprintf("/flashcards/%d", id)}
	if err := c.do(ctx, req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) CreateCard(ctx context.Context, deckID int64, front, back string) (int64, error) {
	req, err := jsonRequest("create flashcard", "deck", http.MethodPost, "/flashcards", map[string]any{
		"deck_id": deckID,
		"front":   front,
		"back":    back,
	})
	if err != nil {
		return 0, err
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateCard(ctx context.Context, id int64, front, back string) error {
	req, err := jsonRequest("update flashcard", "flashcard", http.MethodPut, fmt.Sprintf("/flashcards/%d", id), map[string]any{
		"front": front,
		"back":  back,
	})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, request{op: "delete flashcard", resource: "flashcard", method: http.MethodDelete, path: fmt.Sprintf("/flashcards/%d", id)}, nil)
}
