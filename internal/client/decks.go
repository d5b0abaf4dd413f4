package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vytor/flashquiz/internal/models"
)

// ImportResult is the server's answer to a CSV import.
type ImportResult struct {
	Message   string `json:"message"`
	DeckID    int64  `json:"deck_id"`
	CardCount int    `json:"card_count"`
}

// ListDecks returns every deck, or only userID's decks when userID > 0.
func (c *Client) ListDecks(ctx context.Context, userID int64) ([]models.Deck, error) {
	path := "/decks"
	if userID > 0 {
		path += fmt.Sprintf("?user_id=%d", userID)
	}
	var decks []models.Deck
	if err := c.do(ctx, request{op: "list decks", resource: "deck", method: http.MethodGet, path: path}, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (c *Client) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	var deck models.Deck
	req := request{op: "get deck", resource: "deck", method: http.MethodGet, path: fmt.Sprintf("/decks/%d", id)}
	if err := c.do(ctx, req, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (c *Client) CreateDeck(ctx context.Context, name string, description *string) (int64, error) {
	req, err := jsonRequest("create deck", "deck", http.MethodPost, "/decks", map[string]any{
		"user_id":     c.userID,
		"name":        name,
		"description": description,
	})
	if err != nil {
		return 0, err
	}

	var out struct {
		DeckID int64 `json:"deck_id"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return 0, err
	}
	return out.DeckID, nil
}

// RenameDeck changes a deck's name and leaves its description alone.
func (c *Client) RenameDeck(ctx context.Context, id int64, name string) error {
	req, err := jsonRequest("rename deck", "deck", http.MethodPut, fmt.Sprintf("/decks/%d", id), map[string]any{"name": name})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

func (c *Client) DeleteDeck(ctx context.Context, id int64) error {
	return c.do(ctx, request{op: "delete deck", resource: "deck", method: http.MethodDelete, path: fmt.Sprintf("/decks/%d", id)}, nil)
}

// DeleteDecks removes several decks in one call and returns how many existed.
func (c *Client) DeleteDecks(ctx context.Context, ids []int64) (int64, error) {
	req, err := jsonRequest("delete decks", "deck", http.MethodDelete, "/decks", map[string]any{"ids": ids})
	if err != nil {
		return 0, err
	}
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

// ImportDeck uploads "front,back" CSV rows as a new deck called name.
func (c *Client) ImportDeck(ctx context.Context, name string, csv io.Reader) (*ImportResult, error) {
	req := request{
		op:          "import deck",
		resource:    "deck",
		method:      http.MethodPost,
		path:        "/decks/import?name=" + url.QueryEscape(name),
		body:        csv,
		contentType: "text/csv",
	}
	var out ImportResult
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExportDeck(ctx context.Context, id int64) ([]models.CardFace, error) {
	var faces []models.CardFace
	req := request{op: "export deck", resource: "deck", method: http.MethodGet, path: fmt.Sprintf("/decks/%d/export", id)}
	if err := c.do(ctx, req, &faces); err != nil {
		return nil, err
	}
	return faces, nil
}
