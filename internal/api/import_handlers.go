package api

import (
	"fmt"
	"net/http"

	"github.com/vytor/flashquiz/internal/errors"
)

type importDeckResponse struct {
	Message   string `json:"message"`
	DeckID    int64  `json:"deck_id"`
	CardCount int    `json:"card_count"`
}

// handleImportDeck creates a deck named by ?name= from a CSV request body.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		handleError(w, r, errors.NewBadRequestError("name query parameter is required"))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	res, err := s.ImportService.ImportCSV(r.Context(), callerFromContext(r.Context()), name, body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, importDeckResponse{
		Message:   fmt.Sprintf("Deck '%s' successfully created with %d cards", name, res.CardCount),
		DeckID:    res.DeckID,
		CardCount: res.CardCount,
	})
}
