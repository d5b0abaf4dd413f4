package api

import (
	"net/http"

	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/services"
)

type createFlashcardResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// handleListFlashcards serves GET /api/flashcards?deck_id=N.
func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	deckID, ok, err := queryID(r, "deck_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !ok {
		handleError(w, r, errors.NewBadRequestError("deck_id query parameter is required"))
		return
	}
	s.writeDeckCards(w, r, deckID)
}

func (s *Server) writeDeckCards(w http.ResponseWriter, r *http.Request, deckID int64) {
	cards, err := s.FlashcardService.ListForDeck(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.GetFlashcard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.FlashcardService.CreateFlashcard(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, createFlashcardResponse{Message: "Flashcard created", ID: id})
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req services.UpdateFlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.UpdateFlashcard(r.Context(), id, req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Flashcard updated"})
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.DeleteFlashcard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Flashcard deleted"})
}
