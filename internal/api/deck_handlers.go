package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/services"
)

type createDeckResponse struct {
	Message string `json:"message"`
	DeckID  int64  `json:"deck_id"`
}

type deleteDecksResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// handleListDecks lists every deck, or only those of ?user_id= when given.
func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	filter := models.DeckFilter{Name: r.URL.Query().Get("name")}

	userID, ok, err := queryID(r, "user_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if ok {
		filter.UserID = userID
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		handleError(w, r, err)
		return
	}

	decks, err := s.DeckService.ListDecks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.GetDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.UserID == 0 {
		req.UserID = callerFromContext(r.Context())
	}

	id, err := s.DeckService.CreateDeck(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, createDeckResponse{Message: "Deck created", DeckID: id})
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req services.UpdateDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DeckService.UpdateDeck(r.Context(), id, req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Deck updated"})
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DeckService.DeleteDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Deck deleted"})
}

func (s *Server) handleDeleteDecks(w http.ResponseWriter, r *http.Request) {
	var req services.DeleteDecksRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	n, err := s.DeckService.DeleteDecks(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deleteDecksResponse{
		Message: fmt.Sprintf("%d decks deleted", n),
		Deleted: n,
	})
}

// handleExportDeck serves the deck's cards as a downloadable JSON array.
func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	faces, err := s.DeckService.ExportDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("exporting %d cards from deck %d", len(faces), id)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="deck_%d.json"`, id))
	writeJSON(w, r, http.StatusOK, faces)
}

func (s *Server) handleDeckFlashcards(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.writeDeckCards(w, r, id)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return n, nil
}
