package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashquiz/internal/api"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository/sqlite"
	"github.com/vytor/flashquiz/internal/services"
	"github.com/vytor/flashquiz/internal/testutil"
)

type APISuite struct {
	suite.Suite
	db      *sql.DB
	handler http.Handler
}

func (s *APISuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	decks := sqlite.NewDeckRepository(s.db)
	cards := sqlite.NewFlashcardRepository(s.db)

	srv := &api.Server{
		DeckService:      services.NewDeckService(decks, cards),
		FlashcardService: services.NewFlashcardService(decks, cards),
		ImportService:    services.NewImportService(decks),
		DB:               s.db,
		DefaultUserID:    1,
		CORSOrigins:      []string{"http://localhost:3000"},
	}
	s.handler = srv.Routes()
}

func (s *APISuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *APISuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APISuite) createDeck(name string, headers ...string) int64 {
	rec := s.do(http.MethodPost, "/api/decks", `{"name":"`+name+`"}`, headers...)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Message string `json:"message"`
		DeckID  int64  `json:"deck_id"`
	}
	s.decode(rec, &resp)
	s.Assert().Equal("Deck created", resp.Message)
	return resp.DeckID
}

func (s *APISuite) createCard(deckID int64, front, back string) int64 {
	body, _ := json.Marshal(map[string]any{"deck_id": deckID, "front": front, "back": back})
	rec := s.do(http.MethodPost, "/api/flashcards", string(body))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID int64 `json:"id"`
	}
	s.decode(rec, &resp)
	return resp.ID
}

func (s *APISuite) TestHealth() {
	s.Assert().Equal(http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)
	s.Assert().Equal(http.StatusOK, s.do(http.MethodGet, "/readyz", "").Code)
}

func (s *APISuite) TestDeckLifecycle() {
	id := s.createDeck("Spanish", "X-User-ID", "7")
	s.createCard(id, "hola", "hello")

	rec := s.do(http.MethodGet, "/api/decks/"+itoa(id), "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var deck models.Deck
	s.decode(rec, &deck)
	s.Assert().Equal("Spanish", deck.Name)
	s.Assert().Equal(int64(7), deck.UserID)
	s.Assert().Equal(1, deck.CardCount)

	rec = s.do(http.MethodPut, "/api/decks/"+itoa(id), `{"name":"Español","description":"basics"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/decks/"+itoa(id), "")
	s.decode(rec, &deck)
	s.Assert().Equal("Español", deck.Name)
	s.Require().NotNil(deck.Description)
	s.Assert().Equal("basics", *deck.Description)

	rec = s.do(http.MethodDelete, "/api/decks/"+itoa(id), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/decks/"+itoa(id), "")
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	s.decode(rec, &errResp)
	s.Assert().Equal("NOT_FOUND", errResp.Code)
	s.Assert().Contains(errResp.Error, "deck not found")
}

func (s *APISuite) TestListDecks_FilterByUser() {
	s.createDeck("Mine")
	s.createDeck("Theirs", "X-User-ID", "2")

	rec := s.do(http.MethodGet, "/api/decks", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var decks []models.Deck
	s.decode(rec, &decks)
	s.Assert().Len(decks, 2)

	rec = s.do(http.MethodGet, "/api/decks?user_id=2", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &decks)
	s.Require().Len(decks, 1)
	s.Assert().Equal("Theirs", decks[0].Name)

	rec = s.do(http.MethodGet, "/api/decks?user_id=abc", "")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestCreateDeck_Errors() {
	rec := s.do(http.MethodPost, "/api/decks", `{"name":""}`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Contains(rec.Body.String(), "VALIDATION_ERROR")

	rec = s.do(http.MethodPost, "/api/decks", `{"name":"x","colour":"red"}`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Contains(rec.Body.String(), "BAD_REQUEST")

	rec = s.do(http.MethodPost, "/api/decks", `{"name":"x"}`, "X-User-ID", "nope")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/decks", "")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestDeleteDecks() {
	a := s.createDeck("A")
	s.createDeck("B")
	c := s.createDeck("C")

	rec := s.do(http.MethodDelete, "/api/decks", `{"ids":[`+itoa(a)+`,`+itoa(c)+`,999]}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	s.decode(rec, &resp)
	s.Assert().Equal(int64(2), resp.Deleted)

	rec = s.do(http.MethodDelete, "/api/decks", `{"ids":[]}`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestFlashcards() {
	deckID := s.createDeck("Numbers")

	rec := s.do(http.MethodGet, "/api/decks/"+itoa(deckID)+"/flashcards", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(`[]`, rec.Body.String())

	cardID := s.createCard(deckID, "uno", "one")
	s.createCard(deckID, "dos", "two")

	rec = s.do(http.MethodGet, "/api/flashcards?deck_id="+itoa(deckID), "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var cards []models.Flashcard
	s.decode(rec, &cards)
	s.Require().Len(cards, 2)
	s.Assert().Equal("uno", cards[0].Front)

	rec = s.do(http.MethodPut, "/api/flashcards/"+itoa(cardID), `{"front":"uno","back":"1"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/flashcards/"+itoa(cardID), "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var card models.Flashcard
	s.decode(rec, &card)
	s.Assert().Equal("1", card.Back)

	rec = s.do(http.MethodDelete, "/api/flashcards/"+itoa(cardID), "")
	s.Assert().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, "/api/flashcards/"+itoa(cardID), "")
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/flashcards", "")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/decks/999/flashcards", "")
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/flashcards", `{"deck_id":999,"front":"a","back":"b"}`)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestImportAndExport() {
	req := httptest.NewRequest(http.MethodPost, "/api/decks/import?name=Animals", strings.NewReader("gato,cat\nperro,dog\nsolo\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		DeckID    int64 `json:"deck_id"`
		CardCount int   `json:"card_count"`
	}
	s.decode(rec, &resp)
	s.Assert().Equal(2, resp.CardCount)

	rec = s.do(http.MethodGet, "/api/decks/"+itoa(resp.DeckID)+"/export", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Header().Get("Content-Disposition"), "attachment")
	s.Assert().JSONEq(`[{"front":"gato","back":"cat"},{"front":"perro","back":"dog"}]`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/decks/import", "a,b")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestRequestIDAndHeaders() {
	rec := s.do(http.MethodGet, "/healthz", "")
	s.Assert().NotEmpty(rec.Header().Get("X-Request-ID"))
	s.Assert().Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = s.do(http.MethodGet, "/healthz", "", "X-Request-ID", "abc123")
	s.Assert().Equal("abc123", rec.Header().Get("X-Request-ID"))
}

func (s *APISuite) TestCORSPreflight() {
	rec := s.do(http.MethodOptions, "/api/decks", "",
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", http.MethodPost,
	)
	s.Assert().Equal("http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(http.MethodOptions, "/api/decks", "",
		"Origin", "http://evil.example",
		"Access-Control-Request-Method", http.MethodPost,
	)
	s.Assert().Empty(rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/nothing", "")
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().Contains(rec.Body.String(), "NOT_FOUND")
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
