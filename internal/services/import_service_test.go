package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashquiz/internal/errors"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/services"
	"github.com/vytor/flashquiz/internal/testutil/mocks"
)

func TestParseCSV(t *testing.T) {
	input := "hola, hello\n" +
		"solo\n" +
		"\n" +
		"\"uno, dos\",\"one, two\",extra\n" +
		" , blank front\n" +
		"gato,cat\n"

	cards, err := services.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.Flashcard{
		{Front: "hola", Back: "hello"},
		{Front: "uno, dos", Back: "one, two"},
		{Front: "gato", Back: "cat"},
	}, cards)
}

func TestParseCSV_TooLong(t *testing.T) {
	input := "ok,fine\n" + strings.Repeat("x", models.MaxCardFrontLength+1) + ",y\n"
	_, err := services.ParseCSV(strings.NewReader(input))
	requireCode(t, err, errors.ErrCodeValidation)
	assert.Contains(t, err.Error(), "line 2")
}

func TestImportService_ImportCSV(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := services.NewImportService(decks)

	decks.On("InsertWithCards", mock.Anything, models.Deck{UserID: 1, Name: "Animals"}, []models.Flashcard{
		{Front: "gato", Back: "cat"},
		{Front: "perro", Back: "dog"},
	}).Return(int64(12), nil)

	res, err := svc.ImportCSV(context.Background(), 1, " Animals ", strings.NewReader("gato,cat\nperro,dog\n"))
	require.NoError(t, err)
	assert.Equal(t, &services.ImportResult{DeckID: 12, CardCount: 2}, res)
	decks.AssertExpectations(t)
}

func TestImportService_ImportCSV_Rejects(t *testing.T) {
	var big strings.Builder
	for i := 0; i <= models.MaxCardsPerDeck; i++ {
		fmt.Fprintf(&big, "f%d,b%d\n", i, i)
	}

	tests := []struct {
		name  string
		deck  string
		input string
	}{
		{name: "missing name", deck: "", input: "a,b\n"},
		{name: "no rows", deck: "Empty", input: "just one column\n"},
		{name: "too many cards", deck: "Huge", input: big.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decks := new(mocks.MockDeckRepository)
			svc := services.NewImportService(decks)

			_, err := svc.ImportCSV(context.Background(), 1, tt.deck, strings.NewReader(tt.input))
			requireCode(t, err, errors.ErrCodeValidation)
			decks.AssertNotCalled(t, "InsertWithCards", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
