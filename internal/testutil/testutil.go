package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/flashquiz/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// SeedDeck inserts a deck owned by userID along with one card per front/back pair.
func SeedDeck(t *testing.T, sqlDB *sql.DB, userID int64, name string, pairs ...[2]string) int64 {
	t.Helper()
	ctx := context.Background()

	res, err := sqlDB.ExecContext(ctx, `INSERT INTO decks (user_id, name) VALUES (?, ?)`, userID, name)
	require.NoError(t, err)
	deckID, err := res.LastInsertId()
	require.NoError(t, err)

	for _, p := range pairs {
		_, err := sqlDB.ExecContext(ctx, `INSERT INTO flashcards (deck_id, front, back) VALUES (?, ?, ?)`, deckID, p[0], p[1])
		require.NoError(t, err)
	}
	return deckID
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
