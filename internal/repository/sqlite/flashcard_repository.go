package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository"
)

type flashcardRepository struct {
	db *sqlx.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: wrap(db)}
}

var flashcardColumns = []string{"id", "deck_id", "front", "back", "created_at"}

func (r *flashcardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: deck_id=%d", deckID)

	stmt, args, err := sqlBuilder.Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	cards := []models.Flashcard{}
	if err := r.db.SelectContext(ctx, &cards, stmt, args...); err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	log.Debug("found %d flashcards for deck %d", len(cards), deckID)
	return cards, nil
}

func (r *flashcardRepository) CountByDeck(ctx context.Context, deckID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	n, err := countByDeck(ctx, r.db, deckID)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return 0, err
	}
	return n, nil
}

func countByDeck(ctx context.Context, q sqlx.QueryerContext, deckID int64) (int, error) {
	stmt, args, err := sqlBuilder.Select("COUNT(*)").
		From("flashcards").
		Where(squirrel.Eq{"deck_id": deckID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := sqlx.GetContext(ctx, q, &n, stmt, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *flashcardRepository) Get(ctx context.Context, id int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%d", id)

	stmt, args, err := sqlBuilder.Select(flashcardColumns...).
		From("flashcards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var c models.Flashcard
	err = r.db.GetContext(ctx, &c, stmt, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

// InsertIfBelow adds the card unless its deck already holds limit cards. The
// count and the insert share one transaction.
func (r *flashcardRepository) InsertIfBelow(ctx context.Context, c models.Flashcard, limit int) (int64, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: deck_id=%d, limit=%d", c.DeckID, limit)

	var (
		id       int64
		inserted bool
	)
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := countByDeck(ctx, tx, c.DeckID)
		if err != nil {
			return err
		}
		if n >= limit {
			return nil
		}

		stmt, args, err := sqlBuilder.Insert("flashcards").
			Columns("deck_id", "front", "back").
			Values(c.DeckID, c.Front, c.Back).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, false, err
	}
	if !inserted {
		log.Debug("deck %d is full", c.DeckID)
		return 0, false, nil
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, true, nil
}

func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%d", c.ID)

	stmt, args, err := sqlBuilder.Update("flashcards").
		Set("front", c.Front).
		Set("back", c.Back).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d", id)

	stmt, args, err := sqlBuilder.Delete("flashcards").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
