package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/repository"
)

type deckRepository struct {
	db *sqlx.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: wrap(db)}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func deckColumns() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"d.id", "d.user_id", "d.name", "d.description", "d.created_at",
		"(SELECT COUNT(*) FROM flashcards f WHERE f.deck_id = d.id) AS card_count",
	).From("decks d")
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: user_id=%d, name=%q", filter.UserID, filter.Name)

	query := deckColumns()
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"d.user_id": filter.UserID})
	}
	if filter.Name != "" {
		query = query.Where(`d.name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(filter.Name)+"%")
	}
	query = query.OrderBy("d.id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	decks := []models.Deck{}
	if err := r.db.SelectContext(ctx, &decks, stmt, args...); err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	log.Debug("found %d decks", len(decks))
	return decks, nil
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	stmt, args, err := deckColumns().Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var d models.Deck
	err = r.db.GetContext(ctx, &d, stmt, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: user_id=%d, name=%q", d.UserID, d.Name)

	id, err := insertDeck(ctx, r.db, d)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) InsertWithCards(ctx context.Context, d models.Deck, cards []models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck with %d cards: name=%q", len(cards), d.Name)

	var deckID int64
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := insertDeck(ctx, tx, d)
		if err != nil {
			return err
		}
		deckID = id

		stmt, err := tx.PreparexContext(ctx, `INSERT INTO flashcards (deck_id, front, back) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			if _, err := stmt.ExecContext(ctx, deckID, c.Front, c.Back); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert deck with cards: %v", err)
		return 0, err
	}
	log.Debug("deck inserted with cards: id=%d", deckID)
	return deckID, nil
}

func insertDeck(ctx context.Context, ex sqlx.ExecerContext, d models.Deck) (int64, error) {
	stmt, args, err := sqlBuilder.Insert("decks").
		Columns("user_id", "name", "description").
		Values(d.UserID, d.Name, d.Description).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := ex.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *deckRepository) Update(ctx context.Context, id int64, name string, description *string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d, name=%q", id, name)

	query := sqlBuilder.Update("decks").Set("name", name).Where(squirrel.Eq{"id": id})
	if description != nil {
		query = query.Set("description", *description)
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to update deck: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := r.DeleteMany(ctx, []int64{id})
	return n > 0, err
}

func (r *deckRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting decks: ids=%v", ids)

	if len(ids) == 0 {
		return 0, nil
	}

	// Flashcards go with their deck via ON DELETE CASCADE.
	stmt, args, err := sqlBuilder.Delete("decks").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to delete decks: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("deleted %d decks", n)
	return n, nil
}
