package categories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/pkg/query"
	"github.com/promptdeck/promptdeck/pkg/repository"
)

const returning = "id, name, color, icon"

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a category repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "categories"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Category, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	results, err := repository.QueryMany(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return results, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Category, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Category, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrEmptyName
	}

	q := fmt.Sprintf(`
		INSERT INTO categories(name, color, icon)
		VALUES ($1, $2, $3)
		RETURNING %s`, returning)

	args := []any{cmd.Name, cmd.Color, cmd.Icon}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, args, scanCategory)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("category created", "id", c.ID, "name", c.Name)
	return &c, nil
}

// Update replaces only the fields carried by cmd.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Category, error) {
	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) == "" {
		return nil, ErrEmptyName
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if cmd.Name != nil {
		set("name", *cmd.Name)
	}
	if cmd.Color != nil {
		set("color", *cmd.Color)
	}
	if cmd.Icon != nil {
		set("icon", *cmd.Icon)
	}

	if len(sets) == 0 {
		return r.Find(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(
		"UPDATE categories SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), returning,
	)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, args, scanCategory)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("category updated", "id", c.ID, "name", c.Name)
	return &c, nil
}

// Delete removes the category and clears the category reference on every
// dependent prompt inside a single transaction, so no prompt is ever left
// pointing at a missing category. Deleting an id that does not exist
// succeeds.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(
			ctx,
			"UPDATE prompts SET category_id = NULL WHERE category_id = $1",
			id,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("clear prompt references: %w", err)
		}

		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM categories WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, fmt.Errorf("delete category: %w", err)
		}

		return struct{}{}, nil
	})

	if err != nil {
		return err
	}

	r.logger.Info("category deleted", "id", id)
	return nil
}
