package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/pkg/pagination"
	"github.com/promptdeck/promptdeck/pkg/query"
	"github.com/promptdeck/promptdeck/pkg/repository"
)

const returning = "id, title, content, category_id, created_at, updated_at, is_favorite"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// List returns every prompt ordered by creation time, newest first.
func (r *repo) List(ctx context.Context) ([]Prompt, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	results, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	return results, nil
}

func (r *repo) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Content")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	results, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(results, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrCategoryMissing)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	q := fmt.Sprintf(`
		INSERT INTO prompts(title, content, category_id, is_favorite)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, returning)

	args := []any{cmd.Title, cmd.Content, nullableID(cmd.CategoryID), cmd.IsFavorite}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrCategoryMissing)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title)
	return &p, nil
}

// Update replaces only the fields carried by cmd and refreshes updated_at.
// An empty command still touches updated_at.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if cmd.Title != nil {
		set("title", *cmd.Title)
	}
	if cmd.Content != nil {
		set("content", *cmd.Content)
	}
	if cmd.SetCategory {
		set("category_id", nullableID(cmd.CategoryID))
	}
	if cmd.IsFavorite != nil {
		set("is_favorite", *cmd.IsFavorite)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	q := fmt.Sprintf(
		"UPDATE prompts SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), returning,
	)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrCategoryMissing)
	}

	r.logger.Info("prompt updated", "id", p.ID, "title", p.Title)
	return &p, nil
}

// Delete is idempotent: removing an id that does not exist succeeds.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM prompts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) Favorite(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.setFavorite(ctx, id, true)
}

func (r *repo) Unfavorite(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.setFavorite(ctx, id, false)
}

func (r *repo) setFavorite(ctx context.Context, id uuid.UUID, favorite bool) (*Prompt, error) {
	q := fmt.Sprintf(`
		UPDATE prompts SET is_favorite = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s`, returning)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, []any{favorite, id}, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrCategoryMissing)
	}

	r.logger.Info("prompt favorite set", "id", p.ID, "favorite", favorite)
	return &p, nil
}

func nullableID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
