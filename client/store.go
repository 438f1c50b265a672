package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// PromptRecord is the store's cached view of a prompt. Timestamps are epoch
// milliseconds.
type PromptRecord struct {
	ID         string
	Title      string
	Content    string
	CategoryID *string
	CreatedAt  int64
	UpdatedAt  int64
	IsFavorite bool
}

func toRecord(p *Prompt) PromptRecord {
	return PromptRecord{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
		IsFavorite: p.IsFavorite,
	}
}

// Store mirrors server state in memory. Mutations apply optimistically and
// are reverted from a snapshot when the API call fails; on success the cached
// record is reconciled with the server response.
type Store struct {
	api    *Client
	logger *slog.Logger

	mu         sync.RWMutex
	prompts    []PromptRecord
	categories []Category
	loaded     bool
}

// NewStore creates a Store backed by the given API client.
func NewStore(api *Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:    api,
		logger: logger.With("system", "store"),
	}
}

// Load fetches prompts and categories concurrently. A failed collection is
// logged and left empty; the store still becomes loaded so the application
// can render what arrived. An error is returned only when both fetches fail.
func (s *Store) Load(ctx context.Context) error {
	var (
		prompts    []Prompt
		categories []Category
		promptErr  error
		catErr     error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prompts, promptErr = s.api.ListPrompts(gctx)
		return nil
	})
	g.Go(func() error {
		categories, catErr = s.api.ListCategories(gctx)
		return nil
	})
	g.Wait()

	if promptErr != nil {
		s.logger.Error("prompt load failed", "error", promptErr)
	}
	if catErr != nil {
		s.logger.Error("category load failed", "error", catErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if promptErr == nil {
		s.prompts = make([]PromptRecord, 0, len(prompts))
		for i := range prompts {
			s.prompts = append(s.prompts, toRecord(&prompts[i]))
		}
	}
	if catErr == nil {
		s.categories = slices.Clone(categories)
	}
	s.loaded = true

	if promptErr != nil && catErr != nil {
		return errors.Join(promptErr, catErr)
	}
	return nil
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Prompts returns a copy of the cached prompts, newest first.
func (s *Store) Prompts() []PromptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.prompts)
}

// Categories returns a copy of the cached categories.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// PromptsByCategory returns cached prompts belonging to the given category.
func (s *Store) PromptsByCategory(categoryID string) []PromptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []PromptRecord
	for _, p := range s.prompts {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			result = append(result, p)
		}
	}
	return result
}

// FavoritePrompts returns cached prompts marked as favorite.
func (s *Store) FavoritePrompts() []PromptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []PromptRecord
	for _, p := range s.prompts {
		if p.IsFavorite {
			result = append(result, p)
		}
	}
	return result
}

// SearchPrompts returns cached prompts whose title or content contains the
// query, case-insensitive. An empty query matches everything.
func (s *Store) SearchPrompts(query string) []PromptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var result []PromptRecord
	for _, p := range s.prompts {
		if query == "" ||
			strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Content), query) {
			result = append(result, p)
		}
	}
	return result
}

// AddPrompt creates a prompt through the API and prepends the server record.
func (s *Store) AddPrompt(ctx context.Context, input CreatePromptInput) (*PromptRecord, error) {
	created, err := s.api.CreatePrompt(ctx, input)
	if err != nil {
		return nil, err
	}

	record := toRecord(created)

	s.mu.Lock()
	s.prompts = append([]PromptRecord{record}, s.prompts...)
	s.mu.Unlock()

	return &record, nil
}

// UpdatePrompt applies the update optimistically, then reconciles with the
// server record or reverts the cached prompt when the call fails.
func (s *Store) UpdatePrompt(ctx context.Context, id string, input UpdatePromptInput) (*PromptRecord, error) {
	s.mu.Lock()
	idx := s.promptIndex(id)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrNotCached
	}

	snapshot := s.prompts[idx]
	applyPromptUpdate(&s.prompts[idx], input)
	s.mu.Unlock()

	updated, err := s.api.UpdatePrompt(ctx, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.promptIndex(id)
	if err != nil {
		if idx != -1 {
			s.prompts[idx] = snapshot
		}
		return nil, err
	}

	record := toRecord(updated)
	if idx != -1 {
		s.prompts[idx] = record
	}
	return &record, nil
}

// DeletePrompt removes the prompt optimistically, reinserting it when the
// API call fails.
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.promptIndex(id)
	if idx == -1 {
		s.mu.Unlock()
		return ErrNotCached
	}

	snapshot := s.prompts[idx]
	s.prompts = slices.Delete(s.prompts, idx, idx+1)
	s.mu.Unlock()

	if err := s.api.DeletePrompt(ctx, id); err != nil {
		s.mu.Lock()
		s.prompts = slices.Insert(s.prompts, min(idx, len(s.prompts)), snapshot)
		s.mu.Unlock()
		return err
	}

	return nil
}

// SetFavorite toggles the favorite flag optimistically, then reconciles or
// reverts.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) (*PromptRecord, error) {
	s.mu.Lock()
	idx := s.promptIndex(id)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrNotCached
	}

	snapshot := s.prompts[idx]
	s.prompts[idx].IsFavorite = favorite
	s.prompts[idx].UpdatedAt = time.Now().UnixMilli()
	s.mu.Unlock()

	var (
		updated *Prompt
		err     error
	)
	if favorite {
		updated, err = s.api.FavoritePrompt(ctx, id)
	} else {
		updated, err = s.api.UnfavoritePrompt(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.promptIndex(id)
	if err != nil {
		if idx != -1 {
			s.prompts[idx] = snapshot
		}
		return nil, err
	}

	record := toRecord(updated)
	if idx != -1 {
		s.prompts[idx] = record
	}
	return &record, nil
}

// AddCategory creates a category through the API and appends the server record.
func (s *Store) AddCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	created, err := s.api.CreateCategory(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, *created)
	s.mu.Unlock()

	return created, nil
}

// UpdateCategory applies the update optimistically, then reconciles with the
// server record or reverts.
func (s *Store) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	s.mu.Lock()
	idx := s.categoryIndex(id)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrNotCached
	}

	snapshot := s.categories[idx]
	applyCategoryUpdate(&s.categories[idx], input)
	s.mu.Unlock()

	updated, err := s.api.UpdateCategory(ctx, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.categoryIndex(id)
	if err != nil {
		if idx != -1 {
			s.categories[idx] = snapshot
		}
		return nil, err
	}

	if idx != -1 {
		s.categories[idx] = *updated
	}
	return updated, nil
}

// DeleteCategory removes the category and clears dependent prompts' category
// in one state transition, mirroring the server's atomic cascade. Both
// changes revert together when the API call fails.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.categoryIndex(id)
	if idx == -1 {
		s.mu.Unlock()
		return ErrNotCached
	}

	catSnapshot := s.categories[idx]
	promptSnapshot := slices.Clone(s.prompts)

	s.categories = slices.Delete(s.categories, idx, idx+1)
	for i := range s.prompts {
		if s.prompts[i].CategoryID != nil && *s.prompts[i].CategoryID == id {
			s.prompts[i].CategoryID = nil
		}
	}
	s.mu.Unlock()

	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.mu.Lock()
		s.categories = slices.Insert(s.categories, min(idx, len(s.categories)), catSnapshot)
		s.prompts = promptSnapshot
		s.mu.Unlock()
		return err
	}

	return nil
}

// ErrNotCached indicates a mutation referenced an id absent from the cache.
var ErrNotCached = errors.New("record not in store")

func (s *Store) promptIndex(id string) int {
	return slices.IndexFunc(s.prompts, func(p PromptRecord) bool {
		return p.ID == id
	})
}

func (s *Store) categoryIndex(id string) int {
	return slices.IndexFunc(s.categories, func(c Category) bool {
		return c.ID == id
	})
}

func applyPromptUpdate(p *PromptRecord, input UpdatePromptInput) {
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	if input.ClearCategory {
		p.CategoryID = nil
	} else if input.CategoryID != nil {
		p.CategoryID = input.CategoryID
	}
	if input.IsFavorite != nil {
		p.IsFavorite = *input.IsFavorite
	}
	p.UpdatedAt = time.Now().UnixMilli()
}

func applyCategoryUpdate(c *Category, input UpdateCategoryInput) {
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Color != nil {
		c.Color = input.Color
	}
	if input.Icon != nil {
		c.Icon = input.Icon
	}
}
