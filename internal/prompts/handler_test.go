package prompts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/internal/prompts"
	"github.com/promptdeck/promptdeck/pkg/pagination"
)

type mockSystem struct {
	listFn       func(ctx context.Context) ([]prompts.Prompt, error)
	searchFn     func(ctx context.Context, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error)
	findFn       func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
	createFn     func(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error)
	updateFn     func(ctx context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	favoriteFn   func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
	unfavoriteFn func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
}

func (m *mockSystem) Handler() *prompts.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context) ([]prompts.Prompt, error) {
	return m.listFn(ctx)
}

func (m *mockSystem) Search(ctx context.Context, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	return m.searchFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Favorite(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.favoriteFn(ctx, id)
}

func (m *mockSystem) Unfavorite(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.unfavoriteFn(ctx, id)
}

func newTestHandler(sys *mockSystem) *prompts.Handler {
	return prompts.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *prompts.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func samplePrompt() prompts.Prompt {
	catID := uuid.MustParse("0b9bcb48-aa82-45c1-a914-0c21ecf9c1f1")
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return prompts.Prompt{
		ID:         uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Title:      "Modern Facade Update",
		Content:    "Replace the facade material with weathered corten steel.",
		CategoryID: &catID,
		CreatedAt:  created,
		UpdatedAt:  created,
		IsFavorite: false,
	}
}

func TestHandlerList(t *testing.T) {
	newer := samplePrompt()
	older := samplePrompt()
	older.ID = uuid.MustParse("650e8400-e29b-41d4-a716-446655440000")
	older.CreatedAt = newer.CreatedAt.Add(-time.Hour)

	sys := &mockSystem{
		listFn: func(_ context.Context) ([]prompts.Prompt, error) {
			return []prompts.Prompt{newer, older}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/prompts", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []prompts.Prompt
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("length = %d, want 2", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("expected newest first, got %v before %v", got[0].CreatedAt, got[1].CreatedAt)
	}
}

func TestHandlerFind(t *testing.T) {
	p := samplePrompt()

	t.Run("returns prompt by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*prompts.Prompt, error) {
				if id != p.ID {
					return nil, prompts.ErrNotFound
				}
				return &p, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/prompts/"+p.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got prompts.Prompt
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != p.ID {
			t.Errorf("id = %v, want %v", got.ID, p.ID)
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/prompts/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*prompts.Prompt, error) {
				return nil, prompts.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/prompts/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	t.Run("creates prompt", func(t *testing.T) {
		p := samplePrompt()
		var captured prompts.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
				captured = cmd
				return &p, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body := `{"title":"Modern Facade Update","content":"Replace the facade.","isFavorite":true}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts", bytes.NewBufferString(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if captured.Title != "Modern Facade Update" {
			t.Errorf("title = %q", captured.Title)
		}
		if !captured.IsFavorite {
			t.Error("expected isFavorite to carry through")
		}
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts", bytes.NewBufferString(`{}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var envelope struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if envelope.Error != "Validation failed" {
			t.Errorf("error = %q", envelope.Error)
		}
		if !slices.Contains(envelope.Details, "Title is required") {
			t.Errorf("details = %v, want Title is required", envelope.Details)
		}
		if !slices.Contains(envelope.Details, "Content is required") {
			t.Errorf("details = %v, want Content is required", envelope.Details)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	p := samplePrompt()

	t.Run("applies partial update", func(t *testing.T) {
		var captured prompts.UpdateCommand
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
				captured = cmd
				return &p, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body := `{"title":"Renamed","categoryId":null}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/prompts/"+p.ID.String(), bytes.NewBufferString(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if captured.Title == nil || *captured.Title != "Renamed" {
			t.Errorf("title = %v, want Renamed", captured.Title)
		}
		if captured.Content != nil {
			t.Error("content should be untouched")
		}
		if !captured.SetCategory || captured.CategoryID != nil {
			t.Errorf("expected explicit null category, got set=%v id=%v", captured.SetCategory, captured.CategoryID)
		}
	})

	t.Run("malformed id returns 400 with details", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/prompts/not-a-uuid", bytes.NewBufferString(`{"title":"x"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var envelope struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !slices.Contains(envelope.Details, "Invalid prompt ID") {
			t.Errorf("details = %v, want Invalid prompt ID", envelope.Details)
		}
	})

	t.Run("collects every violation", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		body := `{"title":123,"content":"","categoryId":"nope","isFavorite":"yes"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/prompts/"+p.ID.String(), bytes.NewBufferString(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var envelope struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := []string{
			"Title must be a string",
			"Content cannot be empty",
			"Invalid categoryId format",
			"isFavorite must be a boolean",
		}
		for _, detail := range want {
			if !slices.Contains(envelope.Details, detail) {
				t.Errorf("details = %v, missing %q", envelope.Details, detail)
			}
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ uuid.UUID, _ prompts.UpdateCommand) (*prompts.Prompt, error) {
				return nil, prompts.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/prompts/"+uuid.New().String(), bytes.NewBufferString(`{"title":"x"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("reports success", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/prompts/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result prompts.DeleteResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !result.Success {
			t.Error("expected success true")
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/prompts/nope", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerSearch(t *testing.T) {
	p := samplePrompt()

	t.Run("normalizes pagination and passes filters", func(t *testing.T) {
		var capturedPage pagination.PageRequest
		var capturedFilters prompts.Filters
		sys := &mockSystem{
			searchFn: func(_ context.Context, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
				capturedPage = page
				capturedFilters = filters
				result := pagination.NewPageResult([]prompts.Prompt{p}, 1, page.Page, page.PageSize)
				return &result, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body := `{"page":0,"page_size":500,"search":"facade","isFavorite":true}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts/search", bytes.NewBufferString(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if capturedPage.Page != 1 {
			t.Errorf("page = %d, want 1", capturedPage.Page)
		}
		if capturedPage.PageSize != 100 {
			t.Errorf("page_size = %d, want clamped to 100", capturedPage.PageSize)
		}
		if capturedPage.Search == nil || *capturedPage.Search != "facade" {
			t.Errorf("search = %v, want facade", capturedPage.Search)
		}
		if capturedFilters.IsFavorite == nil || !*capturedFilters.IsFavorite {
			t.Errorf("isFavorite filter = %v, want true", capturedFilters.IsFavorite)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts/search", bytes.NewBufferString(`{`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFavorite(t *testing.T) {
	p := samplePrompt()
	p.IsFavorite = true

	sys := &mockSystem{
		favoriteFn: func(_ context.Context, id uuid.UUID) (*prompts.Prompt, error) {
			if id != p.ID {
				return nil, prompts.ErrNotFound
			}
			return &p, nil
		},
		unfavoriteFn: func(_ context.Context, _ uuid.UUID) (*prompts.Prompt, error) {
			out := p
			out.IsFavorite = false
			return &out, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("favorite returns updated prompt", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts/"+p.ID.String()+"/favorite", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got prompts.Prompt
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !got.IsFavorite {
			t.Error("expected isFavorite true")
		}
	})

	t.Run("unfavorite clears flag", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts/"+p.ID.String()+"/unfavorite", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got prompts.Prompt
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.IsFavorite {
			t.Error("expected isFavorite false")
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/prompts/"+uuid.New().String()+"/favorite", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
