package categories_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/internal/categories"
)

type mockSystem struct {
	listFn   func(ctx context.Context) ([]categories.Category, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*categories.Category, error)
	createFn func(ctx context.Context, cmd categories.CreateCommand) (*categories.Category, error)
	updateFn func(ctx context.Context, id uuid.UUID, cmd categories.UpdateCommand) (*categories.Category, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *categories.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context) ([]categories.Category, error) {
	return m.listFn(ctx)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*categories.Category, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd categories.CreateCommand) (*categories.Category, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd categories.UpdateCommand) (*categories.Category, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys *mockSystem) *categories.Handler {
	return categories.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *categories.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func ptr(s string) *string { return &s }

func sampleCategory() categories.Category {
	return categories.Category{
		ID:    uuid.MustParse("0b9bcb48-aa82-45c1-a914-0c21ecf9c1f1"),
		Name:  "Brainstorming",
		Color: ptr("bg-pink-100 text-pink-700"),
	}
}

func TestHandlerList(t *testing.T) {
	c := sampleCategory()
	sys := &mockSystem{
		listFn: func(_ context.Context) ([]categories.Category, error) {
			return []categories.Category{c}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/categories", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []categories.Category
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Brainstorming" {
		t.Errorf("got = %+v", got)
	}
}

func TestHandlerFind(t *testing.T) {
	c := sampleCategory()

	t.Run("returns category by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*categories.Category, error) {
				if id != c.ID {
					return nil, categories.ErrNotFound
				}
				return &c, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/categories/"+c.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*categories.Category, error) {
				return nil, categories.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/categories/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		c := sampleCategory()
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd categories.CreateCommand) (*categories.Category, error) {
				if cmd.Name != "Brainstorming" {
					t.Errorf("name = %q", cmd.Name)
				}
				return &c, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body := `{"name":"Brainstorming","color":"bg-pink-100 text-pink-700"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("empty name returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ categories.CreateCommand) (*categories.Category, error) {
				return nil, categories.ErrEmptyName
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(`{"name":"  "}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("persistence failure includes detail", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ categories.CreateCommand) (*categories.Category, error) {
				return nil, context.DeadlineExceeded
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(`{"name":"Coding"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}

		var envelope struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if envelope.Error != "Failed to create category" {
			t.Errorf("error = %q", envelope.Error)
		}
		if len(envelope.Details) != 1 {
			t.Errorf("details = %v, want underlying message", envelope.Details)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	c := sampleCategory()

	t.Run("applies partial update", func(t *testing.T) {
		var captured categories.UpdateCommand
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ uuid.UUID, cmd categories.UpdateCommand) (*categories.Category, error) {
				captured = cmd
				return &c, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/categories/"+c.ID.String(), bytes.NewBufferString(`{"icon":"lightbulb"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Icon == nil || *captured.Icon != "lightbulb" {
			t.Errorf("icon = %v", captured.Icon)
		}
		if captured.Name != nil {
			t.Error("name should be untouched")
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/categories/nope", bytes.NewBufferString(`{"name":"x"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("reports success even for unknown id", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/categories/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result categories.DeleteResult
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
		req := httptest.NewRequest("DELETE", "/categories/nope", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
