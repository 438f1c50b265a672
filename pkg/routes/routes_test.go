package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptdeck/promptdeck/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok},
			{Method: "GET", Pattern: "/{id}", Handler: ok},
			{Method: "POST", Pattern: "/{id}/favorite", Handler: ok},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"list prompts", "GET", "/prompts"},
		{"get prompt", "GET", "/prompts/123"},
		{"favorite prompt", "POST", "/prompts/123/favorite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/library",
		Children: []routes.Group{
			{
				Prefix: "/prompts",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: ok},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/library/prompts", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}
