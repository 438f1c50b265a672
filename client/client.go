// Package client provides an HTTP client for the Promptdeck API and an
// in-memory store that mirrors server state with optimistic mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Category is a prompt category as returned by the API.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// Prompt is a stored prompt as returned by the API.
type Prompt struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID *string   `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	IsFavorite bool      `json:"isFavorite"`
}

// CreatePromptInput carries fields for creating a prompt.
type CreatePromptInput struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"categoryId,omitempty"`
	IsFavorite bool    `json:"isFavorite"`
}

// UpdatePromptInput carries a partial prompt update. Nil fields are left
// unchanged; ClearCategory sends an explicit null categoryId.
type UpdatePromptInput struct {
	Title         *string
	Content       *string
	CategoryID    *string
	ClearCategory bool
	IsFavorite    *bool
}

// MarshalJSON emits only the fields the update carries.
func (u UpdatePromptInput) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if u.Title != nil {
		body["title"] = *u.Title
	}
	if u.Content != nil {
		body["content"] = *u.Content
	}
	if u.ClearCategory {
		body["categoryId"] = nil
	} else if u.CategoryID != nil {
		body["categoryId"] = *u.CategoryID
	}
	if u.IsFavorite != nil {
		body["isFavorite"] = *u.IsFavorite
	}
	return json.Marshal(body)
}

// CreateCategoryInput carries fields for creating a category.
type CreateCategoryInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// UpdateCategoryInput carries a partial category update.
type UpdateCategoryInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// SearchRequest carries parameters for POST /prompts/search.
type SearchRequest struct {
	Page          int     `json:"page,omitempty"`
	PageSize      int     `json:"page_size,omitempty"`
	Search        *string `json:"search,omitempty"`
	Sort          string  `json:"sort,omitempty"`
	CategoryID    *string `json:"categoryId,omitempty"`
	IsFavorite    *bool   `json:"isFavorite,omitempty"`
	Uncategorized bool    `json:"uncategorized,omitempty"`
}

// PromptPage is a paginated search result.
type PromptPage struct {
	Data       []Prompt `json:"data"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// APIError is a non-2xx response decoded from the API error envelope.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.Status, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client calls the Promptdeck API. Idempotent reads retry transient failures.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	retries uint
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api"). A nil httpClient or logger falls back to
// sensible defaults.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With("system", "client"),
		retries: 3,
	}
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result []Category
	err := c.getWithRetry(ctx, "/categories", &result)
	return result, err
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var result Category
	if err := c.getWithRetry(ctx, "/categories/"+id, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCategory creates a category and returns the server record.
func (c *Client) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	var result Category
	if err := c.do(ctx, http.MethodPost, "/categories", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCategory applies a partial update and returns the server record.
func (c *Client) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	var result Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteCategory deletes a category. The server uncategorizes dependent
// prompts atomically.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}

// ListPrompts fetches all prompts, newest first.
func (c *Client) ListPrompts(ctx context.Context) ([]Prompt, error) {
	var result []Prompt
	err := c.getWithRetry(ctx, "/prompts", &result)
	return result, err
}

// GetPrompt fetches a single prompt by id.
func (c *Client) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	var result Prompt
	if err := c.getWithRetry(ctx, "/prompts/"+id, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePrompt creates a prompt and returns the server record.
func (c *Client) CreatePrompt(ctx context.Context, input CreatePromptInput) (*Prompt, error) {
	var result Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePrompt applies a partial update and returns the server record.
func (c *Client) UpdatePrompt(ctx context.Context, id string, input UpdatePromptInput) (*Prompt, error) {
	var result Prompt
	if err := c.do(ctx, http.MethodPut, "/prompts/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePrompt deletes a prompt.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/prompts/"+id, nil, nil)
}

// FavoritePrompt marks a prompt as favorite and returns the server record.
func (c *Client) FavoritePrompt(ctx context.Context, id string) (*Prompt, error) {
	var result Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts/"+id+"/favorite", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnfavoritePrompt clears a prompt's favorite flag and returns the server record.
func (c *Client) UnfavoritePrompt(ctx context.Context, id string) (*Prompt, error) {
	var result Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts/"+id+"/unfavorite", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchPrompts runs a paginated server-side search.
func (c *Client) SearchPrompts(ctx context.Context, req SearchRequest) (*PromptPage, error) {
	var result PromptPage
	if err := c.do(ctx, http.MethodPost, "/prompts/search", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getWithRetry wraps do for idempotent GETs, retrying transient failures.
// API errors below 500 are returned immediately.
func (c *Client) getWithRetry(ctx context.Context, path string, out any) error {
	return retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, nil, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.retries),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status >= http.StatusInternalServerError
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying request", "path", path, "attempt", n+1, "error", err)
		}),
	)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var envelope struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Details = envelope.Details
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
