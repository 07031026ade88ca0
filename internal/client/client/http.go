package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// HTTPClient talks to the GophNotes HTTP API. It keeps no session state;
// the token is supplied by the caller on every protected call.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL.
// A zero timeout means no client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type noteEnvelope struct {
	Data *models.Note `json:"data"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", "", nil, nil)
}

// Signup registers a new account and returns its first access token.
func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/signup", "", credentials{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/login", "", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListNotes returns the caller's notes. The server answers 404 for an
// empty list; that is reported here as an empty slice.
func (c *HTTPClient) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	var notes []models.Note
	err := c.do(ctx, http.MethodGet, "/notes", token, nil, &notes)
	if errors.Is(err, ErrNotFound) {
		return []models.Note{}, nil
	}
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, token, id string) (*models.Note, error) {
	var resp noteEnvelope
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, token, title, body string) (*models.Note, error) {
	var resp noteEnvelope
	req := map[string]string{"title": title, "body": body}
	if err := c.do(ctx, http.MethodPost, "/notes/createnote", token, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, token, id string, changes models.NoteChanges) (*models.Note, error) {
	var resp noteEnvelope
	if err := c.do(ctx, http.MethodPut, "/notes/updateNote/"+url.PathEscape(id), token, changes, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/delete-note/"+url.PathEscape(id), token, nil, nil)
}

// Export asks the server to publish the caller's notes and returns the
// temporary download URL.
func (c *HTTPClient) Export(ctx context.Context, token string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/notes/export", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Message: errorMessage(body)}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.kind = ErrUnauthorized
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status == http.StatusTooManyRequests:
		e.kind = ErrTooManyRequests
	case status >= 500:
		e.kind = ErrUnavailable
	default:
		e.kind = ErrRejected
	}
	return e
}

// errorMessage extracts the "error" field, which is either a string or a
// list of {field, msg} validation failures.
func errorMessage(body []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(env.Error, &msg); err == nil {
		return msg
	}

	var fields []struct {
		Field string `json:"field"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(env.Error, &fields); err != nil {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return strings.Join(parts, "; ")
}
