// Package api is the REST client for the chat backend. All routes live
// under the /api prefix and authenticated ones carry a bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/models"
)

const requestTimeout = 30 * time.Second

// TokenProvider supplies the bearer token for authenticated requests.
// The gateway uses the last observed token as-is; refreshing is the
// credential source's business, triggered by the binder, not per request.
type TokenProvider interface {
	Bearer() (string, error)
}

// RequestError is a non-2xx response from the backend, carrying the
// status code and the server's detail message when it sent one.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// Client talks to the chat backend's REST surface.
type Client struct {
	baseURL string
	creds   TokenProvider
	http    *http.Client
}

// NewClient creates a client for the given base URL (scheme://host, no
// /api suffix). creds may be nil for a client that only registers users.
func NewClient(baseURL string, creds TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ListChats fetches the signed-in user's chats, newest first.
func (c *Client) ListChats(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat
	if err := c.do(ctx, http.MethodGet, "/chats/", nil, &chats, true); err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateChat creates a chat with the given title and returns it.
func (c *Client) CreateChat(ctx context.Context, title string) (models.Chat, error) {
	if err := models.ValidateChatTitle(title); err != nil {
		return models.Chat{}, err
	}

	body := map[string]string{"title": title}
	var chat models.Chat
	if err := c.do(ctx, http.MethodPost, "/chats/", body, &chat, true); err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

// ListMessages fetches the full message history for a chat, oldest first.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var msgs []models.Message
	path := "/chats/" + chatID + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs, true); err != nil {
		return nil, err
	}
	return msgs, nil
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// Register creates a backend account. Unauthenticated; callers sign in
// afterwards to obtain a token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user, false); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.creds.Bearer()
		if err != nil {
			return fmt.Errorf("getting bearer token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		debug.Error("api", err, method+" "+path)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
		debug.Error("api", reqErr, method+" "+path)
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// readDetail extracts the backend's {"detail": "..."} error message.
// Anything unparseable is returned as raw text, truncated.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(data))
}
