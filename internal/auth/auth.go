// Package auth is the credential source: it signs the user in against
// the identity endpoint, hands out the current bearer token, and
// refreshes it on demand. Everything else in the app borrows tokens
// from here and never stores them.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/events"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/pubsub"
)

// Credential source errors.
var (
	ErrUnauthenticated = errors.New("auth: not signed in")
	ErrRefreshFailed   = errors.New("auth: token refresh failed")
)

// Source yields the current bearer token. forceRefresh requests a fresh
// token even when a cached one looks valid; the realtime handshake
// rejects stale tokens, so the binder always forces.
type Source interface {
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

// expiryLeeway treats tokens this close to expiry as already expired.
const expiryLeeway = 30 * time.Second

const requestTimeout = 15 * time.Second

// session is the in-memory (and cached) credential state.
type session struct {
	IDToken      string      `json:"idToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	User         models.User `json:"user"`
}

// credentialResponse is what the identity endpoint returns on sign-in
// and refresh.
type credentialResponse struct {
	IDToken      string      `json:"idToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"` // seconds
	User         models.User `json:"user"`
}

// Client implements Source against a password-grant identity endpoint.
type Client struct {
	mu          sync.Mutex
	identityURL string
	http        *http.Client
	broker      *pubsub.Broker[events.AuthEvent]
	cache       *tokenCache
	sess        *session

	now func() time.Time
}

// NewClient creates a credential source. cachePath is where the current
// session is mirrored on disk ("" disables caching); broker may be nil
// in tests.
func NewClient(identityURL, cachePath string, broker *pubsub.Broker[events.AuthEvent]) *Client {
	return &Client{
		identityURL: identityURL,
		http:        &http.Client{Timeout: requestTimeout},
		broker:      broker,
		cache:       newTokenCache(cachePath),
		now:         time.Now,
	}
}

// Restore loads a previously cached session from disk. Returns the
// restored user, or false when no usable session exists. An expired
// cached token is still restored; the next Token call refreshes it.
func (c *Client) Restore() (models.User, bool) {
	sess, err := c.cache.load()
	if err != nil || sess == nil || sess.RefreshToken == "" {
		return models.User{}, false
	}

	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()

	debug.Event("auth", "restored", "user="+sess.User.Email)
	c.publish(pubsub.EventCreated, events.NewSignedInEvent(sess.User.Email))
	return sess.User, true
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, error) {
	if err := models.ValidateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := models.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	payload := map[string]string{"email": email, "password": password}
	creds, err := c.postCredentials(ctx, "/api/auth/login", payload)
	if err != nil {
		debug.Error("auth", err, "sign-in for "+email)
		return models.User{}, err
	}

	sess := c.adopt(creds)
	debug.Event("auth", "signed_in", "user="+email)
	c.publish(pubsub.EventCreated, events.NewSignedInEvent(email))
	return sess.User, nil
}

// SignOut discards the session in memory and on disk.
func (c *Client) SignOut() {
	c.mu.Lock()
	c.sess = nil
	c.mu.Unlock()

	if err := c.cache.clear(); err != nil {
		debug.Error("auth", err, "clearing token cache")
	}

	debug.Event("auth", "signed_out", "")
	c.publish(pubsub.EventDeleted, events.NewSignedOutEvent())
}

// Token returns a bearer token, refreshing when forced or when the
// current one is expired or about to expire.
func (c *Client) Token(ctx context.Context, forceRefresh bool) (string, error) {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess == nil {
		return "", ErrUnauthenticated
	}

	if !forceRefresh && c.now().Add(expiryLeeway).Before(sess.ExpiresAt) {
		return sess.IDToken, nil
	}

	payload := map[string]string{"refreshToken": sess.RefreshToken}
	creds, err := c.postCredentials(ctx, "/api/auth/refresh", payload)
	if err != nil {
		debug.Error("auth", err, "refreshing token")
		c.publish(pubsub.EventFailed, events.NewRefreshFailedEvent(err))
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	if creds.User.UID == "" {
		creds.User = sess.User
	}
	if creds.RefreshToken == "" {
		creds.RefreshToken = sess.RefreshToken
	}
	return c.adopt(creds).IDToken, nil
}

// Bearer returns the last observed token without refreshing. REST
// requests reuse whatever the app currently holds; only the realtime
// handshake demands freshness.
func (c *Client) Bearer() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return "", ErrUnauthenticated
	}
	return c.sess.IDToken, nil
}

// User returns the signed-in user, if any.
func (c *Client) User() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return models.User{}, false
	}
	return c.sess.User, true
}

// adopt installs new credentials as the current session and mirrors
// them to the cache file.
func (c *Client) adopt(creds *credentialResponse) *session {
	sess := &session{
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    tokenExpiry(creds.IDToken, creds.ExpiresIn, c.now()),
		User:         creds.User,
	}

	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()

	if err := c.cache.save(sess); err != nil {
		debug.Error("auth", err, "writing token cache")
	}
	return sess
}

func (c *Client) postCredentials(ctx context.Context, path string, payload map[string]string) (*credentialResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.identityURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Detail == "" {
			body.Detail = resp.Status
		}
		return nil, fmt.Errorf("identity endpoint: %s", body.Detail)
	}

	var creds credentialResponse
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, fmt.Errorf("decoding credentials: %w", err)
	}
	if creds.IDToken == "" {
		return nil, errors.New("identity endpoint returned no token")
	}
	return &creds, nil
}

// tokenExpiry reads the exp claim from the token without verifying the
// signature (the backend verifies; we only need the timestamp to decide
// when to refresh). Falls back to issuance time plus expiresIn.
func tokenExpiry(raw string, expiresIn int, issued time.Time) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}

	if expiresIn <= 0 {
		expiresIn = 3600
	}
	return issued.Add(time.Duration(expiresIn) * time.Second)
}

func (c *Client) publish(eventType pubsub.EventType, ev events.AuthEvent) {
	if c.broker != nil {
		c.broker.Publish(eventType, ev)
	}
}
