package fabric

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fabric-mcp/pkg/logging"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTokenLifetime is assumed when the token response omits expires_in.
	DefaultTokenLifetime = 3600 * time.Second

	// ExpiryMargin is subtracted from the advertised lifetime so a token is
	// never presented in its final minute.
	ExpiryMargin = 60 * time.Second

	grantTypeClientCredentials = "client_credentials"
	refreshKey                 = "token"
)

// Authenticator acquires and caches the bearer credential used for every
// Fabric API call. It is safe for concurrent use: at most one token request
// is in flight at any time and readers never observe a partially written
// credential.
type Authenticator struct {
	tokenURL     string
	clientID     string
	clientSecret string

	httpClient *http.Client
	clock      Clock

	mu    sync.RWMutex
	token *oauth2.Token

	// refreshGroup coalesces concurrent refreshes into one request.
	refreshGroup singleflight.Group
}

var _ oauth2.TokenSource = (*Authenticator)(nil)

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithAuthHTTPClient sets the HTTP client used for token requests.
func WithAuthHTTPClient(httpClient *http.Client) AuthOption {
	return func(a *Authenticator) {
		a.httpClient = httpClient
	}
}

// WithClock replaces the wall clock, used by tests to simulate expiry.
func WithClock(clock Clock) AuthOption {
	return func(a *Authenticator) {
		a.clock = clock
	}
}

// NewAuthenticator creates an Authenticator for the client-credentials grant.
func NewAuthenticator(tokenURL, clientID, clientSecret string, opts ...AuthOption) *Authenticator {
	a := &Authenticator{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: DefaultHTTPTimeout},
		clock:        realClock{},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// AccessToken returns a valid access token, fetching a new one when the
// cached credential is missing or expired.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	token, err := a.BearerToken(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// BearerToken is AccessToken returning the full oauth2 token.
func (a *Authenticator) BearerToken(ctx context.Context) (*oauth2.Token, error) {
	if token := a.cached(); token != nil {
		return token, nil
	}

	// The refresh is shared by every waiting caller, so it must not be
	// cancelled because one of them gave up.
	refreshCtx := context.WithoutCancel(ctx)

	result, err, shared := a.refreshGroup.Do(refreshKey, func() (interface{}, error) {
		// Another caller may have completed a refresh while we queued.
		if token := a.cached(); token != nil {
			return token, nil
		}
		return a.refresh(refreshCtx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Debug("Auth", "Joined in-flight token refresh")
	}

	return result.(*oauth2.Token), nil
}

// Token implements oauth2.TokenSource.
func (a *Authenticator) Token() (*oauth2.Token, error) {
	return a.BearerToken(context.Background())
}

// Invalidate drops the cached credential so the next call fetches a new one.
func (a *Authenticator) Invalidate() {
	a.mu.Lock()
	a.token = nil
	a.mu.Unlock()
}

func (a *Authenticator) cached() *oauth2.Token {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.token == nil || !a.clock.Now().Before(a.token.Expiry) {
		return nil
	}
	return a.token
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	// ExpiresIn is a JSON number or a numeric string depending on the
	// gateway version.
	ExpiresIn json.RawMessage `json:"expires_in,omitempty"`
}

func (a *Authenticator) refresh(ctx context.Context) (*oauth2.Token, error) {
	payload, err := json.Marshal(tokenRequest{
		GrantType:    grantTypeClientCredentials,
		ClientID:     a.clientID,
		ClientSecret: a.clientSecret,
	})
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("failed to encode token request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("failed to create token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Err: &TransportError{Method: http.MethodPost, Path: a.tokenURL, Err: err}}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("failed to read token response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("Auth", "Token request failed with status %d", resp.StatusCode)
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("failed to parse token response: %w", err)}
	}
	if parsed.AccessToken == "" {
		return nil, &AuthError{Err: errors.New("token response did not contain access_token")}
	}

	lifetime, err := parseExpiresIn(parsed.ExpiresIn)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	token := &oauth2.Token{
		AccessToken: parsed.AccessToken,
		// The gateway reports "BearerToken"; the API expects the standard scheme.
		TokenType: "Bearer",
		Expiry:    a.clock.Now().Add(lifetime - ExpiryMargin),
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	logging.Debug("Auth", "Obtained access token valid until %s", token.Expiry.Format(time.RFC3339))
	return token, nil
}

func parseExpiresIn(raw json.RawMessage) (time.Duration, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultTokenLifetime, nil
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("invalid expires_in %s", string(raw))
	}
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expires_in %q", text)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
