package netatmo

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/muurk/netatmo/internal/logging"
)

// maxAcceptedStatus is the highest status code the token endpoint may return
// for a grant to be accepted (200 OK, 201 Created).
const maxAcceptedStatus = 201

// Credentials identify the application and the account owning the station.
// They are passed in explicitly; reading them from the environment is the
// caller's job (see internal/config).
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Scope        []string
}

// Validate reports every missing field as a single configuration error
func (c Credentials) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return NewConfigError("missing credentials: " + strings.Join(missing, ", "))
	}
	return nil
}

// scope returns the requested scope, falling back to DefaultScope
func (c Credentials) scope() []string {
	if len(c.Scope) == 0 {
		return DefaultScope
	}
	return c.Scope
}

// TokenState is the memory-resident OAuth credential set.
// ExpiresAt is always the issue time plus the server TTL.
type TokenState struct {
	AccessToken  string
	RefreshToken string
	Scope        []string
	ExpiresAt    time.Time
}

// Expired reports whether the access token must be refreshed before use at now
func (t *TokenState) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// tokenResponse is the body of a successful token exchange.
// Netatmo documents expires_in; older deployments answer with expire_in.
type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Scope        json.RawMessage `json:"scope"`
	ExpireIn     int64           `json:"expire_in"`
	ExpiresIn    int64           `json:"expires_in"`
}

func (r tokenResponse) ttl() time.Duration {
	if r.ExpireIn > 0 {
		return time.Duration(r.ExpireIn) * time.Second
	}
	return time.Duration(r.ExpiresIn) * time.Second
}

// scopes accepts either a JSON list or a space separated string
func (r tokenResponse) scopes() []string {
	if len(r.Scope) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(r.Scope, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(r.Scope, &s); err == nil {
		return ParseScope(s)
	}
	return nil
}

// TokenManager owns the OAuth credential lifecycle: the initial password grant,
// on-demand refresh, and expiry tracking.
//
// Refresh is lazy: AccessToken checks expiry right before handing out a token.
// A TokenManager has a single owner and does no internal locking; callers that
// share one across goroutines must serialize access themselves.
type TokenManager struct {
	client      *Client
	credentials Credentials
	state       *TokenState

	now func() time.Time
}

// NewTokenManager creates a token manager. Credentials are copied and not
// modified afterwards.
func NewTokenManager(client *Client, credentials Credentials) *TokenManager {
	creds := credentials
	creds.Scope = append([]string(nil), credentials.Scope...)

	return &TokenManager{
		client:      client,
		credentials: creds,
		now:         time.Now,
	}
}

// Authenticate performs the password-grant exchange and stores the resulting
// TokenState. A rejected grant is returned as an auth error and never retried.
func (m *TokenManager) Authenticate(ctx context.Context) (*TokenState, error) {
	if err := m.credentials.Validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", grantPassword)
	form.Set("client_id", m.credentials.ClientID)
	form.Set("client_secret", m.credentials.ClientSecret)
	form.Set("username", m.credentials.Username)
	form.Set("password", m.credentials.Password)
	form.Set("scope", JoinScope(m.credentials.scope()))

	issuedAt := m.now()
	resp, err := m.client.postForm(ctx, PathToken, form)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode > maxAcceptedStatus {
		e := NewAuthError(PathToken, "authentication rejected", resp.StatusCode)
		e.APICode, _ = decodeAPIError(resp.Body)
		return nil, e
	}

	tokens, err := decodeTokenResponse(resp.Body)
	if err != nil {
		return nil, err
	}

	m.state = &TokenState{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Scope:        tokens.scopes(),
		ExpiresAt:    issuedAt.Add(tokens.ttl()),
	}

	logging.LogTokenEvent("issued", m.state.ExpiresAt)

	return m.State(), nil
}

// AccessToken returns a token that is valid now. When the stored token has
// expired it is refreshed first; a failed refresh is returned to the caller
// and the stale token is never handed out.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	if m.state == nil {
		return "", NewAuthError(PathToken, "not authenticated", 0)
	}

	if m.state.Expired(m.now()) {
		if err := m.refresh(ctx); err != nil {
			return "", err
		}
	}

	return m.state.AccessToken, nil
}

// refresh exchanges the stored refresh token. The previous refresh token is
// replaced; TokenState is the single source of truth afterwards.
func (m *TokenManager) refresh(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", grantRefreshToken)
	form.Set("refresh_token", m.state.RefreshToken)
	form.Set("client_id", m.credentials.ClientID)
	form.Set("client_secret", m.credentials.ClientSecret)

	issuedAt := m.now()
	resp, err := m.client.postForm(ctx, PathToken, form)
	if err != nil {
		return err
	}

	if resp.StatusCode > maxAcceptedStatus {
		e := NewAuthError(PathToken, "token refresh rejected", resp.StatusCode)
		e.APICode, _ = decodeAPIError(resp.Body)
		return e
	}

	tokens, err := decodeTokenResponse(resp.Body)
	if err != nil {
		return err
	}

	m.state.AccessToken = tokens.AccessToken
	m.state.RefreshToken = tokens.RefreshToken
	m.state.ExpiresAt = issuedAt.Add(tokens.ttl())
	if scopes := tokens.scopes(); len(scopes) > 0 {
		m.state.Scope = scopes
	}

	logging.LogTokenEvent("refreshed", m.state.ExpiresAt)

	return nil
}

// State returns a copy of the current token state, or nil before Authenticate
func (m *TokenManager) State() *TokenState {
	if m.state == nil {
		return nil
	}
	s := *m.state
	s.Scope = append([]string(nil), m.state.Scope...)
	return &s
}

// Authenticated reports whether a token state is held
func (m *TokenManager) Authenticated() bool {
	return m.state != nil
}

func decodeTokenResponse(body []byte) (*tokenResponse, error) {
	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, NewParseError(PathToken, "failed to parse token response", err)
	}
	if tokens.AccessToken == "" {
		return nil, NewParseError(PathToken, "token response has no access_token", nil)
	}
	if tokens.RefreshToken == "" {
		return nil, NewParseError(PathToken, "token response has no refresh_token", nil)
	}
	if tokens.ttl() <= 0 {
		return nil, NewParseError(PathToken, "token response has no positive expire_in", nil)
	}
	return &tokens, nil
}
