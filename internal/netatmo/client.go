package netatmo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/netatmo/internal/logging"
)

// Netatmo API error codes that mean the access token cannot be used
const (
	apiCodeInvalidAccessToken = 2
	apiCodeAccessTokenExpired = 3
)

// Client is the HTTP collaborator shared by the token manager and the station
// data normalizer. Every call is a single form-encoded POST; there is no retry.
type Client struct {
	// BaseURL is the API host (default: "https://api.netatmo.com/")
	BaseURL string

	// HTTPClient is the underlying HTTP client. Its Timeout applies to every request.
	HTTPClient *http.Client

	// UserAgent is sent with every request when set
	UserAgent string
}

// NewClient creates a client for the public Netatmo API
func NewClient() *Client {
	return NewClientWithURL(DefaultBaseURL)
}

// NewClientWithURL creates a client against another base URL (tests, proxies)
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// endpoint joins the base URL and an endpoint path
func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// response is the raw result of one POST
type response struct {
	StatusCode int
	Body       []byte
}

// postForm performs a single form-encoded POST to path.
// Transport failures come back as ErrTypeTransport with the original error in Err.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*response, error) {
	target := c.endpoint(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, NewTransportError(path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogHTTPRequest(http.MethodPost, target)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Warn("Request failed", zap.String("url", target), zap.Error(err))
		return nil, NewTransportError(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(path, err)
	}

	logging.LogHTTPResponse(target, resp.StatusCode, time.Since(start))

	return &response{StatusCode: resp.StatusCode, Body: body}, nil
}

// apiErrorBody covers both error shapes the API uses: the OAuth form
// {"error":"invalid_grant"} and the API form {"error":{"code":2,"message":"..."}}.
type apiErrorBody struct {
	Error            json.RawMessage `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

type apiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// decodeAPIError extracts the API error code and message, if the body has one
func decodeAPIError(body []byte) (code int, message string) {
	var payload apiErrorBody
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Error) == 0 {
		return 0, ""
	}

	var detail apiErrorDetail
	if err := json.Unmarshal(payload.Error, &detail); err == nil {
		return detail.Code, detail.Message
	}

	var oauthErr string
	if err := json.Unmarshal(payload.Error, &oauthErr); err == nil {
		if payload.ErrorDescription != "" {
			return 0, oauthErr + ": " + payload.ErrorDescription
		}
		return 0, oauthErr
	}

	return 0, ""
}

// statusError turns a non-success station/API response into a typed error
func statusError(op string, resp *response) *Error {
	code, message := decodeAPIError(resp.Body)
	if message == "" {
		message = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		code == apiCodeInvalidAccessToken ||
		code == apiCodeAccessTokenExpired {
		e := NewAuthError(op, message, resp.StatusCode)
		e.APICode = code
		return e
	}

	e := NewHTTPError(op, resp.StatusCode, message)
	e.APICode = code
	return e
}
