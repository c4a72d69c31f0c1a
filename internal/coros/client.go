// Package coros is a thin client for the COROS Training Hub private API.
// It covers transport, authentication, and region routing; response payloads
// are passed through as raw JSON for the coach layer to shape.
//
// The API is not public and could change without notice.
package coros

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Regional API base URLs.
const (
	apiURLGlobal = "https://teamapi.coros.com"
	apiURLEU     = "https://teameuapi.coros.com"
	apiURLCN     = "https://teamapi.coros.com.cn"
)

// resultOK is the COROS success result code.
const resultOK = "0000"

// UserInfo identifies the authenticated COROS account.
type UserInfo struct {
	UserID      string `json:"user_id"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	HeadPic     string `json:"head_pic,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Birthday    int    `json:"birthday,omitempty"` // YYYYMMDD
}

// APIError is a non-success result code returned by the COROS API.
type APIError struct {
	Result  string
	APICode string
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown API error"
	}
	return fmt.Sprintf("%s (apiCode=%s, result=%s)", msg, e.APICode, e.Result)
}

// ErrNotLoggedIn is returned when an authenticated call is made without a
// session token.
var ErrNotLoggedIn = fmt.Errorf("not logged in, call Login first")

// envelope is the common COROS response wrapper.
type envelope struct {
	Result  string          `json:"result"`
	APICode string          `json:"apiCode"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the COROS Training Hub API. It is not safe for concurrent
// use while logging in; after login only reads happen to its fields.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
	userInfo    *UserInfo
}

// New creates a client routed to the given region ("global", "eu", or "cn").
// Unrecognized regions fall back to the global endpoint.
func New(region string) *Client {
	base := apiURLGlobal
	switch region {
	case "eu":
		base = apiURLEU
	case "cn":
		base = apiURLCN
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL creates a client against an explicit base URL. Used in
// tests against httptest servers.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// IsLoggedIn reports whether the client holds a session token.
func (c *Client) IsLoggedIn() bool { return c.accessToken != "" }

// UserInfo returns the account info captured at login, or nil.
func (c *Client) UserInfo() *UserInfo { return c.userInfo }

// request issues an API call and decodes the response envelope. A non-"0000"
// result code becomes an *APIError. The data payload is returned raw.
func (c *Client) request(ctx context.Context, method, endpoint string, params url.Values, body any, requireAuth bool) (json.RawMessage, error) {
	if requireAuth && c.accessToken == "" {
		return nil, ErrNotLoggedIn
	}

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("coros: marshal %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("coros: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("accessToken", c.accessToken)
	}
	if c.userInfo != nil && c.userInfo.UserID != "" {
		yf, _ := json.Marshal(map[string]string{"userId": c.userInfo.UserID})
		req.Header.Set("yfheader", string(yf))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coros: %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coros: read %s response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coros: %s returned %d: %s", endpoint, resp.StatusCode, respBody)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("coros: decode %s response: %w", endpoint, err)
	}
	if env.Result != resultOK {
		return nil, &APIError{Result: env.Result, APICode: env.APICode, Message: env.Message}
	}

	return env.Data, nil
}

// get issues an authenticated GET and decodes data into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	data, err := c.request(ctx, http.MethodGet, endpoint, params, nil, true)
	if err != nil {
		return err
	}
	return decodeData(endpoint, data, out)
}

// post issues an authenticated POST and decodes data into out (out may be
// nil when the caller only cares about the result code).
func (c *Client) post(ctx context.Context, endpoint string, params url.Values, body, out any) error {
	data, err := c.request(ctx, http.MethodPost, endpoint, params, body, true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeData(endpoint, data, out)
}

func decodeData(endpoint string, data json.RawMessage, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("coros: decode %s data: %w", endpoint, err)
	}
	return nil
}

// md5Hash hashes the account password the way the COROS login endpoint
// expects.
func md5Hash(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

// sessionToken is the serialized session format for Export/LoadToken.
type sessionToken struct {
	AccessToken string    `json:"access_token"`
	UserInfo    *UserInfo `json:"user_info,omitempty"`
}

// ExportToken serializes the session token and user info for storage.
func (c *Client) ExportToken() (string, error) {
	if c.accessToken == "" {
		return "", ErrNotLoggedIn
	}
	data, err := json.Marshal(sessionToken{AccessToken: c.accessToken, UserInfo: c.userInfo})
	if err != nil {
		return "", fmt.Errorf("coros: export token: %w", err)
	}
	return string(data), nil
}

// LoadToken restores a session previously serialized by ExportToken.
func (c *Client) LoadToken(token string) error {
	var st sessionToken
	if err := json.Unmarshal([]byte(token), &st); err != nil {
		return fmt.Errorf("coros: load token: %w", err)
	}
	if st.AccessToken == "" {
		return fmt.Errorf("coros: load token: missing access_token")
	}
	c.accessToken = st.AccessToken
	c.userInfo = st.UserInfo
	return nil
}

// Logout clears the session.
func (c *Client) Logout() {
	c.accessToken = ""
	c.userInfo = nil
}
