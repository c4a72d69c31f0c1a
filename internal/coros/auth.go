package coros

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// loginData is the account/login response payload.
type loginData struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	HeadPic     string `json:"headPic"`
	CountryCode string `json:"countryCode"`
	Birthday    int    `json:"birthday"`
}

// Login authenticates with COROS credentials and stores the session token
// on the client.
//
// POST account/login
func (c *Client) Login(ctx context.Context, email, password string) (*UserInfo, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("coros: missing credentials")
	}

	body := map[string]any{
		"account":     email,
		"accountType": 2,
		"pwd":         md5Hash(password),
	}
	data, err := c.request(ctx, http.MethodPost, "account/login", nil, body, false)
	if err != nil {
		return nil, err
	}

	var ld loginData
	if err := json.Unmarshal(data, &ld); err != nil {
		return nil, fmt.Errorf("coros: decode login data: %w", err)
	}

	c.accessToken = ld.AccessToken
	c.userInfo = &UserInfo{
		UserID:      ld.UserID,
		Nickname:    ld.Nickname,
		Email:       ld.Email,
		HeadPic:     ld.HeadPic,
		CountryCode: ld.CountryCode,
		Birthday:    ld.Birthday,
	}
	return c.userInfo, nil
}

// GetAccount fetches the current account identity.
//
// GET account/query
func (c *Client) GetAccount(ctx context.Context) (*UserInfo, error) {
	var ld loginData
	if err := c.get(ctx, "account/query", nil, &ld); err != nil {
		return nil, err
	}
	info := &UserInfo{
		UserID:      ld.UserID,
		Nickname:    ld.Nickname,
		Email:       ld.Email,
		HeadPic:     ld.HeadPic,
		CountryCode: ld.CountryCode,
		Birthday:    ld.Birthday,
	}
	c.userInfo = info
	return info, nil
}

// GetAccountFull fetches the full account profile including biometrics and
// training zones, as a raw map for the coach layer to shape.
//
// GET account/query
func (c *Client) GetAccountFull(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "account/query", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
