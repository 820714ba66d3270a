package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the ledgerkeep HTTP API. Privileged calls carry the admin
// bearer token.
type Client struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

func NewClient(baseURL, adminToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the {"error": ...} body every failing endpoint returns.
type apiError struct {
	Error string `json:"error"`
}

func (c *Client) call(ctx context.Context, method, path string, body any, admin bool, out any) error {

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s (%d)", e.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateUser registers a new account and returns its id.
func (c *Client) CreateUser(ctx context.Context, firstName, lastName, email, password string) (int64, error) {
	var resp struct {
		UserID int64 `json:"userId"`
	}
	err := c.call(ctx, http.MethodPost, "/users", map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}, true, &resp)
	if err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// GetBalance returns a user's balance as the API reports it: a decimal
// string, since the value may not fit a JSON number.
func (c *Client) GetBalance(ctx context.Context, userID int64) (string, error) {
	var resp struct {
		Balance string `json:"balance"`
	}
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/users/%d/balance", userID), nil, false, &resp)
	if err != nil {
		return "", err
	}
	return resp.Balance, nil
}

// StatementLink is the uploaded statement's location.
type StatementLink struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ExportStatement asks the server to export a user's transaction history and
// returns the storage key plus a presigned download URL.
func (c *Client) ExportStatement(ctx context.Context, userID int64) (*StatementLink, error) {
	var resp StatementLink
	err := c.call(ctx, http.MethodPost, fmt.Sprintf("/users/%d/statements", userID), nil, true, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
