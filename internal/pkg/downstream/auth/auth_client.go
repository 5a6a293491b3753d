package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"saccoledger/internal/pkg/config"
	"saccoledger/internal/pkg/logger"
)

// Client talks to the identity provider that owns login accounts. Member
// onboarding creates an account here first, then writes the member document.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.AuthConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type createAccountRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type createAccountResponse struct {
	UserID string `json:"userId"`
}

// CreateAccount provisions a login account and returns its user id.
func (c *Client) CreateAccount(ctx context.Context, email, name, phone string) (string, error) {
	body, err := json.Marshal(createAccountRequest{Email: email, Name: name, Phone: phone})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/accounts", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.CtxError(ctx, "Auth account creation request failed", err, slog.String("email", email))
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.CtxWarn(ctx, "Auth account creation returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("email", email),
		)
		return "", fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var parsed createAccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	return parsed.UserID, nil
}

// DeleteAccount removes an account, used to compensate a failed member
// document insert.
func (c *Client) DeleteAccount(ctx context.Context, authUserID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/v1/accounts/"+authUserID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.CtxError(ctx, "Auth account deletion request failed", err, slog.String("auth_user_id", authUserID))
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}
	return nil
}
