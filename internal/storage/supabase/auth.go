package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/metrics"
	"portfolio/internal/storage"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error) {
	const op = "supabase.Client.SignInWithPassword"

	if !c.Configured() {
		metrics.DataServiceRequests.WithLabelValues("auth", "inert").Inc()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotConfigured)
	}

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath+"token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.DataServiceRequests.WithLabelValues("auth", "error").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnauthorized:
		metrics.DataServiceRequests.WithLabelValues("auth", "not_found").Inc()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCredentials)
	case resp.StatusCode != http.StatusOK:
		metrics.DataServiceRequests.WithLabelValues("auth", "error").Inc()
		return nil, fmt.Errorf("%s: %w", op, decodeAPIError(resp))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		metrics.DataServiceRequests.WithLabelValues("auth", "error").Inc()
		return nil, fmt.Errorf("%s: decode token: %w", op, err)
	}

	metrics.DataServiceRequests.WithLabelValues("auth", "ok").Inc()

	expiresAt := time.Unix(tr.ExpiresAt, 0)
	if tr.ExpiresAt == 0 {
		expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return &models.AuthSession{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    expiresAt,
		UserID:       tr.User.ID,
		Email:        tr.User.Email,
	}, nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	const op = "supabase.Client.SignOut"

	if !c.Configured() {
		metrics.DataServiceRequests.WithLabelValues("auth", "inert").Inc()
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath+"logout", nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.DataServiceRequests.WithLabelValues("auth", "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	// an already expired token is as good as signed out
	if resp.StatusCode == http.StatusUnauthorized {
		metrics.DataServiceRequests.WithLabelValues("auth", "ok").Inc()
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.DataServiceRequests.WithLabelValues("auth", "error").Inc()
		return fmt.Errorf("%s: %w", op, decodeAPIError(resp))
	}

	metrics.DataServiceRequests.WithLabelValues("auth", "ok").Inc()
	return nil
}
