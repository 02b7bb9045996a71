package clients

import (
	"context"
	"errors"
	"fmt"

	"squarebuzz/internal/domain"
)

// AuthClient talks to the identity service that issues the bearer
// credential used on question and verification requests.
type AuthClient struct {
	base *BaseClient
}

func NewAuthClient(baseURL string, token TokenProvider) *AuthClient {
	return &AuthClient{base: NewBaseClient(baseURL, token)}
}

type loginRequest struct {
	Credential string `json:"credential"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}

// Login exchanges an external credential for a bearer token and profile.
func (c *AuthClient) Login(ctx context.Context, credential string) (string, domain.Profile, error) {
	var resp loginResponse
	err := c.base.doJSON(ctx, "POST", "/api/auth/login", loginRequest{Credential: credential}, &resp)
	if err != nil {
		if status := asStatus(err); status != nil && (status.Code == 401 || status.Code == 403) {
			return "", domain.Profile{}, domain.ErrAccessDenied
		}
		return "", domain.Profile{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", domain.Profile{}, fmt.Errorf("login: %w", domain.ErrMalformedUpstreamResponse)
	}
	return resp.Token, resp.Profile, nil
}

// Me validates the stored token before any question is loaded. A 401 means
// the session expired, a 403 blocks entry.
func (c *AuthClient) Me(ctx context.Context) (domain.Profile, error) {
	var profile domain.Profile
	err := c.base.doJSON(ctx, "GET", "/api/auth/me", nil, &profile)
	if err != nil {
		if status := asStatus(err); status != nil {
			switch status.Code {
			case 401:
				return domain.Profile{}, domain.ErrSessionExpired
			case 403:
				return domain.Profile{}, domain.ErrAccessDenied
			}
		}
		return domain.Profile{}, fmt.Errorf("identity check: %w", err)
	}
	return profile, nil
}

func asStatus(err error) *StatusError {
	var status *StatusError
	if errors.As(err, &status) {
		return status
	}
	return nil
}
