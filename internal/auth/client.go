package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthenticated means the request carried no usable credential
var ErrUnauthenticated = errors.New("unauthenticated")

// User is the identity the provider resolves a bearer token to
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client talks to the hosted identity provider. Tokens are issued and
// refreshed by the provider; this client only resolves them.
type Client struct {
	client  *resty.Client
	anonKey string
}

// NewClient creates an identity provider client
func NewClient(baseURL, anonKey string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(10 * time.Second)

	return &Client{
		client:  client,
		anonKey: anonKey,
	}
}

// ResolveUser asks the identity provider which user a token belongs to
func (c *Client) ResolveUser(ctx context.Context, token string) (*User, error) {
	var user User
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("apikey", c.anonKey).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || user.ID == "" {
		return nil, ErrUnauthenticated
	}

	return &user, nil
}
