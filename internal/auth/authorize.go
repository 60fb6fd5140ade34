package auth

import (
	"context"
	"strings"

	"github.com/jpatelved/tradeboard/internal/db"
)

// Identity is a resolved caller plus its role flag
type Identity struct {
	UserID  string
	IsAdmin bool
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// Authorize validates an Authorization header and resolves the caller's
// role. It returns ErrUnauthenticated if the header is missing or the
// token does not resolve to a user. A missing profile row, or a failed
// profile lookup, is never treated as admin.
func (c *Client) Authorize(ctx context.Context, header string) (*Identity, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := c.ResolveUser(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var role string
	err = db.DB.QueryRowContext(ctx,
		"SELECT role FROM user_profiles WHERE id = $1", user.ID,
	).Scan(&role)
	if err != nil {
		return &Identity{UserID: user.ID, IsAdmin: false}, nil
	}

	return &Identity{UserID: user.ID, IsAdmin: role == "admin"}, nil
}
