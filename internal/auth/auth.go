// Package auth verifies bearer tokens issued by the external identity provider.
package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what the provider vouches for. UID is the stable user id.
type Identity struct {
	UID        string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// splitName splits a display name into a first name and the remainder.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
