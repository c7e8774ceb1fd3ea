// Package auth implements the client-credentials authentication layer on
// top of the REST client: the token model, the repository capability and
// the service facade callers use to log in.
package auth

import (
	"context"

	"github.com/crestline-systems/crestline-cli/internal/client"
)

// Repository is the authentication capability. Production code uses
// RestRepository; tests substitute their own implementations.
type Repository interface {
	Authenticate(ctx context.Context, clientID, clientSecret string) (*Token, error)
}

// RestRepository authenticates against a REST backend by posting the
// client credentials as a form to a configured path.
type RestRepository struct {
	client   *client.Client
	authPath string
}

// NewRestRepository creates a RestRepository using the given client and
// token endpoint path.
func NewRestRepository(c *client.Client, authPath string) *RestRepository {
	return &RestRepository{
		client:   c,
		authPath: authPath,
	}
}

// Authenticate exchanges the credentials for a token. The auth endpoint
// itself is unauthenticated, so no bearer token or extra headers are
// sent. Any failure from the underlying request is returned unchanged.
func (r *RestRepository) Authenticate(ctx context.Context, clientID, clientSecret string) (*Token, error) {
	fields := []client.FormField{
		{Key: "client_id", Value: clientID},
		{Key: "client_secret", Value: clientSecret},
	}

	var token Token
	if err := r.client.PostForm(ctx, r.authPath, fields, nil, &token); err != nil {
		return nil, err
	}

	if err := token.Validate(); err != nil {
		return nil, &client.Error{Kind: client.KindDecode, Err: err}
	}

	return &token, nil
}
