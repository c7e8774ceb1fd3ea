package auth

import "context"

// Service is the stable login surface shared by production code and
// tests. It holds only the Repository capability, never a concrete
// implementation, and keeps no state of its own.
type Service struct {
	repo Repository
}

// NewService creates a Service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login exchanges the client credentials for a token, delegating
// directly to the repository. Errors pass through unchanged.
func (s *Service) Login(ctx context.Context, clientID, clientSecret string) (*Token, error) {
	return s.repo.Authenticate(ctx, clientID, clientSecret)
}
