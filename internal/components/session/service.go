// Package session owns the auth lifecycle: logging in, registering and
// logging out, plus the pages for all three. The session itself lives in one
// place only, the encrypted token cookie; the user identity is re-derived
// from it on every request by the session middleware.
package session

import (
	"context"
	"errors"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
	"github.com/mkoller-dev/quillpress/internal/shared/config"
)

var errValidation = errors.New("registration input rejected")

type (
	authAPI interface {
		Login(ctx context.Context, email, password string) (*blogapi.Session, error)
		Register(ctx context.Context, username, email, password string) (*blogapi.Session, error)
	}

	servicer interface {
		Login(ctx context.Context, email, password string) (*blogapi.Session, error)
		Register(ctx context.Context, in RegisterInput) (*blogapi.Session, []string, error)
		SecretKey() []byte
	}

	service struct {
		api    authAPI
		config *config.Config
	}
)

func NewService(cfg *config.Config, api *blogapi.Client) servicer {
	return &service{
		api:    api,
		config: cfg,
	}
}

// Login exchanges credentials for a session. A rejected login is an ordinary
// result, not a crash: the caller renders the backend's message.
func (s *service) Login(ctx context.Context, email, password string) (*blogapi.Session, error) {
	return s.api.Login(ctx, email, password)
}

// Register validates the form locally first. When validation fails, the
// issues come back with errValidation and no backend call is made.
func (s *service) Register(ctx context.Context, in RegisterInput) (*blogapi.Session, []string, error) {
	if issues := in.Validate(); len(issues) > 0 {
		return nil, issues, errValidation
	}

	sess, err := s.api.Register(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, nil, err
	}
	return sess, nil, nil
}

// SecretKey returns the secret key for cookie encryption
func (s *service) SecretKey() []byte {
	return s.config.CookieSecret()
}
