// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tone/internal/cache"
	"tone/internal/mail"
	"tone/internal/models"
	"tone/internal/observability"
	"tone/internal/repository"
	"tone/internal/validation"

	"github.com/google/uuid"
)

// TokenStore keeps single-use login tokens between issuance and verification.
type TokenStore interface {
	Store(ctx context.Context, token, email string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

// AuthService implements passwordless login via emailed magic links.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenStore
	sender   mail.Sender
	baseURL  string
	linkTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenStore, sender mail.Sender, baseURL string, linkTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		sender:   sender,
		baseURL:  baseURL,
		linkTTL:  linkTTL,
	}
}

// RequestMagicLink issues a single-use sign-in token and emails it as a link.
// The response is the same whether or not the address belongs to a known user,
// so the endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return models.NewValidationError(err.Error())
	}

	token := uuid.NewString()
	if err := s.tokens.Store(ctx, token, email, s.linkTTL); err != nil {
		observability.MagicLinksIssued.WithLabelValues("store_failed").Inc()
		return models.NewInternalError(err)
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.baseURL, token)
	if err := s.sender.SendMagicLink(ctx, email, link); err != nil {
		observability.MagicLinksIssued.WithLabelValues("send_failed").Inc()
		return models.NewInternalError(err)
	}

	observability.MagicLinksIssued.WithLabelValues("sent").Inc()
	return nil
}

// VerifyMagicLink consumes a login token and returns the user it signs in,
// creating the user record on first login.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (*models.User, error) {
	span, ctx := observability.NewSpan(ctx, "auth.verify_magic_link")
	defer span.End()

	if token == "" {
		return nil, models.NewValidationError("token is required")
	}

	email, err := s.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrTokenNotFound) {
			observability.MagicLinksVerified.WithLabelValues("invalid").Inc()
			return nil, models.NewUnauthorizedError("Invalid or expired sign-in link")
		}
		observability.MagicLinksVerified.WithLabelValues("error").Inc()
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}

	user, err := s.userRepo.FindOrCreateByEmail(ctx, email)
	if err != nil {
		observability.MagicLinksVerified.WithLabelValues("error").Inc()
		span.SetError(err)
		return nil, err
	}

	observability.MagicLinksVerified.WithLabelValues("ok").Inc()
	return user, nil
}
