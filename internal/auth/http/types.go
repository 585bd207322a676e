package http

import (
	"context"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
	"github.com/r2c-platform/admin-backend/internal/logger"
)

type AuthService interface {
	SignIn(ctx context.Context, credential string) (*domain.SignInResult, error)
	ListPrincipals(ctx context.Context) ([]domain.Principal, error)
}

type Handler struct {
	authService AuthService
	log         *logger.Logger
}

func New(authService AuthService, log *logger.Logger) *Handler {
	return &Handler{
		authService: authService,
		log:         log.With("handler", "auth"),
	}
}
