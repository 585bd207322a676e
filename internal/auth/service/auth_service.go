package service

import (
	"context"
	"errors"
	"time"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/auth"
	"github.com/r2c-platform/admin-backend/internal/auth/domain"
	"github.com/r2c-platform/admin-backend/internal/auth/repository"
	"github.com/r2c-platform/admin-backend/internal/logger"
)

type AuthService struct {
	verifier auth.IdentityVerifier
	repo     repository.PrincipalRepository
	timeout  time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(verifier auth.IdentityVerifier, repo repository.PrincipalRepository, timeout time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		repo:     repo,
		timeout:  timeout,
		log:      log.With("service", "AuthService"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Resolve looks up exactly one principal by subject identifier. Absence is
// reported as domain.ErrPrincipalNotFound.
func (s *AuthService) Resolve(ctx context.Context, subjectID string) (*domain.Principal, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	p, err := s.repo.GetBySubjectID(ctx, subjectID)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, apierr.Upstream("failed to resolve user", err)
	}
	return p, nil
}

// SignIn verifies the credential and reconciles it with an already provisioned
// admin principal. It never creates a principal record.
func (s *AuthService) SignIn(ctx context.Context, credential string) (*domain.SignInResult, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	if identity.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	existing, err := s.repo.GetBySubjectID(ctx, identity.SubjectID)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		s.log.Warn("sign-in rejected: principal not provisioned", "subject_id", identity.SubjectID)
		return nil, domain.ErrNotProvisioned
	}
	if err != nil {
		return nil, apierr.Upstream("failed to load user profile", err)
	}
	if !existing.IsAdmin() {
		s.log.Warn("sign-in rejected: not an admin", "subject_id", identity.SubjectID, "role", existing.Role)
		return nil, domain.ErrNotAdmin
	}

	upd := domain.SignInUpdate{
		Email:       identity.Email,
		DisplayName: firstNonEmpty(identity.DisplayName, existing.DisplayName),
		AvatarURL:   firstNonEmpty(identity.AvatarURL, existing.AvatarURL),
	}
	err = s.repo.RecordSignIn(ctx, identity.SubjectID, upd)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, domain.ErrNotProvisioned
	}
	if err != nil {
		return nil, apierr.Upstream("failed to update user profile", err)
	}

	profile := *existing
	profile.Email = upd.Email
	profile.DisplayName = upd.DisplayName
	profile.AvatarURL = upd.AvatarURL
	now := s.now()
	profile.LastLoginAt = &now

	s.log.Info("admin signed in", "subject_id", identity.SubjectID)
	return &domain.SignInResult{SubjectID: identity.SubjectID, Profile: profile}, nil
}

// ListPrincipals returns every stored principal.
func (s *AuthService) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierr.Upstream("failed to fetch users", err)
	}
	if list == nil {
		list = []domain.Principal{}
	}
	return list, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
