package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/auth"
	"github.com/r2c-platform/admin-backend/internal/auth/domain"
	"github.com/r2c-platform/admin-backend/internal/logger"
)

// CredentialHeader is the single header slot carrying the Firebase ID token.
const CredentialHeader = "Id-Token"

type PrincipalResolver interface {
	Resolve(ctx context.Context, subjectID string) (*domain.Principal, error)
}

// Gate admits only verified callers whose principal record has the admin role.
type Gate struct {
	verifier auth.IdentityVerifier
	resolver PrincipalResolver
	log      *logger.Logger
}

func NewGate(verifier auth.IdentityVerifier, resolver PrincipalResolver, log *logger.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		resolver: resolver,
		log:      log.With("middleware", "AdminGate"),
	}
}

// Authorize runs the gate for a raw credential. Every rejection is terminal.
func (g *Gate) Authorize(ctx context.Context, credential string) (domain.PrincipalView, error) {
	if strings.TrimSpace(credential) == "" {
		return domain.PrincipalView{}, domain.ErrMissingCredential
	}

	identity, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		if apierr.KindOf(err) == apierr.UpstreamFailure {
			err = apierr.Wrap(apierr.InvalidCredential, domain.ErrInvalidCredential.Message, err)
		}
		return domain.PrincipalView{}, err
	}

	principal, err := g.resolver.Resolve(ctx, identity.SubjectID)
	if err != nil {
		return domain.PrincipalView{}, err
	}
	if !principal.IsAdmin() {
		return domain.PrincipalView{}, domain.ErrNotAdmin
	}

	return principal.View(), nil
}

// RequireAdmin is the gin form of Authorize. On success the principal is
// placed in the request context for downstream handlers.
func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := g.Authorize(c.Request.Context(), c.GetHeader(CredentialHeader))
		if err != nil {
			g.log.Debug("request rejected", "path", c.FullPath(), "code", apierr.KindOf(err), "error", err)
			apierr.Respond(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}
