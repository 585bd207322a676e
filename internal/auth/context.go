package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the authorized principal.
func WithPrincipal(ctx context.Context, p domain.PrincipalView) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal placed by the admin gate.
func PrincipalFromContext(ctx context.Context) (domain.PrincipalView, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.PrincipalView)
	return p, ok
}

// CurrentPrincipal extracts the gate's principal from the Gin request context.
func CurrentPrincipal(c *gin.Context) (domain.PrincipalView, bool) {
	return PrincipalFromContext(c.Request.Context())
}
