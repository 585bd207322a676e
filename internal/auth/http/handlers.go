package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/auth/middleware"
)

// SignIn reconciles a Firebase ID token with a provisioned admin profile.
// The token travels in the same header slot the admin gate reads.
func (h *Handler) SignIn(c *gin.Context) {
	result, err := h.authService.SignIn(c.Request.Context(), c.GetHeader(middleware.CredentialHeader))
	if err != nil {
		h.log.Info("sign-in failed", "code", apierr.KindOf(err), "error", err)
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Admin sign-in successful",
		"subjectId":        result.SubjectID,
		"principalProfile": result.Profile,
	})
}

// ListPrincipals returns every principal record.
func (h *Handler) ListPrincipals(c *gin.Context) {
	principals, err := h.authService.ListPrincipals(c.Request.Context())
	if err != nil {
		h.log.Error("list principals failed", "error", err)
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, principals)
}
