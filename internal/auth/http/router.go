package http

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes mounts the public sign-in endpoints.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-in", h.SignIn)
	rg.POST("/google-signin", h.SignIn)
}

// RegisterPrincipalRoutes mounts principal listing; the caller applies the admin gate.
func (h *Handler) RegisterPrincipalRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListPrincipals)
}
