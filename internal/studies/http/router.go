package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the study endpoints; the caller applies the admin gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/approve", h.Approve)
	rg.DELETE("/:id", h.Delete)
}
