package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/auth"
	authdomain "github.com/r2c-platform/admin-backend/internal/auth/domain"
	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

// List handles GET /studies?genre=&title=&approved=&page=&limit=.
func (h *Handler) List(c *gin.Context) {
	filter := domain.NewFilter(c.Query("approved"), c.QueryArray("genre"), c.Query("title"))
	page := domain.ParsePagination(c.Query("page"), c.Query("limit"))

	result, err := h.studyService.List(c.Request.Context(), filter, page)
	if err != nil {
		h.log.Error("list studies failed", "error", err)
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := domain.ParseNativeResourceID(c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	study, err := h.studyService.Get(c.Request.Context(), id)
	if err != nil {
		if apierr.KindOf(err) == apierr.UpstreamFailure {
			h.log.Error("get study failed", "study_id", id.String(), "error", err)
		}
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, study)
}

// Approve handles PATCH /studies/:id/approve. The id may be a legacy string
// key or an ObjectID.
func (h *Handler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		apierr.Respond(c, domain.ErrInvalidApproval)
		return
	}

	id, err := domain.ParseResourceID(c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	study, err := h.studyService.Approve(c.Request.Context(), id, *req.Approved)
	if err != nil {
		if apierr.KindOf(err) == apierr.UpstreamFailure {
			h.log.Error("approve study failed", "study_id", id.String(), "error", err)
		}
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Study approval status updated successfully.",
		"study":   study,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := domain.ParseNativeResourceID(c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		apierr.Respond(c, authdomain.ErrMissingCredential)
		return
	}

	if err := h.studyService.Delete(c.Request.Context(), id, principal.SubjectID); err != nil {
		if apierr.KindOf(err) == apierr.UpstreamFailure {
			h.log.Error("delete study failed", "study_id", id.String(), "error", err)
		}
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Study deleted successfully"})
}
