package activitylog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/logger"
)

type Handler struct {
	reader *Reader
	log    *logger.Logger
}

func NewHandler(reader *Reader, log *logger.Logger) *Handler {
	return &Handler{reader: reader, log: log.With("handler", "logs")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	logs, err := h.reader.Read()
	if err != nil {
		h.log.Error("error reading log files", "error", err)
		if !errors.Is(err, ErrNotConfigured) {
			err = apierr.Upstream("server error", err)
		}
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
