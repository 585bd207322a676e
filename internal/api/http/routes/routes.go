package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/activitylog"
	authhttp "github.com/r2c-platform/admin-backend/internal/auth/http"
	studyhttp "github.com/r2c-platform/admin-backend/internal/studies/http"
)

type Deps struct {
	RequireAdmin gin.HandlerFunc
	Auth         *authhttp.Handler
	Studies      *studyhttp.Handler
	Logs         *activitylog.Handler
}

// Register mounts the API. Sign-in is public; everything else sits behind the
// admin gate. Legacy paths are kept as aliases.
func Register(r gin.IRouter, dep Deps) {
	dep.Auth.RegisterAuthRoutes(r.Group("/auth"))

	for _, prefix := range []string{"/studies", "/resources"} {
		dep.Studies.RegisterRoutes(r.Group(prefix, dep.RequireAdmin))
	}
	for _, prefix := range []string{"/principals", "/users"} {
		dep.Auth.RegisterPrincipalRoutes(r.Group(prefix, dep.RequireAdmin))
	}

	dep.Logs.RegisterRoutes(r.Group("/logs", dep.RequireAdmin))
}
