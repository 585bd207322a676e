package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/r2c-platform/admin-backend/internal/activitylog"
	httpapi "github.com/r2c-platform/admin-backend/internal/api/http"
	"github.com/r2c-platform/admin-backend/internal/api/http/middleware"
	"github.com/r2c-platform/admin-backend/internal/api/http/routes"
	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/auth"
	authhttp "github.com/r2c-platform/admin-backend/internal/auth/http"
	authmw "github.com/r2c-platform/admin-backend/internal/auth/middleware"
	"github.com/r2c-platform/admin-backend/internal/logger"
	studyhttp "github.com/r2c-platform/admin-backend/internal/studies/http"
)

var errRouteNotFound = apierr.New(apierr.RouteNotFound, "Sorry, can't find that route!")

type RouterDeps struct {
	ServiceName  string
	Version      string
	Production   bool
	Tracing      bool
	CORSOrigins  []string
	DocumentsDir string
	LogsDir      string
	Checks       map[string]httpapi.Pinger

	Verifier     auth.IdentityVerifier
	Resolver     authmw.PrincipalResolver
	AuthService  authhttp.AuthService
	StudyService studyhttp.StudyService

	Log *logger.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		apierr.Respond(c, apierr.Upstream("Something broke on the server!", fmt.Errorf("panic: %v", recovered)))
	}))
	if dep.Tracing {
		r.Use(otelgin.Middleware(dep.ServiceName))
	}
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(dep.Log),
		middleware.SecureHeaders(dep.Production),
		middleware.CORS(dep.CORSOrigins, authmw.CredentialHeader),
	)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Checks)
	healthHandler.RegisterRoutes(r)

	if dep.DocumentsDir != "" {
		r.Static("/documents", dep.DocumentsDir)
	}

	gate := authmw.NewGate(dep.Verifier, dep.Resolver, dep.Log)
	routes.Register(r, routes.Deps{
		RequireAdmin: gate.RequireAdmin(),
		Auth:         authhttp.New(dep.AuthService, dep.Log),
		Studies:      studyhttp.New(dep.StudyService, dep.Log),
		Logs:         activitylog.NewHandler(activitylog.NewReader(dep.LogsDir), dep.Log),
	})

	r.NoRoute(func(c *gin.Context) {
		apierr.Respond(c, errRouteNotFound)
	})

	return r
}
