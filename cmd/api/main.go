package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/r2c-platform/admin-backend/config"
	"github.com/r2c-platform/admin-backend/internal/auth"
	authsvc "github.com/r2c-platform/admin-backend/internal/auth/service"
	"github.com/r2c-platform/admin-backend/internal/bootstrap"
	"github.com/r2c-platform/admin-backend/internal/logger"
	"github.com/r2c-platform/admin-backend/internal/observability"
	"github.com/r2c-platform/admin-backend/internal/storage/files"
	studysvc "github.com/r2c-platform/admin-backend/internal/studies/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logMode := "dev"
	if cfg.IsProduction() {
		logMode = "prod"
	}
	lg, err := logger.New(logMode, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	bootstrap.SetGinMode(cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitOTel(ctx, lg, observability.OtelConfig{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
		Version:     cfg.App.Version,
		Tracing:     cfg.Tracing,
	})

	fbApp, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		lg.Fatal("firebase init failed", "error", err)
	}
	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		lg.Fatal("firebase auth client failed", "error", err)
	}
	lg.Info("Firebase Admin SDK initialized")

	stores, err := bootstrap.OpenStores(ctx, cfg, fbApp, lg)
	if err != nil {
		lg.Fatal("store init failed", "error", err)
	}

	area, err := files.NewLocalArea(cfg.Files.DocumentsDir)
	if err != nil {
		lg.Fatal("documents area init failed", "error", err)
	}

	verifier := auth.NewVerifier(fbAuth)
	authService := authsvc.NewAuthService(verifier, stores.Principals, cfg.App.StoreTimeout, lg)
	studyService := studysvc.NewStudyService(stores.Studies, area, cfg.App.StoreTimeout, lg)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  cfg.App.Name,
		Version:      cfg.App.Version,
		Production:   cfg.IsProduction(),
		Tracing:      cfg.Tracing.Enabled,
		CORSOrigins:  cfg.CORS.AllowedOrigins,
		DocumentsDir: area.Root(),
		LogsDir:      cfg.Files.LogsDir,
		Checks:       stores.Checks,
		Verifier:     verifier,
		Resolver:     authService,
		AuthService:  authService,
		StudyService: studyService,
		Log:          lg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lg.Info("starting", "env", cfg.App.Environment)
	serveErr := bootstrap.Serve(ctx, srv, cfg.Server.ShutdownTimeout, lg)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := stores.Close(shutdownCtx); err != nil {
		lg.Error("store shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Error("tracing shutdown failed", "error", err)
	}

	if serveErr != nil {
		lg.Sync()
		os.Exit(1)
	}
}
