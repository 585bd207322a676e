package bootstrap

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"

	"github.com/r2c-platform/admin-backend/config"
	httpapi "github.com/r2c-platform/admin-backend/internal/api/http"
	authrepo "github.com/r2c-platform/admin-backend/internal/auth/repository"
	"github.com/r2c-platform/admin-backend/internal/db"
	"github.com/r2c-platform/admin-backend/internal/logger"
	studydomain "github.com/r2c-platform/admin-backend/internal/studies/domain"
	studyrepo "github.com/r2c-platform/admin-backend/internal/studies/repository"
)

// Stores holds the repositories selected by configuration together with the
// clients backing them.
type Stores struct {
	Principals authrepo.PrincipalRepository
	Studies    studyrepo.StudyRepository
	Checks     map[string]httpapi.Pinger

	closers []func(context.Context) error
}

// Close releases every client in reverse opening order.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func OpenStores(ctx context.Context, cfg *config.Config, app *firebase.App, log *logger.Logger) (*Stores, error) {
	s := &Stores{Checks: map[string]httpapi.Pinger{}}

	if err := s.openStudies(ctx, cfg, log); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	if err := s.openPrincipals(ctx, cfg, app, log); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Stores) openStudies(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	switch cfg.Mongo.Store {
	case config.StudyStoreMemory:
		var seed []studydomain.Study
		if cfg.Mongo.SeedFile != "" {
			var err error
			if seed, err = studyrepo.LoadSeedFile(cfg.Mongo.SeedFile); err != nil {
				return err
			}
		}
		log.Warn("using in-memory study store; data is not persisted", "seeded", len(seed))
		s.Studies = studyrepo.NewMemoryStudyRepository(seed...)
		return nil
	case config.StudyStoreMongo:
		client, err := OpenMongo(ctx, DBOptions{URI: cfg.Mongo.URI})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, client.Disconnect)

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.StudiesCollection)
		repo := studyrepo.NewMongoStudyRepository(coll)
		s.Studies = repo
		s.Checks["mongo"] = repo
		log.Info("MongoDB connected", "database", cfg.Mongo.Database, "collection", cfg.Mongo.StudiesCollection)
		return nil
	default:
		return fmt.Errorf("unsupported STUDY_STORE %q", cfg.Mongo.Store)
	}
}

func (s *Stores) openPrincipals(ctx context.Context, cfg *config.Config, app *firebase.App, log *logger.Logger) error {
	switch cfg.Principals.Store {
	case config.PrincipalStoreFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("firestore client: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.Principals = authrepo.NewFirestorePrincipalRepository(client, cfg.Principals.Collection)
		log.Info("principal store: firestore", "collection", cfg.Principals.Collection)

	case config.PrincipalStorePostgres:
		pg, err := db.Open(ctx, &cfg.Postgres)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func(context.Context) error { pg.Close(); return nil })
		s.Principals = authrepo.NewPostgresPrincipalRepository(pg.SQL)
		s.Checks["postgres"] = pg
		log.Info("principal store: postgres")

	case config.PrincipalStoreRedis:
		client, err := OpenRedis(ctx, DBOptions{URI: cfg.Redis.Addr}, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.Principals = authrepo.NewRedisPrincipalRepository(client)
		s.Checks["redis"] = httpapi.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		log.Info("principal store: redis", "addr", cfg.Redis.Addr)

	default:
		return fmt.Errorf("unsupported PRINCIPAL_STORE %q", cfg.Principals.Store)
	}
	return nil
}
