package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PrincipalStoreFirestore = "firestore"
	PrincipalStorePostgres  = "postgres"
	PrincipalStoreRedis     = "redis"

	StudyStoreMongo  = "mongo"
	StudyStoreMemory = "memory"
)

type Config struct {
	Server     ServerConfig
	App        AppConfig
	Firebase   FirebaseConfig
	Mongo      MongoConfig
	Principals PrincipalsConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Files      FilesConfig
	CORS       CORSConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type AppConfig struct {
	Name         string
	Environment  string
	LogLevel     string
	Version      string
	StoreTimeout time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

// MongoConfig locates the study collection. Store selects the study
// backend; "memory" runs without a database for local development.
type MongoConfig struct {
	Store             string
	SeedFile          string
	URI               string
	Database          string
	StudiesCollection string
}

// PrincipalsConfig selects the backend holding admin principal records.
type PrincipalsConfig struct {
	Store      string
	Collection string
}

type PostgresConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FilesConfig struct {
	DocumentsDir string
	LogsDir      string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		App: AppConfig{
			Name:         getEnv("APP_NAME", "r2c-admin-backend"),
			Environment:  getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			StoreTimeout: getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "serviceAccountKey.json"),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Mongo: MongoConfig{
			Store:             strings.ToLower(getEnv("STUDY_STORE", StudyStoreMongo)),
			SeedFile:          getEnv("STUDY_SEED_FILE", ""),
			URI:               getEnv("MONGO_URI", getEnv("MONGOURI", "")),
			Database:          getEnv("MONGO_DATABASE", "research"),
			StudiesCollection: getEnv("MONGO_STUDIES_COLLECTION", "studies"),
		},
		Principals: PrincipalsConfig{
			Store:      strings.ToLower(getEnv("PRINCIPAL_STORE", PrincipalStoreFirestore)),
			Collection: getEnv("PRINCIPALS_COLLECTION", "users"),
		},
		Postgres: PostgresConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Files: FilesConfig{
			DocumentsDir: getEnv("DOCUMENTS_DIR", "documents"),
			LogsDir:      getEnv("LOGS_DIR", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Mongo.Store {
	case StudyStoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
	case StudyStoreMemory:
	default:
		return fmt.Errorf("unsupported STUDY_STORE %q", c.Mongo.Store)
	}

	switch c.Principals.Store {
	case PrincipalStoreFirestore:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
		}
	case PrincipalStorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DB_DSN is required when PRINCIPAL_STORE=postgres")
		}
	case PrincipalStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when PRINCIPAL_STORE=redis")
		}
	default:
		return fmt.Errorf("unsupported PRINCIPAL_STORE %q", c.Principals.Store)
	}

	return nil
}

// IsProduction reports whether diagnostic detail must be hidden from clients.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.App.Environment)
	return env == "production" || env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch valueStr {
	case "":
		return defaultValue
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
