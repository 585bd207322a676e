package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/r2c-platform/admin-backend/config"
)

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), &config.PostgresConfig{})
	assert.EqualError(t, err, "DB_DSN is required")
}

func TestOpenRejectsMalformedDSN(t *testing.T) {
	_, err := Open(context.Background(), &config.PostgresConfig{DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "parse dsn")
}

func TestCloseNil(t *testing.T) {
	var d *DB
	assert.NotPanics(t, d.Close)
}
