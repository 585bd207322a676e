package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DBOptions struct {
	URI       string
	ConnectTO time.Duration
	PingTO    time.Duration
}

func (o *DBOptions) defaults() {
	if o.ConnectTO == 0 {
		o.ConnectTO = 5 * time.Second
	}
	if o.PingTO == 0 {
		o.PingTO = 2 * time.Second
	}
}

// OpenMongo connects to MongoDB and fails fast when the server is unreachable.
func OpenMongo(ctx context.Context, opt DBOptions) (*mongo.Client, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	opt.defaults()

	clientOpts := options.Client().
		ApplyURI(opt.URI).
		SetConnectTimeout(opt.ConnectTO)

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	client, err := mongo.Connect(cctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// OpenRedis connects to Redis. URI is the host:port address.
func OpenRedis(ctx context.Context, opt DBOptions, password string, db int) (*redis.Client, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}
	opt.defaults()

	client := redis.NewClient(&redis.Options{
		Addr:        opt.URI,
		Password:    password,
		DB:          db,
		DialTimeout: opt.ConnectTO,
	})

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
