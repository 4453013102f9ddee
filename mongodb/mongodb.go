package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Options struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// NewDatabase connects to the server at opts.URI and returns a handle on
// opts.Database. The caller owns the client and must disconnect it.
func NewDatabase(ctx context.Context, opts Options) (*mongo.Database, error) {
	if strings.TrimSpace(opts.URI) == "" {
		return nil, errors.New("mongodb: uri is required")
	}
	if strings.TrimSpace(opts.Database) == "" {
		return nil, errors.New("mongodb: database is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return client.Database(opts.Database), nil
}
