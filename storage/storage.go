package storage

import (
	"context"
	"fmt"
	"strconv"

	"moviecatalog/dynamodb"
	"moviecatalog/memory"
	"moviecatalog/mongodb"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
)

// Closer releases whatever connection Open acquired.
type Closer func(ctx context.Context) error

func noopCloser(context.Context) error { return nil }

// Open connects to the store selected by DB_DRIVER and returns the movie
// repository backed by it.
func Open(ctx context.Context, cfg *config.Config) (movie.Repository, Closer, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewMovieRepository(db), func(context.Context) error { return postgres.Close(db) }, nil

	case config.DriverMongoDB:
		db, err := mongodb.NewDatabase(ctx, mongodb.Options{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		return mongodb.NewMovieRepository(db, cfg.Mongo.Collection), db.Client().Disconnect, nil

	case config.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open dynamodb: %w", err)
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable), noopCloser, nil

	case config.DriverMemory:
		return memory.NewMovieRepository(), noopCloser, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.DB.Driver)
}
