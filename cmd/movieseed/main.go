package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/storage"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath  string
		zipURL   string
		limit    int
		allYears bool
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.BoolVar(&allYears, "all-years", false, "Import movies outside the catalog years too")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open movie store", zap.Error(err))
	}
	defer func() { _ = closeStore(ctx) }()

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			log.Fatalw("failed to download dataset", zap.Error(err))
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalw("cannot open dataset", zap.Error(err))
	}
	defer file.Close()

	count, err := importMovies(ctx, movie.NewUsecase(repo), file, importOptions{
		Limit:    limit,
		AllYears: allYears,
	})
	if err != nil {
		log.Fatalw("import failed", zap.Int("rows", count), zap.Error(err))
	}

	log.Infow("import completed", zap.Int("rows", count), zap.String("driver", cfg.DB.Driver))
}
