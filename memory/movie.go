package memory

import (
	"context"
	"strconv"
	"sync"

	"moviecatalog/movie"
)

// MovieRepository keeps movies in process. It serves local development and
// tests; contents are lost on restart.
type MovieRepository struct {
	mu     sync.RWMutex
	movies []movie.Movie
	nextID int
}

func NewMovieRepository(seed ...movie.Movie) *MovieRepository {
	r := &MovieRepository{}
	for _, m := range seed {
		_, _ = r.CreateMovie(context.Background(), m)
	}
	return r
}

func (r *MovieRepository) FindMovies(ctx context.Context, f movie.Filter, sort []movie.SortKey) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]movie.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if f.Match(m) {
			movies = append(movies, clone(m))
		}
	}
	movie.SortMovies(movies, sort)
	return movies, nil
}

func (r *MovieRepository) FindMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return movie.Movie{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return movie.Movie{}, movie.ErrMovieNotFound
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m = clone(m)
	m.ID = strconv.Itoa(r.nextID)
	r.movies = append(r.movies, m)
	return m.ID, nil
}

func clone(m movie.Movie) movie.Movie {
	m.Categories = append([]string{}, m.Categories...)
	return m
}
