package movie

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	ListMovies(ctx context.Context, sel Selection) (Catalog, error)
	GetMovie(ctx context.Context, id string) (Movie, error)
	AddMovie(ctx context.Context, d Draft) (Movie, error)
}

type Repository interface {
	FindMovies(ctx context.Context, f Filter, sort []SortKey) ([]Movie, error)
	// FindMovieByID returns ErrMovieNotFound when id is malformed or unknown.
	FindMovieByID(ctx context.Context, id string) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (string, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListMovies(ctx context.Context, sel Selection) (Catalog, error) {
	sel = NewSelection(sel.Years, sel.Categories)

	movies, err := uc.r.FindMovies(ctx, BuildFilter(sel), DefaultSort)
	if err != nil {
		return Catalog{}, fmt.Errorf("find movies: %w", err)
	}

	return NewCatalog(movies, sel), nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id string) (Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Movie{}, ErrMovieNotFound
	}
	return uc.r.FindMovieByID(ctx, id)
}

func (uc *Usecase) AddMovie(ctx context.Context, d Draft) (Movie, error) {
	m := d.ToMovie()

	id, err := uc.r.CreateMovie(ctx, m)
	if err != nil {
		return Movie{}, fmt.Errorf("create movie: %w", err)
	}

	m.ID = id
	return m, nil
}
