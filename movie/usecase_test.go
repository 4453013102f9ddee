// nolint: funlen
package movie_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviecatalog/errs"
	"moviecatalog/memory"
	"moviecatalog/movie"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindMovies(ctx context.Context, f movie.Filter, sort []movie.SortKey) ([]movie.Movie, error) {
	args := m.Called(ctx, f, sort)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) CreateMovie(ctx context.Context, mv movie.Movie) (string, error) {
	args := m.Called(ctx, mv)
	return args.String(0), args.Error(1)
}

func TestListMovies(t *testing.T) {
	t.Run("should pass built filter and default sort to the repository", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		sel := movie.Selection{Years: []string{"2020"}, Categories: []string{"horror"}}
		found := []movie.Movie{{ID: "1", Name: "Host", Year: "2020", Categories: []string{"horror"}}}
		r.On("FindMovies", mock.Anything, movie.BuildFilter(sel), movie.DefaultSort).Return(found, nil).Once()

		c, err := uc.ListMovies(context.Background(), sel)

		require.NoError(t, err)
		assert.Equal(t, found, c.Movies)
		assert.Equal(t, movie.TitleResults, c.Title)
		assert.Equal(t, []string{"2020"}, c.SelectedYears)
		r.AssertExpectations(t)
	})

	t.Run("should surface repository failures", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		storeErr := errors.New("connection reset")
		r.On("FindMovies", mock.Anything, movie.Filter{}, movie.DefaultSort).Return([]movie.Movie(nil), storeErr).Once()

		_, err := uc.ListMovies(context.Background(), movie.Selection{})

		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
		r.AssertExpectations(t)
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("should return the movie", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := movie.Movie{ID: "abc", Name: "Soul"}
		r.On("FindMovieByID", mock.Anything, "abc").Return(m, nil).Once()

		got, err := uc.GetMovie(context.Background(), " abc ")

		require.NoError(t, err)
		assert.Equal(t, m, got)
		r.AssertExpectations(t)
	})

	t.Run("should not hit the repository for a blank id", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)

		_, err := uc.GetMovie(context.Background(), "  ")

		assert.Equal(t, movie.ErrMovieNotFound, err)
		r.AssertNotCalled(t, "FindMovieByID")
	})
}

func TestAddMovie(t *testing.T) {
	t.Run("should store the mapped record and return it with its id", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		d := movie.Draft{Name: "The Matrix", Year: "1999", Categories: []string{"sci-fi"}}
		r.On("CreateMovie", mock.Anything, d.ToMovie()).Return("7", nil).Once()

		m, err := uc.AddMovie(context.Background(), d)

		require.NoError(t, err)
		assert.Equal(t, "7", m.ID)
		assert.Equal(t, "the-matrix", m.Slug)
		r.AssertExpectations(t)
	})

	t.Run("should fail when the store rejects the write", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		r.On("CreateMovie", mock.Anything, mock.Anything).Return("", errors.New("write timeout")).Once()

		_, err := uc.AddMovie(context.Background(), movie.Draft{Name: "Tenet"})

		assert.Error(t, err)
		r.AssertExpectations(t)
	})
}

func TestCatalogScenarios(t *testing.T) {
	newUsecase := func() *movie.Usecase {
		return movie.NewUsecase(memory.NewMovieRepository(
			movie.Movie{Name: "Host", Slug: "host", Year: "2020", Categories: []string{"horror"}},
			movie.Movie{Name: "Bad Boys for Life", Slug: "bad-boys-for-life", Year: "2019", Categories: []string{"action"}},
		))
	}

	t.Run("years and categories narrow the listing", func(t *testing.T) {
		uc := newUsecase()

		c, err := uc.ListMovies(context.Background(), movie.NewSelection([]string{"2020"}, []string{"horror"}))

		require.NoError(t, err)
		require.Len(t, c.Movies, 1)
		assert.Equal(t, "Host", c.Movies[0].Name)
	})

	t.Run("no parameters list the whole sorted collection", func(t *testing.T) {
		uc := newUsecase()

		c, err := uc.ListMovies(context.Background(), movie.NewSelection(nil, nil))

		require.NoError(t, err)
		require.Len(t, c.Movies, 2)
		assert.Equal(t, "Host", c.Movies[0].Name)
		assert.Equal(t, "Bad Boys for Life", c.Movies[1].Name)
	})

	t.Run("unknown id takes the not found path", func(t *testing.T) {
		uc := newUsecase()

		m, err := uc.GetMovie(context.Background(), "999")

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		assert.Equal(t, movie.Movie{}, m)
	})

	t.Run("added movie shows up in the listing", func(t *testing.T) {
		uc := newUsecase()

		added, err := uc.AddMovie(context.Background(), movie.Draft{Name: "The Matrix", Year: "2021", Categories: []string{"sci-fi"}})
		require.NoError(t, err)
		c, err := uc.ListMovies(context.Background(), movie.Selection{})

		require.NoError(t, err)
		assert.Equal(t, "the-matrix", added.Slug)
		require.Len(t, c.Movies, 3)
		assert.Equal(t, added, c.Movies[0])
	})
}
