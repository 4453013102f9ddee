package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog/memory"
	"moviecatalog/movie"
)

func memoryContext(repo *memory.MovieRepository) *commandContext {
	return newCommandContext(func(context.Context) (movie.Service, func(), error) {
		return movie.NewUsecase(repo), func() {}, nil
	})
}

func runCLI(t *testing.T, ctx *commandContext, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seededRepo() *memory.MovieRepository {
	return memory.NewMovieRepository(
		movie.Movie{Name: "Old Guard", Slug: "old-guard", Year: "2020", Categories: []string{"action", "fantasy"}},
		movie.Movie{Name: "Host", Slug: "host", Year: "2020", Categories: []string{"horror"}},
		movie.Movie{Name: "Knives Out", Slug: "knives-out", Year: "2019", Categories: []string{"mystery", "comedy"}},
	)
}

func TestListCommand(t *testing.T) {
	t.Run("table output", func(t *testing.T) {
		out, err := runCLI(t, memoryContext(seededRepo()), "list", "--category", "horror,mystery")

		require.NoError(t, err)
		assert.Contains(t, out, movie.TitleResults)
		assert.Contains(t, out, "Host")
		assert.Contains(t, out, "Knives Out")
		assert.NotContains(t, out, "Old Guard")
	})

	t.Run("empty result", func(t *testing.T) {
		out, err := runCLI(t, memoryContext(seededRepo()), "list", "-y", "2017")

		require.NoError(t, err)
		assert.Equal(t, movie.TitleNoResults+"\n", out)
	})

	t.Run("json output", func(t *testing.T) {
		out, err := runCLI(t, memoryContext(seededRepo()), "--json", "list", "--year", "2020")

		require.NoError(t, err)
		var catalog movie.Catalog
		require.NoError(t, json.Unmarshal([]byte(out), &catalog))
		require.Len(t, catalog.Movies, 2)
		assert.Equal(t, "Host", catalog.Movies[0].Name)
		assert.Equal(t, []string{"2020"}, catalog.SelectedYears)
	})
}

func TestShowCommand(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		out, err := runCLI(t, memoryContext(seededRepo()), "show", "3")

		require.NoError(t, err)
		assert.Contains(t, out, "Knives Out")
		assert.Contains(t, out, "mystery, comedy")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := runCLI(t, memoryContext(seededRepo()), "show", "99")

		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})

	t.Run("requires an id", func(t *testing.T) {
		_, err := runCLI(t, memoryContext(seededRepo()), "show")

		assert.Error(t, err)
	})
}

func TestAddCommand(t *testing.T) {
	t.Run("adds and prints the movie", func(t *testing.T) {
		repo := seededRepo()

		out, err := runCLI(t, memoryContext(repo), "add", "Soul", "-y", "2020", "-c", "animation", "-c", "family")

		require.NoError(t, err)
		assert.Contains(t, out, movie.TitleAdded)
		assert.Contains(t, out, "soul")
		got, err := repo.FindMovieByID(context.Background(), "4")
		require.NoError(t, err)
		assert.Equal(t, []string{"animation", "family"}, got.Categories)
	})

	t.Run("rejects unknown categories before touching the store", func(t *testing.T) {
		opened := false
		ctx := newCommandContext(func(context.Context) (movie.Service, func(), error) {
			opened = true
			return nil, nil, errors.New("should not open")
		})

		_, err := runCLI(t, ctx, "add", "Soul", "-c", "western")

		assert.EqualError(t, err, `application error: code=invalid message=unknown category "western"`)
		assert.False(t, opened)
	})

	t.Run("store errors surface", func(t *testing.T) {
		ctx := newCommandContext(func(context.Context) (movie.Service, func(), error) {
			return nil, nil, errors.New("dial tcp: refused")
		})

		_, err := runCLI(t, ctx, "add", "Soul")

		assert.EqualError(t, err, "dial tcp: refused")
	})
}
