package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog/movie"
)

func TestBuildCondition(t *testing.T) {
	t.Run("empty selection yields no condition", func(t *testing.T) {
		_, ok, err := buildCondition(movie.BuildFilter(movie.Selection{Years: []string{}}))

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("single year", func(t *testing.T) {
		cond, ok, err := buildCondition(movie.BuildFilter(movie.Selection{Years: []string{"2020"}}))
		require.NoError(t, err)
		require.True(t, ok)

		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		require.NoError(t, err)

		assert.Contains(t, *expr.Filter(), " IN (")
		assert.NotContains(t, *expr.Filter(), "contains")
		assert.Equal(t, []string{"year"}, mapValues(expr.Names()))
	})

	t.Run("categories and years", func(t *testing.T) {
		sel := movie.Selection{Years: []string{"2019", "2020"}, Categories: []string{"horror", "comedy"}}
		cond, ok, err := buildCondition(movie.BuildFilter(sel))
		require.NoError(t, err)
		require.True(t, ok)

		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		require.NoError(t, err)

		filter := *expr.Filter()
		assert.Contains(t, filter, "contains (")
		assert.Contains(t, filter, ") OR (")
		assert.Contains(t, filter, ") AND (")
		assert.Contains(t, filter, " IN (")
		assert.ElementsMatch(t, []string{"categories", "year"}, mapValues(expr.Names()))
		var values map[string]string
		require.NoError(t, attributevalue.UnmarshalMap(expr.Values(), &values))
		assert.ElementsMatch(t, []string{"horror", "comedy", "2019", "2020"}, mapValues(values))
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, _, err := buildCondition(movie.Filter{Clauses: []movie.Clause{{Field: "year", Op: movie.Operator(7), Values: []string{"x"}}}})

		assert.Error(t, err)
	})
}

func TestMovieRepository_RequiresTable(t *testing.T) {
	repo := NewMovieRepository(dynamodb.New(dynamodb.Options{Region: "us-east-1"}), " ")

	_, err := repo.FindMovies(context.Background(), movie.Filter{}, movie.DefaultSort)
	assert.EqualError(t, err, "dynamodb: table name is required")

	_, err = repo.CreateMovie(context.Background(), movie.Movie{Name: "Dune"})
	assert.EqualError(t, err, "dynamodb: table name is required")
}

func TestMovieRepository_MalformedIDIsNotFound(t *testing.T) {
	repo := NewMovieRepository(dynamodb.New(dynamodb.Options{Region: "us-east-1"}), "movies")

	_, err := repo.FindMovieByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, movie.ErrMovieNotFound)
}

func TestMovieItem_ToMovie(t *testing.T) {
	m := movieItem{ID: "6f1c4c9e-7a43-4c5f-9a8c-1f2b3c4d5e6f", Name: "Dune", Year: "2021"}.toMovie()

	assert.Equal(t, "Dune", m.Name)
	assert.Equal(t, []string{}, m.Categories)
}

func mapValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
