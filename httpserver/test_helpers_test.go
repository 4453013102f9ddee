package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, sel movie.Selection) (movie.Catalog, error) {
	args := m.Called(ctx, sel)
	return args.Get(0).(movie.Catalog), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id string) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) AddMovie(ctx context.Context, d movie.Draft) (movie.Movie, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{AppEnv: "local"}
}

func newTestServer(svc movie.Service) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.MovieService = svc
	return server
}

func serve(server *httpserver.Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Result, out))
}

var heat = movie.Movie{
	ID:         "1",
	Name:       "Heat Wave",
	Slug:       "heat-wave",
	Year:       "2019",
	Categories: []string{"action", "thriller"},
	Storyline:  "Two crews collide.",
}
