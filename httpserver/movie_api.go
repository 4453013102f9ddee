package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"moviecatalog/errs"
	"moviecatalog/movie"
)

func (s *Server) RegisterMovieAPIRoutes(g *echo.Group) {
	g.GET("/movies", s.handleAPIListMovies)
	g.POST("/movies", s.handleAPIAddMovie)
	g.GET("/movies/:movieId", s.handleAPIGetMovie)
}

// handleAPIListMovies godoc
// @Summary List Movies
// @Description List movies filtered by years and categories, newest first
// @Tags movies
// @Produce json
// @Param years query []string false "Years to include" collectionFormat(multi)
// @Param categories query []string false "Categories to include" collectionFormat(multi)
// @Success 200 {object} APIResponse{result=movie.Catalog}
// @Failure 500 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleAPIListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	catalog, err := s.MovieService.ListMovies(c.Request().Context(), selectionFromQuery(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, catalog)
}

// handleAPIGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param movieId path string true "Movie ID"
// @Success 200 {object} APIResponse{result=movie.Movie}
// @Failure 404 {object} APIResponse
// @Router /api/movies/{movieId} [get]
func (s *Server) handleAPIGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("movieId"))
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, m)
}

// handleAPIAddMovie godoc
// @Summary Add Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param request body AddMovieRequest true "Movie"
// @Success 201 {object} APIResponse{result=movie.Movie}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleAPIAddMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	req.Categories = movie.NormalizeValues(req.Categories)
	if err := c.Validate(&req); err != nil {
		return err
	}

	added, err := s.MovieService.AddMovie(c.Request().Context(), req.ToDraft())
	if err != nil {
		return err
	}
	s.Logger.Infow("movie added",
		zap.String("movie_id", added.ID),
		zap.String("request_id", requestID(c)),
	)
	return writeSuccess(c, http.StatusCreated, added)
}
