package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"moviecatalog/movie"
)

func (s *Server) RegisterMovieRoutes() {
	s.Router.GET("/", s.handleListMovies)
	s.Router.GET("/movies", s.handleListMovies)
	s.Router.GET("/movies/add", s.handleAddMovieForm)
	s.Router.POST("/movies/add", s.handleAddMovie)
	s.Router.GET("/movies/:movieId", s.handleMovieDetails)
	// The slug only makes the URL readable, the id decides the lookup.
	s.Router.GET("/movies/:movieId/:slug", s.handleMovieDetails)
}

func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	catalog, err := s.MovieService.ListMovies(c.Request().Context(), selectionFromQuery(c))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "movielist", catalog)
}

func (s *Server) handleMovieDetails(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("movieId"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "moviedetails", detailPage{
		Title: "Moviedetails for " + m.Name,
		Movie: m,
	})
}

func (s *Server) handleAddMovieForm(c echo.Context) error {
	return c.Render(http.StatusOK, "addmovie", formPage{
		Title:      "Add a movie",
		Years:      movie.Years,
		Categories: movie.Categories,
	})
}

func (s *Server) handleAddMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errServiceNotConfigured
	}

	form, err := bindAddMovieForm(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	ctx := c.Request().Context()
	added, err := s.MovieService.AddMovie(ctx, form.ToDraft())
	if err != nil {
		return err
	}
	s.Logger.Infow("movie added",
		zap.String("movie_id", added.ID),
		zap.String("slug", added.Slug),
		zap.String("request_id", requestID(c)),
	)

	catalog, err := s.MovieService.ListMovies(ctx, movie.Selection{})
	if err != nil {
		return err
	}
	catalog.Title = movie.TitleAdded
	return c.Render(http.StatusOK, "movielist", catalog)
}
