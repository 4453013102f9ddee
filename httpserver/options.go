package httpserver

import (
	"errors"

	"go.uber.org/zap"

	"moviecatalog/movie"
	"moviecatalog/pkg/config"
)

type Options func(s *Server) error

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l == nil {
			return errors.New("httpserver: nil logger")
		}
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

// New builds the default server for cfg and applies options on top.
func New(cfg *config.Config, options ...Options) (*Server, error) {
	if cfg == nil {
		cfg = config.Empty
	}
	s := Default(cfg)
	for _, fn := range options {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
