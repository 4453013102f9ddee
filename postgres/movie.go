package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviecatalog/movie"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID         uint           `gorm:"primaryKey"`
	Name       string         `gorm:"not null;default:''"`
	Slug       string         `gorm:"not null;default:''"`
	Year       string         `gorm:"not null;default:''"`
	Categories pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Storyline  string         `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// columns whitelists the fields a filter or sort key may reference.
var columns = map[string]string{
	movie.FieldName:       "name",
	movie.FieldYear:       "year",
	movie.FieldCategories: "categories",
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindMovies(ctx context.Context, f movie.Filter, sort []movie.SortKey) ([]movie.Movie, error) {
	tx, err := applyFilter(r.db.WithContext(ctx).Model(&MovieModel{}), f)
	if err != nil {
		return nil, err
	}
	tx, err = applySort(tx, sort)
	if err != nil {
		return nil, err
	}

	var models []MovieModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

func (r *MovieRepository) FindMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	key, err := strconv.ParseUint(id, 10, 63)
	if err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var model MovieModel
	err = r.db.WithContext(ctx).First(&model, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	if err != nil {
		return movie.Movie{}, err
	}
	return model.toMovie(), nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (string, error) {
	model := MovieModel{
		Name:       m.Name,
		Slug:       m.Slug,
		Year:       m.Year,
		Categories: pq.StringArray(movie.NonNilValues(m.Categories)),
		Storyline:  m.Storyline,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(model.ID), 10), nil
}

func applyFilter(tx *gorm.DB, f movie.Filter) (*gorm.DB, error) {
	for _, c := range f.Clauses {
		column, ok := columns[c.Field]
		if !ok {
			return nil, fmt.Errorf("postgres: unknown filter field %q", c.Field)
		}
		switch c.Op {
		case movie.OpIn:
			tx = tx.Where(column+" IN ?", c.Values)
		case movie.OpAnyOf:
			tx = tx.Where(column+" && ?::text[]", pq.StringArray(c.Values))
		default:
			return nil, fmt.Errorf("postgres: unsupported operator %s", c.Op)
		}
	}
	return tx, nil
}

func applySort(tx *gorm.DB, keys []movie.SortKey) (*gorm.DB, error) {
	for _, k := range keys {
		column, ok := columns[k.Field]
		if !ok {
			return nil, fmt.Errorf("postgres: unknown sort field %q", k.Field)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: k.Descending})
	}
	return tx, nil
}

func (m MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ID:         strconv.FormatUint(uint64(m.ID), 10),
		Name:       m.Name,
		Slug:       m.Slug,
		Year:       m.Year,
		Categories: movie.NonNilValues(m.Categories),
		Storyline:  m.Storyline,
	}
}
