package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviecatalog/movie"
)

type movieDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Slug       string             `bson:"slug"`
	Year       string             `bson:"year"`
	Categories []string           `bson:"categories"`
	Storyline  string             `bson:"storyline"`
}

type MovieRepository struct {
	collection *mongo.Collection
}

func NewMovieRepository(db *mongo.Database, collection string) *MovieRepository {
	return &MovieRepository{collection: db.Collection(collection)}
}

func (r *MovieRepository) FindMovies(ctx context.Context, f movie.Filter, sort []movie.SortKey) ([]movie.Movie, error) {
	filter, err := filterDocument(f)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sortDocument(sort)))
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movies: %w", err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode movies: %w", err)
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = doc.toMovie()
	}
	return movies, nil
}

// FindMovieByID treats an id that is not a valid ObjectID as unknown.
func (r *MovieRepository) FindMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var doc movieDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	if err != nil {
		return movie.Movie{}, fmt.Errorf("mongodb: find movie: %w", err)
	}
	return doc.toMovie(), nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (string, error) {
	doc := movieDocument{
		Name:       m.Name,
		Slug:       m.Slug,
		Year:       m.Year,
		Categories: movie.NonNilValues(m.Categories),
		Storyline:  m.Storyline,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongodb: insert movie: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// filterDocument translates f into a query document. On an array field $in
// matches when any element is in the set, so both operators map to $in.
func filterDocument(f movie.Filter) (bson.D, error) {
	filter := bson.D{}
	for _, c := range f.Clauses {
		switch c.Op {
		case movie.OpIn, movie.OpAnyOf:
			filter = append(filter, bson.E{Key: c.Field, Value: bson.D{{Key: "$in", Value: c.Values}}})
		default:
			return nil, fmt.Errorf("mongodb: unsupported operator %s", c.Op)
		}
	}
	return filter, nil
}

func sortDocument(keys []movie.SortKey) bson.D {
	sort := bson.D{}
	for _, k := range keys {
		direction := 1
		if k.Descending {
			direction = -1
		}
		sort = append(sort, bson.E{Key: k.Field, Value: direction})
	}
	return sort
}

func (d movieDocument) toMovie() movie.Movie {
	return movie.Movie{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Slug:       d.Slug,
		Year:       d.Year,
		Categories: movie.NonNilValues(d.Categories),
		Storyline:  d.Storyline,
	}
}
