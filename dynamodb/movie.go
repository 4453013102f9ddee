package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"moviecatalog/movie"
)

// MovieRepository stores movies in a table keyed by a string "id".
// Listing scans the table and sorts in process.
type MovieRepository struct {
	client *dynamodb.Client
	table  string
}

type movieItem struct {
	ID         string   `dynamodbav:"id"`
	Name       string   `dynamodbav:"name"`
	Slug       string   `dynamodbav:"slug"`
	Year       string   `dynamodbav:"year"`
	Categories []string `dynamodbav:"categories"`
	Storyline  string   `dynamodbav:"storyline"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieRepository) FindMovies(ctx context.Context, f movie.Filter, sort []movie.SortKey) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	input := &dynamodb.ScanInput{TableName: &r.table}
	cond, ok, err := buildCondition(f)
	if err != nil {
		return nil, err
	}
	if ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, fmt.Errorf("dynamodb: build filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	movies := []movie.Movie{}
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var items []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		for _, item := range items {
			movies = append(movies, item.toMovie())
		}
	}

	movie.SortMovies(movies, sort)
	return movies, nil
}

// FindMovieByID treats an id that is not a UUID as unknown.
func (r *MovieRepository) FindMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return item.toMovie(), nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (string, error) {
	if err := validateTable(r.table); err != nil {
		return "", err
	}

	item := movieItem{
		ID:         uuid.NewString(),
		Name:       m.Name,
		Slug:       m.Slug,
		Year:       m.Year,
		Categories: movie.NonNilValues(m.Categories),
		Storyline:  m.Storyline,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return "", fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return "", fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return item.ID, nil
}

// buildCondition returns false when f has no clauses.
func buildCondition(f movie.Filter) (expression.ConditionBuilder, bool, error) {
	var conds []expression.ConditionBuilder
	for _, c := range f.Clauses {
		if len(c.Values) == 0 {
			continue
		}
		name := expression.Name(c.Field)
		switch c.Op {
		case movie.OpIn:
			operands := make([]expression.OperandBuilder, len(c.Values))
			for i, v := range c.Values {
				operands[i] = expression.Value(v)
			}
			conds = append(conds, name.In(operands[0], operands[1:]...))
		case movie.OpAnyOf:
			alternatives := make([]expression.ConditionBuilder, len(c.Values))
			for i, v := range c.Values {
				alternatives[i] = expression.Contains(name, v)
			}
			conds = append(conds, joinConditions(alternatives, expression.Or))
		default:
			return expression.ConditionBuilder{}, false, fmt.Errorf("dynamodb: unsupported operator %s", c.Op)
		}
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false, nil
	}
	return joinConditions(conds, expression.And), true, nil
}

type conditionJoiner func(left, right expression.ConditionBuilder, other ...expression.ConditionBuilder) expression.ConditionBuilder

func joinConditions(conds []expression.ConditionBuilder, join conditionJoiner) expression.ConditionBuilder {
	if len(conds) == 1 {
		return conds[0]
	}
	return join(conds[0], conds[1], conds[2:]...)
}

func (i movieItem) toMovie() movie.Movie {
	return movie.Movie{
		ID:         i.ID,
		Name:       i.Name,
		Slug:       i.Slug,
		Year:       i.Year,
		Categories: movie.NonNilValues(i.Categories),
		Storyline:  i.Storyline,
	}
}
