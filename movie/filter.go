package movie

import (
	"sort"
	"strings"
)

// Field names shared by every store adapter.
const (
	FieldName       = "name"
	FieldYear       = "year"
	FieldCategories = "categories"
)

type Operator int

const (
	// OpIn matches when the record's scalar value is one of Values.
	OpIn Operator = iota
	// OpAnyOf matches when the record's list shares at least one entry with Values.
	OpAnyOf
)

func (op Operator) String() string {
	switch op {
	case OpIn:
		return "in"
	case OpAnyOf:
		return "any_of"
	default:
		return "unknown"
	}
}

type Clause struct {
	Field  string
	Op     Operator
	Values []string
}

// Filter is a conjunction of clauses. An empty filter matches every record.
type Filter struct {
	Clauses []Clause
}

// BuildFilter turns a selection into a filter. A clause is only emitted for a
// non-empty selection: an empty "in {}" clause would match nothing.
func BuildFilter(sel Selection) Filter {
	var f Filter
	if categories := NormalizeValues(sel.Categories); len(categories) > 0 {
		f.Clauses = append(f.Clauses, Clause{Field: FieldCategories, Op: OpAnyOf, Values: categories})
	}
	if years := NormalizeValues(sel.Years); len(years) > 0 {
		f.Clauses = append(f.Clauses, Clause{Field: FieldYear, Op: OpIn, Values: years})
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return len(f.Clauses) == 0
}

// Match evaluates the filter against m in process.
func (f Filter) Match(m Movie) bool {
	for _, c := range f.Clauses {
		if !c.match(m) {
			return false
		}
	}
	return true
}

func (c Clause) match(m Movie) bool {
	switch c.Op {
	case OpIn:
		return contains(c.Values, fieldValue(m, c.Field))
	case OpAnyOf:
		for _, v := range fieldValues(m, c.Field) {
			if contains(c.Values, v) {
				return true
			}
		}
	}
	return false
}

func fieldValue(m Movie, field string) string {
	switch field {
	case FieldName:
		return m.Name
	case FieldYear:
		return m.Year
	}
	return ""
}

func fieldValues(m Movie, field string) []string {
	if field == FieldCategories {
		return m.Categories
	}
	return []string{fieldValue(m, field)}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

type SortKey struct {
	Field      string
	Descending bool
}

// DefaultSort orders the listing newest year first, then by name.
var DefaultSort = []SortKey{
	{Field: FieldYear, Descending: true},
	{Field: FieldName},
}

// SortMovies sorts movies in place by keys. The sort is stable.
func SortMovies(movies []Movie, keys []SortKey) {
	sort.SliceStable(movies, func(i, j int) bool {
		for _, k := range keys {
			cmp := strings.Compare(fieldValue(movies[i], k.Field), fieldValue(movies[j], k.Field))
			if cmp == 0 {
				continue
			}
			if k.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}
