package movie

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NormalizeValues returns the canonical list form of a request parameter.
// A nil input yields an empty list. Blank entries and repeats are dropped,
// first-seen order is kept.
func NormalizeValues(raw []string) []string {
	values := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// NonNilValues returns values, or an empty list when values is nil, so
// stored and decoded categories always encode as [].
func NonNilValues(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// StringList is a list of strings that decodes from a JSON string, a JSON
// array of strings or null.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*l = NormalizeValues([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = NormalizeValues(many)
	return nil
}

// Selection is the set of years and categories a visitor filters on.
type Selection struct {
	Years      []string
	Categories []string
}

func NewSelection(years, categories []string) Selection {
	return Selection{
		Years:      NormalizeValues(years),
		Categories: NormalizeValues(categories),
	}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.Categories) == 0
}
