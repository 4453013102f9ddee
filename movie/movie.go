package movie

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"moviecatalog/errs"
)

var ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")

// Years and Categories are the selectable values offered by the filter form.
var (
	Years      = []string{"2017", "2018", "2019", "2020", "2021"}
	Categories = []string{"action", "adventure", "sci-fi", "animation", "horror", "thriller", "fantasy", "mystery", "comedy", "family"}
)

type Movie struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Year       string   `json:"year"`
	Categories []string `json:"categories"`
	Storyline  string   `json:"storyline"`
}

// Draft is a submitted movie that has not been stored yet.
type Draft struct {
	Name       string
	Year       string
	Categories []string
	Storyline  string
}

// ToMovie shapes a draft into a storable record. Missing fields pass through
// empty.
func (d Draft) ToMovie() Movie {
	return Movie{
		Name:       d.Name,
		Slug:       Slugify(d.Name),
		Year:       d.Year,
		Categories: NormalizeValues(d.Categories),
		Storyline:  d.Storyline,
	}
}

// IsCategory reports whether c is one of the known categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a lowercase, hyphenated, URL-safe form of name.
// Accented letters are folded to their base letter. Slugify(Slugify(x)) ==
// Slugify(x).
func Slugify(name string) string {
	s := strings.ToLower(name)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
