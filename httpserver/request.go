package httpserver

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"moviecatalog/errs"
	"moviecatalog/movie"
)

// AddMovieForm is the urlencoded body posted by the add movie page.
type AddMovieForm struct {
	Name       string   `json:"name"`
	Year       string   `json:"year"`
	Categories []string `json:"categories" validate:"dive,category"`
	Storyline  string   `json:"storyline"`
}

func (f AddMovieForm) ToDraft() movie.Draft {
	return movie.Draft{
		Name:       strings.TrimSpace(f.Name),
		Year:       strings.TrimSpace(f.Year),
		Categories: f.Categories,
		Storyline:  strings.TrimSpace(f.Storyline),
	}
}

func bindAddMovieForm(c echo.Context) (AddMovieForm, error) {
	params, err := c.FormParams()
	if err != nil {
		return AddMovieForm{}, errs.Errorf(errs.EINVALID, "invalid form body")
	}
	return AddMovieForm{
		Name:       params.Get("name"),
		Year:       params.Get("year"),
		Categories: movie.NormalizeValues(listValues(params, "categories")),
		Storyline:  params.Get("storyline"),
	}, nil
}

// AddMovieRequest is the JSON body of POST /api/movies.
type AddMovieRequest struct {
	Name       string           `json:"name"`
	Year       YearValue        `json:"year"`
	Categories movie.StringList `json:"categories" validate:"dive,category"`
	Storyline  string           `json:"storyline"`
}

func (r AddMovieRequest) ToDraft() movie.Draft {
	return movie.Draft{
		Name:       strings.TrimSpace(r.Name),
		Year:       strings.TrimSpace(string(r.Year)),
		Categories: r.Categories,
		Storyline:  strings.TrimSpace(r.Storyline),
	}
}

// YearValue accepts a year sent either as a JSON string or a number.
type YearValue string

func (y *YearValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = YearValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = YearValue(n.String())
	return nil
}

func selectionFromQuery(c echo.Context) movie.Selection {
	q := c.QueryParams()
	return movie.NewSelection(listValues(q, "years"), listValues(q, "categories"))
}

// listValues collects both key and key[] so either form encoding works.
func listValues(values url.Values, key string) []string {
	out := make([]string, 0, len(values[key])+len(values[key+"[]"]))
	out = append(out, values[key]...)
	return append(out, values[key+"[]"]...)
}
