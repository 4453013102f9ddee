package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"moviecatalog/movie"
)

// genreCategories maps MovieLens genres onto catalog categories. Genres
// without a counterpart are dropped.
var genreCategories = map[string]string{
	"action":    "action",
	"adventure": "adventure",
	"sci-fi":    "sci-fi",
	"animation": "animation",
	"horror":    "horror",
	"thriller":  "thriller",
	"fantasy":   "fantasy",
	"mystery":   "mystery",
	"comedy":    "comedy",
	"children":  "family",
}

var titleYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

type importOptions struct {
	Limit    int
	AllYears bool
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

// importMovies adds every usable row of a MovieLens movies.csv through svc
// and returns how many were added. Rows whose slug and year already exist
// in the catalog are skipped, so re-running an import adds nothing.
func importMovies(ctx context.Context, svc movie.Service, r io.Reader, opts importOptions) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	seen, err := existingMovies(ctx, svc)
	if err != nil {
		return 0, err
	}

	count := 0
	for opts.Limit <= 0 || count < opts.Limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		draft, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok || (!opts.AllYears && !isCatalogYear(draft.Year)) {
			continue
		}
		key := movieKey(draft.ToMovie())
		if _, dup := seen[key]; dup {
			continue
		}

		if _, err := svc.AddMovie(ctx, draft); err != nil {
			return count, fmt.Errorf("add %q: %w", draft.Name, err)
		}
		seen[key] = struct{}{}
		count++
	}

	return count, nil
}

func existingMovies(ctx context.Context, svc movie.Service) (map[string]struct{}, error) {
	catalog, err := svc.ListMovies(ctx, movie.Selection{})
	if err != nil {
		return nil, fmt.Errorf("list existing movies: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Movies))
	for _, m := range catalog.Movies {
		seen[movieKey(m)] = struct{}{}
	}
	return seen, nil
}

func movieKey(m movie.Movie) string {
	return m.Slug + "|" + m.Year
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (movie.Draft, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movie.Draft{}, false
	}

	name, year := splitTitle(strings.TrimSpace(record[idxTitle]))
	if name == "" {
		return movie.Draft{}, false
	}

	return movie.Draft{
		Name:       name,
		Year:       year,
		Categories: mapGenres(record[idxGenres]),
	}, true
}

// splitTitle turns "Heat (1995)" into "Heat" and "1995".
func splitTitle(title string) (string, string) {
	m := titleYear.FindStringSubmatch(title)
	if m == nil {
		return title, ""
	}
	return m[1], m[2]
}

func mapGenres(genres string) []string {
	categories := make([]string, 0, 4)
	for _, g := range strings.Split(genres, "|") {
		if c, ok := genreCategories[strings.ToLower(strings.TrimSpace(g))]; ok {
			categories = append(categories, c)
		}
	}
	return movie.NormalizeValues(categories)
}

func isCatalogYear(year string) bool {
	for _, y := range movie.Years {
		if y == year {
			return true
		}
	}
	return false
}
