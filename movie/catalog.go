package movie

const (
	TitleNoResults = "No movies were found"
	TitleResults   = "We found these movies"
	TitleAdded     = "Successfully added the movie"
)

// Catalog is what the listing page renders: the results, the filter options
// and the visitor's current selection.
type Catalog struct {
	Title              string   `json:"title"`
	Movies             []Movie  `json:"movies"`
	Years              []string `json:"years"`
	Categories         []string `json:"categories"`
	SelectedYears      []string `json:"selectedYears"`
	SelectedCategories []string `json:"selectedCategories"`
}

func NewCatalog(movies []Movie, sel Selection) Catalog {
	if movies == nil {
		movies = []Movie{}
	}

	title := TitleResults
	if len(movies) == 0 {
		title = TitleNoResults
	}

	return Catalog{
		Title:              title,
		Movies:             movies,
		Years:              Years,
		Categories:         Categories,
		SelectedYears:      NormalizeValues(sel.Years),
		SelectedCategories: NormalizeValues(sel.Categories),
	}
}

// IsSelectedYear and IsSelectedCategory keep filter checkboxes ticked across
// a round trip.
func (c Catalog) IsSelectedYear(year string) bool {
	return contains(c.SelectedYears, year)
}

func (c Catalog) IsSelectedCategory(category string) bool {
	return contains(c.SelectedCategories, category)
}
