package gallery

import (
	"fmt"

	"github.com/diogo-costa-silva/portfolio/models"
)

// FacetCount is one dropdown option with the number of visible projects
// carrying it.
type FacetCount struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Chip is one removable applied-filter token.
type Chip struct {
	Dimension Dimension `json:"dimension"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
}

// CategoryFacets counts visible projects per category, in display order.
func CategoryFacets(visible VisibleSet, state FilterState, lang Language) []FacetCount {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, p := range visible.Projects {
		counts[p.Category]++
	}

	out := make([]FacetCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, FacetCount{
			Key:      string(c),
			Label:    lang.CategoryLabel(c),
			Count:    counts[c],
			Selected: state.HasCategory(c),
		})
	}
	return out
}

// StatusFacets counts visible projects per status, in display order.
func StatusFacets(visible VisibleSet, state FilterState, lang Language) []FacetCount {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, p := range visible.Projects {
		counts[p.Status]++
	}

	out := make([]FacetCount, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, FacetCount{
			Key:      string(s),
			Label:    lang.StatusLabel(s),
			Count:    counts[s],
			Selected: state.HasStatus(s),
		})
	}
	return out
}

// Chips lists one chip per non-default selection: categories, statuses,
// technologies, then real-only and search.
func Chips(state FilterState, lang Language) []Chip {
	var chips []Chip
	for _, c := range state.Categories {
		chips = append(chips, Chip{Dimension: DimensionCategory, Value: string(c), Label: lang.CategoryLabel(c)})
	}
	for _, s := range state.Statuses {
		chips = append(chips, Chip{Dimension: DimensionStatus, Value: string(s), Label: lang.StatusLabel(s)})
	}
	for _, tech := range state.Technologies {
		chips = append(chips, Chip{Dimension: DimensionTechnology, Value: tech, Label: tech})
	}
	if state.RealOnly {
		chips = append(chips, Chip{Dimension: DimensionRealOnly, Value: "true", Label: lang.labels().realOnly})
	}
	if state.SearchTerm != "" {
		chips = append(chips, Chip{Dimension: DimensionSearch, Value: state.SearchTerm, Label: fmt.Sprintf("%q", state.SearchTerm)})
	}
	return chips
}

// DropdownLabel is the button text of a multi-select dropdown.
func DropdownLabel(selected []string, lang Language) string {
	switch len(selected) {
	case 0:
		return lang.labels().all
	case 1:
		return selected[0]
	default:
		return fmt.Sprintf(lang.labels().selected, len(selected))
	}
}

func CountLabel(n int, lang Language) string {
	if n == 1 {
		return lang.labels().oneProject
	}
	return fmt.Sprintf(lang.labels().manyProjects, n)
}

func categoryLabels(cs []models.Category, lang Language) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = lang.CategoryLabel(c)
	}
	return out
}

func statusLabels(ss []models.Status, lang Language) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = lang.StatusLabel(s)
	}
	return out
}
