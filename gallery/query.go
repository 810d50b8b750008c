package gallery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/diogo-costa-silva/portfolio/models"
)

// ParseQuery rebuilds a filter state from URL parameters by replaying the
// selections in order. Values may be repeated or comma separated; unknown
// category and status keys are ignored and repeated values select once.
func ParseQuery(q url.Values) FilterState {
	var s FilterState

	for _, key := range splitValues(q[string(DimensionCategory)]) {
		_, known := models.ValidCategories[models.Category(key)]
		switch {
		case key == AllOption:
			s.ToggleCategory(AllOption)
		case known && !s.HasCategory(models.Category(key)):
			s.ToggleCategory(key)
		}
	}

	for _, key := range splitValues(q[string(DimensionStatus)]) {
		_, known := models.ValidStatuses[models.Status(key)]
		switch {
		case key == AllOption:
			s.ToggleStatus(AllOption)
		case known && !s.HasStatus(models.Status(key)):
			s.ToggleStatus(key)
		}
	}

	for _, name := range splitValues(q[string(DimensionTechnology)]) {
		if !s.HasTechnology(name) {
			s.ToggleTechnology(name)
		}
	}

	if realOnly, err := strconv.ParseBool(q.Get(string(DimensionRealOnly))); err == nil {
		s.SetRealOnly(realOnly)
	}
	s.SetSearchTerm(q.Get(string(DimensionSearch)))

	return s
}

// EncodeQuery is the inverse of ParseQuery. Default fields are omitted.
func EncodeQuery(s FilterState) url.Values {
	q := url.Values{}
	for _, c := range s.Categories {
		q.Add(string(DimensionCategory), string(c))
	}
	for _, st := range s.Statuses {
		q.Add(string(DimensionStatus), string(st))
	}
	for _, tech := range s.Technologies {
		q.Add(string(DimensionTechnology), tech)
	}
	if s.RealOnly {
		q.Set(string(DimensionRealOnly), "true")
	}
	if s.SearchTerm != "" {
		q.Set(string(DimensionSearch), s.SearchTerm)
	}
	return q
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
