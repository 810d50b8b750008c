package gallery

import (
	"slices"

	"github.com/diogo-costa-silva/portfolio/models"
)

// AllOption is the dropdown entry that clears a category or status selection.
const AllOption = "all"

// Dimension names one field of FilterState.
type Dimension string

const (
	DimensionCategory   Dimension = "category"
	DimensionStatus     Dimension = "status"
	DimensionTechnology Dimension = "tech"
	DimensionRealOnly   Dimension = "real"
	DimensionSearch     Dimension = "q"
)

// FilterState is the user's selection. Empty selections mean no restriction.
// Slices keep selection order so chips render in the order they were picked.
type FilterState struct {
	Categories   []models.Category `json:"categories"`
	Statuses     []models.Status   `json:"statuses"`
	Technologies []string          `json:"technologies"`
	RealOnly     bool              `json:"realOnly"`
	SearchTerm   string            `json:"searchTerm"`
}

// ToggleCategory flips one category. AllOption empties the selection, which
// is also what removing the last selected category leaves behind.
func (s *FilterState) ToggleCategory(key string) {
	if key == AllOption {
		s.Categories = nil
		return
	}
	s.Categories = toggle(s.Categories, models.Category(key))
}

// ToggleStatus behaves like ToggleCategory for statuses.
func (s *FilterState) ToggleStatus(key string) {
	if key == AllOption {
		s.Statuses = nil
		return
	}
	s.Statuses = toggle(s.Statuses, models.Status(key))
}

func (s *FilterState) ToggleTechnology(name string) {
	if name == "" {
		return
	}
	s.Technologies = toggle(s.Technologies, name)
}

func (s *FilterState) ToggleRealOnly() {
	s.RealOnly = !s.RealOnly
}

func (s *FilterState) SetRealOnly(on bool) {
	s.RealOnly = on
}

// SetSearchTerm stores term verbatim; matching is case-insensitive.
func (s *FilterState) SetSearchTerm(term string) {
	s.SearchTerm = term
}

// ClearAll resets every field to its default.
func (s *FilterState) ClearAll() {
	*s = FilterState{}
}

// IsDefault reports whether nothing is filtered.
func (s FilterState) IsDefault() bool {
	return len(s.Categories) == 0 && len(s.Statuses) == 0 && len(s.Technologies) == 0 &&
		!s.RealOnly && s.SearchTerm == ""
}

func (s FilterState) HasCategory(c models.Category) bool { return slices.Contains(s.Categories, c) }

func (s FilterState) HasStatus(st models.Status) bool { return slices.Contains(s.Statuses, st) }

func (s FilterState) HasTechnology(name string) bool { return slices.Contains(s.Technologies, name) }

// Clone returns a copy that shares no slices with s.
func (s FilterState) Clone() FilterState {
	return FilterState{
		Categories:   slices.Clone(s.Categories),
		Statuses:     slices.Clone(s.Statuses),
		Technologies: slices.Clone(s.Technologies),
		RealOnly:     s.RealOnly,
		SearchTerm:   s.SearchTerm,
	}
}

// Remove clears exactly the selection a chip stands for.
func (s *FilterState) Remove(chip Chip) {
	switch chip.Dimension {
	case DimensionCategory:
		s.Categories = remove(s.Categories, models.Category(chip.Value))
	case DimensionStatus:
		s.Statuses = remove(s.Statuses, models.Status(chip.Value))
	case DimensionTechnology:
		s.Technologies = remove(s.Technologies, chip.Value)
	case DimensionRealOnly:
		s.RealOnly = false
	case DimensionSearch:
		s.SearchTerm = ""
	}
}

// Without returns a copy of s with chip removed.
func (s FilterState) Without(chip Chip) FilterState {
	out := s.Clone()
	out.Remove(chip)
	return out
}

func toggle[T comparable](set []T, v T) []T {
	if slices.Contains(set, v) {
		return remove(set, v)
	}
	return append(slices.Clone(set), v)
}

// remove returns nil once the set is empty so an emptied selection compares
// equal to the default.
func remove[T comparable](set []T, v T) []T {
	out := slices.DeleteFunc(slices.Clone(set), func(x T) bool { return x == v })
	if len(out) == 0 {
		return nil
	}
	return out
}
