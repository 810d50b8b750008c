package gallery

import (
	"strings"

	"github.com/diogo-costa-silva/portfolio/models"
)

// VisibleSet is the result of evaluating a filter state over a project list.
type VisibleSet struct {
	// Projects holds the visible projects in store order.
	Projects []models.Project
	// Hidden counts the projects filtered out.
	Hidden int
}

func (v VisibleSet) Count() int { return len(v.Projects) }

// Matches reports whether p passes every dimension of state.
//
// Categories and statuses are set-membership tests; technologies pass when
// the project carries at least one selected name.
func Matches(p models.Project, state FilterState) bool {
	return matchesCategory(p, state) &&
		matchesStatus(p, state) &&
		matchesTechnology(p, state) &&
		matchesReal(p, state) &&
		matchesSearch(p, state)
}

func matchesCategory(p models.Project, state FilterState) bool {
	return len(state.Categories) == 0 || state.HasCategory(p.Category)
}

func matchesStatus(p models.Project, state FilterState) bool {
	return len(state.Statuses) == 0 || state.HasStatus(p.Status)
}

func matchesTechnology(p models.Project, state FilterState) bool {
	if len(state.Technologies) == 0 {
		return true
	}
	for _, tech := range p.Technologies {
		if state.HasTechnology(tech) {
			return true
		}
	}
	return false
}

func matchesReal(p models.Project, state FilterState) bool {
	return !state.RealOnly || p.IsReal
}

func matchesSearch(p models.Project, state FilterState) bool {
	if state.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(state.SearchTerm)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Evaluate returns the projects visible under state. It does not modify its
// arguments.
func Evaluate(projects []models.Project, state FilterState) VisibleSet {
	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if Matches(p, state) {
			visible = append(visible, p)
		}
	}
	return VisibleSet{Projects: visible, Hidden: len(projects) - len(visible)}
}
