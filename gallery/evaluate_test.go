package gallery

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/diogo-costa-silva/portfolio/models"
)

var (
	techPool   = []string{"Go", "Python", "Terraform", "Azure", "SQL", "Spark", "Ansible"}
	searchPool = []string{"pipeline", "PIPELINE", "azure", "data", "zzz"}
	titlePool  = []string{"Data Pipeline", "Azure Landing Zone", "Homelab", "Spark Jobs", "ETL Toolkit"}
)

func randomProjects(r *rand.Rand, n int) []models.Project {
	projects := make([]models.Project, n)
	for i := range projects {
		var techs []string
		for _, tech := range techPool {
			if r.Intn(3) == 0 {
				techs = append(techs, tech)
			}
		}
		projects[i] = models.Project{
			ID:           fmt.Sprintf("p%d", i),
			Title:        titlePool[r.Intn(len(titlePool))],
			Description:  "Built with " + strings.Join(techs, ", "),
			Category:     models.Categories[r.Intn(len(models.Categories))],
			Status:       models.Statuses[r.Intn(len(models.Statuses))],
			Difficulty:   1 + r.Intn(5),
			Technologies: techs,
			IsReal:       r.Intn(2) == 0,
		}
	}
	return projects
}

func contains[T comparable](set []T, v T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

// visibleByDefinition spells out the five predicates independently of Matches.
func visibleByDefinition(p models.Project, s FilterState) bool {
	category := len(s.Categories) == 0 || contains(s.Categories, p.Category)
	status := len(s.Statuses) == 0 || contains(s.Statuses, p.Status)
	tech := len(s.Technologies) == 0
	for _, t := range s.Technologies {
		if contains(p.Technologies, t) {
			tech = true
		}
	}
	isReal := !s.RealOnly || p.IsReal
	term := strings.ToLower(s.SearchTerm)
	search := strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
	return category && status && tech && isReal && search
}

func TestEvaluate_MatchesPredicateConjunction(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 500; round++ {
		projects := randomProjects(r, r.Intn(20))
		state := randomState(r)

		got := Evaluate(projects, state)

		var want []string
		for _, p := range projects {
			if visibleByDefinition(p, state) {
				want = append(want, p.ID)
			}
		}
		if got.Count() != len(want) || got.Hidden != len(projects)-len(want) {
			t.Fatalf("round %d: got %d visible, want %d (state %+v)", round, got.Count(), len(want), state)
		}
		for i, p := range got.Projects {
			if p.ID != want[i] {
				t.Fatalf("round %d: visible[%d] = %s, want %s", round, i, p.ID, want[i])
			}
		}
	}
}

func TestEvaluate_RealOnlyNeverShowsPlaceholders(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	projects := randomProjects(r, 50)

	for _, p := range Evaluate(projects, FilterState{RealOnly: true}).Projects {
		if !p.IsReal {
			t.Errorf("%s is not real but visible", p.ID)
		}
	}
}

func TestEvaluate_CategoriesStatusAndRealOnly(t *testing.T) {
	projects := []models.Project{
		{ID: "a", Category: models.CategoryDevOps, Status: models.StatusCompleted, IsReal: true},
		{ID: "b", Category: models.CategoryDataScience, Status: models.StatusCompleted, IsReal: true},
		{ID: "c", Category: models.CategoryDevOps, Status: models.StatusInProgress, IsReal: true},
		{ID: "d", Category: models.CategoryDataScience, Status: models.StatusCompleted, IsReal: false},
		{ID: "e", Category: models.CategoryWeb, Status: models.StatusCompleted, IsReal: true},
	}

	var s FilterState
	s.ToggleCategory("devops")
	s.ToggleCategory("data-science")
	s.ToggleStatus("completed")
	s.ToggleRealOnly()

	got := Evaluate(projects, s)
	if got.Count() != 2 || got.Projects[0].ID != "a" || got.Projects[1].ID != "b" {
		t.Errorf("got %v, want [a b]", got.Projects)
	}
}

func TestEvaluate_EmptyResult(t *testing.T) {
	projects := []models.Project{{ID: "a", Title: "One", Category: models.CategoryWeb}}

	rendering := Render(projects, FilterState{SearchTerm: "nothing matches"}, LanguageEN)
	if rendering.Count != 0 || len(rendering.Cards) != 0 {
		t.Errorf("got %d cards", rendering.Count)
	}
	if rendering.CountLabel != "0 projects" {
		t.Errorf("CountLabel: got %q, want %q", rendering.CountLabel, "0 projects")
	}
}

func TestEvaluate_SearchIsCaseInsensitive(t *testing.T) {
	projects := []models.Project{
		{ID: "a", Title: "Data Pipeline Automation"},
		{ID: "b", Title: "Other", Description: "feeds the PIPELINE"},
		{ID: "c", Title: "Unrelated"},
	}
	if got := Evaluate(projects, FilterState{SearchTerm: "Pipeline"}).Count(); got != 2 {
		t.Errorf("visible: got %d, want 2", got)
	}
}
