package gallery

import (
	"time"

	"github.com/diogo-costa-silva/portfolio/models"
)

// MaxCardTechnologies is how many technologies a card shows before the
// overflow counter.
const MaxCardTechnologies = 3

// Card is the view model of one project card.
type Card struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	CategoryLabel    string     `json:"categoryLabel"`
	Status           string     `json:"status"`
	StatusLabel      string     `json:"statusLabel"`
	Difficulty       int        `json:"difficulty"`
	Technologies     []string   `json:"technologies"`
	MoreTechnologies int        `json:"moreTechnologies"`
	IsReal           bool       `json:"isReal"`
	Demo             string     `json:"demo,omitempty"`
	Github           string     `json:"github,omitempty"`
	Stars            *int       `json:"stars,omitempty"`
	Watchers         *int       `json:"watchers,omitempty"`
	Forks            *int       `json:"forks,omitempty"`
	LastCommitDate   *time.Time `json:"lastCommitDate,omitempty"`
}

// NewCard builds the card of p with labels in lang. Stats are only copied
// when enrichment succeeded; links set to the "#" placeholder are dropped.
func NewCard(p models.Project, lang Language) Card {
	card := Card{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      string(p.Category),
		CategoryLabel: lang.CategoryLabel(p.Category),
		Status:        string(p.Status),
		StatusLabel:   lang.StatusLabel(p.Status),
		Difficulty:    p.Difficulty,
		IsReal:        p.IsReal,
		Demo:          link(p.Demo),
		Github:        link(p.Github),
	}

	techs := p.Technologies
	if len(techs) > MaxCardTechnologies {
		card.MoreTechnologies = len(techs) - MaxCardTechnologies
		techs = techs[:MaxCardTechnologies]
	}
	card.Technologies = append([]string{}, techs...)

	if p.HasGithubData() {
		card.Stars = p.Stars
		card.Watchers = p.Watchers
		card.Forks = p.Forks
		card.LastCommitDate = p.LastCommitDate
	}
	return card
}

func link(u string) string {
	if u == "#" {
		return ""
	}
	return u
}

// Rendering is everything a page needs to draw the gallery for one state.
type Rendering struct {
	Language        Language     `json:"language"`
	Filters         FilterState  `json:"filters"`
	Cards           []Card       `json:"cards"`
	Count           int          `json:"count"`
	CountLabel      string       `json:"countLabel"`
	Categories      []FacetCount `json:"categories"`
	Statuses        []FacetCount `json:"statuses"`
	Technologies    []string     `json:"technologies"`
	Chips           []Chip       `json:"chips"`
	CategoryLabel   string       `json:"categoryLabel"`
	StatusLabel     string       `json:"statusLabel"`
	TechnologyLabel string       `json:"technologyLabel"`
}

// Render evaluates state over projects and builds the dependent UI with
// labels in lang.
func Render(projects []models.Project, state FilterState, lang Language) Rendering {
	visible := Evaluate(projects, state)

	cards := make([]Card, 0, visible.Count())
	for _, p := range visible.Projects {
		cards = append(cards, NewCard(p, lang))
	}

	return Rendering{
		Language:        lang,
		Filters:         state.Clone(),
		Cards:           cards,
		Count:           visible.Count(),
		CountLabel:      CountLabel(visible.Count(), lang),
		Categories:      CategoryFacets(visible, state, lang),
		Statuses:        StatusFacets(visible, state, lang),
		Technologies:    TechnologyOptions(projects),
		Chips:           Chips(state, lang),
		CategoryLabel:   DropdownLabel(categoryLabels(state.Categories, lang), lang),
		StatusLabel:     DropdownLabel(statusLabels(state.Statuses, lang), lang),
		TechnologyLabel: DropdownLabel(state.Technologies, lang),
	}
}

// TechnologyOptions lists every technology of projects once, in order of
// first appearance.
func TechnologyOptions(projects []models.Project) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range projects {
		for _, tech := range p.Technologies {
			if !seen[tech] {
				seen[tech] = true
				out = append(out, tech)
			}
		}
	}
	return out
}
