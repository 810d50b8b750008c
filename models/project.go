package models

import "time"

// Category is one of the fixed gallery categories.
type Category string

const (
	CategoryDevOps      Category = "devops"
	CategoryData        Category = "data"
	CategoryDataScience Category = "data-science"
	CategoryAutomation  Category = "automation"
	CategoryAI          Category = "ai"
	CategoryWeb         Category = "web"
)

// Categories lists the category keys in display order.
var Categories = []Category{CategoryDevOps, CategoryData, CategoryDataScience, CategoryAutomation, CategoryAI, CategoryWeb}

// ValidCategories is the canonical set of accepted category keys.
var ValidCategories = map[Category]string{
	CategoryDevOps:      "DevOps",
	CategoryData:        "Data Engineering",
	CategoryDataScience: "Data Science",
	CategoryAutomation:  "Automation",
	CategoryAI:          "AI",
	CategoryWeb:         "Web",
}

// Label returns the display label, falling back to the raw key.
func (c Category) Label() string {
	if label, ok := ValidCategories[c]; ok {
		return label
	}
	return string(c)
}

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
)

var Statuses = []Status{StatusCompleted, StatusInProgress, StatusPlanned}

var ValidStatuses = map[Status]string{
	StatusCompleted:  "Completed",
	StatusInProgress: "In Progress",
	StatusPlanned:    "Planned",
}

func (s Status) Label() string {
	if label, ok := ValidStatuses[s]; ok {
		return label
	}
	return string(s)
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Project is a gallery project. The catalog columns are persisted; the
// GitHub fields are filled in by enrichment and only live in the cache.
type Project struct {
	ID           string              `json:"id" yaml:"id" gorm:"type:text;primaryKey;not null"`
	Title        string              `json:"title" yaml:"title" gorm:"type:text;not null;unique"`
	Description  string              `json:"description" yaml:"description" gorm:"type:text;not null"`
	Category     Category            `json:"category" yaml:"category" gorm:"type:text;not null;index"`
	Status       Status              `json:"status" yaml:"status" gorm:"type:text;not null;index"`
	Difficulty   int                 `json:"difficulty" yaml:"difficulty" gorm:"type:integer;not null;default:1"`
	Technologies []string            `json:"technologies" yaml:"technologies" gorm:"-"`
	IsReal       bool                `json:"isReal" yaml:"isReal" gorm:"not null;default:false"`
	Demo         string              `json:"demo,omitempty" yaml:"demo" gorm:"type:text"`
	Github       string              `json:"github,omitempty" yaml:"github" gorm:"type:text"`
	TechRows     []ProjectTechnology `json:"-" yaml:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`

	Stars             *int       `json:"stars,omitempty" yaml:"-" gorm:"-"`
	Watchers          *int       `json:"watchers,omitempty" yaml:"-" gorm:"-"`
	Forks             *int       `json:"forks,omitempty" yaml:"-" gorm:"-"`
	LastCommitDate    *time.Time `json:"lastCommitDate,omitempty" yaml:"-" gorm:"-"`
	GithubDataSuccess *bool      `json:"githubDataSuccess,omitempty" yaml:"-" gorm:"-"`
	GithubRateLimited bool       `json:"githubRateLimited,omitempty" yaml:"-" gorm:"-"`
}

// HasGithubData reports whether enrichment ran and succeeded.
func (p Project) HasGithubData() bool {
	return p.GithubDataSuccess != nil && *p.GithubDataSuccess
}

// Clone copies the project so callers can mutate the technology list freely.
func (p Project) Clone() Project {
	out := p
	if p.Technologies != nil {
		out.Technologies = append([]string(nil), p.Technologies...)
	}
	out.TechRows = nil
	return out
}

// ClearGithubData drops every enrichment field.
func (p *Project) ClearGithubData() {
	p.Stars, p.Watchers, p.Forks, p.LastCommitDate = nil, nil, nil, nil
	p.GithubDataSuccess = nil
	p.GithubRateLimited = false
}

// CopyGithubData takes the enrichment fields of from.
func (p *Project) CopyGithubData(from Project) {
	p.Stars, p.Watchers, p.Forks, p.LastCommitDate = from.Stars, from.Watchers, from.Forks, from.LastCommitDate
	p.GithubDataSuccess = from.GithubDataSuccess
	p.GithubRateLimited = from.GithubRateLimited
}

// CloneProjects clones every project of the list.
func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

// Validate reports the first missing or invalid field, or "" when the record
// is renderable. Category and status must be known keys.
func (p Project) Validate() string {
	_, knownCategory := ValidCategories[p.Category]
	_, knownStatus := ValidStatuses[p.Status]

	switch {
	case p.ID == "":
		return "id"
	case p.Title == "":
		return "title"
	case !knownCategory:
		return "category"
	case !knownStatus:
		return "status"
	case p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty:
		return "difficulty"
	}
	return ""
}

// ProjectList is the wire shape of the project-list resource.
type ProjectList struct {
	Projects []Project `json:"projects" yaml:"projects"`
}
