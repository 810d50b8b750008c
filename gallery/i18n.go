package gallery

import (
	"fmt"
	"strings"

	"github.com/diogo-costa-silva/portfolio/models"
)

// Language selects the label table a rendering is built with.
type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"

	DefaultLanguage = LanguagePT
)

type labels struct {
	categories   map[models.Category]string
	statuses     map[models.Status]string
	all          string
	selected     string // format, takes the count
	oneProject   string
	manyProjects string // format, takes the count
	realOnly     string
}

var translations = map[Language]labels{
	LanguageEN: {
		categories:   models.ValidCategories,
		statuses:     models.ValidStatuses,
		all:          "All",
		selected:     "%d selected",
		oneProject:   "1 project",
		manyProjects: "%d projects",
		realOnly:     "Real projects",
	},
	LanguagePT: {
		categories: map[models.Category]string{
			models.CategoryDevOps:      "DevOps",
			models.CategoryData:        "Engenharia de Dados",
			models.CategoryDataScience: "Ciência de Dados",
			models.CategoryAutomation:  "Automação",
			models.CategoryAI:          "IA",
			models.CategoryWeb:         "Web",
		},
		statuses: map[models.Status]string{
			models.StatusCompleted:  "Concluído",
			models.StatusInProgress: "Em Curso",
			models.StatusPlanned:    "Planeado",
		},
		all:          "Todos",
		selected:     "%d selecionados",
		oneProject:   "1 projeto",
		manyProjects: "%d projetos",
		realOnly:     "Projetos reais",
	},
}

// ParseLanguage accepts "pt" or "en", optionally with a region suffix such
// as "pt-PT". Empty selects DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage, nil
	}
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	lang := Language(s)
	if _, ok := translations[lang]; !ok {
		return DefaultLanguage, fmt.Errorf("unsupported language %q", s)
	}
	return lang, nil
}

func (l Language) labels() labels {
	if t, ok := translations[l]; ok {
		return t
	}
	return translations[DefaultLanguage]
}

// CategoryLabel falls back to the raw key for unknown categories.
func (l Language) CategoryLabel(c models.Category) string {
	if label, ok := l.labels().categories[c]; ok {
		return label
	}
	return string(c)
}

func (l Language) StatusLabel(s models.Status) string {
	if label, ok := l.labels().statuses[s]; ok {
		return label
	}
	return string(s)
}
