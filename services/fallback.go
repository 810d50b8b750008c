package services

import (
	_ "embed"
	"fmt"

	"github.com/diogo-costa-silva/portfolio/models"
	"gopkg.in/yaml.v3"
)

//go:embed fallback_projects.yaml
var fallbackProjectsYAML []byte

var fallbackProjects = mustDecodeFallback()

func mustDecodeFallback() []models.Project {
	projects, err := DecodeProjectsYAML(fallbackProjectsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback projects: %v", err))
	}
	return projects
}

// DecodeProjectsYAML parses a YAML document shaped like the project-list
// resource and checks that every record is renderable.
func DecodeProjectsYAML(data []byte) ([]models.Project, error) {
	var list models.ProjectList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode projects yaml: %w", err)
	}
	if len(list.Projects) == 0 {
		return nil, fmt.Errorf("decode projects yaml: no projects")
	}
	for i, p := range list.Projects {
		if field := p.Validate(); field != "" {
			return nil, fmt.Errorf("decode projects yaml: project %d: missing or invalid %s", i, field)
		}
	}
	return list.Projects, nil
}

// FallbackProjects returns a fresh copy of the embedded static list. It is
// never empty.
func FallbackProjects() []models.Project {
	return models.CloneProjects(fallbackProjects)
}
