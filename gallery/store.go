package gallery

import (
	"sync"

	"github.com/diogo-costa-silva/portfolio/models"
)

// Store holds the project list of the current page. The list is replaced
// wholesale on every load, never patched.
type Store struct {
	mu       sync.RWMutex
	projects []models.Project
}

func NewStore(projects []models.Project) *Store {
	return &Store{projects: models.CloneProjects(projects)}
}

func (s *Store) Replace(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = models.CloneProjects(projects)
}

// All returns a copy of the stored list.
func (s *Store) All() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneProjects(s.projects)
}
