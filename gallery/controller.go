package gallery

import (
	"sync"

	"github.com/diogo-costa-silva/portfolio/models"
)

// View receives every new rendering. Apply runs while the controller holds
// its lock, so it must not call back into the controller.
type View interface {
	Apply(Rendering)
}

// ViewFunc adapts a function to View.
type ViewFunc func(Rendering)

func (f ViewFunc) Apply(r Rendering) { f(r) }

// Controller owns the filter state of one gallery. Every mutation and the
// re-evaluation that follows it happen under one lock, so readers never see
// a state that does not match its rendering.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	view    View
	state   FilterState
	lang    Language
	current Rendering
}

// NewController renders the store with the default state in
// DefaultLanguage. view may be nil.
func NewController(store *Store, view View) *Controller {
	c := &Controller{store: store, view: view, lang: DefaultLanguage}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rerender()
	return c
}

func (c *Controller) rerender() {
	c.current = Render(c.store.All(), c.state, c.lang)
	if c.view != nil {
		c.view.Apply(c.current)
	}
}

func (c *Controller) mutate(fn func(*FilterState)) Rendering {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.rerender()
	return c.current
}

func (c *Controller) ToggleCategory(key string) Rendering {
	return c.mutate(func(s *FilterState) { s.ToggleCategory(key) })
}

func (c *Controller) ToggleStatus(key string) Rendering {
	return c.mutate(func(s *FilterState) { s.ToggleStatus(key) })
}

func (c *Controller) ToggleTechnology(name string) Rendering {
	return c.mutate(func(s *FilterState) { s.ToggleTechnology(name) })
}

func (c *Controller) ToggleRealOnly() Rendering {
	return c.mutate(func(s *FilterState) { s.ToggleRealOnly() })
}

func (c *Controller) SetSearchTerm(term string) Rendering {
	return c.mutate(func(s *FilterState) { s.SetSearchTerm(term) })
}

func (c *Controller) RemoveChip(chip Chip) Rendering {
	return c.mutate(func(s *FilterState) { s.Remove(chip) })
}

func (c *Controller) ClearAll() Rendering {
	return c.mutate(func(s *FilterState) { s.ClearAll() })
}

// SetState replaces the whole filter state, e.g. one decoded from a URL.
func (c *Controller) SetState(state FilterState) Rendering {
	return c.mutate(func(s *FilterState) { *s = state.Clone() })
}

// SetLanguage switches the label table. The projects carry translated text
// too, so the caller passes the list loaded for lang and the store is
// replaced in the same critical section. A nil list keeps the store.
func (c *Controller) SetLanguage(lang Language, projects []models.Project) Rendering {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
	if projects != nil {
		c.store.Replace(projects)
	}
	c.rerender()
	return c.current
}

// ReplaceProjects swaps the store contents and re-renders with the current
// filter state.
func (c *Controller) ReplaceProjects(projects []models.Project) Rendering {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Replace(projects)
	c.rerender()
	return c.current
}

// Snapshot returns the current state and its rendering.
func (c *Controller) Snapshot() (FilterState, Rendering) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone(), c.current
}
