package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTechnology is one entry of a project's ordered technology list.
type ProjectTechnology struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID string    `json:"project_id" db:"project_id" gorm:"type:text;not null;index:idx_project_technology_project_id;uniqueIndex:idx_project_technology_unique"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_project_technology_unique"`
	Position  int       `json:"position" db:"position" gorm:"type:integer;not null;default:0"`
}

func (t *ProjectTechnology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TechnologyRows turns an ordered name list into rows for projectID.
func TechnologyRows(projectID string, names []string) []ProjectTechnology {
	rows := make([]ProjectTechnology, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		rows = append(rows, ProjectTechnology{
			ProjectID: projectID,
			Name:      name,
			Position:  len(rows),
		})
	}
	return rows
}
