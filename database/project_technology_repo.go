package database

import (
	"github.com/diogo-costa-silva/portfolio/models"
	"gorm.io/gorm"
)

type ProjectTechnologyRepo struct {
	db *gorm.DB
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectTechnologyRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns the technologies of a project in display order
func (r *ProjectTechnologyRepo) FindByProject(projectID string) ([]*models.ProjectTechnology, error) {
	var rows []*models.ProjectTechnology
	err := r.db.Where("project_id = ?", projectID).Order("position ASC").Find(&rows).Error
	return rows, err
}

// DistinctNames returns every technology name used by the catalog, sorted
func (r *ProjectTechnologyRepo) DistinctNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.ProjectTechnology{}).Distinct("name").Order("name ASC").Pluck("name", &names).Error
	return names, err
}
