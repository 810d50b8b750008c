package database

import (
	"errors"

	"github.com/diogo-costa-silva/portfolio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func preloadTechnologies(db *gorm.DB) *gorm.DB {
	return db.Preload("TechRows", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// hydrate copies the ordered technology rows into the Technologies list.
func hydrate(project *models.Project) {
	project.Technologies = make([]string, 0, len(project.TechRows))
	for _, row := range project.TechRows {
		project.Technologies = append(project.Technologies, row.Name)
	}
	project.TechRows = nil
}

// FindAll returns all projects ordered by title
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	if err := preloadTechnologies(r.db).Order("title ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		hydrate(p)
	}
	return projects, nil
}

// FindByID returns a project by its ID, or (nil, nil) when it does not exist
func (r *ProjectRepo) FindByID(id string) (*models.Project, error) {
	var project models.Project
	err := preloadTechnologies(r.db).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	hydrate(&project)
	return &project, nil
}

// Add inserts a new project together with its technology rows
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := project.Clone()
		if err := tx.Omit("TechRows").Create(&row).Error; err != nil {
			return err
		}
		return insertTechnologies(tx, project.ID, project.Technologies)
	})
}

// Update saves the project columns and replaces its technology list
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := project.Clone()
		if err := tx.Omit("TechRows").Save(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		return insertTechnologies(tx, project.ID, project.Technologies)
	})
}

// Upsert inserts the project or overwrites the existing row with the same ID
func (r *ProjectRepo) Upsert(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := project.Clone()
		if err := tx.Omit("TechRows").Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		return insertTechnologies(tx, project.ID, project.Technologies)
	})
}

// Delete removes a project and its technologies by id
func (r *ProjectRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

func insertTechnologies(tx *gorm.DB, projectID string, names []string) error {
	rows := models.TechnologyRows(projectID, names)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
