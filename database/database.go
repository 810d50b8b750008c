package database

import (
	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo           *ProjectRepo
	projectTechnologyRepo *ProjectTechnologyRepo
	cacheRepo             *CacheRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:           NewProjectRepo(db),
		projectTechnologyRepo: NewProjectTechnologyRepo(db),
		cacheRepo:             NewCacheRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTechnologyRepo() *ProjectTechnologyRepo {
	return d.projectTechnologyRepo
}

func (d Database) CacheRepo() *CacheRepo {
	return d.cacheRepo
}

// Migrate brings the schema up to date for every repository.
func (d Database) Migrate() error {
	if d.projectRepo == nil {
		return errs.BadRequest("database is not initialized")
	}
	return models.Migrate(d.projectRepo.GetDB())
}
