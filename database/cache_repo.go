package database

import (
	"errors"

	"github.com/diogo-costa-silva/portfolio/models"
	"gorm.io/gorm"
)

// CacheRepo persists cache records in the cache_entries table.
type CacheRepo struct {
	db *gorm.DB
}

func NewCacheRepo(db *gorm.DB) *CacheRepo {
	return &CacheRepo{db}
}

// Find returns the record stored under key, or (nil, nil) when there is none
func (r *CacheRepo) Find(key string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	err := r.db.First(&entry, "cache_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save overwrites the record stored under entry.Key
func (r *CacheRepo) Save(entry *models.CacheEntry) error {
	return r.db.Save(entry).Error
}

// Delete removes the record stored under key; deleting a missing key is not an error
func (r *CacheRepo) Delete(key string) error {
	return r.db.Delete(&models.CacheEntry{}, "cache_key = ?", key).Error
}
