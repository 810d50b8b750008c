package models

import "gorm.io/datatypes"

// CacheEntry is a persisted cache record: a JSON payload and the unix
// millisecond time it was written.
type CacheEntry struct {
	Key       string         `json:"key" db:"cache_key" gorm:"column:cache_key;type:text;primaryKey;not null"`
	Data      datatypes.JSON `json:"data" db:"data" gorm:"column:data;not null"`
	Timestamp int64          `json:"timestamp" db:"written_at" gorm:"column:written_at;not null"`
}
