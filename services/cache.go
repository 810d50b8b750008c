package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	DefaultCacheKey = "github_projects_cache"
	DefaultCacheTTL = time.Hour
)

// CacheStore is the key/value storage behind Cache. *database.CacheRepo
// satisfies it; Find returns (nil, nil) for a missing key.
type CacheStore interface {
	Find(key string) (*models.CacheEntry, error)
	Save(entry *models.CacheEntry) error
	Delete(key string) error
}

// MemoryCacheStore keeps cache records in process memory.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[string]models.CacheEntry)}
}

func (s *MemoryCacheStore) Find(key string) (*models.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryCacheStore) Save(entry *models.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Key] = *entry
	return nil
}

func (s *MemoryCacheStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Cache is a TTL-bounded snapshot of enriched projects.
type Cache struct {
	store  CacheStore
	ttl    time.Duration
	key    string
	now    func() time.Time
	logger zerolog.Logger
}

type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func WithCacheKey(key string) CacheOption {
	return func(c *Cache) { c.key = key }
}

func NewCache(store CacheStore, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache{
		store:  store,
		ttl:    ttl,
		key:    DefaultCacheKey,
		now:    time.Now,
		logger: log.With().Str("component", "githubCache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached list when it was written less than ttl ago.
// Missing, expired and unreadable records are all reported as a miss.
func (c *Cache) Get() ([]models.Project, bool) {
	entry, err := c.store.Find(c.key)
	if err != nil {
		c.logger.Error().Err(errs.NewStorageError("read cache", err)).Msg("error reading cache")
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	age := c.now().UnixMilli() - entry.Timestamp
	if age < 0 || age >= c.ttl.Milliseconds() {
		return nil, false
	}

	var projects []models.Project
	if err := json.Unmarshal(entry.Data, &projects); err != nil {
		c.logger.Error().Err(errs.NewMalformedBodyError("cache entry", err)).Msg("error reading cache")
		return nil, false
	}

	c.logger.Debug().Int("count", len(projects)).Msg("using cached GitHub data")
	return projects, true
}

// Put overwrites the cached snapshot. Failures are logged, not returned.
func (c *Cache) Put(projects []models.Project) {
	data, err := json.Marshal(projects)
	if err != nil {
		c.logger.Error().Err(err).Msg("error saving to cache")
		return
	}

	entry := &models.CacheEntry{
		Key:       c.key,
		Data:      datatypes.JSON(data),
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.store.Save(entry); err != nil {
		c.logger.Error().Err(errs.NewStorageError("write cache", err)).Msg("error saving to cache")
		return
	}
	c.logger.Debug().Int("count", len(projects)).Msg("GitHub data cached")
}

// Clear drops the cached snapshot.
func (c *Cache) Clear() error {
	if err := c.store.Delete(c.key); err != nil {
		return errs.NewStorageError("clear cache", err)
	}
	c.logger.Info().Msg("GitHub cache cleared")
	return nil
}
