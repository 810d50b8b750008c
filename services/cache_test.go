package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diogo-costa-silva/portfolio/models"
	"gorm.io/datatypes"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(NewMemoryCacheStore(), time.Hour, WithClock(clock.Now))

	if _, ok := cache.Get(); ok {
		t.Fatal("empty cache reported a hit")
	}

	stars := 7
	put := []models.Project{testProject("r1", true, "https://github.com/me/r1")}
	put[0].Stars = &stars
	cache.Put(put)

	clock.Advance(59 * time.Minute)
	got, ok := cache.Get()
	if !ok {
		t.Fatal("Get within TTL: got miss")
	}
	if len(got) != 1 || got[0].ID != "r1" || got[0].Stars == nil || *got[0].Stars != 7 {
		t.Errorf("Get within TTL: got %+v", got)
	}

	clock.Advance(time.Minute)
	if _, ok := cache.Get(); ok {
		t.Error("Get at TTL: got hit, want miss")
	}
}

func TestCache_PutOverwrites(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(NewMemoryCacheStore(), time.Hour, WithClock(clock.Now))

	cache.Put([]models.Project{testProject("old", true, "")})
	clock.Advance(50 * time.Minute)
	cache.Put([]models.Project{testProject("new", true, "")})
	clock.Advance(30 * time.Minute)

	got, ok := cache.Get()
	if !ok || len(got) != 1 || got[0].ID != "new" {
		t.Errorf("got %v %v, want the second snapshot", got, ok)
	}
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	store := NewMemoryCacheStore()
	store.Save(&models.CacheEntry{
		Key:       DefaultCacheKey,
		Data:      datatypes.JSON(`{"projects": "nope"`),
		Timestamp: time.Now().UnixMilli(),
	})

	if _, ok := NewCache(store, time.Hour).Get(); ok {
		t.Error("corrupt entry reported a hit")
	}
}

type failingStore struct{}

func (failingStore) Find(string) (*models.CacheEntry, error) { return nil, errors.New("disk full") }
func (failingStore) Save(*models.CacheEntry) error          { return errors.New("disk full") }
func (failingStore) Delete(string) error                    { return errors.New("disk full") }

func TestCache_UnavailableStorage(t *testing.T) {
	cache := NewCache(failingStore{}, time.Hour)

	cache.Put([]models.Project{testProject("r1", true, "")})
	if _, ok := cache.Get(); ok {
		t.Error("unreadable storage reported a hit")
	}
	if err := cache.Clear(); err == nil {
		t.Error("Clear: expected error")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(NewMemoryCacheStore(), time.Hour, WithCacheKey("test_key"))
	cache.Put([]models.Project{testProject("r1", true, "")})

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := cache.Get(); ok {
		t.Error("Get after Clear: got hit")
	}
}
