// Package store owns the canonical in-memory list of collections and reads
// and writes it through a ports.BlobStore.
package store

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"collectio/internal/application"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// Store caches the collection list per resolved save location.
// Every list it returns is a deep copy; the cached value is never handed out.
//
// Every Save bumps the location's version and every Invalidate bumps the
// epoch. A read only fills the cache when neither moved while it ran, so a
// slow read never replaces a list saved after it started.
type Store struct {
	blobs  ports.BlobStore
	cache  *cache.Cache
	reads  singleflight.Group
	logger *zap.Logger

	mu       sync.Mutex
	epoch    uint64
	versions map[string]uint64
}

type stamp struct {
	epoch, version uint64
}

// New creates a Store backed by blobs. A nil logger disables logging.
func New(blobs ports.BlobStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		blobs:  blobs,
		cache:    cache.New(cache.NoExpiration, 0),
		logger:   logger.Named("store"),
		versions: make(map[string]uint64),
	}
}

func (s *Store) current(key string) stamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stamp{epoch: s.epoch, version: s.versions[key]}
}

// Load returns the collections saved at location with the default collection
// first. The cached list is used unless force is set or nothing is cached.
//
// On a failed or malformed read it returns a list holding only the default
// collection together with a *application.PersistenceReadError. The fallback
// is not cached, so the next Load retries the read.
//
// Concurrent cache misses for one location share a single adapter read.
// A forced load always reads on its own, so it never returns data from a
// read that started before another window's write.
func (s *Store) Load(ctx context.Context, location string, force bool) ([]domain.Collection, error) {
	key := s.blobs.Resolve(location)

	if force {
		return s.read(ctx, location, key)
	}

	if cached, ok := s.cache.Get(key); ok {
		return domain.CloneAll(cached.([]domain.Collection)), nil
	}

	v, err, _ := s.reads.Do(key, func() (any, error) {
		return s.read(ctx, location, key)
	})
	return domain.CloneAll(v.([]domain.Collection)), err
}

// read returns a list owned by the caller
func (s *Store) read(ctx context.Context, location, key string) ([]domain.Collection, error) {
	started := s.current(key)

	blob, found, err := s.blobs.Read(ctx, location)
	if err != nil {
		s.logger.Error("read collections failed", zap.String("path", key), zap.Error(err))
		return fallback(), &application.PersistenceReadError{Location: key, Err: err}
	}

	var saved []domain.Collection
	if found {
		var skipped []string
		saved, skipped, err = decode(blob)
		if err != nil {
			s.logger.Error("collections data is malformed, using empty list",
				zap.String("path", key), zap.Error(err))
			return fallback(), &application.PersistenceReadError{Location: key, Malformed: true, Err: err}
		}
		if len(skipped) > 0 {
			s.logger.Warn("dropped invalid collection records",
				zap.String("path", key), zap.Strings("records", skipped))
		}
	}

	list := withDefault(saved)

	s.mu.Lock()
	defer s.mu.Unlock()
	if (stamp{epoch: s.epoch, version: s.versions[key]}) != started {
		s.logger.Debug("read overtaken by a save, not caching", zap.String("path", key))
		return list, nil
	}
	s.cache.Set(key, domain.CloneAll(list), cache.NoExpiration)
	return list, nil
}

// Save writes every non-default collection to location. On success the cache
// holds exactly the saved list; on failure the cache is left as it was.
func (s *Store) Save(ctx context.Context, location string, collections []domain.Collection) error {
	key := s.blobs.Resolve(location)

	user := make([]domain.Collection, 0, len(collections))
	for _, c := range collections {
		if c.IsDefault || domain.IsDefaultID(c.ID) {
			continue
		}
		user = append(user, c.Clone())
	}

	blob, err := encode(user)
	if err != nil {
		return &application.PersistenceWriteError{Location: key, Err: err}
	}

	path, err := s.blobs.Write(ctx, blob, location)
	if err != nil {
		s.logger.Error("write collections failed", zap.String("path", key), zap.Error(err))
		return &application.PersistenceWriteError{Location: key, Err: err}
	}

	s.mu.Lock()
	s.versions[key]++
	s.cache.Set(key, withDefault(user), cache.NoExpiration)
	s.mu.Unlock()

	s.logger.Debug("collections saved", zap.String("path", path), zap.Int("count", len(user)))
	return nil
}

// Invalidate drops every cached list so the next Load re-reads the adapter.
// Call it when another window may have written the same location.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Flush()
}

// Cached reports whether a list is cached for location
func (s *Store) Cached(location string) bool {
	_, ok := s.cache.Get(s.blobs.Resolve(location))
	return ok
}

// Path returns the concrete path the adapter uses for location
func (s *Store) Path(location string) string {
	return s.blobs.Resolve(location)
}

func withDefault(saved []domain.Collection) []domain.Collection {
	list := make([]domain.Collection, 0, len(saved)+1)
	list = append(list, domain.NewDefaultCollection())
	list = append(list, saved...)
	return domain.SortForDisplay(list)
}

func fallback() []domain.Collection {
	return []domain.Collection{domain.NewDefaultCollection()}
}
