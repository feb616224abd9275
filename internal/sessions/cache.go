package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte = 1024 * 1024

	defaultCacheSize = 8 * megabyte
	defaultCacheTTL  = time.Hour

	// freecache rounds anything smaller up to 512KB
	tombstoneCacheSize  = 512 * 1024
	tombstoneTTLSeconds = 60
)

var _ sessionsRepo = (*CachedRepo)(nil)

// CachedRepo keeps fetched sessions in memory. A stored session is never
// updated in place, so only Delete has to evict.
// Delete also leaves a short-lived tombstone: a Get that read the row just
// before it was deleted must not put it back into the cache.
type CachedRepo struct {
	repo       sessionsRepo
	cache      *freecache.Cache
	tombstones *freecache.Cache
	ttlSeconds int

	// guards the tombstone check + cache write in Get against Delete
	mu sync.Mutex
}

func NewCachedRepo(repo sessionsRepo, sizeMB int, ttl time.Duration) *CachedRepo {
	cacheSize := sizeMB * megabyte
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedRepo{
		repo:       repo,
		cache:      freecache.NewCache(cacheSize),
		tombstones: freecache.NewCache(tombstoneCacheSize),
		ttlSeconds: int(ttl.Seconds()),
	}
}

func (r *CachedRepo) Add(ctx context.Context, s *Session, date time.Time) (*Session, error) {
	return r.repo.Add(ctx, s, date)
}

func (r *CachedRepo) Get(ctx context.Context, id uuid.UUID) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := id[:]
	if r.deleted(cacheKey) {
		span.SetAttributes(attribute.Bool("cache.tombstone", true))
		return nil, ErrSessionNotFound
	}
	if sessionBytes, err := r.cache.Get(cacheKey); err == nil {
		s := &Session{}
		if err := json.Unmarshal(sessionBytes, s); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			log.Tracef("session %s found in cache", id)
			return s, nil
		} else {
			log.Errorf("failed to unmarshal cached session %s: %s", id, err)
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	s, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sessionBytes, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal session %s for cache: %s", id, err)
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted(cacheKey) {
		log.Debugf("session %s deleted while being read, not caching it", id)
		return s, nil
	}
	if err := r.cache.Set(cacheKey, sessionBytes, r.ttlSeconds); err != nil {
		log.Errorf("failed to cache session %s: %s", id, err)
	}

	return s, nil
}

func (r *CachedRepo) deleted(cacheKey []byte) bool {
	_, err := r.tombstones.Get(cacheKey)
	return err == nil
}

func (r *CachedRepo) List(ctx context.Context, page, size int) ([]Session, int, error) {
	return r.repo.List(ctx, page, size)
}

func (r *CachedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cacheKey := id[:]

	r.mu.Lock()
	if err := r.tombstones.Set(cacheKey, []byte{1}, tombstoneTTLSeconds); err != nil {
		log.Errorf("failed to set tombstone for session %s: %s", id, err)
	}
	r.cache.Del(cacheKey)
	r.mu.Unlock()

	err := r.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		// still there, reads may cache it again
		r.tombstones.Del(cacheKey)
		return err
	}

	r.cache.Del(cacheKey)
	return err
}

func (r *CachedRepo) Len() int64 {
	return r.cache.EntryCount()
}
