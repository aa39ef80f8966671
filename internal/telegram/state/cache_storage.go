package state

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheStorage keeps sessions in memory. Abandoned quizzes expire after ttl.
type CacheStorage struct {
	cache *cache.Cache
}

func NewCacheStorage(ttl time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *CacheStorage) Get(_ context.Context, userID int64) (*TelegramSession, error) {
	v, ok := s.cache.Get(cacheKey(userID))
	if !ok {
		return nil, ErrSessionNotFound
	}

	// Values are stored by copy so callers never share state.
	session := v.(TelegramSession)
	return &session, nil
}

func (s *CacheStorage) Set(_ context.Context, session *TelegramSession) error {
	s.cache.SetDefault(cacheKey(session.UserID), *session)
	return nil
}

func (s *CacheStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(cacheKey(userID))
	return nil
}

// Count returns the number of quizzes in progress.
func (s *CacheStorage) Count() int {
	return s.cache.ItemCount()
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
