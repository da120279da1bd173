package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"algorithm_guessr/internal/platform/cache"
)

type extensionMark struct {
	VerifiedAt int64 `json:"verifiedAt"`
}

// ExtensionService tracks short-lived proof that a user's anti-cheat
// browser extension is active.
type ExtensionService struct {
	cache cache.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewExtensionService(store cache.Store, ttl time.Duration) *ExtensionService {
	return &ExtensionService{cache: store, ttl: ttl, now: time.Now}
}

func extensionCacheKey(userID int64) string {
	return "extension:" + strconv.FormatInt(userID, 10)
}

func (s *ExtensionService) MarkVerified(ctx context.Context, userID int64) error {
	mark := extensionMark{VerifiedAt: s.now().UnixMilli()}
	if err := s.cache.SetJSON(ctx, extensionCacheKey(userID), mark, s.ttl); err != nil {
		return fmt.Errorf("mark extension verified: %w", err)
	}
	return nil
}

func (s *ExtensionService) IsVerified(ctx context.Context, userID int64) (bool, error) {
	var mark extensionMark
	ok, err := s.cache.GetJSON(ctx, extensionCacheKey(userID), &mark)
	if err != nil {
		return false, fmt.Errorf("read extension mark: %w", err)
	}
	return ok, nil
}

func (s *ExtensionService) Clear(ctx context.Context, userID int64) error {
	if err := s.cache.Delete(ctx, extensionCacheKey(userID)); err != nil {
		return fmt.Errorf("clear extension mark: %w", err)
	}
	return nil
}
