package geocode

import (
	"context"
	"log/slog"
	"time"
)

// Resolver is the upstream lookup; satisfied by *Client.
type Resolver interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// Service fronts the upstream resolver with a short-lived cache so map pans
// from one device do not hammer Nominatim.
type Service struct {
	resolver Resolver
	cache    Cache
	ttl      time.Duration
	logger   *slog.Logger
}

func NewService(resolver Resolver, cache Cache, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, cache: cache, ttl: ttl, logger: logger}
}

// ReverseLookup resolves a coordinate to an address, reporting whether the
// answer came from the cache. Cache backend failures degrade to a direct
// lookup.
func (s *Service) ReverseLookup(ctx context.Context, lat, lng float64) (address string, cached bool, err error) {
	key := CacheKey(lat, lng)

	if val, ok, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
		s.logger.Warn("geocode cache unavailable", "error", cacheErr)
	} else if ok {
		return val, true, nil
	}

	address, err = s.resolver.Reverse(ctx, lat, lng)
	if err != nil {
		return "", false, err
	}

	if cacheErr := s.cache.Set(ctx, key, address, s.ttl); cacheErr != nil {
		s.logger.Warn("geocode cache write failed", "error", cacheErr)
	}
	return address, false, nil
}
