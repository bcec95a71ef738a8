package location

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	locationRepo "drivebook/database/repository/location"
	"drivebook/models"
	"drivebook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "ziploc:"

// LocationService resolves a zip code to its city, state and IANA timezone.
type LocationService interface {
	ResolveZip(ctx context.Context, zip string) (*models.Location, error)
}

// DefaultLocationService implements LocationService over the zip-location
// collection with a Redis read-through cache.
type DefaultLocationService struct {
	Repo     locationRepo.LocationRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

// ResolveZip returns the location for a zip code. Unknown zips resolve to a
// placeholder location rather than an error so search can still render.
func (s *DefaultLocationService) ResolveZip(ctx context.Context, zip string) (*models.Location, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKeyPrefix+zip).Result(); err == nil {
			var loc models.Location
			if err := json.Unmarshal([]byte(cached), &loc); err == nil {
				return &loc, nil
			}
			logger.Warn("discarding corrupt zip-location cache entry", zap.String("zip", zip))
		}
	}

	loc, err := s.Repo.GetByZip(zip)
	if err != nil {
		if err == locationRepo.ErrNotFound {
			return unknownLocation(zip), nil
		}
		return nil, fmt.Errorf("failed to resolve zip %s: %w", zip, err)
	}

	if s.Cache != nil {
		if buf, err := json.Marshal(loc); err == nil {
			ttl := s.CacheTTL
			if ttl == 0 {
				ttl = 24 * time.Hour
			}
			if err := s.Cache.Set(ctx, cacheKeyPrefix+zip, buf, ttl).Err(); err != nil {
				logger.Warn("failed to cache zip location", zap.String("zip", zip), zap.Error(err))
			}
		}
	}
	return loc, nil
}

func unknownLocation(zip string) *models.Location {
	return &models.Location{
		ZipCode:  zip,
		City:     "Unknown",
		State:    "XX",
		Timezone: "America/New_York",
		Display:  "Unknown",
	}
}
