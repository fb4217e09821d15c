// File: services/availability/availability.go
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	appointmentRepo "bookwise/database/repository/appointment"
	scheduleRepo "bookwise/database/repository/schedule"
	"bookwise/models"
	"bookwise/utils"
)

// Service computes bookable slots for a tenant.
type Service interface {
	GetAvailableSlots(ctx context.Context, tenantID, date string, durationMinutes int) ([]models.Slot, error)
	InvalidateCache(ctx context.Context, tenantID, date string)
}

// DefaultService is the concrete Service implementation. Now is
// injectable so the today filter can be tested against a fixed clock;
// when nil, time.Now is used. Cache may be nil to disable caching.
type DefaultService struct {
	ScheduleRepo scheduleRepo.ScheduleRepository
	ApptRepo     appointmentRepo.AppointmentRepository
	Cache        *redis.Client
	Now          func() time.Time
}

// cachedAvailability is the cache entry for one (tenant, date,
// duration) key: the full-day slot list plus the zone it was resolved
// in. The today filter is applied AFTER the cache read, never before
// the write, so a cached answer cannot offer a slot past its start for
// the life of the entry.
type cachedAvailability struct {
	TimeZone string        `json:"timeZone"`
	Slots    []models.Slot `json:"slots"`
}

// GetAvailableSlots resolves the tenant's open window for the date,
// partitions it into durationMinutes slots around booked appointments,
// and, when the date is today in the tenant's zone, drops slots whose
// start has already passed. An empty result is a normal answer for a
// closed day, a fully booked day, or a misconfigured schedule.
func (s *DefaultService) GetAvailableSlots(ctx context.Context, tenantID, date string, durationMinutes int) ([]models.Slot, error) {
	logger := utils.GetLogger()

	cacheKey := fmt.Sprintf("%s%s:%s:%d", utils.AvailabilityCachePrefix, tenantID, date, durationMinutes)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedAvailability
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.Slots != nil {
				return s.filterElapsed(cached.Slots, date, cached.TimeZone), nil
			}
			logger.Warn("discarding undecodable availability cache entry", zap.String("key", cacheKey))
		}
	}

	avail, err := s.ScheduleRepo.GetWeeklyAvailability(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	window := ResolveDay(date, *avail)
	if !window.Open {
		return []models.Slot{}, nil
	}

	booked, err := s.ApptRepo.GetBookedIntervals(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked intervals: %w", err)
	}

	slots := GenerateSlots(window.StartMin, window.EndMin, durationMinutes, booked)

	if s.Cache != nil {
		entry := cachedAvailability{TimeZone: window.TimeZone, Slots: slots}
		if data, err := json.Marshal(entry); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, utils.AvailabilityCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache availability", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return s.filterElapsed(slots, date, window.TimeZone), nil
}

// filterElapsed drops slots that have already started when the
// requested date is today in the schedule's zone. Both sides of the
// comparison are zero-padded "HH:MM" strings produced by the same
// formatter, which is what makes the lexicographic compare sound.
func (s *DefaultService) filterElapsed(slots []models.Slot, date, timeZone string) []models.Slot {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	local := now.In(loadLocation(timeZone))
	if local.Format(dateLayout) != date {
		return slots
	}

	cutoff := local.Format("15:04")
	upcoming := []models.Slot{}
	for _, slot := range slots {
		if slot.StartTime > cutoff {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// InvalidateCache drops cached availability for a tenant's date across
// all durations. Booking writes call this so a cached answer never
// outlives the booking change by more than one round trip.
func (s *DefaultService) InvalidateCache(ctx context.Context, tenantID, date string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("%s%s:%s:*", utils.AvailabilityCachePrefix, tenantID, date)
	keys, err := s.Cache.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("pattern", pattern), zap.Error(err))
	}
}
