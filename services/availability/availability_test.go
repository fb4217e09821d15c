package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookwise/models"
)

type fakeScheduleRepo struct {
	avail models.WeeklyAvailability
	err   error
}

func (f *fakeScheduleRepo) GetWeeklyAvailability(ctx context.Context, tenantID string) (*models.WeeklyAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	avail := f.avail
	return &avail, nil
}

func (f *fakeScheduleRepo) UpdateWeeklyAvailability(ctx context.Context, tenantID string, avail models.WeeklyAvailability) error {
	f.avail = avail
	return nil
}

type fakeApptRepo struct {
	intervals []models.BookedInterval
	err       error
}

func (f *fakeApptRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	return nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, tenantID, apptID string) (*models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApptRepo) GetByTenantAndDate(ctx context.Context, tenantID, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeApptRepo) GetBookedIntervals(ctx context.Context, tenantID, date string) ([]models.BookedInterval, error) {
	return f.intervals, f.err
}

func (f *fakeApptRepo) SetStatus(ctx context.Context, tenantID, apptID, status string) error {
	return nil
}

func newTestService(avail models.WeeklyAvailability, booked []models.BookedInterval, now time.Time) *DefaultService {
	return &DefaultService{
		ScheduleRepo: &fakeScheduleRepo{avail: avail},
		ApptRepo:     &fakeApptRepo{intervals: booked},
		Now:          func() time.Time { return now },
	}
}

func TestGetAvailableSlotsFutureDate(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	svc := newTestService(avail, nil, now)

	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	require.NoError(t, err)
	assert.Len(t, slots, 6)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "12:00", slots[len(slots)-1].EndTime)
}

func TestGetAvailableSlotsClosedDay(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	svc := newTestService(avail, nil, now)

	// 2025-06-03 is a Tuesday; the schedule only opens Mondays.
	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-03", 30)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsSkipsBooked(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	booked := []models.BookedInterval{{Start: 600, End: 630}}
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	svc := newTestService(avail, booked, now)

	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	require.NoError(t, err)
	assert.Len(t, slots, 5)
	assert.NotContains(t, slots, models.Slot{StartTime: "10:00", EndTime: "10:30"})
}

func TestGetAvailableSlotsTodayFilterDropsElapsed(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	// Request for "today" at 10:05 local: only slots starting strictly
	// after the current time remain.
	now := time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC)
	svc := newTestService(avail, nil, now)

	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	require.NoError(t, err)
	want := []models.Slot{
		{StartTime: "10:30", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "11:30"},
		{StartTime: "11:30", EndTime: "12:00"},
	}
	assert.Equal(t, want, slots)
}

func TestGetAvailableSlotsTodayFilterExactBoundary(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	// At exactly 10:30 the 10:30 slot has begun and is no longer offered.
	now := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	svc := newTestService(avail, nil, now)

	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	require.NoError(t, err)
	assert.NotContains(t, slots, models.Slot{StartTime: "10:30", EndTime: "11:00"})
	assert.Contains(t, slots, models.Slot{StartTime: "11:00", EndTime: "11:30"})
}

func TestGetAvailableSlotsTodayFilterUsesScheduleZone(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	avail.TimeZone = "Asia/Tokyo"
	// 01:05 UTC on June 2nd is 10:05 the same day in Tokyo.
	now := time.Date(2025, 6, 2, 1, 5, 0, 0, time.UTC)
	svc := newTestService(avail, nil, now)

	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	require.NoError(t, err)
	assert.Len(t, slots, 3)
	assert.Equal(t, "10:30", slots[0].StartTime)
}

func TestGetAvailableSlotsCacheHitStillFiltersElapsed(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	avail := weekdaySchedule(1, "09:00", "12:00")
	svc := newTestService(avail, nil, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
	svc.Cache = cache

	// First call populates the cache before the day opens: all 6 slots.
	slots, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	// The clock reaches 10:05 within the entry's lifetime. The cached
	// answer must drop the slots that started in the meantime.
	svc.Now = func() time.Time { return time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC) }
	slots, err = svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)
	require.NoError(t, err)
	assert.Equal(t, []models.Slot{
		{StartTime: "10:30", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "11:30"},
		{StartTime: "11:30", EndTime: "12:00"},
	}, slots)
}

func TestInvalidateCacheDropsEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	avail := weekdaySchedule(1, "09:00", "12:00")
	svc := newTestService(avail, nil, time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC))
	svc.Cache = cache

	_, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)
	require.NoError(t, err)
	require.NotEmpty(t, mr.Keys())

	svc.InvalidateCache(context.Background(), "t1", "2025-06-02")
	assert.Empty(t, mr.Keys())
}

func TestGetAvailableSlotsScheduleLoadError(t *testing.T) {
	svc := &DefaultService{
		ScheduleRepo: &fakeScheduleRepo{err: errors.New("mongo down")},
		ApptRepo:     &fakeApptRepo{},
	}

	_, err := svc.GetAvailableSlots(context.Background(), "t1", "2025-06-02", 30)

	assert.Error(t, err)
}
