// File: services/booking/booking.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "bookwise/database/repository/appointment"
	scheduleRepo "bookwise/database/repository/schedule"
	"bookwise/models"
	"bookwise/services/availability"
)

// ErrSlotUnavailable reports that the requested slot is not currently
// offered: off the fixed grid, outside the open window, starting in the
// past, or overlapping an existing booking.
var ErrSlotUnavailable = errors.New("requested slot is not available")

// BookingInput is the payload for creating an appointment.
type BookingInput struct {
	ClientID        string `json:"clientId" binding:"required"`
	Date            string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime       string `json:"startTime" binding:"required"` // zero-padded "HH:MM"
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0"`
	Notes           string `json:"notes"`
}

// Service creates and cancels appointments, keeping the availability
// cache coherent with booking writes.
type Service interface {
	BookAppointment(ctx context.Context, tenantID string, input BookingInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, tenantID, apptID string) error
	ListAppointments(ctx context.Context, tenantID, date string) ([]models.Appointment, error)
}

// DefaultService is the concrete Service implementation. Availability
// is used for cache invalidation only; slot validation recomputes from
// the store so a stale cached answer can never admit a booking.
type DefaultService struct {
	ScheduleRepo scheduleRepo.ScheduleRepository
	ApptRepo     appointmentRepo.AppointmentRepository
	Availability availability.Service
	Now          func() time.Time
}

// BookAppointment validates the requested slot against the tenant's
// resolved window and current bookings, then persists it. The slot must
// sit on the fixed duration grid; bookings never shift slot boundaries.
func (s *DefaultService) BookAppointment(ctx context.Context, tenantID string, input BookingInput) (*models.Appointment, error) {
	avail, err := s.ScheduleRepo.GetWeeklyAvailability(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	start, end, err := s.resolveRequestedSlot(input, *avail)
	if err != nil {
		return nil, err
	}

	booked, err := s.ApptRepo.GetBookedIntervals(ctx, tenantID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked intervals: %w", err)
	}
	for _, b := range booked {
		if start < b.End && b.Start < end {
			return nil, fmt.Errorf("%w: overlaps an existing appointment", ErrSlotUnavailable)
		}
	}

	appt := &models.Appointment{
		TenantID: tenantID,
		ClientID: input.ClientID,
		Date:     input.Date,
		Start:    start,
		End:      end,
		Status:   models.AppointmentBooked,
		Notes:    input.Notes,
	}
	// The interval check above answers with a precise reason, but only
	// the transactional insert decides: a concurrent booking may have
	// claimed the slot since the read.
	if err := s.ApptRepo.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, fmt.Errorf("%w: overlaps an existing appointment", ErrSlotUnavailable)
		}
		return nil, err
	}

	s.Availability.InvalidateCache(ctx, tenantID, input.Date)
	return appt, nil
}

// resolveRequestedSlot checks the request against the day's window and
// grid, returning the slot bounds in minutes.
func (s *DefaultService) resolveRequestedSlot(input BookingInput, avail models.WeeklyAvailability) (int, int, error) {
	window := availability.ResolveDay(input.Date, avail)
	if !window.Open {
		return 0, 0, fmt.Errorf("%w: tenant is closed on %s", ErrSlotUnavailable, input.Date)
	}

	offered := availability.GenerateSlots(window.StartMin, window.EndMin, input.DurationMinutes, nil)
	match := false
	for _, slot := range offered {
		if slot.StartTime == input.StartTime {
			match = true
			break
		}
	}
	if !match {
		return 0, 0, fmt.Errorf("%w: %s is not on the %d-minute grid for %s", ErrSlotUnavailable, input.StartTime, input.DurationMinutes, input.Date)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	local := now.In(window.Location())
	if local.Format("2006-01-02") == input.Date && input.StartTime <= local.Format("15:04") {
		return 0, 0, fmt.Errorf("%w: %s has already started", ErrSlotUnavailable, input.StartTime)
	}

	start, _ := availability.ClockToMinutes(input.StartTime)
	return start, start + input.DurationMinutes, nil
}

// CancelAppointment flips the appointment out of the booked state; from
// that instant it stops constraining availability.
func (s *DefaultService) CancelAppointment(ctx context.Context, tenantID, apptID string) error {
	appt, err := s.ApptRepo.GetByID(ctx, tenantID, apptID)
	if err != nil {
		return err
	}
	if appt.Status != models.AppointmentBooked {
		return fmt.Errorf("appointment %s is already %s", apptID, appt.Status)
	}

	if err := s.ApptRepo.SetStatus(ctx, tenantID, apptID, models.AppointmentCancelled); err != nil {
		return err
	}
	s.Availability.InvalidateCache(ctx, tenantID, appt.Date)
	return nil
}

func (s *DefaultService) ListAppointments(ctx context.Context, tenantID, date string) ([]models.Appointment, error) {
	return s.ApptRepo.GetByTenantAndDate(ctx, tenantID, date)
}
