// File: slotwise/services/scheduling/session.go
package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const sessionTTL = 10 * time.Minute

// BookingSessionService manages the short-lived session between an
// availability check and the booking confirmation. The session only carries
// the request and the check result; the slot is not held until confirmation
// performs the atomic reserve.
type BookingSessionService interface {
	InitiateSession(ctx context.Context, req CheckRequest, userID string) (*models.BookingSession, error)
	ConfirmSession(ctx context.Context, sessionID string) (*models.Appointment, models.AvailabilityResult, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Engine     SchedulingEngine
	TaskClient *asynq.Client
}

// InitiateSession runs the availability check, assigns a SessionID and stores
// the request plus result in Redis.
func (s *DefaultBookingSessionService) InitiateSession(ctx context.Context, req CheckRequest, userID string) (*models.BookingSession, error) {
	result, err := s.Engine.Check(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	session := models.BookingSession{
		SessionID:       uuid.New().String(),
		Service:         req.Service,
		BranchID:        req.BranchID,
		UserID:          userID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Result:          result,
	}

	sessionData, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking session: %w", err)
	}

	cacheClient := utils.GetSessionCacheClient()
	if err := cacheClient.Set(ctx, session.SessionID, sessionData, sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}

	return &session, nil
}

// ConfirmSession finalizes the booking: it retrieves the session, performs
// the atomic reserve, schedules the reminder and drops the session.
func (s *DefaultBookingSessionService) ConfirmSession(ctx context.Context, sessionID string) (*models.Appointment, models.AvailabilityResult, error) {
	cacheClient := utils.GetSessionCacheClient()

	sessionData, err := cacheClient.Get(ctx, sessionID).Result()
	if err != nil {
		return nil, models.AvailabilityResult{}, fmt.Errorf("booking session not found or expired: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, models.AvailabilityResult{}, fmt.Errorf("failed to parse booking session: %w", err)
	}

	req := CheckRequest{
		Service:         session.Service,
		BranchID:        session.BranchID,
		Date:            session.Date,
		Time:            session.Time,
		DurationMinutes: session.DurationMinutes,
	}
	appt, result, err := s.Engine.Reserve(ctx, req, session.UserID)
	if err != nil {
		return nil, models.AvailabilityResult{}, fmt.Errorf("failed to reserve slot: %w", err)
	}
	if appt == nil {
		// Rejected at confirmation time; keep the session so the caller can
		// retry with one of the suggested slots.
		return nil, result, nil
	}

	cacheClient.Del(ctx, sessionID)
	s.scheduleReminder(appt)
	return appt, result, nil
}

// CancelSession allows the client to explicitly abandon a booking session.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	cacheClient := utils.GetSessionCacheClient()
	if err := cacheClient.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

// scheduleReminder enqueues the reminder task ahead of the appointment start.
// Reminder failures never fail the booking.
func (s *DefaultBookingSessionService) scheduleReminder(appt *models.Appointment) {
	if s.TaskClient == nil {
		return
	}
	logger := utils.GetLogger()

	day, err := utils.ParseDate(appt.Date)
	if err != nil {
		logger.Warn("cannot schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}
	startAt := day.Add(time.Duration(appt.StartMinute) * time.Minute)
	fireAt := startAt.Add(-time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		Service:       appt.Service,
		Date:          appt.Date,
		Time:          appt.Time,
		UserID:        appt.UserID,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		logger.Warn("failed to build reminder task", zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}
	if _, err := s.TaskClient.Enqueue(task, opts...); err != nil {
		logger.Warn("failed to enqueue reminder task", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
