package notification

import (
	"context"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// NotificationService delivers appointment reminders. Actual transport
// (push, SMS, chat) lives outside this service; this interface is the seam.
type NotificationService interface {
	SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotificationService is the default delivery: it only logs. Deployments
// with a real transport replace it at wiring time.
type LogNotificationService struct{}

func (s *LogNotificationService) SendAppointmentReminder(_ context.Context, payload models.ReminderPayload) error {
	utils.GetLogger().Info("appointment reminder due",
		zap.String("appointmentID", payload.AppointmentID),
		zap.String("service", payload.Service),
		zap.String("date", payload.Date),
		zap.String("time", payload.Time),
	)
	return nil
}
