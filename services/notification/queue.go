// File: services/notification/queue.go
package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"medbuddy/config"
	"medbuddy/models"
	"medbuddy/services/tasks"
)

// AsynqNotificationService enqueues reminder tasks onto the Redis-backed
// queue consumed by the cron worker.
type AsynqNotificationService struct {
	Client *asynq.Client
}

// NewAsynqNotificationService builds a queue-backed notification service from
// the application Redis config.
func NewAsynqNotificationService() *AsynqNotificationService {
	return &AsynqNotificationService{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

func (s *AsynqNotificationService) SendReminder(ctx context.Context, appt models.Appointment) error {
	payload := models.ReminderPayload{
		AppointmentID:    appt.ID,
		ConfirmationCode: appt.ConfirmationCode,
		PatientName:      appt.PatientName,
		Mobile:           appt.Mobile,
		AppointmentDate:  appt.AppointmentDate,
		SlotTime:         appt.SlotTime,
		Status:           string(appt.Status),
	}

	task, err := tasks.NewReminderTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *AsynqNotificationService) Close() error {
	return s.Client.Close()
}
