package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"medbuddy/config"
	settingsRepo "medbuddy/database/repository/settings"
	"medbuddy/models"
	"medbuddy/services/tasks"
	"medbuddy/utils"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(settings settingsRepo.SettingsRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(settings))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a due reminder. Delivery here is the clinic's
// outbound channel; the shipped handler logs the reminder together with the
// doctor contact from admin settings, which is where an SMS or WhatsApp
// integration slots in.
func handleReminderTask(settings settingsRepo.SettingsRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder worker: invalid payload", zap.Error(err))
			return err
		}

		contact := ""
		if s, err := settings.Get(ctx); err == nil {
			contact = s.DoctorContact
		} else {
			logger.Warn("reminder worker: failed to load admin settings", zap.Error(err))
		}

		logger.Info("appointment reminder",
			zap.String("confirmationCode", p.ConfirmationCode),
			zap.String("patient", p.PatientName),
			zap.String("mobile", p.Mobile),
			zap.String("date", p.AppointmentDate),
			zap.String("slot", p.SlotTime),
			zap.String("status", p.Status),
			zap.String("doctorContact", contact),
		)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
