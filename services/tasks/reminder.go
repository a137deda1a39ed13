package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"medbuddy/models"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendReminder, b), nil
}
