package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cowork/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%d", payload.ReservationID, payload.ReservationDate.Unix())),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues a reminder Lead before each reservation.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
	now    func() time.Time
}

func NewAsynqReminderScheduler(client *asynq.Client, lead time.Duration) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Lead: lead, now: time.Now}
}

// ScheduleReminder skips reservations whose reminder time has already passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, res *models.Reservation, spaceName string) error {
	fireAt := res.ReservationDate.Add(-s.Lead)
	if !fireAt.After(s.now()) {
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		ReservationID:   res.ID,
		UserID:          res.UserID,
		SpaceName:       spaceName,
		ReservationDate: res.ReservationDate,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
