package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	reservationRepo "cowork/database/repository/reservation"
	userRepo "cowork/database/repository/user"
	"cowork/models"
	"cowork/services/notification"
	"cowork/services/tasks"
	"cowork/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderDeps are the collaborators the reminder handler needs.
type ReminderDeps struct {
	Reservations reservationRepo.ReservationRepository
	Users        userRepo.UserRepository
	Notifier     notification.Notifier
}

// InitReminderWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitReminderWorker(redisOpts asynq.RedisClientOpt, deps ReminderDeps) *asynq.Server {
	logger := utils.GetLogger()

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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(deps))

	// Start async worker with retry logic
	go func() {
		logger.Info("[ReminderWorker] Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("[ReminderWorker] Failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] Max retry attempts reached; reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReminderTask(deps ReminderDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] Invalid payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		res, err := deps.Reservations.GetByID(ctx, p.ReservationID)
		if err != nil {
			return err
		}
		// Cancelled or rescheduled reservations get their own task. Mongo keeps
		// millisecond precision only.
		if res == nil || !res.ReservationDate.Truncate(time.Millisecond).Equal(p.ReservationDate.Truncate(time.Millisecond)) {
			logger.Debug("[ReminderHandler] Reservation changed, skipping", zap.String("reservationID", p.ReservationID))
			return nil
		}

		user, err := deps.Users.GetByID(ctx, res.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}

		subject := fmt.Sprintf("Reminder: your reservation at %s", p.SpaceName)
		body := fmt.Sprintf("Hi %s,\n\nThis is a reminder that you have reserved %s for %s.\n",
			user.Name, p.SpaceName, res.ReservationDate.Format("Mon, 02 Jan 2006 15:04 MST"))

		if err := deps.Notifier.Send(ctx, user.Email, subject, body); err != nil {
			logger.Warn("[ReminderHandler] Failed to send reminder", zap.String("reservationID", res.ID), zap.Error(err))
			return err
		}
		logger.Info("[ReminderHandler] Reminder sent", zap.String("reservationID", res.ID))
		return nil
	}
}
