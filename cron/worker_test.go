package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cowork/database/repository/memstore"
	"cowork/models"
	"cowork/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct{ to, subject string }

type captureNotifier struct{ sent []sentMail }

func (n *captureNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.sent = append(n.sent, sentMail{to, subject})
	return nil
}

func reminderTask(t *testing.T, p models.ReminderPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, b)
}

func TestHandleReminderTask(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	notifier := &captureNotifier{}
	handler := handleReminderTask(ReminderDeps{
		Reservations: store.Reservations(),
		Users:        store.Users(),
		Notifier:     notifier,
	})

	user := &models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleUser}
	require.NoError(t, store.Users().Create(ctx, user))
	date := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	res := &models.Reservation{UserID: user.ID, CoworkingSpaceID: "s1", ReservationDate: date}
	require.NoError(t, store.Reservations().Create(ctx, res))

	payload := models.ReminderPayload{ReservationID: res.ID, UserID: user.ID, SpaceName: "Hub", ReservationDate: date}
	require.NoError(t, handler(ctx, reminderTask(t, payload)))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ann@example.com", notifier.sent[0].to)
	assert.Contains(t, notifier.sent[0].subject, "Hub")

	// A rescheduled reservation ignores the stale task.
	stale := payload
	stale.ReservationDate = date.Add(-24 * time.Hour)
	require.NoError(t, handler(ctx, reminderTask(t, stale)))
	assert.Len(t, notifier.sent, 1)

	// So does a deleted one.
	require.NoError(t, store.Reservations().Delete(ctx, res.ID))
	require.NoError(t, handler(ctx, reminderTask(t, payload)))
	assert.Len(t, notifier.sent, 1)
}

func TestHandleReminderTask_BadPayloadSkipsRetry(t *testing.T) {
	handler := handleReminderTask(ReminderDeps{})
	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
