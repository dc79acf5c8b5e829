package notification

import (
	"context"

	"cowork/utils"

	"go.uber.org/zap"
)

// LogNotifier records that a message would have been sent. It drops the body so
// one-time codes never reach the logs.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	utils.GetLogger().Info("Notification suppressed (log notifier)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
