package app

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/clubgate/api/internal/domain"
	"github.com/google/uuid"
)

// Notifier receives the audit notification for each committed mutation.
type Notifier interface {
	Emit(ctx context.Context, n domain.Notification)
}

func newNotification(typ domain.NotificationType, at time.Time, data any) domain.Notification {
	return domain.Notification{
		ID:   uuid.NewString(),
		Type: typ,
		At:   at,
		Data: data,
	}
}

// LogNotifier writes notifications as JSON lines.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Emit(_ context.Context, n domain.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		l.logger.Printf("notification %s id=%s (marshal failed: %v)", n.Type, n.ID, err)
		return
	}
	l.logger.Printf("notification %s", payload)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Emit(context.Context, domain.Notification) {}
