package activity

import (
	"context"
	"log/slog"

	"github.com/rabie-karouia/EasyDinar/internal/metrics"
	"github.com/rabie-karouia/EasyDinar/internal/pubsub"
)

// Audit consumes activity events, logging each one and counting it.
type Audit struct {
	logger *slog.Logger
}

// NewAudit creates an audit subscriber writing to logger.
func NewAudit(logger *slog.Logger) *Audit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Audit{logger: logger.With("component", "audit")}
}

// Start subscribes to the activity topic until ctx is canceled.
func (a *Audit) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return sub.Subscribe(ctx, Topic.Name(), a.Handle)
}

// Handle processes one activity message.
func (a *Audit) Handle(ctx context.Context, msg pubsub.Message) error {
	ev, err := pubsub.Decode(Topic, msg)
	if err != nil {
		return err
	}

	metrics.CountActivity(ev.Kind, ev.Outcome)

	level := slog.LevelInfo
	if ev.Outcome == OutcomeFailed {
		level = slog.LevelWarn
	}
	a.logger.Log(ctx, level, "Activity",
		"event_id", ev.ID,
		"kind", ev.Kind,
		"outcome", ev.Outcome,
		"cin", MaskCIN(msg.CIN),
		"request_id", msg.Metadata["request_id"],
		"detail", ev.Detail,
	)
	return nil
}

// MaskCIN keeps only the last three characters of a CIN for logging.
func MaskCIN(cin string) string {
	if len(cin) <= 3 {
		return cin
	}
	masked := make([]byte, len(cin))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(cin)-3:], cin[len(cin)-3:])
	return string(masked)
}
