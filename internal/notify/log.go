package notify

import (
	"context"

	"go.uber.org/zap"
)

// Log writes chat lines to the structured log.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Publish(_ context.Context, m Message) error {
	fields := []zap.Field{
		zap.String("title", m.Title),
		zap.String("text", m.Text),
	}
	if m.ActorID != "" {
		fields = append(fields,
			zap.String("actor_id", string(m.ActorID)),
			zap.String("skill", m.Skill),
		)
	}
	if m.Roll != 0 {
		fields = append(fields,
			zap.Int("roll", m.Roll),
			zap.Int("target_number", m.TargetNumber),
			zap.Stringer("outcome", m.Outcome),
			zap.Int("degree", m.Degree),
		)
	}
	if m.Level == LevelWarn {
		l.Logger.Warn("chat_message", fields...)
	} else {
		l.Logger.Info("chat_message", fields...)
	}
	return nil
}
