// Package notify publishes resolved checks and warnings to the table's chat
// sinks: webhooks, Redis subscribers, websocket clients and the log.
package notify

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/deusexludus/internal/check"
	"github.com/hamed0406/deusexludus/internal/domain"
)

type Level string

const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Message is one chat line. Roll, TargetNumber, Outcome and Degree are
// always carried raw next to the rendered Text so sinks never need to
// parse it; a warning has outcome "unspecified" and zero numbers.
type Message struct {
	Title        string         `json:"title"`
	Text         string         `json:"text"`
	Level        Level          `json:"level"`
	ActorID      domain.ActorID `json:"actor_id,omitempty"`
	Skill        string         `json:"skill,omitempty"`
	Roll         int            `json:"roll"`
	TargetNumber int            `json:"target_number"`
	Outcome      check.Outcome  `json:"outcome"`
	Degree       int            `json:"degree"`
	At           time.Time      `json:"at"`
}

type Notifier interface {
	Publish(ctx context.Context, m Message) error
}

// Multi publishes to every sink and combines their errors.
type Multi []Notifier

func (m Multi) Publish(ctx context.Context, msg Message) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Publish(ctx, msg))
	}
	return err
}

// Nop discards every message.
type Nop struct{}

func (Nop) Publish(context.Context, Message) error { return nil }
