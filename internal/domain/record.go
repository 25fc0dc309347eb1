package domain

import (
	"time"

	"github.com/hamed0406/deusexludus/internal/check"
)

// CheckRecord is the persisted log line of one resolved skill check.
// Defaulted is set when the target number came from the fallback rather
// than the actor's data.
type CheckRecord struct {
	ID           int64         `json:"id"`
	ActorID      ActorID       `json:"actor_id"`
	Skill        string        `json:"skill"`
	Roll         int           `json:"roll"`
	TargetNumber int           `json:"target_number"`
	Outcome      check.Outcome `json:"outcome"`
	Margin       int           `json:"margin"`
	Degree       int           `json:"degree"`
	Defaulted    bool          `json:"defaulted"`
	RolledAt     time.Time     `json:"rolled_at"`
}

func NewCheckRecord(actor ActorID, skill string, res check.Result, defaulted bool) *CheckRecord {
	return &CheckRecord{
		ActorID:      actor,
		Skill:        skill,
		Roll:         res.Roll,
		TargetNumber: res.TargetNumber,
		Outcome:      res.Outcome,
		Margin:       res.Margin,
		Degree:       res.Degree,
		Defaulted:    defaulted,
		RolledAt:     time.Now().UTC(),
	}
}
