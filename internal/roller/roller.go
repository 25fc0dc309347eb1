// Package roller runs skill checks for stored actors: it looks up the
// target number, rolls, resolves, records and announces the result.
package roller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hamed0406/deusexludus/internal/check"
	"github.com/hamed0406/deusexludus/internal/dice"
	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/i18n"
	"github.com/hamed0406/deusexludus/internal/notify"
	"github.com/hamed0406/deusexludus/internal/repo"
)

// MissingSkillPolicy decides what happens when an actor has no such skill.
type MissingSkillPolicy string

const (
	// PolicyWarn announces the missing skill and does not roll.
	PolicyWarn MissingSkillPolicy = "warn"
	// PolicyDefault rolls against the default target number instead.
	PolicyDefault MissingSkillPolicy = "default"
)

func ParsePolicy(s string) (MissingSkillPolicy, error) {
	switch p := MissingSkillPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyWarn, nil
	case PolicyWarn, PolicyDefault:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing skill policy %q", s)
	}
}

// MissingSkillError carries the localized warning shown to the table.
type MissingSkillError struct {
	ActorID domain.ActorID
	Skill   string
	Message string
}

func (e *MissingSkillError) Error() string { return e.Message }

func (e *MissingSkillError) Unwrap() error { return check.ErrMissingSkill }

// Report is what a roll produced, ready to render.
type Report struct {
	ActorID   domain.ActorID `json:"actor_id"`
	ActorName string         `json:"actor_name"`
	Skill     string         `json:"skill"`
	Result    check.Result   `json:"result"`
	Label     string         `json:"label"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Defaulted bool           `json:"defaulted"`
	RecordID  int64          `json:"record_id"`
	RolledAt  time.Time      `json:"rolled_at"`
}

type Service struct {
	Logger        *zap.Logger
	Actors        repo.ActorStore
	Checks        repo.CheckStore
	Dice          dice.Roller
	Notifier      notify.Notifier
	Messages      *i18n.Catalog
	Policy        MissingSkillPolicy
	DefaultTarget int
}

func NewService(
	logger *zap.Logger,
	actors repo.ActorStore,
	checks repo.CheckStore,
	roller dice.Roller,
	notifier notify.Notifier,
	messages *i18n.Catalog,
	policy MissingSkillPolicy,
	defaultTarget int,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if policy == "" {
		policy = PolicyWarn
	}
	return &Service{
		Logger:        logger,
		Actors:        actors,
		Checks:        checks,
		Dice:          roller,
		Notifier:      notifier,
		Messages:      messages,
		Policy:        policy,
		DefaultTarget: defaultTarget,
	}
}

// RollSkill rolls d100 against the actor's skill and reports the result in
// the tag's language. Invalid target numbers are returned unchanged and
// nothing is recorded or published for them.
func (s *Service) RollSkill(ctx context.Context, id domain.ActorID, skill string, tag language.Tag) (*Report, error) {
	skill = strings.TrimSpace(skill)
	a, err := s.Actors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	defaulted := false
	tn, err := a.SkillTarget(skill)
	if err != nil {
		if !errors.Is(err, check.ErrMissingSkill) {
			return nil, err
		}
		if s.Policy != PolicyDefault {
			return nil, s.warnMissing(ctx, a, skill, tag)
		}
		tn, defaulted = s.DefaultTarget, true
	}

	res, err := check.Resolve(tn, s.Dice.D100())
	if err != nil {
		s.Logger.Warn("skill_check_rejected",
			zap.String("actor_id", string(a.ID)),
			zap.String("skill", skill),
			zap.Int("target_number", tn),
			zap.Error(err),
		)
		return nil, err
	}

	rec := domain.NewCheckRecord(a.ID, skill, res, defaulted)
	if err := s.Checks.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("record check: %w", err)
	}

	rep := &Report{
		ActorID:   a.ID,
		ActorName: a.Name,
		Skill:     skill,
		Result:    res,
		Label:     res.Label(),
		Title:     s.Messages.Sprintf(tag, "check.title", a.Name, skill),
		Message:   s.render(tag, skill, res),
		Defaulted: defaulted,
		RecordID:  rec.ID,
		RolledAt:  rec.RolledAt,
	}
	s.publish(ctx, notify.Message{
		Title:        rep.Title,
		Text:         rep.Message,
		Level:        notify.LevelInfo,
		ActorID:      a.ID,
		Skill:        skill,
		Roll:         res.Roll,
		TargetNumber: res.TargetNumber,
		Outcome:      res.Outcome,
		Degree:       res.Degree,
		At:           rec.RolledAt,
	})
	s.Logger.Info("skill_rolled",
		zap.String("actor_id", string(a.ID)),
		zap.String("skill", skill),
		zap.Int("roll", res.Roll),
		zap.Int("target_number", res.TargetNumber),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("degree", res.Degree),
		zap.Bool("defaulted", defaulted),
	)
	return rep, nil
}

// History returns recorded checks for an actor, newest first.
func (s *Service) History(ctx context.Context, id domain.ActorID, limit int) ([]domain.CheckRecord, error) {
	if _, err := s.Actors.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Checks.ListByActor(ctx, id, limit)
}

func (s *Service) render(tag language.Tag, skill string, res check.Result) string {
	outcome, degree := "check.failure", "check.degree_of_failure"
	if res.Success() {
		outcome, degree = "check.success", "check.degree_of_success"
	}
	return s.Messages.Sprintf(tag, "check.message",
		res.Roll, res.TargetNumber, skill,
		s.Messages.Sprintf(tag, outcome),
		s.Messages.Sprintf(tag, degree),
		res.Degree,
	)
}

func (s *Service) warnMissing(ctx context.Context, a *domain.Actor, skill string, tag language.Tag) error {
	text := s.Messages.Sprintf(tag, "skill.not_found", skill)
	s.publish(ctx, notify.Message{
		Title:   s.Messages.Sprintf(tag, "skill.not_found.title"),
		Text:    text,
		Level:   notify.LevelWarn,
		ActorID: a.ID,
		Skill:   skill,
		At:      time.Now().UTC(),
	})
	s.Logger.Warn("skill_missing",
		zap.String("actor_id", string(a.ID)),
		zap.String("skill", skill),
	)
	return &MissingSkillError{ActorID: a.ID, Skill: skill, Message: text}
}

// publish is best effort; a failing sink never fails the roll.
func (s *Service) publish(ctx context.Context, m notify.Message) {
	if err := s.Notifier.Publish(ctx, m); err != nil {
		s.Logger.Warn("chat_publish_failed",
			zap.String("title", m.Title),
			zap.Error(err),
		)
	}
}
