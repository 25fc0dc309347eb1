package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamed0406/deusexludus/internal/check"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid document")

type ActorID string

func NewActorID() ActorID { return ActorID(uuid.NewString()) }

type ActorType string

const (
	ActorCharacter  ActorType = "character"
	ActorNPC        ActorType = "npc"
	ActorSettlement ActorType = "settlement"
)

// Resource is a bounded pool such as health or faith.
type Resource struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

type Attributes struct {
	Health Resource `json:"health"`
	Faith  Resource `json:"faith"`
}

type Actor struct {
	ID         ActorID        `json:"id"`
	Name       string         `json:"name"`
	Type       ActorType      `json:"type"`
	Attributes Attributes     `json:"attributes"`
	Skills     map[string]int `json:"skills,omitempty"`
	Population int            `json:"population,omitempty"`
	Resources  int            `json:"resources,omitempty"`
	Notes      string         `json:"notes"`
	Items      []Item         `json:"items"`
	Effects    []Effect       `json:"effects"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// SkillTarget returns the target number configured for skill. The
// actor's skill table wins over owned skill items. A skill that exists
// with a value of 0 is a valid (impossible) target, not a missing one.
func (a *Actor) SkillTarget(skill string) (int, error) {
	key := normalizeSkill(skill)
	if key == "" {
		return 0, fmt.Errorf("%w: empty skill name", check.ErrMissingSkill)
	}
	if tn, ok := a.Skills[key]; ok {
		return tn, nil
	}
	for _, it := range a.Items {
		if it.Type == ItemSkill && normalizeSkill(it.Name) == key {
			return it.TargetNumber, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", check.ErrMissingSkill, skill)
}

type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// AdjustAttribute moves an attribute's current value by one step.
// Decreasing never goes below zero.
func (a *Actor) AdjustAttribute(attr string, dir Direction) (Resource, error) {
	var r *Resource
	switch strings.ToLower(strings.TrimSpace(attr)) {
	case "health":
		r = &a.Attributes.Health
	case "faith":
		r = &a.Attributes.Faith
	default:
		return Resource{}, fmt.Errorf("%w: unknown attribute %q", ErrInvalid, attr)
	}
	switch dir {
	case Increase:
		r.Value++
	case Decrease:
		r.Value = max(0, r.Value-1)
	default:
		return Resource{}, fmt.Errorf("%w: unknown direction %q", ErrInvalid, dir)
	}
	return *r, nil
}

// AddItem assigns an id when missing and appends the item.
func (a *Actor) AddItem(it Item) Item {
	if it.ID == "" {
		it.ID = NewItemID()
	}
	a.Items = append(a.Items, it)
	return it
}

// RemoveItem reports whether an item with id was owned.
func (a *Actor) RemoveItem(id ItemID) bool {
	for i, it := range a.Items {
		if it.ID == id {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return true
		}
	}
	return false
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
