package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Effect is an active effect applied to an actor.
type Effect struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Disabled  bool   `json:"disabled"`
	Temporary bool   `json:"temporary"`
	Sort      int    `json:"sort"`
}

// AddEffect assigns an id when missing and appends the effect.
func (a *Actor) AddEffect(e Effect) Effect {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	a.Effects = append(a.Effects, e)
	return e
}

// RemoveEffect reports whether an effect with id was applied.
func (a *Actor) RemoveEffect(id string) bool {
	for i, e := range a.Effects {
		if e.ID == id {
			a.Effects = append(a.Effects[:i], a.Effects[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleEffect flips Disabled on the effect with id.
func (a *Actor) ToggleEffect(id string) (Effect, bool) {
	for i := range a.Effects {
		if a.Effects[i].ID == id {
			a.Effects[i].Disabled = !a.Effects[i].Disabled
			return a.Effects[i], true
		}
	}
	return Effect{}, false
}

const (
	EffectTemporary = "temporary"
	EffectPassive   = "passive"
	EffectInactive  = "inactive"
)

type EffectCategory struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Effects []Effect `json:"effects"`
}

type EffectCategories struct {
	Temporary EffectCategory `json:"temporary"`
	Passive   EffectCategory `json:"passive"`
	Inactive  EffectCategory `json:"inactive"`
}

// CategorizeEffects splits effects into inactive, temporary and passive
// buckets, each ordered by Sort. Disabled wins over Temporary.
func CategorizeEffects(effects []Effect) EffectCategories {
	out := EffectCategories{
		Temporary: EffectCategory{Type: EffectTemporary, Label: "Temporary Effects", Effects: []Effect{}},
		Passive:   EffectCategory{Type: EffectPassive, Label: "Passive Effects", Effects: []Effect{}},
		Inactive:  EffectCategory{Type: EffectInactive, Label: "Inactive Effects", Effects: []Effect{}},
	}
	for _, e := range effects {
		switch {
		case e.Disabled:
			out.Inactive.Effects = append(out.Inactive.Effects, e)
		case e.Temporary:
			out.Temporary.Effects = append(out.Temporary.Effects, e)
		default:
			out.Passive.Effects = append(out.Passive.Effects, e)
		}
	}
	for _, c := range []*EffectCategory{&out.Temporary, &out.Passive, &out.Inactive} {
		sort.SliceStable(c.Effects, func(i, j int) bool { return c.Effects[i].Sort < c.Effects[j].Sort })
	}
	return out
}
