package domain

import "fmt"

// Localizer translates a message key, returning fallback when the key is
// unknown.
type Localizer func(key, fallback string) string

type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ItemGroup struct {
	Type  ItemType `json:"type"`
	Label string   `json:"label"`
	Items []Item   `json:"items"`
}

// Sheet is everything a client needs to render an actor sheet.
type Sheet struct {
	Actor      *Actor           `json:"actor"`
	Kind       ActorKind        `json:"kind"`
	Tabs       []Tab            `json:"tabs"`
	Initial    string           `json:"initial_tab"`
	ItemGroups []ItemGroup      `json:"item_groups"`
	Effects    EffectCategories `json:"effects"`
}

// GroupItems buckets items by type in registry order. Types the actor
// owns nothing of are omitted.
func (r *Registry) GroupItems(items []Item, loc Localizer) []ItemGroup {
	loc = orIdentity(loc)
	byType := map[ItemType][]Item{}
	for _, it := range items {
		byType[it.Type] = append(byType[it.Type], it)
	}
	out := []ItemGroup{}
	for _, t := range r.itemOrder {
		if len(byType[t]) == 0 {
			continue
		}
		out = append(out, ItemGroup{
			Type:  t,
			Label: loc("item.type."+string(t), r.items[t].Label),
			Items: byType[t],
		})
		delete(byType, t)
	}
	// unregistered types still show up, labelled by their tag
	for _, it := range items {
		if group, ok := byType[it.Type]; ok {
			out = append(out, ItemGroup{Type: it.Type, Label: string(it.Type), Items: group})
			delete(byType, it.Type)
		}
	}
	return out
}

// Sheet prepares the sheet context for a.
func (r *Registry) Sheet(a *Actor, loc Localizer) (Sheet, error) {
	kind, ok := r.actors[a.Type]
	if !ok {
		return Sheet{}, fmt.Errorf("%w: unknown actor type %q", ErrInvalid, a.Type)
	}
	loc = orIdentity(loc)
	kind.Label = loc("actor.type."+string(kind.Type), kind.Label)

	tabs := make([]Tab, 0, len(kind.Tabs))
	for _, id := range kind.Tabs {
		tabs = append(tabs, Tab{ID: id, Label: loc("sheet.tab."+id, id)})
	}

	effects := CategorizeEffects(a.Effects)
	for _, c := range []*EffectCategory{&effects.Temporary, &effects.Passive, &effects.Inactive} {
		c.Label = loc("effect."+c.Type, c.Label)
	}

	sheet := Sheet{
		Actor:   a,
		Kind:    kind,
		Tabs:    tabs,
		Effects: effects,
	}
	if len(tabs) > 0 {
		sheet.Initial = tabs[0].ID
	}
	for _, id := range kind.Tabs {
		if id == "items" {
			sheet.ItemGroups = r.GroupItems(a.Items, loc)
			break
		}
	}
	return sheet, nil
}

func orIdentity(loc Localizer) Localizer {
	if loc != nil {
		return loc
	}
	return func(_, fallback string) string { return fallback }
}
