package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/hamed0406/deusexludus/internal/check"
)

// Default skills seeded on characters and NPCs.
var DefaultSkills = []string{"athletics", "combat", "stealth", "knowledge"}

// ActorKind describes one actor variant: its label, sheet tabs and
// whether it carries a skill table or settlement holdings.
type ActorKind struct {
	Type        ActorType `json:"type"`
	Label       string    `json:"label"`
	Tabs        []string  `json:"tabs"`
	HasSkills   bool      `json:"has_skills"`
	HasHoldings bool      `json:"has_holdings"`
}

type ItemKind struct {
	Type  ItemType `json:"type"`
	Label string   `json:"label"`
}

// Registry maps type tags to their variant behaviour. Build it once at
// startup with NewRegistry and pass it to consumers; it is read-only
// afterwards.
type Registry struct {
	DefaultActorType ActorType

	actors     map[ActorType]ActorKind
	actorOrder []ActorType
	items      map[ItemType]ItemKind
	itemOrder  []ItemType
}

func NewRegistry() *Registry {
	r := &Registry{
		DefaultActorType: ActorCharacter,
		actors:           map[ActorType]ActorKind{},
		items:            map[ItemType]ItemKind{},
	}
	sheetTabs := []string{"attributes", "items", "notes", "effects"}
	r.addActor(ActorKind{Type: ActorCharacter, Label: "Character", Tabs: sheetTabs, HasSkills: true})
	r.addActor(ActorKind{Type: ActorNPC, Label: "NPC", Tabs: sheetTabs, HasSkills: true})
	r.addActor(ActorKind{Type: ActorSettlement, Label: "Settlement", Tabs: []string{"attributes", "notes", "effects"}, HasHoldings: true})

	r.addItem(ItemKind{Type: ItemSkill, Label: "Skill"})
	r.addItem(ItemKind{Type: ItemGear, Label: "Gear"})
	r.addItem(ItemKind{Type: ItemRelic, Label: "Relic"})
	r.addItem(ItemKind{Type: ItemWeapon, Label: "Weapon"})
	r.addItem(ItemKind{Type: ItemArmor, Label: "Armor"})
	return r
}

func (r *Registry) addActor(k ActorKind) {
	r.actors[k.Type] = k
	r.actorOrder = append(r.actorOrder, k.Type)
}

func (r *Registry) addItem(k ItemKind) {
	r.items[k.Type] = k
	r.itemOrder = append(r.itemOrder, k.Type)
}

func (r *Registry) ActorKind(t ActorType) (ActorKind, bool) {
	k, ok := r.actors[t]
	return k, ok
}

func (r *Registry) ItemKind(t ItemType) (ItemKind, bool) {
	k, ok := r.items[t]
	return k, ok
}

// ActorKinds returns every actor variant in registration order.
func (r *Registry) ActorKinds() []ActorKind {
	out := make([]ActorKind, 0, len(r.actorOrder))
	for _, t := range r.actorOrder {
		out = append(out, r.actors[t])
	}
	return out
}

func (r *Registry) ItemKinds() []ItemKind {
	out := make([]ItemKind, 0, len(r.itemOrder))
	for _, t := range r.itemOrder {
		out = append(out, r.items[t])
	}
	return out
}

// NewActor returns an actor of type t populated with the variant's
// defaults. An empty type selects DefaultActorType.
func (r *Registry) NewActor(t ActorType, name string) (*Actor, error) {
	if t == "" {
		t = r.DefaultActorType
	}
	kind, ok := r.actors[t]
	if !ok {
		return nil, fmt.Errorf("%w: unknown actor type %q", ErrInvalid, t)
	}
	now := time.Now().UTC()
	a := &Actor{
		Name: strings.TrimSpace(name),
		Type: t,
		Attributes: Attributes{
			Health: Resource{Value: 10, Max: 10},
			Faith:  Resource{Value: 5, Max: 10},
		},
		Items:     []Item{},
		Effects:   []Effect{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.Name == "" {
		a.Name = "New " + kind.Label
	}
	if kind.HasSkills {
		a.Skills = make(map[string]int, len(DefaultSkills))
		for _, s := range DefaultSkills {
			a.Skills[s] = check.DefaultTargetNumber
		}
	}
	if kind.HasHoldings {
		a.Population = 100
		a.Resources = 50
	}
	return a, nil
}

// NewItem returns an item of type t with the variant's defaults.
func (r *Registry) NewItem(t ItemType, name string) (Item, error) {
	kind, ok := r.items[t]
	if !ok {
		return Item{}, fmt.Errorf("%w: unknown item type %q", ErrInvalid, t)
	}
	it := Item{ID: NewItemID(), Name: strings.TrimSpace(name), Type: t}
	if it.Name == "" {
		it.Name = "New " + kind.Label
	}
	switch t {
	case ItemSkill:
		it.TargetNumber = check.DefaultTargetNumber
	case ItemWeapon:
		it.Damage = 5
	case ItemArmor:
		it.Defense = 2
	}
	return it, nil
}

// Validate checks an actor against its variant's field rules.
func (r *Registry) Validate(a *Actor) error {
	if a == nil {
		return fmt.Errorf("%w: nil actor", ErrInvalid)
	}
	kind, ok := r.actors[a.Type]
	if !ok {
		return fmt.Errorf("%w: unknown actor type %q", ErrInvalid, a.Type)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	for name, res := range map[string]Resource{"health": a.Attributes.Health, "faith": a.Attributes.Faith} {
		if res.Value < 0 || res.Max < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalid, name)
		}
	}
	if !kind.HasSkills && len(a.Skills) > 0 {
		return fmt.Errorf("%w: %s actors have no skills", ErrInvalid, a.Type)
	}
	for name, tn := range a.Skills {
		if normalizeSkill(name) == "" || normalizeSkill(name) != name {
			return fmt.Errorf("%w: skill key %q must be lowercase and trimmed", ErrInvalid, name)
		}
		if tn < 0 {
			return fmt.Errorf("%w: skill %s must be non-negative", ErrInvalid, name)
		}
	}
	if !kind.HasHoldings && (a.Population != 0 || a.Resources != 0) {
		return fmt.Errorf("%w: %s actors have no holdings", ErrInvalid, a.Type)
	}
	if a.Population < 0 || a.Resources < 0 {
		return fmt.Errorf("%w: population and resources must be non-negative", ErrInvalid)
	}
	for _, it := range a.Items {
		if err := r.ValidateItem(it); err != nil {
			return err
		}
	}
	for _, e := range a.Effects {
		if err := ValidateEffect(e); err != nil {
			return err
		}
	}
	return nil
}

func ValidateEffect(e Effect) error {
	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("%w: effect label is required", ErrInvalid)
	}
	return nil
}

func (r *Registry) ValidateItem(it Item) error {
	if _, ok := r.items[it.Type]; !ok {
		return fmt.Errorf("%w: unknown item type %q", ErrInvalid, it.Type)
	}
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalid)
	}
	if it.TargetNumber < 0 || it.Damage < 0 || it.Defense < 0 {
		return fmt.Errorf("%w: item %s has negative fields", ErrInvalid, it.Name)
	}
	return nil
}
