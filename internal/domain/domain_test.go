package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hamed0406/deusexludus/internal/check"
)

func TestNewActor_Defaults(t *testing.T) {
	reg := NewRegistry()

	ch, err := reg.NewActor("", "Ada")
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	if ch.Type != ActorCharacter {
		t.Fatalf("default type = %s", ch.Type)
	}
	if ch.Attributes.Health != (Resource{Value: 10, Max: 10}) || ch.Attributes.Faith != (Resource{Value: 5, Max: 10}) {
		t.Fatalf("unexpected attributes: %+v", ch.Attributes)
	}
	for _, s := range DefaultSkills {
		if ch.Skills[s] != 50 {
			t.Fatalf("skill %s = %d, want 50", s, ch.Skills[s])
		}
	}

	st, err := reg.NewActor(ActorSettlement, "")
	if err != nil {
		t.Fatalf("NewActor settlement: %v", err)
	}
	if st.Name != "New Settlement" || st.Population != 100 || st.Resources != 50 || st.Skills != nil {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	if err := reg.Validate(st); err != nil {
		t.Fatalf("settlement should validate: %v", err)
	}

	if _, err := reg.NewActor("dragon", "x"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unknown type error = %v", err)
	}
}

func TestNewItem_Defaults(t *testing.T) {
	reg := NewRegistry()
	cases := []struct {
		typ                 ItemType
		tn, damage, defense int
	}{
		{ItemSkill, 50, 0, 0},
		{ItemWeapon, 0, 5, 0},
		{ItemArmor, 0, 0, 2},
		{ItemRelic, 0, 0, 0},
		{ItemGear, 0, 0, 0},
	}
	for _, c := range cases {
		it, err := reg.NewItem(c.typ, "")
		if err != nil {
			t.Fatalf("NewItem(%s): %v", c.typ, err)
		}
		if it.ID == "" || it.Name == "" {
			t.Fatalf("NewItem(%s) missing id/name: %+v", c.typ, it)
		}
		if it.TargetNumber != c.tn || it.Damage != c.damage || it.Defense != c.defense {
			t.Fatalf("NewItem(%s) = %+v", c.typ, it)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	reg := NewRegistry()
	mutations := map[string]func(a *Actor){
		"blank name":         func(a *Actor) { a.Name = " " },
		"negative health":    func(a *Actor) { a.Attributes.Health.Value = -1 },
		"negative skill":     func(a *Actor) { a.Skills["combat"] = -3 },
		"uppercase skill":    func(a *Actor) { a.Skills["Combat"] = 10 },
		"holdings on char":   func(a *Actor) { a.Population = 5 },
		"bad item type":      func(a *Actor) { a.Items = append(a.Items, Item{Name: "x", Type: "potion"}) },
		"negative item tn":   func(a *Actor) { a.Items = append(a.Items, Item{Name: "x", Type: ItemSkill, TargetNumber: -1}) },
		"unknown actor type": func(a *Actor) { a.Type = "ghost" },
	}
	for name, mutate := range mutations {
		a, _ := reg.NewActor(ActorCharacter, "Ada")
		mutate(a)
		if err := reg.Validate(a); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: Validate error = %v", name, err)
		}
	}

	st, _ := reg.NewActor(ActorSettlement, "Keep")
	st.Skills = map[string]int{"combat": 10}
	if err := reg.Validate(st); !errors.Is(err, ErrInvalid) {
		t.Fatalf("settlement with skills should be invalid, got %v", err)
	}
}

func TestSkillTarget(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.NewActor(ActorCharacter, "Ada")
	a.Skills["stealth"] = 0
	a.AddItem(Item{Name: "Lore of Ash", Type: ItemSkill, TargetNumber: 35})
	a.AddItem(Item{Name: "Combat", Type: ItemSkill, TargetNumber: 99})

	cases := []struct {
		skill string
		want  int
	}{
		{"athletics", 50},
		{"  Stealth ", 0},
		{"lore of ash", 35},
		{"combat", 50}, // skill table wins over items
	}
	for _, c := range cases {
		got, err := a.SkillTarget(c.skill)
		if err != nil || got != c.want {
			t.Fatalf("SkillTarget(%q) = %d, %v; want %d", c.skill, got, err, c.want)
		}
	}

	for _, missing := range []string{"flying", "", "   "} {
		if _, err := a.SkillTarget(missing); !errors.Is(err, check.ErrMissingSkill) {
			t.Fatalf("SkillTarget(%q) error = %v", missing, err)
		}
	}
}

func TestAdjustAttribute(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.NewActor(ActorNPC, "Guard")

	r, err := a.AdjustAttribute("health", Increase)
	if err != nil || r.Value != 11 {
		t.Fatalf("increase: %+v %v", r, err)
	}
	a.Attributes.Faith.Value = 0
	r, err = a.AdjustAttribute("faith", Decrease)
	if err != nil || r.Value != 0 {
		t.Fatalf("decrease floors at zero: %+v %v", r, err)
	}
	if _, err := a.AdjustAttribute("luck", Increase); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unknown attribute error = %v", err)
	}
	if _, err := a.AdjustAttribute("health", "sideways"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unknown direction error = %v", err)
	}
}

func TestAddRemoveItem(t *testing.T) {
	a := &Actor{}
	it := a.AddItem(Item{Name: "Rope", Type: ItemGear})
	if it.ID == "" || len(a.Items) != 1 {
		t.Fatalf("AddItem: %+v", a.Items)
	}
	if !a.RemoveItem(it.ID) || len(a.Items) != 0 {
		t.Fatalf("RemoveItem failed: %+v", a.Items)
	}
	if a.RemoveItem(it.ID) {
		t.Fatalf("second RemoveItem should report false")
	}
}

func TestAddRemoveToggleEffect(t *testing.T) {
	a := &Actor{}
	e := a.AddEffect(Effect{Label: "Blessed", Temporary: true})
	if e.ID == "" || len(a.Effects) != 1 {
		t.Fatalf("AddEffect: %+v", a.Effects)
	}
	got, ok := a.ToggleEffect(e.ID)
	if !ok || !got.Disabled || !a.Effects[0].Disabled {
		t.Fatalf("ToggleEffect should disable: %+v", a.Effects)
	}
	if got, _ := a.ToggleEffect(e.ID); got.Disabled {
		t.Fatalf("second toggle should enable: %+v", got)
	}
	if _, ok := a.ToggleEffect("ghost"); ok {
		t.Fatalf("toggling an unknown effect should report false")
	}
	if !a.RemoveEffect(e.ID) || len(a.Effects) != 0 {
		t.Fatalf("RemoveEffect failed: %+v", a.Effects)
	}
	if a.RemoveEffect(e.ID) {
		t.Fatalf("second RemoveEffect should report false")
	}
	if err := ValidateEffect(Effect{Label: " "}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("blank label should be invalid: %v", err)
	}
}

func TestCategorizeEffects(t *testing.T) {
	cats := CategorizeEffects([]Effect{
		{ID: "a", Temporary: true, Sort: 2},
		{ID: "b", Temporary: true, Sort: 1},
		{ID: "c"},
		{ID: "d", Disabled: true, Temporary: true},
	})
	if len(cats.Temporary.Effects) != 2 || cats.Temporary.Effects[0].ID != "b" {
		t.Fatalf("temporary: %+v", cats.Temporary.Effects)
	}
	if len(cats.Passive.Effects) != 1 || cats.Passive.Effects[0].ID != "c" {
		t.Fatalf("passive: %+v", cats.Passive.Effects)
	}
	if len(cats.Inactive.Effects) != 1 || cats.Inactive.Effects[0].ID != "d" {
		t.Fatalf("inactive: %+v", cats.Inactive.Effects)
	}
}

func TestSheet_TabsAndGroups(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.NewActor(ActorCharacter, "Ada")
	a.AddItem(Item{Name: "Sword", Type: ItemWeapon})
	a.AddItem(Item{Name: "Climb", Type: ItemSkill})
	a.AddItem(Item{Name: "Axe", Type: ItemWeapon})

	loc := func(key, fallback string) string {
		if key == "item.type.weapon" {
			return "Armes"
		}
		return fallback
	}
	sheet, err := reg.Sheet(a, loc)
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if len(sheet.Tabs) != 4 || sheet.Initial != "attributes" {
		t.Fatalf("tabs: %+v initial=%s", sheet.Tabs, sheet.Initial)
	}
	if len(sheet.ItemGroups) != 2 || sheet.ItemGroups[0].Type != ItemSkill || sheet.ItemGroups[1].Label != "Armes" {
		t.Fatalf("groups: %+v", sheet.ItemGroups)
	}
	if len(sheet.ItemGroups[1].Items) != 2 {
		t.Fatalf("weapon group should hold 2 items")
	}

	st, _ := reg.NewActor(ActorSettlement, "Keep")
	sheet, err = reg.Sheet(st, nil)
	if err != nil {
		t.Fatalf("Sheet settlement: %v", err)
	}
	if len(sheet.Tabs) != 3 || sheet.ItemGroups != nil {
		t.Fatalf("settlement sheet: %+v", sheet)
	}
}

func TestActor_JSONRoundTrip(t *testing.T) {
	reg := NewRegistry()
	want, _ := reg.NewActor(ActorCharacter, "Ada")
	want.ID = "A1"
	want.AddItem(Item{Name: "Sword", Type: ItemWeapon, Damage: 7})

	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Actor
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != want.ID || got.Skills["combat"] != 50 || len(got.Items) != 1 || got.Items[0].Damage != 7 {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at mismatch")
	}
}
