package domain

import "github.com/google/uuid"

type ItemID string

func NewItemID() ItemID { return ItemID(uuid.NewString()) }

type ItemType string

const (
	ItemSkill  ItemType = "skill"
	ItemGear   ItemType = "gear"
	ItemRelic  ItemType = "relic"
	ItemWeapon ItemType = "weapon"
	ItemArmor  ItemType = "armor"
)

// Item is an owned document. Only the fields relevant to its type are set:
// TargetNumber for skills, Damage for weapons, Defense for armor.
type Item struct {
	ID           ItemID   `json:"id"`
	Name         string   `json:"name"`
	Type         ItemType `json:"type"`
	Description  string   `json:"description"`
	TargetNumber int      `json:"target_number,omitempty"`
	Damage       int      `json:"damage,omitempty"`
	Defense      int      `json:"defense,omitempty"`
}
