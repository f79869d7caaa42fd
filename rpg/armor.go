// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// ArmorKind is the equipment slot an armor piece occupies.
type ArmorKind int

const (
	ArmorShield ArmorKind = iota
	ArmorHelmet
	ArmorBody
	ArmorAccessory
)

// Armor is one equippable defensive item. AutoStateID names a state held
// for as long as the armor is worn.
type Armor struct {
	ID              int       `marshal:"id,idshift" json:"id"`
	Name            string    `marshal:"name" json:"name"`
	IconName        *string   `marshal:"icon_name,opttext" json:"icon_name"`
	Description     string    `marshal:"description" json:"description"`
	Kind            ArmorKind `marshal:"kind" json:"kind"`
	AutoStateID     *int      `marshal:"auto_state_id,optid" json:"auto_state_id"`
	Price           int       `marshal:"price" json:"price"`
	Pdef            int       `marshal:"pdef" json:"pdef"`
	Mdef            int       `marshal:"mdef" json:"mdef"`
	Eva             int       `marshal:"eva" json:"eva"`
	StrPlus         int       `marshal:"str_plus" json:"str_plus"`
	DexPlus         int       `marshal:"dex_plus" json:"dex_plus"`
	AgiPlus         int       `marshal:"agi_plus" json:"agi_plus"`
	IntPlus         int       `marshal:"int_plus" json:"int_plus"`
	GuardElementSet []int     `marshal:"guard_element_set,idshift" json:"guard_element_set"`
	GuardStateSet   []int     `marshal:"guard_state_set,idshift" json:"guard_state_set"`
}
