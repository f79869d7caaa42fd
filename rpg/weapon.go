// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// Weapon is one equippable weapon: attack and defense contributions, stat
// bonuses, and the elements and states its attacks apply.
type Weapon struct {
	ID            int     `marshal:"id,idshift" json:"id"`
	Name          string  `marshal:"name" json:"name"`
	IconName      *string `marshal:"icon_name,opttext" json:"icon_name"`
	Description   string  `marshal:"description" json:"description"`
	Animation1ID  *int    `marshal:"animation1_id,optid" json:"animation1_id"`
	Animation2ID  *int    `marshal:"animation2_id,optid" json:"animation2_id"`
	Price         int     `marshal:"price" json:"price"`
	Atk           int     `marshal:"atk" json:"atk"`
	Pdef          int     `marshal:"pdef" json:"pdef"`
	Mdef          int     `marshal:"mdef" json:"mdef"`
	StrPlus       int     `marshal:"str_plus" json:"str_plus"`
	DexPlus       int     `marshal:"dex_plus" json:"dex_plus"`
	AgiPlus       int     `marshal:"agi_plus" json:"agi_plus"`
	IntPlus       int     `marshal:"int_plus" json:"int_plus"`
	ElementSet    []int   `marshal:"element_set,idshift" json:"element_set"`
	PlusStateSet  []int   `marshal:"plus_state_set,idshift" json:"plus_state_set"`
	MinusStateSet []int   `marshal:"minus_state_set,idshift" json:"minus_state_set"`
}
