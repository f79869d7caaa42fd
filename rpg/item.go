// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// StatKind selects which base stat an item permanently boosts.
type StatKind int

const (
	StatNone StatKind = iota
	StatMaxHP
	StatMaxSP
	StatStr
	StatDex
	StatAgi
	StatInt
)

// Item is one consumable or key item. ParameterType/ParameterPoints encode
// a permanent stat boost; the two SP recovery fields are tagged default
// because data written by some engine releases omits them entirely.
type Item struct {
	ID              int       `marshal:"id,idshift" json:"id"`
	Name            string    `marshal:"name" json:"name"`
	IconName        string    `marshal:"icon_name" json:"icon_name"`
	Description     string    `marshal:"description" json:"description"`
	Scope           Scope     `marshal:"scope" json:"scope"`
	Occasion        Occasion  `marshal:"occasion" json:"occasion"`
	Animation1ID    *int      `marshal:"animation1_id,optid" json:"animation1_id"`
	Animation2ID    *int      `marshal:"animation2_id,optid" json:"animation2_id"`
	MenuSE          AudioFile `marshal:"menu_se" json:"menu_se"`
	CommonEventID   *int      `marshal:"common_event_id,optid" json:"common_event_id"`
	Price           int       `marshal:"price" json:"price"`
	Consumable      bool      `marshal:"consumable" json:"consumable"`
	ParameterType   StatKind  `marshal:"parameter_type" json:"parameter_type"`
	ParameterPoints int       `marshal:"parameter_points" json:"parameter_points"`
	RecoverHPRate   int       `marshal:"recover_hp_rate" json:"recover_hp_rate"`
	RecoverHP       int       `marshal:"recover_hp" json:"recover_hp"`
	RecoverSPRate   int       `marshal:"recover_sp_rate,default" json:"recover_sp_rate"`
	RecoverSP       int       `marshal:"recover_sp,default" json:"recover_sp"`
	Hit             int       `marshal:"hit" json:"hit"`
	PdefF           int       `marshal:"pdef_f" json:"pdef_f"`
	MdefF           int       `marshal:"mdef_f" json:"mdef_f"`
	Variance        int       `marshal:"variance" json:"variance"`
	ElementSet      []int     `marshal:"element_set,idshift" json:"element_set"`
	PlusStateSet    []int     `marshal:"plus_state_set,idshift" json:"plus_state_set"`
	MinusStateSet   []int     `marshal:"minus_state_set,idshift" json:"minus_state_set"`
}
