// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// Scope says who a skill or item may target.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOneEnemy
	ScopeAllEnemies
	ScopeOneAlly
	ScopeAllAllies
	ScopeOneAllyHP0
	ScopeAllAlliesHP0
	ScopeUser
)

// Occasion says when a skill or item may be used.
type Occasion int

const (
	OccasionAlways Occasion = iota
	OccasionOnlyBattle
	OccasionOnlyMenu
	OccasionNever
)

// Skill is one usable technique, from damage formula factors down to the
// sound it plays in the menu.
type Skill struct {
	ID            int       `marshal:"id,idshift" json:"id"`
	Name          string    `marshal:"name" json:"name"`
	IconName      *string   `marshal:"icon_name,opttext" json:"icon_name"`
	Description   string    `marshal:"description" json:"description"`
	Scope         Scope     `marshal:"scope" json:"scope"`
	Occasion      Occasion  `marshal:"occasion" json:"occasion"`
	Animation1ID  *int      `marshal:"animation1_id,optid" json:"animation1_id"`
	Animation2ID  *int      `marshal:"animation2_id,optid" json:"animation2_id"`
	MenuSE        AudioFile `marshal:"menu_se" json:"menu_se"`
	CommonEventID *int      `marshal:"common_event_id,optid" json:"common_event_id"`
	SPCost        int       `marshal:"sp_cost" json:"sp_cost"`
	Power         int       `marshal:"power" json:"power"`
	AtkF          int       `marshal:"atk_f" json:"atk_f"`
	EvaF          int       `marshal:"eva_f" json:"eva_f"`
	StrF          int       `marshal:"str_f" json:"str_f"`
	DexF          int       `marshal:"dex_f" json:"dex_f"`
	AgiF          int       `marshal:"agi_f" json:"agi_f"`
	IntF          int       `marshal:"int_f" json:"int_f"`
	Hit           int       `marshal:"hit" json:"hit"`
	PdefF         int       `marshal:"pdef_f" json:"pdef_f"`
	MdefF         int       `marshal:"mdef_f" json:"mdef_f"`
	Variance      int       `marshal:"variance" json:"variance"`
	ElementSet    []int     `marshal:"element_set,idshift" json:"element_set"`
	PlusStateSet  []int     `marshal:"plus_state_set,idshift" json:"plus_state_set"`
	MinusStateSet []int     `marshal:"minus_state_set,idshift" json:"minus_state_set"`
}
