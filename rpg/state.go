// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// Restriction limits what a battler may do while a state holds.
type Restriction int

const (
	RestrictNone Restriction = iota
	RestrictNoMagic
	RestrictAttackEnemies
	RestrictAttackAllies
	RestrictNoMove
)

// State is one status condition: behavior restriction, stat rate
// adjustments, and release probabilities.
type State struct {
	ID               int         `marshal:"id,idshift" json:"id"`
	Name             string      `marshal:"name" json:"name"`
	AnimationID      *int        `marshal:"animation_id,optid" json:"animation_id"`
	Restriction      Restriction `marshal:"restriction" json:"restriction"`
	Nonresistance    bool        `marshal:"nonresistance" json:"nonresistance"`
	ZeroHP           bool        `marshal:"zero_hp" json:"zero_hp"`
	CantGetExp       bool        `marshal:"cant_get_exp" json:"cant_get_exp"`
	CantEvade        bool        `marshal:"cant_evade" json:"cant_evade"`
	SlipDamage       bool        `marshal:"slip_damage" json:"slip_damage"`
	Rating           int         `marshal:"rating" json:"rating"`
	HitRate          int         `marshal:"hit_rate" json:"hit_rate"`
	MaxHPRate        int         `marshal:"maxhp_rate" json:"maxhp_rate"`
	MaxSPRate        int         `marshal:"maxsp_rate" json:"maxsp_rate"`
	StrRate          int         `marshal:"str_rate" json:"str_rate"`
	DexRate          int         `marshal:"dex_rate" json:"dex_rate"`
	AgiRate          int         `marshal:"agi_rate" json:"agi_rate"`
	IntRate          int         `marshal:"int_rate" json:"int_rate"`
	AtkRate          int         `marshal:"atk_rate" json:"atk_rate"`
	PdefRate         int         `marshal:"pdef_rate" json:"pdef_rate"`
	MdefRate         int         `marshal:"mdef_rate" json:"mdef_rate"`
	Eva              int         `marshal:"eva" json:"eva"`
	BattleOnly       bool        `marshal:"battle_only" json:"battle_only"`
	HoldTurn         int         `marshal:"hold_turn" json:"hold_turn"`
	AutoReleaseProb  int         `marshal:"auto_release_prob" json:"auto_release_prob"`
	ShockReleaseProb int         `marshal:"shock_release_prob" json:"shock_release_prob"`
	GuardElementSet  []int       `marshal:"guard_element_set,idshift" json:"guard_element_set"`
	PlusStateSet     []int       `marshal:"plus_state_set,idshift" json:"plus_state_set"`
	MinusStateSet    []int       `marshal:"minus_state_set,idshift" json:"minus_state_set"`
}
