// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/rgsskit/marshal48/rgss"

// ActionKind says whether an enemy action is a basic move or a skill.
type ActionKind int

const (
	ActionBasic ActionKind = iota
	ActionSkill
)

// BasicAction is the move an enemy performs when its action is basic.
type BasicAction int

const (
	BasicAttack BasicAction = iota
	BasicDefend
	BasicEscape
	BasicDoNothing
)

// Enemy is one opponent: battle stats, resistance ranks, an action list
// the battle AI picks from, and the reward drops.
type Enemy struct {
	ID           int           `marshal:"id,idshift" json:"id"`
	Name         string        `marshal:"name" json:"name"`
	BattlerName  *string       `marshal:"battler_name,opttext" json:"battler_name"`
	BattlerHue   int           `marshal:"battler_hue" json:"battler_hue"`
	MaxHP        int           `marshal:"maxhp" json:"maxhp"`
	MaxSP        int           `marshal:"maxsp" json:"maxsp"`
	Str          int           `marshal:"str" json:"str"`
	Dex          int           `marshal:"dex" json:"dex"`
	Agi          int           `marshal:"agi" json:"agi"`
	Int          int           `marshal:"int" json:"int"`
	Atk          int           `marshal:"atk" json:"atk"`
	Pdef         int           `marshal:"pdef" json:"pdef"`
	Mdef         int           `marshal:"mdef" json:"mdef"`
	Eva          int           `marshal:"eva" json:"eva"`
	Animation1ID *int          `marshal:"animation1_id,optid" json:"animation1_id"`
	Animation2ID *int          `marshal:"animation2_id,optid" json:"animation2_id"`
	ElementRanks *rgss.Table   `marshal:"element_ranks,grid" json:"element_ranks"`
	StateRanks   *rgss.Table   `marshal:"state_ranks,grid" json:"state_ranks"`
	Actions      []EnemyAction `marshal:"actions" json:"actions"`
	Exp          int           `marshal:"exp" json:"exp"`
	Gold         int           `marshal:"gold" json:"gold"`
	ItemID       *int          `marshal:"item_id,optid" json:"item_id"`
	WeaponID     *int          `marshal:"weapon_id,optid" json:"weapon_id"`
	ArmorID      *int          `marshal:"armor_id,optid" json:"armor_id"`
	TreasureProb int           `marshal:"treasure_prob" json:"treasure_prob"`
}

// EnemyAction is one candidate move with its usability conditions and
// selection rating. SkillID is optional because basic actions store no
// skill, and the engine writes that as id zero.
type EnemyAction struct {
	Kind              ActionKind  `marshal:"kind" json:"kind"`
	Basic             BasicAction `marshal:"basic" json:"basic"`
	SkillID           *int        `marshal:"skill_id,optid" json:"skill_id"`
	ConditionTurnA    int         `marshal:"condition_turn_a" json:"condition_turn_a"`
	ConditionTurnB    int         `marshal:"condition_turn_b" json:"condition_turn_b"`
	ConditionHP       int         `marshal:"condition_hp" json:"condition_hp"`
	ConditionLevel    int         `marshal:"condition_level" json:"condition_level"`
	ConditionSwitchID *int        `marshal:"condition_switch_id,optid" json:"condition_switch_id"`
	Rating            int         `marshal:"rating" json:"rating"`
}
