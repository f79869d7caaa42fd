// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/rgsskit/marshal48/rgss"

// Actor is one playable character. Parameters is a 2D grid of the six base
// stats by level; the equipment ids are optional because a slot can start
// empty.
type Actor struct {
	ID            int         `marshal:"id,idshift" json:"id"`
	Name          string      `marshal:"name" json:"name"`
	ClassID       int         `marshal:"class_id,idshift" json:"class_id"`
	InitialLevel  int         `marshal:"initial_level" json:"initial_level"`
	FinalLevel    int         `marshal:"final_level" json:"final_level"`
	ExpBasis      int         `marshal:"exp_basis" json:"exp_basis"`
	ExpInflation  int         `marshal:"exp_inflation" json:"exp_inflation"`
	CharacterName *string     `marshal:"character_name,opttext" json:"character_name"`
	CharacterHue  int         `marshal:"character_hue" json:"character_hue"`
	BattlerName   *string     `marshal:"battler_name,opttext" json:"battler_name"`
	BattlerHue    int         `marshal:"battler_hue" json:"battler_hue"`
	Parameters    *rgss.Table `marshal:"parameters,grid" json:"parameters"`
	WeaponID      *int        `marshal:"weapon_id,optid" json:"weapon_id"`
	Armor1ID      *int        `marshal:"armor1_id,optid" json:"armor1_id"`
	Armor2ID      *int        `marshal:"armor2_id,optid" json:"armor2_id"`
	Armor3ID      *int        `marshal:"armor3_id,optid" json:"armor3_id"`
	Armor4ID      *int        `marshal:"armor4_id,optid" json:"armor4_id"`
	WeaponFix     bool        `marshal:"weapon_fix" json:"weapon_fix"`
	Armor1Fix     bool        `marshal:"armor1_fix" json:"armor1_fix"`
	Armor2Fix     bool        `marshal:"armor2_fix" json:"armor2_fix"`
	Armor3Fix     bool        `marshal:"armor3_fix" json:"armor3_fix"`
	Armor4Fix     bool        `marshal:"armor4_fix" json:"armor4_fix"`
}

// BattlerPosition is a class's row in the battle formation.
type BattlerPosition int

const (
	PositionFront BattlerPosition = iota
	PositionMiddle
	PositionRear
)

// Class groups actors sharing equipment proficiencies, elemental and state
// resistance ranks, and a skill learning schedule.
type Class struct {
	ID           int             `marshal:"id,idshift" json:"id"`
	Name         string          `marshal:"name" json:"name"`
	Position     BattlerPosition `marshal:"position" json:"position"`
	WeaponSet    []int           `marshal:"weapon_set,idshift" json:"weapon_set"`
	ArmorSet     []int           `marshal:"armor_set,idshift" json:"armor_set"`
	ElementRanks *rgss.Table     `marshal:"element_ranks,grid" json:"element_ranks"`
	StateRanks   *rgss.Table     `marshal:"state_ranks,grid" json:"state_ranks"`
	Learnings    []Learning      `marshal:"learnings" json:"learnings"`
}

// Learning schedules one skill at one level.
type Learning struct {
	Level   int `marshal:"level" json:"level"`
	SkillID int `marshal:"skill_id,idshift" json:"skill_id"`
}
