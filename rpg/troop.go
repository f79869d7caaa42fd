// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// Troop is one battle encounter: enemy placements plus battle event pages
// that run while the fight is underway.
type Troop struct {
	ID      int           `marshal:"id,idshift" json:"id"`
	Name    string        `marshal:"name" json:"name"`
	Members []TroopMember `marshal:"members" json:"members"`
	Pages   []TroopPage   `marshal:"pages" json:"pages"`
}

// TroopMember places one enemy in the formation.
type TroopMember struct {
	EnemyID  int  `marshal:"enemy_id,idshift" json:"enemy_id"`
	X        int  `marshal:"x" json:"x"`
	Y        int  `marshal:"y" json:"y"`
	Hidden   bool `marshal:"hidden" json:"hidden"`
	Immortal bool `marshal:"immortal" json:"immortal"`
}

// TroopPage is one battle event: a trigger condition, how often it may
// run (its span), and the command list.
type TroopPage struct {
	Condition TroopCondition `marshal:"condition" json:"condition"`
	Span      int            `marshal:"span" json:"span"`
	List      []EventCommand `marshal:"list" json:"list"`
}

// TroopCondition gates a troop page. EnemyIndex is a formation slot, not a
// database id, so it stays zero-based on the wire.
type TroopCondition struct {
	TurnValid   bool `marshal:"turn_valid" json:"turn_valid"`
	EnemyValid  bool `marshal:"enemy_valid" json:"enemy_valid"`
	ActorValid  bool `marshal:"actor_valid" json:"actor_valid"`
	SwitchValid bool `marshal:"switch_valid" json:"switch_valid"`
	TurnA       int  `marshal:"turn_a" json:"turn_a"`
	TurnB       int  `marshal:"turn_b" json:"turn_b"`
	EnemyIndex  int  `marshal:"enemy_index" json:"enemy_index"`
	EnemyHP     int  `marshal:"enemy_hp" json:"enemy_hp"`
	ActorID     *int `marshal:"actor_id,optid" json:"actor_id"`
	ActorHP     int  `marshal:"actor_hp" json:"actor_hp"`
	SwitchID    *int `marshal:"switch_id,optid" json:"switch_id"`
}
