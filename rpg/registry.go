// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package rpg defines the engine's record classes (maps, events, the
// database records, and the project-wide system block) together with the
// schema registry binding each to its wire class name.
//
// Records are plain structs. The marshal tags carry the field conventions
// the engine uses on the wire (one-based ids, nil-padded arrays, empty
// string for an unassigned path); in memory everything is zero-based and
// optional fields are pointers.
package rpg

import "github.com/rgsskit/marshal48/schema"

// classes is built at package load so a bad registration fails the
// importing program immediately rather than on first use.
var classes = newClasses()

// Classes returns the shared registry holding every record class the
// engine stores. It is safe for concurrent use, and callers may register
// additional classes of their own on it.
func Classes() *schema.Registry {
	return classes
}

func newClasses() *schema.Registry {
	r := schema.NewRegistry()

	r.Register("RPG::Map", Map{})
	r.Register("RPG::MapInfo", MapInfo{})
	r.Register("RPG::Event", Event{})
	r.Register("RPG::Event::Page", EventPage{})
	r.Register("RPG::Event::Page::Condition", EventCondition{})
	r.Register("RPG::Event::Page::Graphic", EventGraphic{})
	r.Register("RPG::CommonEvent", CommonEvent{})
	r.Register("RPG::EventCommand", EventCommand{})
	r.Register("RPG::MoveRoute", MoveRoute{})
	r.Register("RPG::MoveCommand", MoveCommand{})
	r.Register("RPG::AudioFile", AudioFile{})

	r.Register("RPG::Tileset", Tileset{})
	r.Register("RPG::Actor", Actor{})
	r.Register("RPG::Class", Class{})
	r.Register("RPG::Class::Learning", Learning{})
	r.Register("RPG::Skill", Skill{})
	r.Register("RPG::Item", Item{})
	r.Register("RPG::Weapon", Weapon{})
	r.Register("RPG::Armor", Armor{})
	r.Register("RPG::State", State{})
	r.Register("RPG::Enemy", Enemy{})
	r.Register("RPG::Enemy::Action", EnemyAction{})
	r.Register("RPG::Troop", Troop{})
	r.Register("RPG::Troop::Member", TroopMember{})
	r.Register("RPG::Troop::Page", TroopPage{})
	r.Register("RPG::Troop::Page::Condition", TroopCondition{})
	r.Register("RPG::Animation", Animation{})
	r.Register("RPG::Animation::Frame", AnimationFrame{})
	r.Register("RPG::Animation::Timing", AnimationTiming{})

	r.Register("RPG::System", System{}, schema.WithLaxFields())
	r.Register("RPG::System::Words", Words{})
	r.Register("RPG::System::TestBattler", TestBattler{})

	return r
}
