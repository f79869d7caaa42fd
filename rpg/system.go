// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// System is the project-wide configuration record: the starting party and
// position, global switch and variable names, every built-in sound effect,
// and the vocabulary shown in menus. It is registered lax because engine
// releases disagree about which of these fields exist; absent ones keep
// their zero value.
type System struct {
	MagicNumber  int      `marshal:"magic_number" json:"magic_number"`
	PartyMembers []int    `marshal:"party_members,idshift" json:"party_members"`
	Elements     []string `marshal:"elements" json:"elements"`
	Switches     []string `marshal:"switches,nilpad" json:"switches"`
	Variables    []string `marshal:"variables,nilpad" json:"variables"`

	WindowskinName   *string `marshal:"windowskin_name,opttext" json:"windowskin_name"`
	TitleName        *string `marshal:"title_name,opttext" json:"title_name"`
	GameoverName     *string `marshal:"gameover_name,opttext" json:"gameover_name"`
	BattleTransition *string `marshal:"battle_transition,opttext" json:"battle_transition"`

	TitleBGM        AudioFile `marshal:"title_bgm" json:"title_bgm"`
	BattleBGM       AudioFile `marshal:"battle_bgm" json:"battle_bgm"`
	BattleEndME     AudioFile `marshal:"battle_end_me" json:"battle_end_me"`
	GameoverME      AudioFile `marshal:"gameover_me" json:"gameover_me"`
	CursorSE        AudioFile `marshal:"cursor_se" json:"cursor_se"`
	DecisionSE      AudioFile `marshal:"decision_se" json:"decision_se"`
	CancelSE        AudioFile `marshal:"cancel_se" json:"cancel_se"`
	BuzzerSE        AudioFile `marshal:"buzzer_se" json:"buzzer_se"`
	EquipSE         AudioFile `marshal:"equip_se" json:"equip_se"`
	ShopSE          AudioFile `marshal:"shop_se" json:"shop_se"`
	SaveSE          AudioFile `marshal:"save_se" json:"save_se"`
	LoadSE          AudioFile `marshal:"load_se" json:"load_se"`
	BattleStartSE   AudioFile `marshal:"battle_start_se" json:"battle_start_se"`
	EscapeSE        AudioFile `marshal:"escape_se" json:"escape_se"`
	ActorCollapseSE AudioFile `marshal:"actor_collapse_se" json:"actor_collapse_se"`
	EnemyCollapseSE AudioFile `marshal:"enemy_collapse_se" json:"enemy_collapse_se"`

	Words        Words         `marshal:"words" json:"words"`
	TestBattlers []TestBattler `marshal:"test_battlers" json:"test_battlers"`
	TestTroopID  *int          `marshal:"test_troop_id,optid" json:"test_troop_id"`

	StartMapID     int     `marshal:"start_map_id,idshift" json:"start_map_id"`
	StartX         int     `marshal:"start_x" json:"start_x"`
	StartY         int     `marshal:"start_y" json:"start_y"`
	BattlebackName *string `marshal:"battleback_name,opttext" json:"battleback_name"`
	BattlerName    *string `marshal:"battler_name,opttext" json:"battler_name"`
	BattlerHue     int     `marshal:"battler_hue" json:"battler_hue"`

	// The map last open in the editor. Unlike StartMapID this is stored
	// as is, zero meaning none.
	EditMapID int `marshal:"edit_map_id" json:"edit_map_id"`
}

// Words is the menu vocabulary: what the interface calls gold, the stats,
// the equipment slots and the battle commands.
type Words struct {
	Gold   string `marshal:"gold" json:"gold"`
	HP     string `marshal:"hp" json:"hp"`
	SP     string `marshal:"sp" json:"sp"`
	Str    string `marshal:"str" json:"str"`
	Dex    string `marshal:"dex" json:"dex"`
	Agi    string `marshal:"agi" json:"agi"`
	Int    string `marshal:"int" json:"int"`
	Atk    string `marshal:"atk" json:"atk"`
	Pdef   string `marshal:"pdef" json:"pdef"`
	Mdef   string `marshal:"mdef" json:"mdef"`
	Weapon string `marshal:"weapon" json:"weapon"`
	Armor1 string `marshal:"armor1" json:"armor1"`
	Armor2 string `marshal:"armor2" json:"armor2"`
	Armor3 string `marshal:"armor3" json:"armor3"`
	Armor4 string `marshal:"armor4" json:"armor4"`
	Attack string `marshal:"attack" json:"attack"`
	Skill  string `marshal:"skill" json:"skill"`
	Guard  string `marshal:"guard" json:"guard"`
	Item   string `marshal:"item" json:"item"`
	Equip  string `marshal:"equip" json:"equip"`
}

// TestBattler is one party slot of the battle test dialog.
type TestBattler struct {
	Level    int  `marshal:"level" json:"level"`
	ActorID  int  `marshal:"actor_id,idshift" json:"actor_id"`
	WeaponID *int `marshal:"weapon_id,optid" json:"weapon_id"`
	Armor1ID *int `marshal:"armor1_id,optid" json:"armor1_id"`
	Armor2ID *int `marshal:"armor2_id,optid" json:"armor2_id"`
	Armor3ID *int `marshal:"armor3_id,optid" json:"armor3_id"`
	Armor4ID *int `marshal:"armor4_id,optid" json:"armor4_id"`
}
