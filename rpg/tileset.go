// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/rgsskit/marshal48/rgss"

// Tileset binds a tile atlas to its per-tile metadata: passability bits,
// draw priorities and terrain tags, each a one-dimensional grid indexed by
// tile id.
type Tileset struct {
	ID             int         `marshal:"id,idshift" json:"id"`
	Name           string      `marshal:"name" json:"name"`
	TilesetName    *string     `marshal:"tileset_name,opttext" json:"tileset_name"`
	AutotileNames  []string    `marshal:"autotile_names" json:"autotile_names"`
	PanoramaName   *string     `marshal:"panorama_name,opttext" json:"panorama_name"`
	PanoramaHue    int         `marshal:"panorama_hue" json:"panorama_hue"`
	FogName        *string     `marshal:"fog_name,opttext" json:"fog_name"`
	FogHue         int         `marshal:"fog_hue" json:"fog_hue"`
	FogOpacity     int         `marshal:"fog_opacity" json:"fog_opacity"`
	FogBlendType   BlendMode   `marshal:"fog_blend_type" json:"fog_blend_type"`
	FogZoom        int         `marshal:"fog_zoom" json:"fog_zoom"`
	FogSX          int         `marshal:"fog_sx" json:"fog_sx"`
	FogSY          int         `marshal:"fog_sy" json:"fog_sy"`
	BattlebackName *string     `marshal:"battleback_name,opttext" json:"battleback_name"`
	Passages       *rgss.Table `marshal:"passages,grid" json:"passages"`
	Priorities     *rgss.Table `marshal:"priorities,grid" json:"priorities"`
	TerrainTags    *rgss.Table `marshal:"terrain_tags,grid" json:"terrain_tags"`
}
