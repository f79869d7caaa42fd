// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/rgsskit/marshal48/rgss"

// AnimationPosition anchors an animation relative to its target.
type AnimationPosition int

const (
	AnimationTop AnimationPosition = iota
	AnimationMiddle
	AnimationBottom
	AnimationScreen
)

// Animation is one battle effect: a cell sheet played frame by frame with
// sound and screen flash timings.
type Animation struct {
	ID            int               `marshal:"id,idshift" json:"id"`
	Name          string            `marshal:"name" json:"name"`
	AnimationName *string           `marshal:"animation_name,opttext" json:"animation_name"`
	AnimationHue  int               `marshal:"animation_hue" json:"animation_hue"`
	Position      AnimationPosition `marshal:"position" json:"position"`
	FrameMax      int               `marshal:"frame_max" json:"frame_max"`
	Frames        []AnimationFrame  `marshal:"frames" json:"frames"`
	Timings       []AnimationTiming `marshal:"timings" json:"timings"`
}

// AnimationFrame holds one frame's cell placements: a 2D grid of cell
// attributes (pattern, position, zoom, rotation and so on) by cell index.
type AnimationFrame struct {
	CellMax  int         `marshal:"cell_max" json:"cell_max"`
	CellData *rgss.Table `marshal:"cell_data,grid" json:"cell_data"`
}

// AnimationTiming fires a sound and flash on one frame.
type AnimationTiming struct {
	Frame         int        `marshal:"frame" json:"frame"`
	SE            AudioFile  `marshal:"se" json:"se"`
	FlashScope    int        `marshal:"flash_scope" json:"flash_scope"`
	FlashColor    rgss.Color `marshal:"flash_color" json:"flash_color"`
	FlashDuration int        `marshal:"flash_duration" json:"flash_duration"`
	Condition     int        `marshal:"condition" json:"condition"`
}
