// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

// AudioFile names a sound asset together with its playback settings. A nil
// Name means no sound is assigned; the engine stores that as an empty
// string.
type AudioFile struct {
	Name   *string `marshal:"name,opttext" json:"name"`
	Volume int     `marshal:"volume" json:"volume"`
	Pitch  int     `marshal:"pitch" json:"pitch"`
}

// NewAudioFile returns an assigned audio file at the engine's default
// volume and pitch.
func NewAudioFile(name string) AudioFile {
	return AudioFile{Name: &name, Volume: 100, Pitch: 100}
}

// Equal compares by content, treating a nil name and a pointer to "" as
// the same unassigned state, exactly as the wire does.
func (a AudioFile) Equal(o AudioFile) bool {
	an, on := "", ""
	if a.Name != nil {
		an = *a.Name
	}
	if o.Name != nil {
		on = *o.Name
	}
	return an == on && a.Volume == o.Volume && a.Pitch == o.Pitch
}
