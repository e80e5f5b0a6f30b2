package cmd

import _ "embed"

//go:embed animations/ghost.idxset
var GhostContent []byte

// Content is the static artwork. A zero Content renders black frames.
type Content struct {
	Body      [4]*IndexSet
	EyeWhite  [2]*IndexSet
	Pupil     [2]*IndexSet
	AlertBody [2]*IndexSet
	AlertFace *IndexSet
}

// BodyFrame composes body frame 0..3 in the face color. Frames 0,1 look one
// way and frames 2,3 the other.
func (c *Content) BodyFrame(frame int, body Color) [3]Layer {
	frame &= 3
	eyes := frame >> 1
	return [3]Layer{
		{Set: c.Body[frame], Color: body},
		{Set: c.EyeWhite[eyes], Color: EyeWhite},
		{Set: c.Pupil[eyes], Color: PupilBlue},
	}
}

// AlertFrame composes the blink frame for an alert step; even and odd steps
// alternate.
func (c *Content) AlertFrame(step int) [2]Layer {
	if step%2 == 0 {
		return [2]Layer{
			{Set: c.AlertBody[0], Color: AlertBlue},
			{Set: c.AlertFace, Color: AlertFace},
		}
	}
	return [2]Layer{
		{Set: c.AlertBody[1], Color: AlertWhite},
		{Set: c.AlertFace, Color: AlertFlash},
	}
}
