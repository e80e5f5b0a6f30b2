package cmd

// Palette is the body color of each face, indexed by Face.
type Palette [FaceCount]Color

var DefaultPalette = Palette{
	Front: Red,
	Right: Magenta,
	Back:  Orange,
	Left:  Cyan,
}

// Rotate shifts every color one face forward: each face takes the color its
// predecessor (Left before Front) held.
func (p *Palette) Rotate() {
	last := p[FaceCount-1]
	copy(p[1:], p[:FaceCount-1])
	p[0] = last
}
