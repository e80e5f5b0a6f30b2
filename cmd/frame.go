package cmd

// IndexSet is a named, immutable list of pixel positions on a face.
type IndexSet struct {
	Name    string
	Indices []uint16
}

// Layer pairs an index set with the color it is painted in.
type Layer struct {
	Set   *IndexSet
	Color Color
}

// Buffer is the one frame buffer shared by every face.
type Buffer [PixelCount]Color

func (b *Buffer) Clear() {
	for i := range b {
		b[i] = Black
	}
}

// PaintSet paints c at every index of set. Indices past the end of the
// buffer are skipped.
func (b *Buffer) PaintSet(set *IndexSet, c Color) {
	if set == nil {
		return
	}
	for _, i := range set.Indices {
		if int(i) < len(b) {
			b[i] = c
		}
	}
}

// RenderFrame clears the buffer and paints the layers in order, so later
// layers win where they overlap.
func (b *Buffer) RenderFrame(layers ...Layer) {
	b.Clear()
	for _, l := range layers {
		b.PaintSet(l.Set, l.Color)
	}
}
