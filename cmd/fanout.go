package cmd

// Strip is one physical output. ws2812.Device satisfies it. Write must not
// retain buf after returning.
type Strip interface {
	Write(buf []byte) (n int, err error)
}

// ChannelOrder is the byte order a strip expects on the wire.
type ChannelOrder uint8

const (
	GRB ChannelOrder = 0x00 + iota
	RGB
	BRG
	BGR
	RBG
	GBR
	channelOrderCount
)

// channelSlots maps each wire byte to a channel: 0=R, 1=G, 2=B.
var channelSlots = [channelOrderCount][3]uint8{
	GRB: {1, 0, 2},
	RGB: {0, 1, 2},
	BRG: {2, 0, 1},
	BGR: {2, 1, 0},
	RBG: {0, 2, 1},
	GBR: {1, 2, 0},
}

var channelOrderNames = [channelOrderCount]string{"grb", "rgb", "brg", "bgr", "rbg", "gbr"}

func (o ChannelOrder) String() string {
	if o < channelOrderCount {
		return channelOrderNames[o]
	}
	return "unknown"
}

// Pack writes c into dst[0:3] in wire order.
func (o ChannelOrder) Pack(dst []byte, c Color) {
	ch := [3]uint8{c.R, c.G, c.B}
	s := channelSlots[o%channelOrderCount]
	dst[0], dst[1], dst[2] = ch[s[0]], ch[s[1]], ch[s[2]]
}

// Unpack reads one pixel in wire order from src[0:3].
func (o ChannelOrder) Unpack(src []byte) Color {
	var ch [3]uint8
	s := channelSlots[o%channelOrderCount]
	ch[s[0]], ch[s[1]], ch[s[2]] = src[0], src[1], src[2]
	return Color{R: ch[0], G: ch[1], B: ch[2]}
}

// Publish orders. Only skew between faces depends on them.
var (
	AlertOrder = [FaceCount]Face{Front, Right, Back, Left}
	BodyOrder  = [FaceCount]Face{Right, Left, Back, Front}
)

// Fanout pushes the shared buffer to the strip bound to each face.
type Fanout struct {
	strips     [FaceCount]Strip
	order      ChannelOrder
	brightness uint8
	wire       [PixelCount * 3]byte

	pushes   uint32
	failures uint32
}

func NewFanout(strips [FaceCount]Strip, order ChannelOrder, brightness uint8) *Fanout {
	return &Fanout{
		strips:     strips,
		order:      order,
		brightness: brightness,
	}
}

// Publish encodes buf and writes it to the strip for face. It does not
// modify buf. A failed write is counted and otherwise ignored.
func (f *Fanout) Publish(buf *Buffer, face Face) {
	if int(face) >= FaceCount || f.strips[face] == nil {
		return
	}
	for i, c := range buf {
		f.order.Pack(f.wire[i*3:], scale(c, f.brightness))
	}
	f.pushes++
	if _, err := f.strips[face].Write(f.wire[:]); err != nil {
		f.failures++
	}
}

func (f *Fanout) Pushes() uint32   { return f.pushes }
func (f *Fanout) Failures() uint32 { return f.failures }

func scale(c Color, brightness uint8) Color {
	if brightness == 255 {
		return c
	}
	b := uint16(brightness)
	return Color{
		R: uint8(uint16(c.R) * b / 255),
		G: uint8(uint16(c.G) * b / 255),
		B: uint8(uint16(c.B) * b / 255),
	}
}
