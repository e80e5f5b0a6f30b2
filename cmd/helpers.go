package cmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrShortContent = errors.New("content data too short")
	ErrMissingSet   = errors.New("content set missing")
)

// LoadIndexSets decodes an .idxset asset: a uint32 set count, then per set a
// uint8 name length, the name, a uint16 index count and the uint16 indices.
// All integers are little-endian.
func LoadIndexSets(data []byte) (map[string]*IndexSet, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: no header", ErrShortContent)
	}

	// Each set takes at least 3 bytes: name length and index count.
	header := binary.LittleEndian.Uint32(data[:4])
	if header > uint32((len(data)-4)/3) {
		return nil, fmt.Errorf("%w: header claims %d sets", ErrShortContent, header)
	}
	setCount := int(header)
	sets := make(map[string]*IndexSet, setCount)
	off := 4
	for i := 0; i < setCount; i++ {
		if off+1 > len(data) {
			return nil, fmt.Errorf("%w: set %d name length", ErrShortContent, i)
		}
		nameLen := int(data[off])
		off++
		if off+nameLen+2 > len(data) {
			return nil, fmt.Errorf("%w: set %d header", ErrShortContent, i)
		}
		name := string(data[off : off+nameLen])
		off += nameLen
		count := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
		if off+count*2 > len(data) {
			return nil, fmt.Errorf("%w: set %q expects %d indices", ErrShortContent, name, count)
		}
		if _, dup := sets[name]; dup {
			return nil, fmt.Errorf("duplicate content set %q", name)
		}

		indices := make([]uint16, count)
		for j := range indices {
			indices[j] = binary.LittleEndian.Uint16(data[off+j*2:])
		}
		off += count * 2
		sets[name] = &IndexSet{Name: name, Indices: indices}
	}
	if off != len(data) {
		return nil, fmt.Errorf("invalid content length: %d trailing bytes", len(data)-off)
	}
	return sets, nil
}

// LoadContent decodes an asset and binds the sets the lantern draws with.
func LoadContent(data []byte) (*Content, error) {
	sets, err := LoadIndexSets(data)
	if err != nil {
		return nil, err
	}

	var missing []string
	get := func(name string) *IndexSet {
		s, ok := sets[name]
		if !ok {
			missing = append(missing, name)
		}
		return s
	}

	c := &Content{}
	for i := range c.Body {
		c.Body[i] = get("body_" + strconv.Itoa(i))
	}
	for i := range c.EyeWhite {
		c.EyeWhite[i] = get("eye_white_" + strconv.Itoa(i))
		c.Pupil[i] = get("pupil_" + strconv.Itoa(i))
	}
	for i := range c.AlertBody {
		c.AlertBody[i] = get("alert_body_" + strconv.Itoa(i))
	}
	c.AlertFace = get("alert_face")

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSet, strings.Join(missing, ", "))
	}
	return c, nil
}

func ParsePolarity(p string) Polarity {
	switch strings.ToLower(p) {
	case "low", "active-low":
		return ActiveLow
	default:
		return ActiveHigh
	}
}

// LookupChannelOrder matches a name like "grb" or "RGB".
func LookupChannelOrder(o string) (ChannelOrder, bool) {
	o = strings.ToLower(o)
	for i, name := range channelOrderNames {
		if name == o {
			return ChannelOrder(i), true
		}
	}
	return GRB, false
}

// ParseChannelOrder falls back to GRB for unknown names.
func ParseChannelOrder(o string) ChannelOrder {
	order, _ := LookupChannelOrder(o)
	return order
}

func ParseSensorKind(k string) SensorKind {
	switch strings.ToLower(k) {
	case "pir", "digital":
		return SensorPIR
	default:
		return SensorADC
	}
}

// ParseThreshold returns 0 for an empty string, meaning "keep the default".
func ParseThreshold(t string) (uint16, error) {
	if t == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(t, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("parse threshold %q: %w", t, err)
	}
	return uint16(v), nil
}
