package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// COL format errors.
var (
	ErrTruncatedCOLData      = errors.New("truncated COL data")
	ErrInvalidCOLLength      = errors.New("invalid COL length field")
	ErrUnsupportedCOLVersion = errors.New("unsupported COL version")
)

const (
	colFileLen     = 776
	colVersion     = 0xB123
	paletteDataLen = 768
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// ARGB packs the color as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Palette is a 256-color lookup table. Index 0 is transparent.
type Palette [256]Color

// ParseCOL parses a COL palette file from raw bytes.
//
// The header is two little-endian uint32 values: total file length (776) and
// format version (0xB123), followed by 256 RGB triplets.
func ParseCOL(data []byte) (*Palette, error) {
	if len(data) < colFileLen {
		return nil, ErrTruncatedCOLData
	}

	length := binary.LittleEndian.Uint32(data[0:4])
	if length != colFileLen {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCOLLength, length)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != colVersion {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedCOLVersion, version)
	}

	return newPalette(data[8 : 8+paletteDataLen]), nil
}

// ParseCOLFile parses a COL palette file from disk.
func ParseCOLFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading COL file: %w", err)
	}
	pal, err := ParseCOL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pal, nil
}

// newPalette builds a palette from 768 RGB bytes. Index 0 stays transparent.
func newPalette(rgb []byte) *Palette {
	p := &Palette{}
	for i := 0; i < 256; i++ {
		offset := i * 3
		a := uint8(255)
		if i == 0 {
			a = 0
		}
		p[i] = Color{
			R: rgb[offset],
			G: rgb[offset+1],
			B: rgb[offset+2],
			A: a,
		}
	}
	return p
}
