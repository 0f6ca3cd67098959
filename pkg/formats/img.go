// Package formats provides parsers for the game's asset file formats.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// IMG format errors.
var (
	ErrTruncatedIMGData = errors.New("truncated IMG data")
	ErrInvalidIMGSize   = errors.New("invalid IMG dimensions")
	ErrInvalidIMGRLE    = errors.New("invalid IMG run-length data")
)

// IMG header flags.
const (
	IMGFlagRLE     uint16 = 0x0002 // pixel data is run-length compressed
	IMGFlagPalette uint16 = 0x0100 // 768-byte palette appended after pixel data
)

const (
	imgHeaderLen = 12
	rawWallLen   = 4096 // headerless 64x64 wall texture
	rawWallDim   = 64
)

// Image is a single 8-bit paletted image.
type Image struct {
	Width  int
	Height int
	Pixels []uint8 // palette indices, Width*Height bytes, row-major
}

// IMG represents a parsed single-image file.
type IMG struct {
	OffsetX int
	OffsetY int
	Flags   uint16
	Image   Image
	Palette *Palette // non-nil only when the file carries its own palette
}

// ParseIMG parses an IMG file from raw bytes.
//
// The header is six little-endian uint16 values: offsetX, offsetY, width,
// height, flags, dataLen. Headerless 4096-byte files are accepted as raw
// 64x64 wall textures.
func ParseIMG(data []byte) (*IMG, error) {
	if len(data) == rawWallLen {
		return &IMG{
			Image: Image{
				Width:  rawWallDim,
				Height: rawWallDim,
				Pixels: append([]uint8(nil), data...),
			},
		}, nil
	}

	if len(data) < imgHeaderLen {
		return nil, ErrTruncatedIMGData
	}

	r := bytes.NewReader(data)
	var hdr struct {
		OffsetX uint16
		OffsetY uint16
		Width   uint16
		Height  uint16
		Flags   uint16
		DataLen uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedIMGData)
	}

	if hdr.Width == 0 || hdr.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidIMGSize, hdr.Width, hdr.Height)
	}

	raw := make([]byte, hdr.DataLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: reading pixel data", ErrTruncatedIMGData)
	}

	pixelCount := int(hdr.Width) * int(hdr.Height)
	var pixels []uint8
	if hdr.Flags&IMGFlagRLE != 0 {
		expanded, err := expandRLE(raw, pixelCount)
		if err != nil {
			return nil, err
		}
		pixels = expanded
	} else {
		if len(raw) != pixelCount {
			return nil, fmt.Errorf("%w: %d pixel bytes for %dx%d",
				ErrInvalidIMGSize, len(raw), hdr.Width, hdr.Height)
		}
		pixels = raw
	}

	img := &IMG{
		OffsetX: int(hdr.OffsetX),
		OffsetY: int(hdr.OffsetY),
		Flags:   hdr.Flags,
		Image: Image{
			Width:  int(hdr.Width),
			Height: int(hdr.Height),
			Pixels: pixels,
		},
	}

	if hdr.Flags&IMGFlagPalette != 0 {
		rgb := make([]byte, paletteDataLen)
		if _, err := io.ReadFull(r, rgb); err != nil {
			return nil, fmt.Errorf("%w: reading palette", ErrTruncatedIMGData)
		}
		img.Palette = newPalette(rgb)
	}

	return img, nil
}

// ParseIMGFile parses an IMG file from disk.
func ParseIMGFile(path string) (*IMG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading IMG file: %w", err)
	}
	img, err := ParseIMG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// IsImageSetName reports whether a filename names a frame-sequence asset
// rather than a single image.
func IsImageSetName(name string) bool {
	return strings.HasSuffix(strings.ToUpper(name), ".DFA")
}

// expandRLE expands (count, value) byte pairs into exactly pixelCount bytes.
func expandRLE(compressed []byte, pixelCount int) ([]uint8, error) {
	if len(compressed)%2 != 0 {
		return nil, fmt.Errorf("%w: odd byte count", ErrInvalidIMGRLE)
	}

	out := make([]uint8, 0, pixelCount)
	for i := 0; i < len(compressed); i += 2 {
		count := int(compressed[i])
		if count == 0 {
			return nil, fmt.Errorf("%w: zero run length", ErrInvalidIMGRLE)
		}
		value := compressed[i+1]
		for j := 0; j < count; j++ {
			out = append(out, value)
		}
		if len(out) > pixelCount {
			return nil, fmt.Errorf("%w: run overflows %d pixels", ErrInvalidIMGRLE, pixelCount)
		}
	}

	if len(out) != pixelCount {
		return nil, fmt.Errorf("%w: expanded to %d of %d pixels",
			ErrInvalidIMGRLE, len(out), pixelCount)
	}
	return out, nil
}
