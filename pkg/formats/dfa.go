package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// DFA format errors.
var (
	ErrTruncatedDFAData = errors.New("truncated DFA data")
	ErrNoDFAFrames      = errors.New("DFA has no frames")
	ErrInvalidDFAFrame  = errors.New("invalid DFA frame data")
)

// DFA represents a parsed frame-sequence file. All frames share one size.
type DFA struct {
	Flags  uint16
	Frames []Image
}

// ParseDFA parses a DFA file from raw bytes.
//
// The header is four little-endian uint16 values: frameCount, width, height,
// flags. Each frame follows as a uint16 byte length plus data. The first
// frame is always stored raw; later frames are run-length compressed when
// IMGFlagRLE is set.
func ParseDFA(data []byte) (*DFA, error) {
	r := bytes.NewReader(data)
	var hdr struct {
		FrameCount uint16
		Width      uint16
		Height     uint16
		Flags      uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedDFAData)
	}

	if hdr.FrameCount == 0 {
		return nil, ErrNoDFAFrames
	}
	if hdr.Width == 0 || hdr.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDFAFrame, hdr.Width, hdr.Height)
	}

	pixelCount := int(hdr.Width) * int(hdr.Height)
	dfa := &DFA{
		Flags:  hdr.Flags,
		Frames: make([]Image, 0, hdr.FrameCount),
	}

	for i := uint16(0); i < hdr.FrameCount; i++ {
		var frameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &frameLen); err != nil {
			return nil, fmt.Errorf("%w: reading frame %d length", ErrTruncatedDFAData, i)
		}
		raw := make([]byte, frameLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("%w: reading frame %d", ErrTruncatedDFAData, i)
		}

		compressed := i > 0 && hdr.Flags&IMGFlagRLE != 0
		var pixels []uint8
		if compressed {
			expanded, err := expandRLE(raw, pixelCount)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			pixels = expanded
		} else {
			if len(raw) != pixelCount {
				return nil, fmt.Errorf("%w: frame %d has %d of %d pixel bytes",
					ErrInvalidDFAFrame, i, len(raw), pixelCount)
			}
			pixels = raw
		}

		dfa.Frames = append(dfa.Frames, Image{
			Width:  int(hdr.Width),
			Height: int(hdr.Height),
			Pixels: pixels,
		})
	}

	return dfa, nil
}

// ParseDFAFile parses a DFA file from disk.
func ParseDFAFile(path string) (*DFA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading DFA file: %w", err)
	}
	dfa, err := ParseDFA(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dfa, nil
}
