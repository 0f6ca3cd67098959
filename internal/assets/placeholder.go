package assets

import (
	"hash/fnv"
	"strings"

	"github.com/Faultbox/tamriel-arena/pkg/formats"
)

// Placeholder dimensions. Frame sequences carry 32 frames so every moon
// phase resolves even without retail data.
const (
	placeholderWidth  = 64
	placeholderHeight = 32
	placeholderFrames = 32
)

// Placeholder is a texture provider that synthesizes deterministic flat
// images from asset names. It lets the tools and tests run without the
// retail data files: the same name always produces the same pixels.
type Placeholder struct{}

// NewPlaceholder creates a placeholder provider.
func NewPlaceholder() Placeholder {
	return Placeholder{}
}

// LoadImage returns a flat image whose palette index derives from the name.
func (Placeholder) LoadImage(name string) (formats.Image, error) {
	return flatImage(nameIndex(name, 0)), nil
}

// LoadImageSet returns a sequence of flat frames, each one palette step
// apart so animation is visible.
func (Placeholder) LoadImageSet(name string) ([]formats.Image, error) {
	frames := make([]formats.Image, placeholderFrames)
	for i := range frames {
		frames[i] = flatImage(nameIndex(name, i))
	}
	return frames, nil
}

// nameIndex hashes an asset name to a nonzero palette index. Index 0 is
// transparent, so it is skipped.
func nameIndex(name string, frame int) uint8 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(name)))
	idx := uint8((int(h.Sum32()) + frame) % 255)
	return idx + 1
}

func flatImage(index uint8) formats.Image {
	pixels := make([]uint8, placeholderWidth*placeholderHeight)
	for i := range pixels {
		pixels[i] = index
	}
	return formats.Image{
		Width:  placeholderWidth,
		Height: placeholderHeight,
		Pixels: pixels,
	}
}

// PlaceholderPalette is a palette provider with a VGA-like ramp: each index
// maps to a fixed gray-to-color gradient. Index 0 is transparent.
type PlaceholderPalette struct{}

// ColorARGB returns the ramp color at index packed as 0xAARRGGBB.
func (PlaceholderPalette) ColorARGB(index int) uint32 {
	if index <= 0 || index > 255 {
		return 0
	}
	// Spread channels at different rates so neighboring indices differ.
	r := uint32(index) & 0xFF
	g := uint32(index*3) & 0xFF
	b := uint32(index*7) & 0xFF
	return 0xFF000000 | r<<16 | g<<8 | b
}
