package sky

import (
	"fmt"

	"github.com/Faultbox/tamriel-arena/pkg/formats"
)

// TextureEntry pairs a filename with its decoded image. Entries are
// append-only, so an entry index stays valid for the sky's lifetime.
type TextureEntry struct {
	filename string
	image    formats.Image
}

// TextureSetEntry pairs a filename with its decoded frame sequence.
type TextureSetEntry struct {
	filename string
	images   []formats.Image
}

func (s *DistantSky) findTexture(filename string) (int, bool) {
	for i := range s.textures {
		if s.textures[i].filename == filename {
			return i, true
		}
	}
	return 0, false
}

func (s *DistantSky) findTextureSet(filename string) (int, bool) {
	for i := range s.textureSets {
		if s.textureSets[i].filename == filename {
			return i, true
		}
	}
	return 0, false
}

// getOrLoadTexture returns the entry index for a filename, loading and
// appending it on first reference.
func (s *DistantSky) getOrLoadTexture(p TextureProvider, filename string) (int, error) {
	if idx, ok := s.findTexture(filename); ok {
		return idx, nil
	}
	img, err := p.LoadImage(filename)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", filename, err)
	}
	s.textures = append(s.textures, TextureEntry{filename: filename, image: img})
	return len(s.textures) - 1, nil
}

// getOrLoadTextureSet returns the set entry index for a filename, loading it
// on first reference. Frame-sequence files load whole; a single image is
// wrapped as a one-frame set.
func (s *DistantSky) getOrLoadTextureSet(p TextureProvider, filename string) (int, error) {
	if idx, ok := s.findTextureSet(filename); ok {
		return idx, nil
	}

	var images []formats.Image
	if formats.IsImageSetName(filename) {
		loaded, err := p.LoadImageSet(filename)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", filename, err)
		}
		images = loaded
	} else {
		img, err := p.LoadImage(filename)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", filename, err)
		}
		images = []formats.Image{img}
	}

	s.textureSets = append(s.textureSets, TextureSetEntry{filename: filename, images: images})
	return len(s.textureSets) - 1, nil
}

// addTexture appends an entry directly, without lookup. Moon entries use
// this: the stored image is one phase of a sequence, so the filename alone
// does not identify it.
func (s *DistantSky) addTexture(filename string, img formats.Image) int {
	s.textures = append(s.textures, TextureEntry{filename: filename, image: img})
	return len(s.textures) - 1
}

// TextureCount returns the number of texture entries.
func (s *DistantSky) TextureCount() int { return len(s.textures) }

// TextureFilename returns the filename of a texture entry.
func (s *DistantSky) TextureFilename(i int) string {
	s.checkIndex(i, len(s.textures), "texture")
	return s.textures[i].filename
}

// Texture returns the image of a texture entry.
func (s *DistantSky) Texture(i int) formats.Image {
	s.checkIndex(i, len(s.textures), "texture")
	return s.textures[i].image
}

// TextureSetCount returns the number of texture set entries.
func (s *DistantSky) TextureSetCount() int { return len(s.textureSets) }

// TextureSetFilename returns the filename of a texture set entry.
func (s *DistantSky) TextureSetFilename(i int) string {
	s.checkIndex(i, len(s.textureSets), "texture set")
	return s.textureSets[i].filename
}

// TextureSetFrameCount returns the number of frames in a texture set entry.
func (s *DistantSky) TextureSetFrameCount(i int) int {
	s.checkIndex(i, len(s.textureSets), "texture set")
	return len(s.textureSets[i].images)
}

// TextureSetFrame returns one frame of a texture set entry.
func (s *DistantSky) TextureSetFrame(i, frame int) formats.Image {
	s.checkIndex(i, len(s.textureSets), "texture set")
	s.checkIndex(frame, len(s.textureSets[i].images), "frame")
	return s.textureSets[i].images[frame]
}

func (s *DistantSky) checkIndex(i, n int, what string) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("sky: %s index %d out of range [0,%d)", what, i, n))
	}
}
