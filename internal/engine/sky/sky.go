package sky

import (
	"errors"
	"fmt"
)

// ErrUnsupportedStarDensity reports a star density outside the settings the
// executable accepts.
var ErrUnsupportedStarDensity = errors.New("unsupported star density")

// StarCountFromDensity maps the settings file's star density to a star draw
// count: 0 is classic, 1 is moderate, 2 is high.
func StarCountFromDensity(density int) (int, error) {
	switch density {
	case 0:
		return 40, nil
	case 1:
		return 1000, nil
	case 2:
		return 8000, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedStarDensity, density)
	}
}

// DistantSky holds every generated sky object and the texture entries they
// reference. A sky belongs to one goroutine; Generate builds it and Tick
// must not race with itself.
type DistantSky struct {
	landObjects     []LandObject
	animLandObjects []AnimatedLandObject
	airObjects      []AirObject
	moonObjects     []MoonObject
	starObjects     []StarObject

	sunEntryIndex int
	hasSun        bool

	textures    []TextureEntry
	textureSets []TextureSetEntry
}

// LandObjectCount returns the number of static land objects.
func (s *DistantSky) LandObjectCount() int { return len(s.landObjects) }

// LandObject returns a static land object by index.
func (s *DistantSky) LandObject(i int) LandObject {
	s.checkIndex(i, len(s.landObjects), "land object")
	return s.landObjects[i]
}

// AnimatedLandObjectCount returns the number of animated land objects.
func (s *DistantSky) AnimatedLandObjectCount() int { return len(s.animLandObjects) }

// AnimatedLandObject returns an animated land object by index.
func (s *DistantSky) AnimatedLandObject(i int) AnimatedLandObject {
	s.checkIndex(i, len(s.animLandObjects), "animated land object")
	return s.animLandObjects[i]
}

// AirObjectCount returns the number of air objects.
func (s *DistantSky) AirObjectCount() int { return len(s.airObjects) }

// AirObject returns an air object by index.
func (s *DistantSky) AirObject(i int) AirObject {
	s.checkIndex(i, len(s.airObjects), "air object")
	return s.airObjects[i]
}

// MoonObjectCount returns the number of moons.
func (s *DistantSky) MoonObjectCount() int { return len(s.moonObjects) }

// MoonObject returns a moon by index.
func (s *DistantSky) MoonObject(i int) MoonObject {
	s.checkIndex(i, len(s.moonObjects), "moon object")
	return s.moonObjects[i]
}

// StarObjectCount returns the number of stars.
func (s *DistantSky) StarObjectCount() int { return len(s.starObjects) }

// StarObject returns a star by index.
func (s *DistantSky) StarObject(i int) StarObject {
	s.checkIndex(i, len(s.starObjects), "star object")
	return s.starObjects[i]
}

// HasSun reports whether the sky holds a sun texture.
func (s *DistantSky) HasSun() bool { return s.hasSun }

// SunEntryIndex returns the sun's texture entry index. Panics when the sky
// has no sun.
func (s *DistantSky) SunEntryIndex() int {
	if !s.hasSun {
		panic("sky: SunEntryIndex called on a sky without a sun")
	}
	return s.sunEntryIndex
}

// Tick advances every animated land object by dt seconds.
func (s *DistantSky) Tick(dt float64) {
	for i := range s.animLandObjects {
		obj := &s.animLandObjects[i]
		obj.tick(dt, s.TextureSetFrameCount(obj.setEntryIndex))
	}
}
