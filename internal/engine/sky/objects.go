// Package sky reconstructs the game's procedural distant sky: the horizon
// mountains, clouds, animated land, moons, stars, and sun placed around the
// player at world scale. Generation replays the executable's random number
// sequence, so a given location, weather, and day always rebuilds the same
// sky.
package sky

import (
	"fmt"

	"github.com/Faultbox/tamriel-arena/pkg/math"
)

// DefaultAnimatedLandFrameTime is the seconds-per-frame rate animated land
// cycles at unless a caller overrides it.
const DefaultAnimatedLandFrameTime = 1.0 / 18.0

// LandObject is a static horizon object, such as a distant mountain.
type LandObject struct {
	entryIndex   int
	angleRadians float64
}

func makeLandObject(entryIndex int, angleRadians float64) LandObject {
	return LandObject{entryIndex: entryIndex, angleRadians: angleRadians}
}

// EntryIndex returns the object's texture entry index.
func (o LandObject) EntryIndex() int { return o.entryIndex }

// AngleRadians returns the object's position around the horizon.
func (o LandObject) AngleRadians() float64 { return o.angleRadians }

// AnimatedLandObject is a horizon object that cycles through a frame
// sequence, such as a smoking volcano.
type AnimatedLandObject struct {
	setEntryIndex    int
	angleRadians     float64
	targetFrameTime  float64
	currentFrameTime float64
	frameIndex       int
}

func makeAnimatedLandObject(setEntryIndex int, angleRadians float64) AnimatedLandObject {
	obj := AnimatedLandObject{
		setEntryIndex: setEntryIndex,
		angleRadians:  angleRadians,
	}
	obj.setFrameTime(DefaultAnimatedLandFrameTime)
	return obj
}

func (o *AnimatedLandObject) setFrameTime(targetFrameTime float64) {
	if targetFrameTime <= 0 {
		panic(fmt.Sprintf("sky: animated land frame time must be positive, got %v", targetFrameTime))
	}
	o.targetFrameTime = targetFrameTime
}

// SetEntryIndex returns the object's texture set entry index.
func (o AnimatedLandObject) SetEntryIndex() int { return o.setEntryIndex }

// AngleRadians returns the object's position around the horizon.
func (o AnimatedLandObject) AngleRadians() float64 { return o.angleRadians }

// TargetFrameTime returns the seconds each frame stays visible.
func (o AnimatedLandObject) TargetFrameTime() float64 { return o.targetFrameTime }

// CurrentFrameTime returns the seconds accumulated toward the next frame.
func (o AnimatedLandObject) CurrentFrameTime() float64 { return o.currentFrameTime }

// FrameIndex returns the current frame within the texture set.
func (o AnimatedLandObject) FrameIndex() int { return o.frameIndex }

// tick accumulates elapsed time and advances whole frames, wrapping within
// frameCount. A sequence with no frames is left untouched.
func (o *AnimatedLandObject) tick(dt float64, frameCount int) {
	if frameCount <= 0 {
		return
	}
	o.currentFrameTime += dt
	for o.currentFrameTime >= o.targetFrameTime {
		o.currentFrameTime -= o.targetFrameTime
		o.frameIndex = (o.frameIndex + 1) % frameCount
	}
}

// AirObject is a floating horizon object, such as a cloud. Height places it
// between the horizon (0) and the top of the sky gradient (1).
type AirObject struct {
	entryIndex   int
	angleRadians float64
	height       float64
}

func makeAirObject(entryIndex int, angleRadians, height float64) AirObject {
	return AirObject{entryIndex: entryIndex, angleRadians: angleRadians, height: height}
}

// EntryIndex returns the object's texture entry index.
func (o AirObject) EntryIndex() int { return o.entryIndex }

// AngleRadians returns the object's position around the horizon.
func (o AirObject) AngleRadians() float64 { return o.angleRadians }

// Height returns the object's normalized height above the horizon.
func (o AirObject) Height() float64 { return o.height }

// MoonKind identifies which of the two moons an object represents.
type MoonKind uint8

const (
	MoonFirst MoonKind = iota
	MoonSecond
)

// String returns the moon's display name.
func (k MoonKind) String() string {
	switch k {
	case MoonFirst:
		return "First"
	case MoonSecond:
		return "Second"
	}
	return fmt.Sprintf("MoonKind(%d)", uint8(k))
}

// MoonObject is one moon at its current phase. The texture entry holds only
// the frame for that phase.
type MoonObject struct {
	entryIndex   int
	phasePercent float64
	kind         MoonKind
}

func makeMoonObject(entryIndex int, phasePercent float64, kind MoonKind) MoonObject {
	return MoonObject{entryIndex: entryIndex, phasePercent: phasePercent, kind: kind}
}

// EntryIndex returns the moon's texture entry index.
func (o MoonObject) EntryIndex() int { return o.entryIndex }

// PhasePercent returns how far through its phase cycle the moon is, in [0,1).
func (o MoonObject) PhasePercent() float64 { return o.phasePercent }

// Kind returns which moon this is.
func (o MoonObject) Kind() MoonKind { return o.kind }

// StarKind discriminates the two star representations.
type StarKind uint8

const (
	// StarSmall is a single colored point, usually part of a constellation.
	StarSmall StarKind = iota
	// StarLarge is a textured star or planet.
	StarLarge
)

// StarObject is a point in the night sky: either a small colored star or a
// large textured one. Direction is a unit vector from the player.
type StarObject struct {
	kind       StarKind
	direction  math.Vec3
	color      uint32
	entryIndex int
}

func makeSmallStar(color uint32, direction math.Vec3) StarObject {
	return StarObject{kind: StarSmall, direction: direction, color: color}
}

func makeLargeStar(entryIndex int, direction math.Vec3) StarObject {
	return StarObject{kind: StarLarge, direction: direction, entryIndex: entryIndex}
}

// Kind returns the star's representation.
func (o StarObject) Kind() StarKind { return o.kind }

// Direction returns the unit vector from the player to the star.
func (o StarObject) Direction() math.Vec3 { return o.direction }

// Color returns a small star's ARGB color. Panics for large stars.
func (o StarObject) Color() uint32 {
	if o.kind != StarSmall {
		panic("sky: Color called on a large star")
	}
	return o.color
}

// EntryIndex returns a large star's texture entry index. Panics for small
// stars.
func (o StarObject) EntryIndex() int {
	if o.kind != StarLarge {
		panic("sky: EntryIndex called on a small star")
	}
	return o.entryIndex
}
