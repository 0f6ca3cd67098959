package sky

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tamriel-arena/internal/game/world"
	"github.com/Faultbox/tamriel-arena/internal/logger"
	"github.com/Faultbox/tamriel-arena/pkg/math"
	"github.com/Faultbox/tamriel-arena/pkg/rng"
)

// Generation errors.
var (
	ErrNoClimateTraits   = errors.New("no mountain traits for climate")
	ErrInvalidDay        = errors.New("day cannot be negative")
	ErrInvalidTableIndex = errors.New("table index out of range")
	ErrInvalidTemplate   = errors.New("variant digits do not fit filename template")
	ErrInvalidStarName   = errors.New("star filename has no digit to replace")
)

const (
	// Static objects place at one of 512 horizon angles; air objects pick
	// one of 64 heights.
	angleSteps  = 512
	heightSteps = 64

	// Clear skies always carry seven clouds.
	cloudCount = 7

	// Animated land filename variant thresholds by map distance.
	animDistNear = 80
	animDistFar  = 150

	// The second moon trails the first by 14 phases.
	secondMoonPhaseOffset = 14

	// The star field always generates from the same seed.
	starFieldSeed uint32 = 0x12345679

	// Large star types 5..7 are planets; each appears at most once.
	largeStarTypeCount = 8
	firstPlanetType    = 5
	planetSlotCount    = largeStarTypeCount - firstPlanetType

	// Small stars tint from ten palette entries starting at 64.
	smallStarPaletteBase = 64
	smallStarPaletteSpan = 10

	// Constellation points spread a quarter turn per 320 grid units.
	constellationGridSize = 320.0

	// Sort rank placing constellation points after every large star type.
	smallStarRank = largeStarTypeCount
)

// GenerateParams carries everything one sky generation reads.
type GenerateParams struct {
	Location  world.Location
	Province  world.Province
	Weather   world.Weather
	Day       int
	StarCount int
	Tables    world.Tables
	Textures  TextureProvider
	Palette   PaletteProvider
}

// Generate builds the distant sky for a location. The random draw order
// replays the executable's, so identical parameters always produce an
// identical sky.
func Generate(params GenerateParams) (*DistantSky, error) {
	if params.Day < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, params.Day)
	}
	if err := params.Tables.Validate(); err != nil {
		return nil, err
	}

	s := &DistantSky{}
	r := rng.New(params.Location.SkySeed)

	if err := s.placeMountains(r, params); err != nil {
		return nil, err
	}

	isClear := params.Weather == world.WeatherClear
	if isClear {
		if err := s.placeClouds(r, params); err != nil {
			return nil, err
		}
	}

	if params.Province.HasAnimatedLand {
		if err := s.placeAnimatedLand(params); err != nil {
			return nil, err
		}
	}

	if isClear {
		if err := s.placeMoons(params); err != nil {
			return nil, err
		}
		if err := s.placeStars(r, params); err != nil {
			return nil, err
		}
		if err := s.placeSun(params); err != nil {
			return nil, err
		}
	}

	logger.Debug("generated distant sky",
		zap.String("location", params.Location.Name),
		zap.Stringer("weather", params.Weather),
		zap.Int("day", params.Day),
		zap.Int("land", len(s.landObjects)),
		zap.Int("animatedLand", len(s.animLandObjects)),
		zap.Int("air", len(s.airObjects)),
		zap.Int("moons", len(s.moonObjects)),
		zap.Int("stars", len(s.starObjects)))

	return s, nil
}

// staticPlacement drives one batch of shared static object placement.
type staticPlacement struct {
	template  string
	position  int
	variation int
	maxDigits int
	count     int
	air       bool
}

func (s *DistantSky) placeMountains(r *rng.Arena, params GenerateParams) error {
	traits, ok := world.MountainTraitsFor(params.Location.Climate)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoClimateTraits, params.Location.Climate)
	}
	if traits.FilenameIndex >= len(params.Tables.DistantMountainFilenames) {
		return fmt.Errorf("%w: mountain filename %d of %d", ErrInvalidTableIndex,
			traits.FilenameIndex, len(params.Tables.DistantMountainFilenames))
	}

	count := int(r.Next())%4 + 2
	return s.placeStaticObjects(r, params.Textures, staticPlacement{
		template:  params.Tables.DistantMountainFilenames[traits.FilenameIndex],
		position:  traits.Position,
		variation: traits.Variation,
		maxDigits: traits.MaxDigits,
		count:     count,
	})
}

func (s *DistantSky) placeClouds(r *rng.Arena, params GenerateParams) error {
	// Clouds re-seed from the evolved state plus the day of the month, so
	// the layout shifts daily while mountains stay put.
	r.Reseed(r.Seed() + uint32(params.Day%world.DaysPerMonth))
	return s.placeStaticObjects(r, params.Textures, staticPlacement{
		template:  params.Tables.CloudFilename,
		position:  world.CloudPosition,
		variation: world.CloudVariation,
		maxDigits: world.CloudMaxDigits,
		count:     cloudCount,
		air:       true,
	})
}

// placeStaticObjects follows the executable's draw order per object:
// filename variant first, then height for air objects, then horizon angle.
func (s *DistantSky) placeStaticObjects(r *rng.Arena, p TextureProvider, place staticPlacement) error {
	for i := 0; i < place.count; i++ {
		variant := int(r.Next()) % place.variation
		if variant == 0 {
			variant = place.variation
		}
		filename, err := spliceVariant(place.template, place.position, place.maxDigits, variant)
		if err != nil {
			return err
		}

		var height float64
		if place.air {
			height = float64(r.Next()%heightSteps) / heightSteps
		}
		angle := horizonAngle(int(r.Next()) % angleSteps)

		entryIndex, err := s.getOrLoadTexture(p, filename)
		if err != nil {
			return err
		}
		if place.air {
			s.airObjects = append(s.airObjects, makeAirObject(entryIndex, angle, height))
		} else {
			s.landObjects = append(s.landObjects, makeLandObject(entryIndex, angle))
		}
	}
	return nil
}

func (s *DistantSky) placeAnimatedLand(params GenerateParams) error {
	city := world.LocalCityPoint(params.Location.CitySeed)
	feature := params.Province.AnimLandPoint
	variant := animLandVariant(world.MapDistance(feature, city))
	if variant >= len(params.Tables.AnimLandFilenames) {
		return fmt.Errorf("%w: animated land filename %d of %d", ErrInvalidTableIndex,
			variant, len(params.Tables.AnimLandFilenames))
	}
	filename := strings.ToUpper(params.Tables.AnimLandFilenames[variant])

	angle := gomath.Atan2(float64(city.Y-feature.Y), float64(feature.X-city.X))

	setIndex, err := s.getOrLoadTextureSet(params.Textures, filename)
	if err != nil {
		return err
	}
	s.animLandObjects = append(s.animLandObjects, makeAnimatedLandObject(setIndex, angle))
	return nil
}

// animLandVariant picks a filename variant by the map distance between the
// feature and the city.
func animLandVariant(dist int) int {
	switch {
	case dist < animDistNear:
		return 0
	case dist < animDistFar:
		return 1
	default:
		return 2
	}
}

func (s *DistantSky) placeMoons(params GenerateParams) error {
	for i := 0; i < world.MoonCount; i++ {
		phase := (params.Day + i*secondMoonPhaseOffset) % world.MoonPhaseCount
		filename := strings.ToUpper(params.Tables.MoonFilenames[i])

		frames, err := params.Textures.LoadImageSet(filename)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filename, err)
		}
		if phase >= len(frames) {
			return fmt.Errorf("%w: phase %d of %d frames in %s", ErrInvalidTableIndex,
				phase, len(frames), filename)
		}

		entryIndex := s.addTexture(filename, frames[phase])
		percent := float64(phase) / world.MoonPhaseCount
		s.moonObjects = append(s.moonObjects, makeMoonObject(entryIndex, percent, MoonKind(i)))
	}
	return nil
}

func (s *DistantSky) placeStars(r *rng.Arena, params GenerateParams) error {
	r.Reseed(starFieldSeed)

	var planetTaken [planetSlotCount]bool
	type orderedStar struct {
		obj  StarObject
		rank int
	}
	stars := make([]orderedStar, 0, params.StarCount)

	for i := 0; i < params.StarCount; i++ {
		direction := drawStarDirection(r)

		if r.Next()%4 != 0 {
			subCount := 2 + int(r.Next()%4)
			for j := 0; j < subCount; j++ {
				dx := int16(r.Next()) >> 9
				dy := int16(r.Next()) >> 9
				color := params.Palette.ColorARGB(int(r.Next()%smallStarPaletteSpan) + smallStarPaletteBase)
				sub := offsetStarDirection(direction, int(dx), int(dy))
				stars = append(stars, orderedStar{obj: makeSmallStar(color, sub), rank: smallStarRank})
			}
			continue
		}

		starType := drawLargeStarType(r, &planetTaken)
		filename, err := largeStarFilename(params.Tables.StarFilename, starType)
		if err != nil {
			return err
		}
		entryIndex, err := s.getOrLoadTexture(params.Textures, filename)
		if err != nil {
			return err
		}
		stars = append(stars, orderedStar{obj: makeLargeStar(entryIndex, direction), rank: starType})
	}

	// Large stars precede constellation points, ordered by type.
	sort.SliceStable(stars, func(i, j int) bool { return stars[i].rank < stars[j].rank })
	for _, star := range stars {
		s.starObjects = append(s.starObjects, star.obj)
	}
	return nil
}

func (s *DistantSky) placeSun(params GenerateParams) error {
	entryIndex, err := s.getOrLoadTexture(params.Textures, strings.ToUpper(params.Tables.SunFilename))
	if err != nil {
		return err
	}
	s.sunEntryIndex = entryIndex
	s.hasSun = true
	return nil
}

// drawStarDirection draws three signed coordinates and normalizes them. Bit
// 1 of each draw picks the sign.
func drawStarDirection(r *rng.Arena) math.Vec3 {
	coord := func() float64 {
		d := (0x800 + uint32(r.Next())) & 0xFFF
		if d&2 != 0 {
			return -float64(d)
		}
		return float64(d)
	}
	x := coord()
	y := coord()
	z := coord()
	return math.Vec3{X: x, Y: y, Z: z}.Normalize()
}

// drawLargeStarType redraws until it lands on a regular star type or a free
// planet slot.
func drawLargeStarType(r *rng.Arena, taken *[planetSlotCount]bool) int {
	for {
		starType := int(r.Next() % largeStarTypeCount)
		if starType < firstPlanetType {
			return starType
		}
		slot := starType - firstPlanetType
		if !taken[slot] {
			taken[slot] = true
			return starType
		}
	}
}

// offsetStarDirection rotates a constellation's base direction by its point
// offsets: dx about the X axis first, then dy about the Y axis.
func offsetStarDirection(base math.Vec3, dx, dy int) math.Vec3 {
	angleX := float64(dx) / constellationGridSize * (gomath.Pi / 2)
	angleY := float64(dy) / constellationGridSize * (gomath.Pi / 2)
	rotation := math.RotateY(angleY).Mul(math.RotateX(angleX))
	return rotation.TransformVec3(base).Normalize()
}

// largeStarFilename substitutes the star type digit into the template.
func largeStarFilename(template string, starType int) (string, error) {
	if !strings.ContainsRune(template, '1') {
		return "", fmt.Errorf("%w: %q", ErrInvalidStarName, template)
	}
	digit := strconv.Itoa(starType + 1)
	return strings.ToUpper(strings.ReplaceAll(template, "1", digit)), nil
}

// horizonAngle maps one of the 512 placement steps to radians. Step 0 maps
// to 3π/2 and the angle falls as steps advance, wrapping the full circle.
func horizonAngle(step int) float64 {
	full := 2 * gomath.Pi
	return (full - full*float64(step)/angleSteps) - gomath.Pi/2
}

// spliceVariant writes the variant number into the template's digit field,
// right-aligned, and uppercases the result.
func spliceVariant(template string, position, maxDigits, variant int) (string, error) {
	digits := strconv.Itoa(variant)
	if len(digits) > maxDigits {
		return "", fmt.Errorf("%w: %d needs %d digits, field holds %d in %q",
			ErrInvalidTemplate, variant, len(digits), maxDigits, template)
	}
	if position < 0 || position+maxDigits > len(template) {
		return "", fmt.Errorf("%w: field %d..%d outside %q",
			ErrInvalidTemplate, position, position+maxDigits, template)
	}
	name := []byte(strings.ToUpper(template))
	copy(name[position+maxDigits-len(digits):], digits)
	return string(name), nil
}
