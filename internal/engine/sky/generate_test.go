package sky

import (
	"errors"
	gomath "math"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/tamriel-arena/internal/game/world"
	"github.com/Faultbox/tamriel-arena/pkg/formats"
	"github.com/Faultbox/tamriel-arena/pkg/rng"
)

// stubTextures synthesizes fixed-size images for any name.
type stubTextures struct{}

func (stubTextures) LoadImage(name string) (formats.Image, error) {
	return formats.Image{Width: 8, Height: 4, Pixels: make([]uint8, 32)}, nil
}

func (stubTextures) LoadImageSet(name string) ([]formats.Image, error) {
	frames := make([]formats.Image, 32)
	for i := range frames {
		frames[i] = formats.Image{Width: 4, Height: 4, Pixels: make([]uint8, 16)}
	}
	return frames, nil
}

// stubPalette maps an index to a unique opaque color.
type stubPalette struct{}

func (stubPalette) ColorARGB(index int) uint32 {
	return 0xFF000000 | uint32(index)
}

func testParams(climate world.ClimateKind, weather world.Weather) GenerateParams {
	return GenerateParams{
		Location: world.Location{
			Name:     "Testhold",
			Climate:  climate,
			CitySeed: uint32(100)<<16 | 60,
			SkySeed:  0x000C91D3,
		},
		Province: world.Province{
			Name:            "Testmarch",
			HasAnimatedLand: true,
			AnimLandPoint:   world.Point{X: 132, Y: 52},
		},
		Weather:   weather,
		Day:       5,
		StarCount: 40,
		Tables:    world.DefaultTables(),
		Textures:  stubTextures{},
		Palette:   stubPalette{},
	}
}

// snapshot flattens every observable property of a sky for comparison.
type snapshot struct {
	landAngles    []float64
	landNames     []string
	airAngles     []float64
	airHeights    []float64
	animNames     []string
	animAngles    []float64
	moonPhases    []float64
	starKinds     []StarKind
	starDirs      [][3]float64
	starColors    []uint32
	starNames     []string
	sun           bool
	registryNames []string
}

func takeSnapshot(s *DistantSky) snapshot {
	var snap snapshot
	for i := 0; i < s.LandObjectCount(); i++ {
		obj := s.LandObject(i)
		snap.landAngles = append(snap.landAngles, obj.AngleRadians())
		snap.landNames = append(snap.landNames, s.TextureFilename(obj.EntryIndex()))
	}
	for i := 0; i < s.AirObjectCount(); i++ {
		obj := s.AirObject(i)
		snap.airAngles = append(snap.airAngles, obj.AngleRadians())
		snap.airHeights = append(snap.airHeights, obj.Height())
	}
	for i := 0; i < s.AnimatedLandObjectCount(); i++ {
		obj := s.AnimatedLandObject(i)
		snap.animNames = append(snap.animNames, s.TextureSetFilename(obj.SetEntryIndex()))
		snap.animAngles = append(snap.animAngles, obj.AngleRadians())
	}
	for i := 0; i < s.MoonObjectCount(); i++ {
		snap.moonPhases = append(snap.moonPhases, s.MoonObject(i).PhasePercent())
	}
	for i := 0; i < s.StarObjectCount(); i++ {
		obj := s.StarObject(i)
		snap.starKinds = append(snap.starKinds, obj.Kind())
		d := obj.Direction()
		snap.starDirs = append(snap.starDirs, [3]float64{d.X, d.Y, d.Z})
		if obj.Kind() == StarSmall {
			snap.starColors = append(snap.starColors, obj.Color())
		} else {
			snap.starNames = append(snap.starNames, s.TextureFilename(obj.EntryIndex()))
		}
	}
	snap.sun = s.HasSun()
	for i := 0; i < s.TextureCount(); i++ {
		snap.registryNames = append(snap.registryNames, s.TextureFilename(i))
	}
	return snap
}

func TestGenerateDeterminism(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)

	first, err := Generate(params)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := Generate(params)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	if !reflect.DeepEqual(takeSnapshot(first), takeSnapshot(second)) {
		t.Error("two generations with identical inputs produced different skies")
	}
}

func TestMountainCountMatchesFirstDraw(t *testing.T) {
	for _, climate := range world.AllClimates() {
		t.Run(climate.String(), func(t *testing.T) {
			params := testParams(climate, world.WeatherOvercast)

			s, err := Generate(params)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			// The count comes from the very first draw of the seed.
			want := int(rng.New(params.Location.SkySeed).Next())%4 + 2
			if got := s.LandObjectCount(); got != want {
				t.Errorf("LandObjectCount() = %d, want %d", got, want)
			}
		})
	}
}

func TestRegistryMemoization(t *testing.T) {
	s := &DistantSky{}
	p := stubTextures{}

	first, err := s.getOrLoadTexture(p, "TEMP03.IMG")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.getOrLoadTexture(p, "TEMP03.IMG")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same filename returned indices %d and %d", first, second)
	}
	if s.TextureCount() != 1 {
		t.Errorf("TextureCount() = %d, want 1", s.TextureCount())
	}
}

func TestRegistryHasNoDuplicates(t *testing.T) {
	s, err := Generate(testParams(world.ClimateMountain, world.WeatherClear))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	seen := make(map[string]int)
	for i := 0; i < s.TextureCount(); i++ {
		name := s.TextureFilename(i)
		// Moon entries hold a single phase frame each; both moons use
		// distinct filenames, so nothing may repeat.
		if prev, ok := seen[name]; ok {
			t.Errorf("filename %s at indices %d and %d", name, prev, i)
		}
		seen[name] = i
	}
}

func TestHorizonAngle(t *testing.T) {
	tests := []struct {
		step int
		want float64
	}{
		{0, 3 * gomath.Pi / 2},   // south
		{128, gomath.Pi},         // west
		{256, gomath.Pi / 2},     // north
		{384, 0},                 // east
	}
	for _, tt := range tests {
		if got := horizonAngle(tt.step); gomath.Abs(got-tt.want) > 1e-12 {
			t.Errorf("horizonAngle(%d) = %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestCloudCount(t *testing.T) {
	s, err := Generate(testParams(world.ClimateDesert, world.WeatherClear))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if s.AirObjectCount() != 7 {
		t.Fatalf("AirObjectCount() = %d, want 7", s.AirObjectCount())
	}
	for i := 0; i < s.AirObjectCount(); i++ {
		h := s.AirObject(i).Height()
		if h < 0 || h >= 1 {
			t.Errorf("cloud %d height %v outside [0,1)", i, h)
		}
	}
}

func TestNonClearWeatherSuppressesSkyObjects(t *testing.T) {
	for _, weather := range []world.Weather{world.WeatherOvercast, world.WeatherRain, world.WeatherSnow} {
		t.Run(weather.String(), func(t *testing.T) {
			s, err := Generate(testParams(world.ClimateTemperate, weather))
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			if s.AirObjectCount() != 0 {
				t.Errorf("AirObjectCount() = %d, want 0", s.AirObjectCount())
			}
			if s.MoonObjectCount() != 0 {
				t.Errorf("MoonObjectCount() = %d, want 0", s.MoonObjectCount())
			}
			if s.StarObjectCount() != 0 {
				t.Errorf("StarObjectCount() = %d, want 0", s.StarObjectCount())
			}
			if s.HasSun() {
				t.Error("HasSun() = true under non-clear weather")
			}
			// Mountains still place, and so does animated land.
			if s.LandObjectCount() < 2 {
				t.Errorf("LandObjectCount() = %d, want at least 2", s.LandObjectCount())
			}
			if s.AnimatedLandObjectCount() != 1 {
				t.Errorf("AnimatedLandObjectCount() = %d, want 1", s.AnimatedLandObjectCount())
			}
		})
	}
}

func TestProvinceWithoutAnimatedLand(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.Province.HasAnimatedLand = false

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.AnimatedLandObjectCount() != 0 {
		t.Errorf("AnimatedLandObjectCount() = %d, want 0", s.AnimatedLandObjectCount())
	}
}

func TestAnimatedLandVariantByDistance(t *testing.T) {
	tests := []struct {
		name     string
		cityX    int
		cityY    int
		wantName string
	}{
		{"near", 100, 60, "VOLCANO1.DFA"},  // dist 32+8/4 = 34
		{"mid", 240, 80, "VOLCANO2.DFA"},   // dist 108+28/4 = 115
		{"far", 320, 240, "VOLCANO3.DFA"},  // dist 188+47 = 235
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams(world.ClimateTemperate, world.WeatherClear)
			params.Location.CitySeed = uint32(tt.cityX)<<16 | uint32(tt.cityY)

			s, err := Generate(params)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if s.AnimatedLandObjectCount() != 1 {
				t.Fatalf("AnimatedLandObjectCount() = %d, want 1", s.AnimatedLandObjectCount())
			}
			obj := s.AnimatedLandObject(0)
			if got := s.TextureSetFilename(obj.SetEntryIndex()); got != tt.wantName {
				t.Errorf("animated land filename = %s, want %s", got, tt.wantName)
			}
			if got := s.TextureSetFrameCount(obj.SetEntryIndex()); got != 32 {
				t.Errorf("frame count = %d, want 32", got)
			}
		})
	}
}

func TestMoonPhases(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.Day = 20

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.MoonObjectCount() != 2 {
		t.Fatalf("MoonObjectCount() = %d, want 2", s.MoonObjectCount())
	}

	first := s.MoonObject(0)
	if first.Kind() != MoonFirst {
		t.Errorf("moon 0 kind = %v, want First", first.Kind())
	}
	if want := 20.0 / 32.0; first.PhasePercent() != want {
		t.Errorf("first moon phase = %v, want %v", first.PhasePercent(), want)
	}

	second := s.MoonObject(1)
	if second.Kind() != MoonSecond {
		t.Errorf("moon 1 kind = %v, want Second", second.Kind())
	}
	// The second moon trails by 14 phases: (20+14) % 32 = 2.
	if want := 2.0 / 32.0; second.PhasePercent() != want {
		t.Errorf("second moon phase = %v, want %v", second.PhasePercent(), want)
	}
}

func TestStarCountZero(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.StarCount = 0

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.StarObjectCount() != 0 {
		t.Errorf("StarObjectCount() = %d, want 0", s.StarObjectCount())
	}
	// The sun still appears with clear weather.
	if !s.HasSun() {
		t.Error("HasSun() = false, want true")
	}
}

func TestPlanetTypesUnique(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.StarCount = 8000

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Planet star types map to filenames STAR6, STAR7, STAR8. Each may
	// appear at most once across the whole run.
	counts := make(map[string]int)
	for i := 0; i < s.StarObjectCount(); i++ {
		obj := s.StarObject(i)
		if obj.Kind() != StarLarge {
			continue
		}
		counts[s.TextureFilename(obj.EntryIndex())]++
	}
	for _, planet := range []string{"STAR6.IMG", "STAR7.IMG", "STAR8.IMG"} {
		if counts[planet] > 1 {
			t.Errorf("planet %s appears %d times, want at most 1", planet, counts[planet])
		}
	}
}

func TestStarOrdering(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.StarCount = 1000

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sawSmall := false
	lastType := -1
	for i := 0; i < s.StarObjectCount(); i++ {
		obj := s.StarObject(i)
		if obj.Kind() == StarSmall {
			sawSmall = true
			continue
		}
		if sawSmall {
			t.Fatalf("large star at index %d after a small star", i)
		}
		// Large star types ascend; the filename digit encodes type+1.
		name := s.TextureFilename(obj.EntryIndex())
		starType := int(name[len(name)-5] - '1')
		if starType < lastType {
			t.Fatalf("large star types out of order at index %d: %d after %d", i, starType, lastType)
		}
		lastType = starType
	}
}

func TestStarDirectionsAreUnit(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)

	s, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < s.StarObjectCount(); i++ {
		if l := s.StarObject(i).Direction().Length(); gomath.Abs(l-1) > 1e-9 {
			t.Errorf("star %d direction length %v, want 1", i, l)
		}
	}
}

func TestGenerateNegativeDay(t *testing.T) {
	params := testParams(world.ClimateTemperate, world.WeatherClear)
	params.Day = -1

	if _, err := Generate(params); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("Generate with negative day = %v, want ErrInvalidDay", err)
	}
}

func TestSpliceVariant(t *testing.T) {
	tests := []struct {
		template  string
		position  int
		maxDigits int
		variant   int
		want      string
		wantErr   bool
	}{
		{"TEMP00.IMG", 4, 2, 3, "TEMP03.IMG", false},
		{"TEMP00.IMG", 4, 2, 10, "TEMP10.IMG", false},
		{"desert0.img", 6, 1, 4, "DESERT4.IMG", false},
		{"DESERT0.IMG", 6, 1, 10, "", true}, // two digits into a one-digit field
		{"AB", 1, 2, 1, "", true},           // field runs past the template
	}
	for _, tt := range tests {
		got, err := spliceVariant(tt.template, tt.position, tt.maxDigits, tt.variant)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("spliceVariant(%q, %d) error = %v, want ErrInvalidTemplate",
					tt.template, tt.variant, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("spliceVariant(%q, %d): %v", tt.template, tt.variant, err)
			continue
		}
		if got != tt.want {
			t.Errorf("spliceVariant(%q, %d) = %q, want %q", tt.template, tt.variant, got, tt.want)
		}
	}
}

func TestLargeStarFilename(t *testing.T) {
	got, err := largeStarFilename("STAR1.IMG", 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != "STAR8.IMG" {
		t.Errorf("largeStarFilename(7) = %q, want STAR8.IMG", got)
	}

	if _, err := largeStarFilename("STAR.IMG", 0); !errors.Is(err, ErrInvalidStarName) {
		t.Errorf("error = %v, want ErrInvalidStarName", err)
	}
}

func TestMountainFilenamesUseClimateTemplate(t *testing.T) {
	s, err := Generate(testParams(world.ClimateDesert, world.WeatherOvercast))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < s.LandObjectCount(); i++ {
		name := s.TextureFilename(s.LandObject(i).EntryIndex())
		if !strings.HasPrefix(name, "DESERT") {
			t.Errorf("desert mountain %d filename = %s", i, name)
		}
	}
}
