package world

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTables reports malformed sky data tables.
var ErrInvalidTables = errors.New("invalid sky data tables")

// MountainTraits is one climate's row of distant mountain settings: which
// filename template to use, where its digit field sits, how many variants
// exist, and how wide the digit field is.
type MountainTraits struct {
	FilenameIndex int
	Position      int
	Variation     int
	MaxDigits     int
}

// Cloud filename splice parameters, fixed in the executable.
const (
	CloudPosition  = 5
	CloudVariation = 17
	CloudMaxDigits = 2
)

// DaysPerMonth is the period the executable folds the current day into when
// deriving the daily cloud seed.
const DaysPerMonth = 32

// MoonCount is the number of moons in the sky.
const MoonCount = 2

// MoonPhaseCount is the number of phases each moon cycles through.
const MoonPhaseCount = 32

var mountainTraits = map[ClimateKind]MountainTraits{
	ClimateTemperate: {FilenameIndex: 2, Position: 4, Variation: 10, MaxDigits: 2},
	ClimateDesert:    {FilenameIndex: 1, Position: 6, Variation: 4, MaxDigits: 1},
	ClimateMountain:  {FilenameIndex: 0, Position: 6, Variation: 11, MaxDigits: 2},
}

// MountainTraitsFor returns the distant mountain settings for a climate.
func MountainTraitsFor(c ClimateKind) (MountainTraits, bool) {
	traits, ok := mountainTraits[c]
	return traits, ok
}

// Tables holds the filename tables the executable keeps for distant sky
// content. Templates carry a digit field that generation splices a variant
// number into.
type Tables struct {
	DistantMountainFilenames []string
	CloudFilename            string
	AnimLandFilenames        []string
	MoonFilenames            [MoonCount]string
	StarFilename             string
	SunFilename              string
}

// DefaultTables returns the stock filename tables.
func DefaultTables() Tables {
	return Tables{
		DistantMountainFilenames: []string{
			"MOUNTM00.IMG", // mountain climate
			"DESERT0.IMG",  // desert climate
			"TEMP00.IMG",   // temperate climate
		},
		CloudFilename:     "CLOUD00.IMG",
		AnimLandFilenames: []string{"VOLCANO1.DFA", "VOLCANO2.DFA", "VOLCANO3.DFA"},
		MoonFilenames:     [MoonCount]string{"MOON1.DFA", "MOON2.DFA"},
		StarFilename:      "STAR1.IMG",
		SunFilename:       "SUN.IMG",
	}
}

// Validate checks the tables against the traits rows so generation cannot
// run off a template.
func (t Tables) Validate() error {
	for _, c := range AllClimates() {
		traits, ok := MountainTraitsFor(c)
		if !ok {
			return fmt.Errorf("%w: no mountain traits for climate %s", ErrInvalidTables, c)
		}
		if traits.FilenameIndex < 0 || traits.FilenameIndex >= len(t.DistantMountainFilenames) {
			return fmt.Errorf("%w: %s traits index %d outside %d mountain filenames",
				ErrInvalidTables, c, traits.FilenameIndex, len(t.DistantMountainFilenames))
		}
		template := t.DistantMountainFilenames[traits.FilenameIndex]
		if err := validateTemplate(template, traits.Position, traits.Variation, traits.MaxDigits); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}

	if err := validateTemplate(t.CloudFilename, CloudPosition, CloudVariation, CloudMaxDigits); err != nil {
		return fmt.Errorf("cloud: %w", err)
	}

	if len(t.AnimLandFilenames) != 3 {
		return fmt.Errorf("%w: %d animated land filenames, want 3",
			ErrInvalidTables, len(t.AnimLandFilenames))
	}
	for i, name := range t.AnimLandFilenames {
		if name == "" {
			return fmt.Errorf("%w: empty animated land filename %d", ErrInvalidTables, i)
		}
	}

	for i, name := range t.MoonFilenames {
		if name == "" {
			return fmt.Errorf("%w: empty moon filename %d", ErrInvalidTables, i)
		}
	}

	if !strings.ContainsRune(t.StarFilename, '1') {
		return fmt.Errorf("%w: star filename %q has no '1' to replace",
			ErrInvalidTables, t.StarFilename)
	}
	if t.SunFilename == "" {
		return fmt.Errorf("%w: empty sun filename", ErrInvalidTables)
	}

	return nil
}

func validateTemplate(template string, position, variation, maxDigits int) error {
	if template == "" {
		return fmt.Errorf("%w: empty filename template", ErrInvalidTables)
	}
	if variation < 1 {
		return fmt.Errorf("%w: variation %d in %q", ErrInvalidTables, variation, template)
	}
	if len(strconv.Itoa(variation)) > maxDigits {
		return fmt.Errorf("%w: variation %d wider than %d digits in %q",
			ErrInvalidTables, variation, maxDigits, template)
	}
	if position < 0 || position+maxDigits > len(template) {
		return fmt.Errorf("%w: digit field %d..%d outside template %q",
			ErrInvalidTables, position, position+maxDigits, template)
	}
	return nil
}
