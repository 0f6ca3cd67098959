// Package world defines the overworld data the sky generator consumes:
// climates, weather, provinces, locations, and the executable's filename
// tables.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// Name lookup errors.
var (
	ErrUnknownClimate  = errors.New("unknown climate")
	ErrUnknownWeather  = errors.New("unknown weather")
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownProvince = errors.New("unknown province")
)

// ClimateKind classifies a location's terrain for distant sky generation.
type ClimateKind uint8

const (
	ClimateTemperate ClimateKind = iota
	ClimateDesert
	ClimateMountain
)

var climateNames = map[ClimateKind]string{
	ClimateTemperate: "Temperate",
	ClimateDesert:    "Desert",
	ClimateMountain:  "Mountain",
}

// AllClimates returns every climate kind in declaration order.
func AllClimates() []ClimateKind {
	return []ClimateKind{ClimateTemperate, ClimateDesert, ClimateMountain}
}

// String returns the climate's display name.
func (c ClimateKind) String() string {
	if name, ok := climateNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ClimateKind(%d)", uint8(c))
}

// ParseClimate resolves a climate by name, case-insensitively.
func ParseClimate(name string) (ClimateKind, error) {
	for _, c := range AllClimates() {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q%s", ErrUnknownClimate, name,
		suggestHint(name, climateNameList()))
}

func climateNameList() []string {
	names := make([]string, 0, len(climateNames))
	for _, c := range AllClimates() {
		names = append(names, c.String())
	}
	return names
}
