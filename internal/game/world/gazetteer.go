package world

import (
	"fmt"
	"strings"
)

// Gazetteer indexes provinces and their locations by name.
type Gazetteer struct {
	Provinces []Province
}

// DefaultGazetteer returns a small builtin world covering all three climates
// and one province with an animated land feature, so the tools run without
// retail data files.
func DefaultGazetteer() *Gazetteer {
	return &Gazetteer{
		Provinces: []Province{
			{
				Name: "High Rock",
				Locations: []Location{
					{Name: "Daggerfall", Climate: ClimateTemperate, CitySeed: pack(220, 150), SkySeed: 0x0017D2F1},
					{Name: "Wayrest", Climate: ClimateTemperate, CitySeed: pack(240, 160), SkySeed: 0x0009A417},
				},
			},
			{
				Name: "Hammerfell",
				Locations: []Location{
					{Name: "Sentinel", Climate: ClimateDesert, CitySeed: pack(180, 200), SkySeed: 0x00315B66},
				},
			},
			{
				Name: "Skyrim",
				Locations: []Location{
					{Name: "Winterhold", Climate: ClimateMountain, CitySeed: pack(60, 40), SkySeed: 0x002E8D09},
					{Name: "Solitude", Climate: ClimateMountain, CitySeed: pack(90, 20), SkySeed: 0x001F44A8},
				},
			},
			{
				Name:            "Morrowind",
				HasAnimatedLand: true,
				AnimLandPoint:   Point{X: 132, Y: 52},
				Locations: []Location{
					// Near, mid, and far from the volcano.
					{Name: "Ebonheart", Climate: ClimateTemperate, CitySeed: pack(100, 60), SkySeed: 0x000C91D3},
					{Name: "Blacklight", Climate: ClimateMountain, CitySeed: pack(20, 30), SkySeed: 0x0025F07C},
					{Name: "Tear", Climate: ClimateDesert, CitySeed: pack(300, 220), SkySeed: 0x00118E4B},
				},
			},
		},
	}
}

// FindLocation resolves a location by name across all provinces,
// case-insensitively, returning its province alongside it.
func (g *Gazetteer) FindLocation(name string) (Location, Province, error) {
	for _, p := range g.Provinces {
		for _, l := range p.Locations {
			if strings.EqualFold(l.Name, name) {
				return l, p, nil
			}
		}
	}
	return Location{}, Province{}, fmt.Errorf("%w: %q%s",
		ErrUnknownLocation, name, suggestHint(name, g.LocationNames()))
}

// FindProvince resolves a province by name, case-insensitively.
func (g *Gazetteer) FindProvince(name string) (Province, error) {
	for _, p := range g.Provinces {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Province{}, fmt.Errorf("%w: %q%s",
		ErrUnknownProvince, name, suggestHint(name, g.ProvinceNames()))
}

// LocationNames lists every location name in gazetteer order.
func (g *Gazetteer) LocationNames() []string {
	var names []string
	for _, p := range g.Provinces {
		for _, l := range p.Locations {
			names = append(names, l.Name)
		}
	}
	return names
}

// ProvinceNames lists every province name in gazetteer order.
func (g *Gazetteer) ProvinceNames() []string {
	names := make([]string, len(g.Provinces))
	for i, p := range g.Provinces {
		names[i] = p.Name
	}
	return names
}

func pack(x, y int) uint32 {
	return uint32(x)<<16 | uint32(y)&0xFFFF
}
