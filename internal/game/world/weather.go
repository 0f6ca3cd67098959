package world

import (
	"fmt"
	"strings"
)

// Weather is the active weather at a location. Clouds and space objects are
// only generated under clear skies.
type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherOvercast
	WeatherRain
	WeatherSnow
)

var weatherNames = map[Weather]string{
	WeatherClear:    "Clear",
	WeatherOvercast: "Overcast",
	WeatherRain:     "Rain",
	WeatherSnow:     "Snow",
}

// AllWeathers returns every weather kind in declaration order.
func AllWeathers() []Weather {
	return []Weather{WeatherClear, WeatherOvercast, WeatherRain, WeatherSnow}
}

// String returns the weather's display name.
func (w Weather) String() string {
	if name, ok := weatherNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Weather(%d)", uint8(w))
}

// ParseWeather resolves a weather kind by name, case-insensitively.
func ParseWeather(name string) (Weather, error) {
	for _, w := range AllWeathers() {
		if strings.EqualFold(name, w.String()) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q%s", ErrUnknownWeather, name,
		suggestHint(name, weatherNameList()))
}

func weatherNameList() []string {
	names := make([]string, 0, len(weatherNames))
	for _, w := range AllWeathers() {
		names = append(names, w.String())
	}
	return names
}
