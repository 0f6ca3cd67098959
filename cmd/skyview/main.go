// skyview is a terminal preview of generated distant skies: the horizon
// band, clouds, stars, moons, and the sun, with animated land ticking live.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/tamriel-arena/internal/assets"
	"github.com/Faultbox/tamriel-arena/internal/config"
	"github.com/Faultbox/tamriel-arena/internal/engine/sky"
	"github.com/Faultbox/tamriel-arena/internal/game/world"
	"github.com/Faultbox/tamriel-arena/internal/logger"
)

const frameInterval = 33 * time.Millisecond

// site pairs a location with its province so the viewer can cycle through
// the gazetteer.
type site struct {
	location world.Location
	province world.Province
}

type viewer struct {
	screen tcell.Screen

	sites     []site
	siteIndex int
	weather   world.Weather
	day       int
	density   int

	textures sky.TextureProvider
	palette  sky.PaletteProvider

	sky       *sky.DistantSky
	starCount int
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fatal("%v", err)
	}

	// The logger would scribble over the tcell screen.
	logger.Disable()

	textures, palette, closeProviders := openProviders(cfg)
	defer closeProviders()

	gazetteer := world.DefaultGazetteer()
	var sites []site
	for _, province := range gazetteer.Provinces {
		for _, loc := range province.Locations {
			sites = append(sites, site{location: loc, province: province})
		}
	}

	v := &viewer{
		sites:    sites,
		weather:  world.WeatherClear,
		day:      cfg.Sky.Day,
		density:  cfg.Sky.StarDensity,
		textures: textures,
		palette:  palette,
	}
	if cfg.Sky.Weather != "" {
		if w, err := world.ParseWeather(cfg.Sky.Weather); err == nil {
			v.weather = w
		}
	}
	for i, s := range sites {
		if strings.EqualFold(s.location.Name, cfg.Sky.Location) {
			v.siteIndex = i
			break
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatal("initializing screen: %v", err)
	}
	v.screen = screen

	if err := v.regenerate(); err != nil {
		screen.Fini()
		fatal("generating sky: %v", err)
	}

	v.run()
	screen.Fini()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openProviders mirrors skygen: archives when available, placeholders
// otherwise.
func openProviders(cfg *config.Config) (sky.TextureProvider, sky.PaletteProvider, func()) {
	if cfg.Data.Placeholder {
		return assets.NewPlaceholder(), assets.PlaceholderPalette{}, func() {}
	}

	manager := assets.NewManager()
	for _, path := range cfg.Data.BSAPaths {
		if err := manager.AddArchive(strings.TrimSpace(path)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if manager.ArchiveCount() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no archives opened, using placeholder textures")
		manager.Close()
		return assets.NewPlaceholder(), assets.PlaceholderPalette{}, func() {}
	}

	palette, err := manager.PaletteColors(cfg.Data.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using placeholder palette\n", err)
		return manager, assets.PlaceholderPalette{}, manager.Close
	}
	return manager, palette, manager.Close
}

func (v *viewer) regenerate() error {
	s := v.sites[v.siteIndex]

	starCount, err := sky.StarCountFromDensity(v.density)
	if err != nil {
		return err
	}
	v.starCount = starCount

	generated, err := sky.Generate(sky.GenerateParams{
		Location:  s.location,
		Province:  s.province,
		Weather:   v.weather,
		Day:       v.day,
		StarCount: starCount,
		Tables:    world.DefaultTables(),
		Textures:  v.textures,
		Palette:   v.palette,
	})
	if err != nil {
		return err
	}
	v.sky = generated
	return nil
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	v.draw()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !v.handleEvent(ev) {
				return
			}
			v.draw()
		case now := <-ticker.C:
			v.sky.Tick(now.Sub(last).Seconds())
			last = now
			v.draw()
		}
	}
}

// handleEvent processes one input event. It returns false to quit.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			return false
		}
		switch ev.Rune() {
		case 'w':
			all := world.AllWeathers()
			v.weather = all[(int(v.weather)+1)%len(all)]
			v.mustRegenerate()
		case '+', '=':
			v.day++
			v.mustRegenerate()
		case '-':
			if v.day > 0 {
				v.day--
				v.mustRegenerate()
			}
		case ']':
			if v.density < 2 {
				v.density++
				v.mustRegenerate()
			}
		case '[':
			if v.density > 0 {
				v.density--
				v.mustRegenerate()
			}
		case 'l':
			v.siteIndex = (v.siteIndex + 1) % len(v.sites)
			v.mustRegenerate()
		case 'r':
			v.mustRegenerate()
		}
	}
	return true
}

// mustRegenerate rebuilds the sky for the current context. Every reachable
// context is valid (the density is clamped), so a failure here means
// corrupt static data and the viewer cannot continue.
func (v *viewer) mustRegenerate() {
	if err := v.regenerate(); err != nil {
		v.screen.Fini()
		fatal("generating sky: %v", err)
	}
}
