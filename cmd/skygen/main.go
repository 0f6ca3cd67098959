// skygen is a CLI utility for generating and inspecting distant skies.
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/tamriel-arena/internal/assets"
	"github.com/Faultbox/tamriel-arena/internal/config"
	"github.com/Faultbox/tamriel-arena/internal/engine/sky"
	"github.com/Faultbox/tamriel-arena/internal/game/world"
	"github.com/Faultbox/tamriel-arena/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "tables":
		cmdTables(args)
	case "density":
		cmdDensity(args)
	case "locations", "ls":
		cmdLocations(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skygen - distant sky generation utility

Usage:
  skygen <command> [options]

Commands:
  generate [options]   Generate a sky and print its object tables
  tables               Dump the static filename tables
  density [value]      Show the star density to star count mapping
  locations            List the built-in locations

Generate options:
  -config path       Explicit config file
  -location name     Location to generate for
  -weather kind      Clear, Overcast, Rain, or Snow
  -day n             Current day index
  -density n         Star density setting (0, 1, or 2)
  -seed n            Override the location's sky seed
  -bsa paths         Comma-separated BSA archive paths
  -placeholder       Synthesize textures instead of reading archives
  -debug             Enable debug logging

Examples:
  skygen generate -location Daggerfall -weather Clear -day 12
  skygen generate -location Ebonheart -density 1 -placeholder
  skygen density 2`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	location := fs.String("location", "", "Location to generate for")
	weather := fs.String("weather", "", "Weather kind")
	day := fs.Int("day", -1, "Current day index")
	density := fs.Int("density", -1, "Star density setting")
	seed := fs.Uint64("seed", 0, "Override the location's sky seed")
	bsaPaths := fs.String("bsa", "", "Comma-separated BSA archive paths")
	placeholder := fs.Bool("placeholder", false, "Synthesize textures")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *location != "" {
		cfg.Sky.Location = *location
	}
	if *weather != "" {
		cfg.Sky.Weather = *weather
	}
	if *day >= 0 {
		cfg.Sky.Day = *day
	}
	if *density >= 0 {
		cfg.Sky.StarDensity = *density
	}
	if *bsaPaths != "" {
		cfg.Data.BSAPaths = strings.Split(*bsaPaths, ",")
	}
	if *placeholder {
		cfg.Data.Placeholder = true
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal("initializing logger: %v", err)
	}
	defer logger.Sync()

	gazetteer := world.DefaultGazetteer()
	loc, province, err := gazetteer.FindLocation(cfg.Sky.Location)
	if err != nil {
		fatal("%v", err)
	}
	if *seed != 0 {
		loc.SkySeed = uint32(*seed)
	}

	weatherKind, err := world.ParseWeather(cfg.Sky.Weather)
	if err != nil {
		fatal("%v", err)
	}
	starCount, err := sky.StarCountFromDensity(cfg.Sky.StarDensity)
	if err != nil {
		fatal("%v", err)
	}

	textures, palette, closeProviders := openProviders(cfg)
	defer closeProviders()

	s, err := sky.Generate(sky.GenerateParams{
		Location:  loc,
		Province:  province,
		Weather:   weatherKind,
		Day:       cfg.Sky.Day,
		StarCount: starCount,
		Tables:    world.DefaultTables(),
		Textures:  textures,
		Palette:   palette,
	})
	if err != nil {
		fatal("generating sky: %v", err)
	}

	printSky(s, loc, province, weatherKind, cfg.Sky.Day, starCount)
}

// loadConfig resolves the tool config: an explicit file when given,
// defaults otherwise. Subcommand flags override afterward.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fatal("%v", err)
	}
	return cfg
}

// openProviders builds the texture and palette providers for the configured
// data source, falling back to placeholders when no archive opens.
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

func printSky(s *sky.DistantSky, loc world.Location, province world.Province,
	weather world.Weather, day, starCount int) {

	point := loc.MapPoint()
	fmt.Printf("Location: %s (%s), %s at (%d,%d)\n",
		loc.Name, loc.Climate, province.Name, point.X, point.Y)
	fmt.Printf("Weather:  %s, day %d, %s stars requested\n",
		weather, day, humanize.Comma(int64(starCount)))
	fmt.Println()

	fmt.Printf("Land objects (%d):\n", s.LandObjectCount())
	for i := 0; i < s.LandObjectCount(); i++ {
		obj := s.LandObject(i)
		fmt.Printf("  %-12s %7.2f deg\n",
			s.TextureFilename(obj.EntryIndex()), degrees(obj.AngleRadians()))
	}

	if n := s.AnimatedLandObjectCount(); n > 0 {
		fmt.Printf("Animated land (%d):\n", n)
		for i := 0; i < n; i++ {
			obj := s.AnimatedLandObject(i)
			fmt.Printf("  %-12s %7.2f deg, %d frames at %.1f fps\n",
				s.TextureSetFilename(obj.SetEntryIndex()), degrees(obj.AngleRadians()),
				s.TextureSetFrameCount(obj.SetEntryIndex()), 1/obj.TargetFrameTime())
		}
	}

	fmt.Printf("Clouds (%d):\n", s.AirObjectCount())
	for i := 0; i < s.AirObjectCount(); i++ {
		obj := s.AirObject(i)
		fmt.Printf("  %-12s %7.2f deg, height %.3f\n",
			s.TextureFilename(obj.EntryIndex()), degrees(obj.AngleRadians()), obj.Height())
	}

	fmt.Printf("Moons (%d):\n", s.MoonObjectCount())
	for i := 0; i < s.MoonObjectCount(); i++ {
		obj := s.MoonObject(i)
		fmt.Printf("  %-7s %-12s phase %.1f%%\n",
			obj.Kind(), s.TextureFilename(obj.EntryIndex()), obj.PhasePercent()*100)
	}

	printStars(s)

	if s.HasSun() {
		fmt.Printf("Sun: %s\n", s.TextureFilename(s.SunEntryIndex()))
	} else {
		fmt.Println("Sun: none")
	}
	fmt.Println()

	printRegistry(s)
}

func printStars(s *sky.DistantSky) {
	small := 0
	large := make(map[string]int)
	for i := 0; i < s.StarObjectCount(); i++ {
		obj := s.StarObject(i)
		if obj.Kind() == sky.StarSmall {
			small++
			continue
		}
		large[s.TextureFilename(obj.EntryIndex())]++
	}

	fmt.Printf("Stars (%s):\n", humanize.Comma(int64(s.StarObjectCount())))
	if s.StarObjectCount() == 0 {
		return
	}
	names := make([]string, 0, len(large))
	for name := range large {
		names = append(names, name)
	}
	// Star filenames encode the type digit, so lexical order is type order.
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s x%d\n", name, large[name])
	}
	fmt.Printf("  small stars  x%s\n", humanize.Comma(int64(small)))
}

func printRegistry(s *sky.DistantSky) {
	var imageBytes, setBytes int
	for i := 0; i < s.TextureCount(); i++ {
		imageBytes += len(s.Texture(i).Pixels)
	}
	for i := 0; i < s.TextureSetCount(); i++ {
		for f := 0; f < s.TextureSetFrameCount(i); f++ {
			setBytes += len(s.TextureSetFrame(i, f).Pixels)
		}
	}

	fmt.Printf("Texture registry: %d images (%s), %d sets (%s)\n",
		s.TextureCount(), humanize.Bytes(uint64(imageBytes)),
		s.TextureSetCount(), humanize.Bytes(uint64(setBytes)))
	for i := 0; i < s.TextureCount(); i++ {
		img := s.Texture(i)
		fmt.Printf("  [%2d] %-12s %3dx%-3d %s\n", i, s.TextureFilename(i),
			img.Width, img.Height, humanize.Bytes(uint64(len(img.Pixels))))
	}
	for i := 0; i < s.TextureSetCount(); i++ {
		frames := s.TextureSetFrameCount(i)
		fmt.Printf("  [%2d] %-12s %d frames\n", i, s.TextureSetFilename(i), frames)
	}
}

func cmdTables(args []string) {
	tables := world.DefaultTables()

	fmt.Println("Distant mountain templates:")
	for _, climate := range world.AllClimates() {
		traits, _ := world.MountainTraitsFor(climate)
		fmt.Printf("  %-10s %-12s pos %d, %d variants, %d digit field\n",
			climate, tables.DistantMountainFilenames[traits.FilenameIndex],
			traits.Position, traits.Variation, traits.MaxDigits)
	}
	fmt.Printf("Cloud template:    %s (pos %d, %d variants, %d digit field)\n",
		tables.CloudFilename, world.CloudPosition, world.CloudVariation, world.CloudMaxDigits)
	fmt.Printf("Animated land:     %s\n", strings.Join(tables.AnimLandFilenames, ", "))
	fmt.Printf("Moons:             %s, %s (%d phases)\n",
		tables.MoonFilenames[0], tables.MoonFilenames[1], world.MoonPhaseCount)
	fmt.Printf("Star template:     %s\n", tables.StarFilename)
	fmt.Printf("Sun:               %s\n", tables.SunFilename)

	if err := tables.Validate(); err != nil {
		fatal("table validation: %v", err)
	}
	fmt.Println("\nTables valid.")
}

func cmdDensity(args []string) {
	if len(args) > 0 {
		density, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("parsing density %q: %v", args[0], err)
		}
		count, err := sky.StarCountFromDensity(density)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("%d -> %s stars\n", density, humanize.Comma(int64(count)))
		return
	}

	for density := 0; density <= 2; density++ {
		count, _ := sky.StarCountFromDensity(density)
		fmt.Printf("%d -> %s stars\n", density, humanize.Comma(int64(count)))
	}
}

func cmdLocations(args []string) {
	gazetteer := world.DefaultGazetteer()
	for _, province := range gazetteer.Provinces {
		suffix := ""
		if province.HasAnimatedLand {
			suffix = fmt.Sprintf(" (animated land at %d,%d)",
				province.AnimLandPoint.X, province.AnimLandPoint.Y)
		}
		fmt.Printf("%s%s\n", province.Name, suffix)
		for _, loc := range province.Locations {
			point := loc.MapPoint()
			fmt.Printf("  %-12s %-10s (%3d,%3d) seed %#08x\n",
				loc.Name, loc.Climate, point.X, point.Y, loc.SkySeed)
		}
	}
}

// degrees converts a horizon angle to degrees in [0,360).
func degrees(radians float64) float64 {
	deg := gomath.Mod(radians*180/gomath.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
