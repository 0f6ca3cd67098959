package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/tamriel-arena/internal/engine/sky"
	pkgmath "github.com/Faultbox/tamriel-arena/pkg/math"
)

var (
	styleDefault = tcell.StyleDefault
	styleLand    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAnim    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCloud   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleMoon    = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	styleSun     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLarge   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width < 10 || height < 8 {
		v.screen.Show()
		return
	}

	horizonRow := height - 4
	skyRows := horizonRow - 1

	v.drawStars(width, skyRows)
	v.drawClouds(width, horizonRow)
	v.drawMoonsAndSun(width)
	v.drawHorizon(width, horizonRow)
	v.drawStatus(width, height)

	v.screen.Show()
}

func (v *viewer) drawStars(width, skyRows int) {
	s := v.sky
	for i := 0; i < s.StarObjectCount(); i++ {
		obj := s.StarObject(i)
		col, row, visible := starCell(obj.Direction(), width, skyRows)
		if !visible {
			continue
		}
		if obj.Kind() == sky.StarLarge {
			v.screen.SetContent(col, row, '*', nil, styleLarge)
		} else {
			style := tcell.StyleDefault.Foreground(argbToColor(obj.Color()))
			v.screen.SetContent(col, row, '.', nil, style)
		}
	}
}

func (v *viewer) drawClouds(width, horizonRow int) {
	s := v.sky
	// Clouds drift in a band over the lower third of the sky.
	band := horizonRow / 3
	if band < 1 {
		band = 1
	}
	for i := 0; i < s.AirObjectCount(); i++ {
		obj := s.AirObject(i)
		col := angleToColumn(obj.AngleRadians(), width)
		row := horizonRow - 1 - int(obj.Height()*float64(band))
		for d := -1; d <= 1; d++ {
			v.screen.SetContent(wrapColumn(col+d, width), row, '~', nil, styleCloud)
		}
	}
}

func (v *viewer) drawMoonsAndSun(width int) {
	s := v.sky
	for i := 0; i < s.MoonObjectCount(); i++ {
		obj := s.MoonObject(i)
		col := (i*2 + 1) * width / 4
		v.screen.SetContent(col, 1, moonRune(obj.PhasePercent()), nil, styleMoon)
	}
	if s.HasSun() {
		v.screen.SetContent(width/2, 0, '@', nil, styleSun)
	}
}

func (v *viewer) drawHorizon(width, horizonRow int) {
	s := v.sky
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, horizonRow, tcell.RuneHLine, nil, styleDefault)
	}

	for i := 0; i < s.LandObjectCount(); i++ {
		col := angleToColumn(s.LandObject(i).AngleRadians(), width)
		for d := -1; d <= 1; d++ {
			v.screen.SetContent(wrapColumn(col+d, width), horizonRow-1, '^', nil, styleLand)
		}
		v.screen.SetContent(col, horizonRow-2, '^', nil, styleLand)
	}

	for i := 0; i < s.AnimatedLandObjectCount(); i++ {
		obj := s.AnimatedLandObject(i)
		col := angleToColumn(obj.AngleRadians(), width)
		v.screen.SetContent(col, horizonRow-1, '^', nil, styleAnim)
		// Frame counter above the peak makes the animation visible even
		// when every frame renders the same glyph.
		frame := rune('0' + obj.FrameIndex()%10)
		v.screen.SetContent(col, horizonRow-2, frame, nil, styleAnim)
	}
}

func (v *viewer) drawStatus(width, height int) {
	s := v.sites[v.siteIndex]
	status := fmt.Sprintf(" %s (%s) | %s | day %d | density %d (%d stars) ",
		s.location.Name, s.location.Climate, v.weather, v.day, v.density, v.starCount)
	help := " q quit  w weather  +/- day  [/] density  l location  r regen "

	drawText(v.screen, 0, height-2, width, status, styleStatus)
	drawText(v.screen, 0, height-1, width, help, styleDefault)
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// angleToColumn maps a horizon angle to a screen column, east at the left
// edge and wrapping the full circle across the width.
func angleToColumn(angle float64, width int) int {
	norm := math.Mod(angle, 2*math.Pi)
	if norm < 0 {
		norm += 2 * math.Pi
	}
	col := int(norm / (2 * math.Pi) * float64(width))
	return wrapColumn(col, width)
}

func wrapColumn(col, width int) int {
	col %= width
	if col < 0 {
		col += width
	}
	return col
}

// starCell projects a star direction onto the sky band: azimuth picks the
// column, elevation the row. Stars below the horizon are not visible.
func starCell(dir pkgmath.Vec3, width, skyRows int) (col, row int, visible bool) {
	elevation := math.Asin(clamp(dir.Z, -1, 1))
	if elevation <= 0 || skyRows < 1 {
		return 0, 0, false
	}
	azimuth := math.Atan2(dir.Y, dir.X)
	col = angleToColumn(azimuth, width)
	row = int((1 - elevation/(math.Pi/2)) * float64(skyRows-1))
	return col, row, true
}

// argbToColor converts a packed 0xAARRGGBB color to a tcell RGB color.
func argbToColor(argb uint32) tcell.Color {
	r := int32(argb >> 16 & 0xFF)
	g := int32(argb >> 8 & 0xFF)
	b := int32(argb & 0xFF)
	return tcell.NewRGBColor(r, g, b)
}

// moonRune picks a glyph by phase: full near 0, new near the middle of the
// cycle.
func moonRune(phase float64) rune {
	switch {
	case phase < 0.25 || phase >= 0.75:
		return 'O'
	default:
		return 'o'
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
