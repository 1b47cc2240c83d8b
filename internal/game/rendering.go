package game

import (
	"fmt"
	"strings"

	"github.com/hexciv/hexciv/internal/config"
	"github.com/hexciv/hexciv/internal/game/core"
)

// This file contains the terminal board rendering for the engine.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var civColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

var biomeSymbols = map[core.Biome]string{
	core.BiomeDeepOcean:    ColorBlue + "≈" + ColorReset,
	core.BiomeShallowOcean: ColorCyan + "~" + ColorReset,
	core.BiomeBeach:        ColorYellow + "." + ColorReset,
	core.BiomeGrassland:    ColorGreen + "\"" + ColorReset,
	core.BiomeForest:       ColorGreen + "♠" + ColorReset,
	core.BiomeHills:        ColorYellow + "n" + ColorReset,
	core.BiomeMountains:    ColorWhite + "▲" + ColorReset,
	core.BiomePeaks:        ColorGray + "∆" + ColorReset,
}

const (
	citySymbol    = "⬢"
	unknownSymbol = " "
)

// Render draws the board from one civilization's point of view: hexes it has
// never seen are blank, remembered hexes are dimmed terrain, and visible
// hexes show terrain, territory, units, and cities. A negative viewer ID (or
// the show_all_tiles development flag) renders omnisciently.
func (e *Engine) Render(viewerID int) string {
	radius := e.grid.Radius()
	viewer := e.Civilization(viewerID)
	omniscient := viewer == nil || config.Get().Development.ShowAllTiles

	var sb strings.Builder
	sb.Grow(e.grid.Len() * 24)

	sb.WriteString(fmt.Sprintf("Turn %d  %s to move\n", e.turn, e.CurrentCiv().Name))

	for r := -radius; r <= radius; r++ {
		qMin := -radius
		if -r-radius > qMin {
			qMin = -r - radius
		}
		qMax := radius
		if -r+radius < qMax {
			qMax = -r + radius
		}

		// Stagger rows so neighbors line up visually: column = 2q + r.
		pad := 2*qMin + r + 2*radius
		sb.WriteString(strings.Repeat(" ", pad))

		for q := qMin; q <= qMax; q++ {
			pos := core.NewHex(q, r)
			sb.WriteString(e.renderHex(pos, viewer, omniscient))
			if q < qMax {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nLegend: ")
	sb.WriteString(citySymbol + "=city  letters=units  ")
	for i, civ := range e.civs {
		sb.WriteString(civColors[i%len(civColors)] + civ.Name + ColorReset + " ")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (e *Engine) renderHex(pos core.Hex, viewer *Civilization, omniscient bool) string {
	state := core.Visible
	if !omniscient {
		state = viewer.VisibilityState(pos)
	}

	switch state {
	case core.Undiscovered:
		return unknownSymbol
	case core.Discovered:
		// Remembered terrain only: no units, dimmed.
		return ColorGray + symbolOnly(e.grid.TileAt(pos).Biome) + ColorReset
	}

	if city := e.cityCenteredAt(pos); city != nil {
		return civColor(city.OwnerID) + citySymbol + ColorReset
	}
	if u := e.UnitAt(pos); u != nil {
		return civColor(u.OwnerID) + unitGlyph(u.Type) + ColorReset
	}
	if city := e.CityOwning(pos); city != nil {
		return civColor(city.OwnerID) + symbolOnly(e.grid.TileAt(pos).Biome) + ColorReset
	}
	return biomeSymbols[e.grid.TileAt(pos).Biome]
}

// cityCenteredAt returns the city whose center is pos, or nil.
func (e *Engine) cityCenteredAt(pos core.Hex) *City {
	for _, civ := range e.civs {
		if city := civ.CityAt(pos); city != nil {
			return city
		}
	}
	return nil
}

func civColor(civID int) string {
	return civColors[civID%len(civColors)]
}

// symbolOnly returns the bare glyph for a biome without color codes.
func symbolOnly(b core.Biome) string {
	switch b {
	case core.BiomeDeepOcean:
		return "≈"
	case core.BiomeShallowOcean:
		return "~"
	case core.BiomeBeach:
		return "."
	case core.BiomeGrassland:
		return "\""
	case core.BiomeForest:
		return "♠"
	case core.BiomeHills:
		return "n"
	case core.BiomeMountains:
		return "▲"
	case core.BiomePeaks:
		return "∆"
	default:
		return "?"
	}
}

// unitGlyph returns a distinct single-character marker per unit type.
func unitGlyph(t core.UnitType) string {
	switch t {
	case core.UnitSettler:
		return "S"
	case core.UnitScout:
		return "c"
	case core.UnitWarrior:
		return "W"
	default:
		return "?"
	}
}
