package game

import (
	"time"

	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
)

// EndTurn finishes the current civilization's turn: its cities produce, feed
// their population, and accumulate culture; then play passes to the next
// living civilization. When the order wraps around, the turn number
// advances. The incoming civilization's units get fresh movement budgets.
func (e *Engine) EndTurn() error {
	if e.gameOver {
		return core.WrapGameStateError(e.turn, e.Phase().String(), core.ErrGameOver)
	}

	civ := e.CurrentCiv()
	started := time.Now()
	turnLogger := e.logger.With().Int("turn", e.turn).Int("civ_id", civ.ID).Logger()

	for _, city := range civ.Cities {
		e.AdvanceCityTurn(city)
	}

	e.ClearSelection()
	e.bus.Publish(events.NewTurnEndedEvent(e.gameID, civ.ID, e.turn, time.Since(started)))

	e.checkGameOver()
	if e.gameOver {
		return nil
	}

	next := e.nextLivingCiv()
	if next <= e.current {
		e.turn++
	}
	e.current = next

	incoming := e.CurrentCiv()
	for _, u := range incoming.Units {
		u.Refresh()
	}
	e.bus.Publish(events.NewTurnStartedEvent(e.gameID, incoming.ID, e.turn))
	turnLogger.Debug().Int("next_civ", incoming.ID).Msg("Turn passed")

	return nil
}

// nextLivingCiv returns the index of the next civilization in order that is
// still alive, skipping eliminated ones.
func (e *Engine) nextLivingCiv() int {
	for step := 1; step <= len(e.civs); step++ {
		idx := (e.current + step) % len(e.civs)
		if e.civs[idx].Alive() {
			return idx
		}
	}
	return e.current
}

// AdvanceCityTurn applies one turn of city processing: ring recalculation if
// flagged, production, food and growth, then culture and border expansion.
func (e *Engine) AdvanceCityTurn(city *City) {
	claimed := e.claimedExcept(city)
	if city.RingsDirty() {
		city.RecalculateRings(e.grid, claimed)
	}

	for _, t := range city.AddProduction(city.ProductionPerTurn(e.grid)) {
		e.completeProduction(city, t)
	}

	if city.AddFood(city.FoodPerTurn(e.grid), e.grid) {
		e.logger.Debug().
			Str("city", city.Name).
			Int("population", city.Population).
			Msg("City grew")
	}

	for _, pos := range city.AddCulture(city.CulturePerTurn(), claimed) {
		e.bus.Publish(events.NewBordersExpandedEvent(
			e.gameID, city.OwnerID, city.ID, pos, city.Center.DistanceTo(pos)))
	}
}

// completeProduction spawns a finished unit at the city center, or the
// nearest free hex when the center is occupied.
func (e *Engine) completeProduction(city *City, t core.UnitType) {
	civ := e.Civilization(city.OwnerID)
	if civ == nil {
		return
	}

	pos := city.Center
	if e.UnitAt(pos) != nil {
		dest, ok := e.nearestFreeHex(city.Center, nil)
		if !ok {
			e.logger.Warn().
				Str("city", city.Name).
				Str("unit_type", t.String()).
				Msg("No room to place produced unit")
			return
		}
		pos = dest
	}

	if _, err := e.SpawnUnit(civ, t, pos); err != nil {
		e.logger.Warn().Err(err).Str("city", city.Name).Msg("Failed to place produced unit")
		return
	}
	e.bus.Publish(events.NewCityProducedEvent(e.gameID, city.OwnerID, city.ID, t.String()))
}
