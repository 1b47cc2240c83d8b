package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
	"github.com/hexciv/hexciv/internal/game/mapgen"
	"github.com/hexciv/hexciv/internal/game/states"
)

var civNames = []string{"Rome", "Egypt", "Greece", "Babylon", "Persia", "Carthage"}

// Engine drives one game: it owns the grid, the civilizations, the turn
// cycle, and the four subsystems (movement, visibility, combat, territory)
// that mutate their state. All mutation is single-threaded and
// turn-synchronous.
type Engine struct {
	gameID  string
	grid    *core.Grid
	civs    []*Civilization
	bus     *events.EventBus
	machine *states.StateMachine
	logger  zerolog.Logger
	ids     *IDGenerator
	seed    int64

	turn      int
	current   int // index of the civilization whose turn it is
	startTime time.Time
	gameOver  bool
	winnerID  int

	// Selection state, recomputed on every SelectUnit call.
	selected  *core.Unit
	reachable map[core.Hex]int
	targets   []core.AttackTarget
}

// NewEngine creates a game with the given number of civilizations on a
// freshly generated map. A zero seed picks a random one. Each civilization
// starts with a settler and a scout. A nil bus gets a private one.
func NewEngine(civCount int, seed int64, bus *events.EventBus) (*Engine, error) {
	if civCount < 1 || civCount > len(civNames) {
		return nil, fmt.Errorf("civilization count must be 1..%d, got %d", len(civNames), civCount)
	}
	if bus == nil {
		bus = events.NewEventBus()
	}
	if seed == 0 {
		seed = MapSeed()
	}

	gameID := uuid.New().String()
	logger := log.With().Str("component", "engine").Str("game_id", gameID).Logger()

	mapCfg := mapgen.DefaultMapConfig(MapRadius(), civCount)
	mapCfg.Seed = seed
	mapCfg.NoiseScale = MapNoiseScale()
	gen := mapgen.NewGenerator(mapCfg)

	machine := states.NewStateMachine(states.NewGameContext(gameID, civCount, log.Logger), bus)

	e := &Engine{
		gameID:    gameID,
		bus:       bus,
		machine:   machine,
		logger:    logger,
		ids:       NewIDGenerator(),
		seed:      gen.Seed(),
		turn:      1,
		winnerID:  -1,
		startTime: time.Now(),
	}

	if err := machine.TransitionTo(states.PhaseStarting, "map generation"); err != nil {
		return nil, err
	}

	e.grid = gen.Generate()
	starts := gen.FindStartPositions(e.grid)
	if len(starts) < civCount {
		machine.GetContext().Error = core.ErrInvalidHex
		_ = machine.TransitionTo(states.PhaseError, "no start positions")
		return nil, fmt.Errorf("map has room for %d civilizations, need %d", len(starts), civCount)
	}

	for i := 0; i < civCount; i++ {
		civ := NewCivilization(i, civNames[i])
		e.civs = append(e.civs, civ)

		civ.AddUnit(core.NewUnit(e.ids.Next(), core.UnitSettler, civ.ID, starts[i]))
		if escort := e.freeNeighbor(starts[i]); escort != nil {
			civ.AddUnit(core.NewUnit(e.ids.Next(), core.UnitScout, civ.ID, *escort))
		}
		e.refreshVisibility(civ)
	}

	if err := machine.TransitionTo(states.PhaseRunning, "setup complete"); err != nil {
		return nil, err
	}

	bus.Publish(events.NewGameStartedEvent(gameID, civCount, e.grid.Radius()))
	bus.Publish(events.NewTurnStartedEvent(gameID, e.CurrentCiv().ID, e.turn))
	logger.Info().
		Int64("seed", e.seed).
		Int("civilizations", civCount).
		Int("tiles", e.grid.Len()).
		Msg("Game created")

	return e, nil
}

// GameID returns the unique identifier of this game.
func (e *Engine) GameID() string { return e.gameID }

// Grid returns the shared read-only hex grid.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Seed returns the map generation seed in effect.
func (e *Engine) Seed() int64 { return e.seed }

// Turn returns the current turn number, starting at 1.
func (e *Engine) Turn() int { return e.turn }

// Bus returns the engine's event bus.
func (e *Engine) Bus() *events.EventBus { return e.bus }

// Phase returns the lifecycle phase of the game.
func (e *Engine) Phase() states.GamePhase { return e.machine.CurrentPhase() }

// GameOver reports whether the game has concluded.
func (e *Engine) GameOver() bool { return e.gameOver }

// WinnerID returns the winning civilization's ID, or -1.
func (e *Engine) WinnerID() int { return e.winnerID }

// Civilizations returns all civilizations, including eliminated ones.
func (e *Engine) Civilizations() []*Civilization { return e.civs }

// Civilization returns the civilization with the given ID, or nil.
func (e *Engine) Civilization(id int) *Civilization {
	if id < 0 || id >= len(e.civs) {
		return nil
	}
	return e.civs[id]
}

// CurrentCiv returns the civilization whose turn it is.
func (e *Engine) CurrentCiv() *Civilization { return e.civs[e.current] }

// UnitByID returns the unit with the given ID regardless of owner, or nil.
func (e *Engine) UnitByID(id int) *core.Unit {
	for _, civ := range e.civs {
		if u := civ.UnitByID(id); u != nil {
			return u
		}
	}
	return nil
}

// UnitAt returns the unit standing on pos regardless of owner, or nil.
func (e *Engine) UnitAt(pos core.Hex) *core.Unit {
	for _, civ := range e.civs {
		if u := civ.UnitAt(pos); u != nil {
			return u
		}
	}
	return nil
}

// CityOwning returns the city whose territory contains pos, or nil.
func (e *Engine) CityOwning(pos core.Hex) *City {
	for _, civ := range e.civs {
		for _, city := range civ.Cities {
			if city.Owns(pos) {
				return city
			}
		}
	}
	return nil
}

// tileClaimed reports whether any city's territory contains pos.
func (e *Engine) tileClaimed(pos core.Hex) bool {
	return e.CityOwning(pos) != nil
}

// claimedExcept builds a claim checker that ignores one city's own tiles.
func (e *Engine) claimedExcept(c *City) claimChecker {
	return func(pos core.Hex) bool {
		owner := e.CityOwning(pos)
		return owner != nil && owner != c
	}
}

// SpawnUnit creates a unit for a civilization at pos. The hex must be on the
// grid, passable, and unoccupied.
func (e *Engine) SpawnUnit(civ *Civilization, t core.UnitType, pos core.Hex) (*core.Unit, error) {
	tile := e.grid.TileAt(pos)
	if tile == nil {
		return nil, core.ErrInvalidHex
	}
	if tile.Biome.Impassable() {
		return nil, core.ErrUnreachable
	}
	if e.UnitAt(pos) != nil {
		return nil, core.ErrOccupied
	}

	u := core.NewUnit(e.ids.Next(), t, civ.ID, pos)
	civ.AddUnit(u)
	e.refreshVisibility(civ)
	e.bus.Publish(events.NewUnitSpawnedEvent(e.gameID, u))
	return u, nil
}

// removeUnit removes a dead or consumed unit from its owner and clears it
// from any active selection. Callers refresh visibility afterwards.
func (e *Engine) removeUnit(u *core.Unit) {
	if civ := e.Civilization(u.OwnerID); civ != nil {
		civ.RemoveUnit(u.ID)
	}
	if e.selected == u {
		e.ClearSelection()
	}
	e.bus.Publish(events.NewUnitDiedEvent(e.gameID, u))
	e.checkGameOver()
}

// FoundCity consumes a settler to found a city at its position. The hex must
// be workable land unclaimed by any city. The new city owns its center plus
// the six surrounding hexes; foreign units standing inside that territory are
// displaced to the nearest legal hex.
func (e *Engine) FoundCity(settler *core.Unit) (*City, error) {
	if settler == nil || settler.Dead() {
		return nil, core.ErrUnitNotFound
	}
	if settler.Type != core.UnitSettler {
		return nil, core.ErrNotSettler
	}
	civ := e.Civilization(settler.OwnerID)
	if civ == nil {
		return nil, core.ErrInvalidCiv
	}
	tile := e.grid.TileAt(settler.Pos)
	if tile == nil {
		return nil, core.ErrInvalidHex
	}
	if !tile.Biome.Workable() {
		return nil, core.ErrInvalidHex
	}
	if e.tileClaimed(settler.Pos) {
		return nil, core.ErrOccupied
	}

	name := fmt.Sprintf("%s %d", civ.Name, len(civ.Cities)+1)
	city := NewCity(e.ids.Next(), name, civ.ID, settler.Pos, e.grid, e.tileClaimed)
	civ.AddCity(city)

	// Settler is consumed, not killed.
	civ.RemoveUnit(settler.ID)
	if e.selected == settler {
		e.ClearSelection()
	}

	e.displaceForeignUnits(city)
	e.refreshVisibility(civ)

	e.bus.Publish(events.NewCityFoundedEvent(e.gameID, civ.ID, city.ID, city.Name, city.Center))
	e.logger.Info().
		Str("city", city.Name).
		Str("pos", city.Center.String()).
		Int("civ_id", civ.ID).
		Msg("City founded")
	return city, nil
}

// displaceForeignUnits pushes rival units out of a newly founded city's
// territory to the nearest passable, unoccupied hex outside it.
func (e *Engine) displaceForeignUnits(city *City) {
	for _, civ := range e.civs {
		if civ.ID == city.OwnerID {
			continue
		}
		moved := false
		for _, u := range civ.Units {
			if !city.Owns(u.Pos) {
				continue
			}
			if dest, ok := e.nearestFreeHex(u.Pos, city); ok {
				from := u.Pos
				u.Pos = dest
				moved = true
				e.bus.Publish(events.NewUnitMovedEvent(e.gameID, u, from, dest, 0))
				e.logger.Debug().
					Str("unit", u.String()).
					Str("from", from.String()).
					Msg("Unit displaced by city founding")
			}
		}
		if moved {
			e.refreshVisibility(civ)
		}
	}
}

// nearestFreeHex breadth-first searches outward from start for the closest
// passable, unoccupied hex outside the given city's territory.
func (e *Engine) nearestFreeHex(start core.Hex, exclude *City) (core.Hex, bool) {
	visited := map[core.Hex]struct{}{start: {}}
	queue := []core.Hex{start}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		if pos != start && (exclude == nil || !exclude.Owns(pos)) &&
			!e.grid.TileAt(pos).Biome.Impassable() && e.UnitAt(pos) == nil {
			return pos, true
		}
		for _, n := range e.grid.Neighbors(pos) {
			if _, seen := visited[n]; seen {
				continue
			}
			if e.grid.TileAt(n).Biome.Impassable() {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return core.Hex{}, false
}

// freeNeighbor finds a passable, unoccupied neighbor of pos, or nil.
func (e *Engine) freeNeighbor(pos core.Hex) *core.Hex {
	for _, n := range e.grid.Neighbors(pos) {
		if !e.grid.TileAt(n).Biome.Impassable() && e.UnitAt(n) == nil {
			return &n
		}
	}
	return nil
}

// checkGameOver ends the game when at most one civilization remains alive.
func (e *Engine) checkGameOver() {
	if e.gameOver {
		return
	}
	alive := make([]*Civilization, 0, len(e.civs))
	for _, civ := range e.civs {
		if civ.Alive() {
			alive = append(alive, civ)
		}
	}
	if len(alive) > 1 {
		return
	}

	e.gameOver = true
	if len(alive) == 1 {
		e.winnerID = alive[0].ID
	}

	ctx := e.machine.GetContext()
	ctx.WinnerID = e.winnerID
	ctx.Turn = e.turn
	if err := e.machine.TransitionTo(states.PhaseEnding, "one civilization remains"); err == nil {
		_ = e.machine.TransitionTo(states.PhaseEnded, "cleanup complete")
	}

	e.bus.Publish(events.NewGameEndedEvent(e.gameID, e.winnerID, e.turn, time.Since(e.startTime)))
	e.logger.Info().
		Int("winner_id", e.winnerID).
		Int("turn", e.turn).
		Msg("Game over")
}
