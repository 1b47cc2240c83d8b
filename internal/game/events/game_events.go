package events

import (
	"time"

	"github.com/hexciv/hexciv/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeUnitSpawned     = "unit.spawned"
	TypeUnitMoved       = "unit.moved"
	TypeUnitDied        = "unit.died"
	TypeCombatResolved  = "combat.resolved"
	TypeCityFounded     = "city.founded"
	TypeCityProduced    = "city.produced"
	TypeBordersExpanded = "borders.expanded"
	TypePhaseChanged    = "game.phase_changed"
)

// PhaseChangedEvent is published when the game lifecycle moves between phases.
type PhaseChangedEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewPhaseChangedEvent creates a new PhaseChangedEvent.
func NewPhaseChangedEvent(gameID, fromPhase, toPhase, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: BaseEvent{EventType: TypePhaseChanged, Time: time.Now(), Game: gameID},
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// GameStartedEvent is published when a new game begins.
type GameStartedEvent struct {
	BaseEvent
	Civilizations int
	GridRadius    int
}

// NewGameStartedEvent creates a new GameStartedEvent.
func NewGameStartedEvent(gameID string, civilizations, gridRadius int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:     BaseEvent{EventType: TypeGameStarted, Time: time.Now(), Game: gameID},
		Civilizations: civilizations,
		GridRadius:    gridRadius,
	}
}

// GameEndedEvent is published when a game ends.
type GameEndedEvent struct {
	BaseEvent
	WinnerID  int
	FinalTurn int
	Duration  time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent.
func NewGameEndedEvent(gameID string, winnerID, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeGameEnded, Time: time.Now(), Game: gameID},
		WinnerID:  winnerID,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// TurnStartedEvent is published when a civilization's turn begins.
type TurnStartedEvent struct {
	BaseEvent
	CivID int
	Turn  int
}

// NewTurnStartedEvent creates a new TurnStartedEvent.
func NewTurnStartedEvent(gameID string, civID, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: BaseEvent{EventType: TypeTurnStarted, Time: time.Now(), Game: gameID},
		CivID:     civID,
		Turn:      turn,
	}
}

// TurnEndedEvent is published when a civilization's turn ends.
type TurnEndedEvent struct {
	BaseEvent
	CivID    int
	Turn     int
	Duration time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent.
func NewTurnEndedEvent(gameID string, civID, turn int, duration time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeTurnEnded, Time: time.Now(), Game: gameID},
		CivID:     civID,
		Turn:      turn,
		Duration:  duration,
	}
}

// UnitSpawnedEvent is published when a unit enters the game.
type UnitSpawnedEvent struct {
	BaseEvent
	CivID    int
	UnitID   int
	UnitType core.UnitType
	Pos      core.Hex
}

// NewUnitSpawnedEvent creates a new UnitSpawnedEvent.
func NewUnitSpawnedEvent(gameID string, unit *core.Unit) *UnitSpawnedEvent {
	return &UnitSpawnedEvent{
		BaseEvent: BaseEvent{EventType: TypeUnitSpawned, Time: time.Now(), Game: gameID},
		CivID:     unit.OwnerID,
		UnitID:    unit.ID,
		UnitType:  unit.Type,
		Pos:       unit.Pos,
	}
}

// UnitMovedEvent is published after a unit changes position.
type UnitMovedEvent struct {
	BaseEvent
	CivID  int
	UnitID int
	From   core.Hex
	To     core.Hex
	Cost   int
}

// NewUnitMovedEvent creates a new UnitMovedEvent.
func NewUnitMovedEvent(gameID string, unit *core.Unit, from, to core.Hex, cost int) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: BaseEvent{EventType: TypeUnitMoved, Time: time.Now(), Game: gameID},
		CivID:     unit.OwnerID,
		UnitID:    unit.ID,
		From:      from,
		To:        to,
		Cost:      cost,
	}
}

// UnitDiedEvent is published when a unit is removed after reaching zero
// health or being consumed.
type UnitDiedEvent struct {
	BaseEvent
	CivID    int
	UnitID   int
	UnitType core.UnitType
	Pos      core.Hex
}

// NewUnitDiedEvent creates a new UnitDiedEvent.
func NewUnitDiedEvent(gameID string, unit *core.Unit) *UnitDiedEvent {
	return &UnitDiedEvent{
		BaseEvent: BaseEvent{EventType: TypeUnitDied, Time: time.Now(), Game: gameID},
		CivID:     unit.OwnerID,
		UnitID:    unit.ID,
		UnitType:  unit.Type,
		Pos:       unit.Pos,
	}
}

// CombatResolvedEvent is published after a valid attack resolves.
type CombatResolvedEvent struct {
	BaseEvent
	AttackerID     int
	DefenderID     int
	AttackerCivID  int
	DefenderCivID  int
	AttackerDamage int
	DefenderDamage int
	AttackerKilled bool
	DefenderKilled bool
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent.
func NewCombatResolvedEvent(gameID string, attacker, defender *core.Unit, result core.CombatResult) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:      BaseEvent{EventType: TypeCombatResolved, Time: time.Now(), Game: gameID},
		AttackerID:     attacker.ID,
		DefenderID:     defender.ID,
		AttackerCivID:  attacker.OwnerID,
		DefenderCivID:  defender.OwnerID,
		AttackerDamage: result.AttackerDamage,
		DefenderDamage: result.DefenderDamage,
		AttackerKilled: result.AttackerKilled,
		DefenderKilled: result.DefenderKilled,
	}
}

// CityFoundedEvent is published when a settler founds a city.
type CityFoundedEvent struct {
	BaseEvent
	CivID    int
	CityID   int
	CityName string
	Pos      core.Hex
}

// NewCityFoundedEvent creates a new CityFoundedEvent.
func NewCityFoundedEvent(gameID string, civID, cityID int, name string, pos core.Hex) *CityFoundedEvent {
	return &CityFoundedEvent{
		BaseEvent: BaseEvent{EventType: TypeCityFounded, Time: time.Now(), Game: gameID},
		CivID:     civID,
		CityID:    cityID,
		CityName:  name,
		Pos:       pos,
	}
}

// CityProducedEvent is published when a city completes a production item.
type CityProducedEvent struct {
	BaseEvent
	CivID  int
	CityID int
	Item   string
}

// NewCityProducedEvent creates a new CityProducedEvent.
func NewCityProducedEvent(gameID string, civID, cityID int, item string) *CityProducedEvent {
	return &CityProducedEvent{
		BaseEvent: BaseEvent{EventType: TypeCityProduced, Time: time.Now(), Game: gameID},
		CivID:     civID,
		CityID:    cityID,
		Item:      item,
	}
}

// BordersExpandedEvent is published when a city claims a new tile.
type BordersExpandedEvent struct {
	BaseEvent
	CivID  int
	CityID int
	Tile   core.Hex
	Ring   int
}

// NewBordersExpandedEvent creates a new BordersExpandedEvent.
func NewBordersExpandedEvent(gameID string, civID, cityID int, tile core.Hex, ring int) *BordersExpandedEvent {
	return &BordersExpandedEvent{
		BaseEvent: BaseEvent{EventType: TypeBordersExpanded, Time: time.Now(), Game: gameID},
		CivID:     civID,
		CityID:    cityID,
		Tile:      tile,
		Ring:      ring,
	}
}
