package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/hexciv/hexciv/internal/game/events"
)

// LoggerSubscriber logs events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all).
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("civilizations", e.Civilizations).
			Int("grid_radius", e.GridRadius)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.WinnerID).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("turn", e.Turn)

	case *events.TurnEndedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("turn", e.Turn).
			Dur("process_time", e.Duration)

	case *events.UnitSpawnedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("unit_id", e.UnitID).
			Stringer("unit_type", e.UnitType).
			Stringer("pos", e.Pos)

	case *events.UnitMovedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("unit_id", e.UnitID).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Int("cost", e.Cost)

	case *events.UnitDiedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("unit_id", e.UnitID).
			Stringer("unit_type", e.UnitType).
			Stringer("pos", e.Pos)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("attacker_id", e.AttackerID).
			Int("defender_id", e.DefenderID).
			Int("attacker_damage", e.AttackerDamage).
			Int("defender_damage", e.DefenderDamage).
			Bool("attacker_killed", e.AttackerKilled).
			Bool("defender_killed", e.DefenderKilled)

	case *events.CityFoundedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("city_id", e.CityID).
			Str("city_name", e.CityName).
			Stringer("pos", e.Pos)

	case *events.CityProducedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("city_id", e.CityID).
			Str("item", e.Item)

	case *events.BordersExpandedEvent:
		logEvent.
			Int("civ_id", e.CivID).
			Int("city_id", e.CityID).
			Stringer("tile", e.Tile).
			Int("ring", e.Ring)

	case *events.PhaseChangedEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, attach the full event payload
	if ls.devMode {
		if data, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", data)
		}
	}

	logEvent.Msg("Game event")
}
