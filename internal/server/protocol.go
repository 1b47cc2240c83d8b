package server

import (
	"github.com/hexciv/hexciv/internal/game"
	"github.com/hexciv/hexciv/internal/game/core"
)

// Client -> server command envelope. Type selects which fields apply.
type Command struct {
	Type     string `json:"type"`
	UnitID   int    `json:"unit_id,omitempty"`
	TargetID int    `json:"target_id,omitempty"`
	Q        int    `json:"q,omitempty"`
	R        int    `json:"r,omitempty"`
	UnitType string `json:"unit_type,omitempty"`
	CityID   int    `json:"city_id,omitempty"`
}

// Command types accepted over the wire.
const (
	CmdEndTurn   = "end_turn"
	CmdMove      = "move"
	CmdAttack    = "attack"
	CmdFoundCity = "found_city"
	CmdProduce   = "produce"
)

// Server -> client message types.
const (
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// ErrorMsg reports a rejected command.
type ErrorMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Snapshot is the full observable game state broadcast after every mutation.
type Snapshot struct {
	Type       string     `json:"type"`
	GameID     string     `json:"game_id"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	CurrentCiv int        `json:"current_civ"`
	GridRadius int        `json:"grid_radius"`
	GameOver   bool       `json:"game_over"`
	WinnerID   int        `json:"winner_id"`
	Civs       []CivState `json:"civs"`
}

type CivState struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Alive  bool        `json:"alive"`
	Units  []UnitState `json:"units"`
	Cities []CityState `json:"cities"`
}

type UnitState struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Q        int    `json:"q"`
	R        int    `json:"r"`
	Movement int    `json:"movement"`
	Health   int    `json:"health"`
	Attacked bool   `json:"attacked"`
}

type CityState struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Q          int      `json:"q"`
	R          int      `json:"r"`
	Population int      `json:"population"`
	Culture    int      `json:"culture"`
	Threshold  int      `json:"culture_threshold"`
	Tiles      [][2]int `json:"tiles"`
	Queue      []string `json:"queue"`
}

// buildSnapshot flattens the engine state into the wire form.
func buildSnapshot(e *game.Engine) Snapshot {
	snap := Snapshot{
		Type:       MsgSnapshot,
		GameID:     e.GameID(),
		Turn:       e.Turn(),
		Phase:      e.Phase().String(),
		CurrentCiv: e.CurrentCiv().ID,
		GridRadius: e.Grid().Radius(),
		GameOver:   e.GameOver(),
		WinnerID:   e.WinnerID(),
	}

	for _, civ := range e.Civilizations() {
		cs := CivState{ID: civ.ID, Name: civ.Name, Alive: civ.Alive()}
		for _, u := range civ.Units {
			cs.Units = append(cs.Units, UnitState{
				ID:       u.ID,
				Type:     u.Type.String(),
				Q:        u.Pos.Q,
				R:        u.Pos.R,
				Movement: u.Movement,
				Health:   u.Health,
				Attacked: u.Attacked,
			})
		}
		for _, city := range civ.Cities {
			st := CityState{
				ID:         city.ID,
				Name:       city.Name,
				Q:          city.Center.Q,
				R:          city.Center.R,
				Population: city.Population,
				Culture:    city.Culture,
				Threshold:  city.CultureThreshold(),
			}
			for _, pos := range city.OwnedTiles() {
				st.Tiles = append(st.Tiles, [2]int{pos.Q, pos.R})
			}
			for _, t := range city.Queue {
				st.Queue = append(st.Queue, t.String())
			}
			cs.Cities = append(cs.Cities, st)
		}
		snap.Civs = append(snap.Civs, cs)
	}
	return snap
}

// parseUnitType maps a wire name to a unit type.
func parseUnitType(name string) (core.UnitType, bool) {
	switch name {
	case "Settler":
		return core.UnitSettler, true
	case "Scout":
		return core.UnitScout, true
	case "Warrior":
		return core.UnitWarrior, true
	default:
		return 0, false
	}
}
