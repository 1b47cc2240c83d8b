package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexciv/hexciv/internal/config"
	"github.com/hexciv/hexciv/internal/game"
	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
	"github.com/hexciv/hexciv/internal/game/events/subscribers"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	seed := flag.Int64("seed", 0, "map seed (0 = random)")
	civs := flag.Int("civs", 2, "number of civilizations")
	maxTurns := flag.Int("turns", 60, "maximum turns to simulate")
	verbose := flag.Bool("v", false, "verbose event logging")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	bus := events.NewEventBus()
	if *verbose {
		bus.Subscribe(subscribers.NewLoggerSubscriber("demo-logger", log.Logger, zerolog.DebugLevel))
	}

	engine, err := game.NewEngine(*civs, *seed, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed %d, %d civilizations\n\n", engine.Seed(), *civs)
	fmt.Print(engine.Render(-1))

	for engine.Turn() <= *maxTurns && !engine.GameOver() {
		playTurn(engine, rng)
		if err := engine.EndTurn(); err != nil {
			break
		}
		if engine.Turn()%10 == 0 && engine.CurrentCiv().ID == 0 {
			fmt.Printf("\n%s", engine.Render(-1))
		}
	}

	fmt.Printf("\nFinal state:\n%s", engine.Render(-1))
	if engine.GameOver() {
		if w := engine.Civilization(engine.WinnerID()); w != nil {
			fmt.Printf("Game over on turn %d: %s wins\n", engine.Turn(), w.Name)
		} else {
			fmt.Printf("Game over on turn %d: no winner\n", engine.Turn())
		}
	} else {
		fmt.Printf("Reached turn limit (%d)\n", *maxTurns)
	}
}

// playTurn drives one civilization with simple scripted behavior: settlers
// found cities, idle cities queue units, everything else wanders and attacks
// opportunistically.
func playTurn(e *game.Engine, rng *rand.Rand) {
	civ := e.CurrentCiv()

	for _, u := range append([]*core.Unit(nil), civ.Units...) {
		if u.Dead() {
			continue
		}

		if u.Type == core.UnitSettler {
			if _, err := e.FoundCity(u); err == nil {
				continue
			}
		}

		if err := e.SelectUnit(u); err != nil {
			continue
		}

		// Attack the first available target, otherwise wander.
		if targets := e.AttackTargets(); len(targets) > 0 {
			e.AttackWithSelected(targets[0].Target)
			continue
		}
		moveRandomly(e, rng)
	}

	for _, city := range civ.Cities {
		if _, busy := city.CurrentProduction(); !busy {
			city.Enqueue(randomProduction(rng))
		}
	}
}

func moveRandomly(e *game.Engine, rng *rand.Rand) {
	u := e.SelectedUnit()
	if u == nil {
		return
	}
	reachable := e.ReachableHexes()
	if len(reachable) <= 1 {
		return
	}

	// Prefer far destinations so scouts actually explore.
	var best core.Hex
	bestScore := -1
	for pos := range reachable {
		if pos == u.Pos {
			continue
		}
		score := u.Pos.DistanceTo(pos)*2 + rng.Intn(5)
		if score > bestScore {
			best, bestScore = pos, score
		}
	}
	if bestScore >= 0 {
		_ = e.MoveSelectedUnit(best)
	}
}

func randomProduction(rng *rand.Rand) core.UnitType {
	options := []core.UnitType{core.UnitScout, core.UnitWarrior, core.UnitWarrior, core.UnitSettler}
	return options[rng.Intn(len(options))]
}
