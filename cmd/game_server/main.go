package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexciv/hexciv/internal/config"
	"github.com/hexciv/hexciv/internal/game"
	"github.com/hexciv/hexciv/internal/game/events"
	"github.com/hexciv/hexciv/internal/game/events/subscribers"
	"github.com/hexciv/hexciv/internal/monitoring"
	"github.com/hexciv/hexciv/internal/replay"
	"github.com/hexciv/hexciv/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	seed := flag.Int64("seed", 0, "map seed (0 = random)")
	replayDir := flag.String("replay-dir", "", "directory for replay files (empty = disabled)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	setupLogging(cfg)

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("server-logger", log.Logger, zerolog.InfoLevel))

	engine, err := game.NewEngine(cfg.Server.GameServer.Demo.Civilizations, *seed, bus)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	if *replayDir != "" {
		rec, err := replay.NewRecorder(replay.DefaultConfig(*replayDir), engine.GameID(), log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start replay recorder")
		}
		defer rec.Close()
		bus.Subscribe(rec)
	}

	monitor := monitoring.NewGoroutineMonitor(log.Logger)
	monitor.Start()
	defer monitor.Stop()

	// Rebroadcast state whenever a turn changes hands, so spectators stay
	// current even when another client drove the mutation.
	srv := server.New(engine)
	bus.SubscribeFunc(events.TypeTurnStarted, func(events.Event) { srv.Broadcast() })

	config.WatchConfig(func() {
		log.Info().Msg("Configuration reloaded")
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.GameServer.Host, cfg.Server.GameServer.Port)
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.GameServer.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Server.GameServer.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
