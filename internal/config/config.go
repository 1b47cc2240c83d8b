package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Map     MapConfig     `mapstructure:"map"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Culture CultureConfig `mapstructure:"culture"`
	City    CityConfig    `mapstructure:"city"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Radius     int     `mapstructure:"radius"`
	NoiseScale float64 `mapstructure:"noise_scale"`
	Seed       int64   `mapstructure:"seed"`
}

// CombatConfig holds combat resolution settings
type CombatConfig struct {
	AttackMovementCost      int     `mapstructure:"attack_movement_cost"`
	CounterattackMultiplier float64 `mapstructure:"counterattack_multiplier"`
}

// CultureConfig holds border growth settings
type CultureConfig struct {
	BaseThreshold     int `mapstructure:"base_threshold"`
	ThresholdStep     int `mapstructure:"threshold_step"`
	MaxExpansionRings int `mapstructure:"max_expansion_rings"`
}

// CityConfig holds city yield and growth settings
type CityConfig struct {
	CenterFood       int `mapstructure:"center_food"`
	CenterProduction int `mapstructure:"center_production"`
	GrowthFactor     int `mapstructure:"growth_factor"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GameServer GameServerConfig `mapstructure:"game_server"`
}

// GameServerConfig holds game server specific configuration
type GameServerConfig struct {
	Host      string     `mapstructure:"host"`
	Port      int        `mapstructure:"port"`
	LogLevel  string     `mapstructure:"log_level"`
	LogFormat string     `mapstructure:"log_format"`
	Demo      DemoConfig `mapstructure:"demo"`
}

// DemoConfig holds demo mode configuration
type DemoConfig struct {
	Civilizations int `mapstructure:"civilizations"`
	MaxTurns      int `mapstructure:"max_turns"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	ShowAllTiles   bool `mapstructure:"show_all_tiles"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Map defaults
	v.SetDefault("game.map.radius", 20)
	v.SetDefault("game.map.noise_scale", 0.15)
	v.SetDefault("game.map.seed", 0)

	// Combat defaults
	v.SetDefault("game.combat.attack_movement_cost", 1)
	v.SetDefault("game.combat.counterattack_multiplier", 0.5)

	// Culture / border growth defaults
	v.SetDefault("game.culture.base_threshold", 10)
	v.SetDefault("game.culture.threshold_step", 5)
	v.SetDefault("game.culture.max_expansion_rings", 5)

	// City defaults
	v.SetDefault("game.city.center_food", 2)
	v.SetDefault("game.city.center_production", 1)
	v.SetDefault("game.city.growth_factor", 2)

	// Server defaults
	v.SetDefault("server.game_server.host", "0.0.0.0")
	v.SetDefault("server.game_server.port", 8080)
	v.SetDefault("server.game_server.log_level", "info")
	v.SetDefault("server.game_server.log_format", "console")
	v.SetDefault("server.game_server.demo.civilizations", 2)
	v.SetDefault("server.game_server.demo.max_turns", 50)

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_all_tiles", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hexciv")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("HEXCIV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Map.Radius < 1 {
		return fmt.Errorf("game.map.radius must be at least 1")
	}
	if c.Game.Map.NoiseScale <= 0 {
		return fmt.Errorf("game.map.noise_scale must be positive")
	}
	if c.Game.Combat.AttackMovementCost < 0 {
		return fmt.Errorf("game.combat.attack_movement_cost must be non-negative")
	}
	if c.Game.Combat.CounterattackMultiplier < 0 || c.Game.Combat.CounterattackMultiplier > 1 {
		return fmt.Errorf("game.combat.counterattack_multiplier must be between 0 and 1")
	}
	if c.Game.Culture.BaseThreshold <= 0 {
		return fmt.Errorf("game.culture.base_threshold must be positive")
	}
	if c.Game.Culture.ThresholdStep < 0 {
		return fmt.Errorf("game.culture.threshold_step must be non-negative")
	}
	if c.Game.Culture.MaxExpansionRings < 1 {
		return fmt.Errorf("game.culture.max_expansion_rings must be at least 1")
	}
	if c.Game.City.GrowthFactor <= 0 {
		return fmt.Errorf("game.city.growth_factor must be positive")
	}
	if c.Server.GameServer.Port <= 0 || c.Server.GameServer.Port > 65535 {
		return fmt.Errorf("server.game_server.port must be between 1 and 65535")
	}
	return nil
}
