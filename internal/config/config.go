package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Network NetworkConfig `toml:"network"`
	Arena   ArenaConfig   `toml:"arena"`
	Boost   BoostConfig   `toml:"boost"`
	Arrow   ArrowConfig   `toml:"arrow"`
	Effects EffectsConfig `toml:"effects"`
	Drop    DropConfig    `toml:"drop"`
	Data    DataConfig    `toml:"data"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress       string        `toml:"bind_address"`
	WSPath            string        `toml:"ws_path"`
	StaticDir         string        `toml:"static_dir"`
	TickRate          time.Duration `toml:"tick_rate"`
	InQueueSize       int           `toml:"in_queue_size"`
	OutQueueSize      int           `toml:"out_queue_size"`
	MaxPacketsPerTick int           `toml:"max_packets_per_tick"`
	PacketsPerSecond  int           `toml:"packets_per_second"` // 0 = unlimited
	WriteTimeout      time.Duration `toml:"write_timeout"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
	PingInterval      time.Duration `toml:"ping_interval"` // must be shorter than ReadTimeout
	AllowedOrigins    []string      `toml:"allowed_origins"`
}

// ArenaConfig holds map dimensions and the growth/movement model.
type ArenaConfig struct {
	Width               float64       `toml:"width"`
	Height              float64       `toml:"height"`
	FoodCount           int           `toml:"food_count"`
	FoodValue           float64       `toml:"food_value"`            // mass of a pellet at the reference radius
	FoodReferenceRadius float64       `toml:"food_reference_radius"` // radius whose area maps to FoodValue
	InitialRadius       float64       `toml:"initial_radius"`
	RespawnRadius       float64       `toml:"respawn_radius"`
	RespawnDelay        time.Duration `toml:"respawn_delay"`
	MoveSpeed           float64       `toml:"move_speed"`  // base units / second
	SpeedDecay          float64       `toml:"speed_decay"` // speed scales by mass^-decay
	MoveEpsilon         float64       `toml:"move_epsilon"`
}

type BoostConfig struct {
	SpeedMultiplier float64 `toml:"speed_multiplier"`
	MassCost        float64 `toml:"mass_cost"` // mass per second
	MinRadius       float64 `toml:"min_radius"`
}

type ArrowConfig struct {
	Speed            float64       `toml:"speed"`
	Lifetime         time.Duration `toml:"lifetime"`
	Radius           float64       `toml:"radius"`
	DirectionEpsilon float64       `toml:"direction_epsilon"`
	KillMassShare    float64       `toml:"kill_mass_share"` // share of the victim's mass credited to the shooter
}

type EffectsConfig struct {
	SpeedDuration       time.Duration `toml:"speed_duration"`
	SpeedStackBonus     float64       `toml:"speed_stack_bonus"` // multiplier gain per stack
	ShieldDuration      time.Duration `toml:"shield_duration"`   // at area ratio 1
	ShieldAmmoPerArea   float64       `toml:"shield_ammo_per_area"`
	AttractDuration     time.Duration `toml:"attract_duration"`
	AttractRangePerUnit float64       `toml:"attract_range_per_unit"`
}

// DropConfig controls the pellets scattered when a player is shot down.
type DropConfig struct {
	MinPieces     int     `toml:"min_pieces"`
	MaxPieces     int     `toml:"max_pieces"`
	RadiusDivisor float64 `toml:"radius_divisor"`
	ScatterFactor float64 `toml:"scatter_factor"`
	EdgeMargin    float64 `toml:"edge_margin"`
}

type DataConfig struct {
	FoodTable  string `toml:"food_table"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.Server.StartTime = time.Now().Unix()
		return cfg, nil
	}
	return cfg, err
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "GrowArena",
		},
		Network: NetworkConfig{
			BindAddress:       "0.0.0.0:8000",
			WSPath:            "/ws",
			StaticDir:         "static",
			TickRate:          time.Second / 30,
			InQueueSize:       64,
			OutQueueSize:      256,
			MaxPacketsPerTick: 32,
			PacketsPerSecond:  240,
			WriteTimeout:      10 * time.Second,
			ReadTimeout:       60 * time.Second,
			PingInterval:      25 * time.Second,
		},
		Arena: ArenaConfig{
			Width:               3000,
			Height:              3000,
			FoodCount:           300,
			FoodValue:           3,
			FoodReferenceRadius: 6,
			InitialRadius:       15,
			RespawnRadius:       15,
			RespawnDelay:        2 * time.Second,
			MoveSpeed:           2000,
			SpeedDecay:          0.35,
			MoveEpsilon:         1e-3,
		},
		Boost: BoostConfig{
			SpeedMultiplier: 2.0,
			MassCost:        0.5,
			MinRadius:       10,
		},
		Arrow: ArrowConfig{
			Speed:            800,
			Lifetime:         3 * time.Second,
			Radius:           3,
			DirectionEpsilon: 1e-3,
			KillMassShare:    0.5,
		},
		Effects: EffectsConfig{
			SpeedDuration:       5 * time.Second,
			SpeedStackBonus:     0.01,
			ShieldDuration:      5 * time.Second,
			ShieldAmmoPerArea:   3,
			AttractDuration:     10 * time.Second,
			AttractRangePerUnit: 6.0,
		},
		Drop: DropConfig{
			MinPieces:     5,
			MaxPieces:     20,
			RadiusDivisor: 3,
			ScatterFactor: 1.5,
			EdgeMargin:    10,
		},
		Data: DataConfig{
			FoodTable:  "data/yaml/food_types.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
