package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Engine   EngineConfig
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the unified Redis connection settings.
// Supported modes: single, sentinel, cluster.
type RedisConfig struct {
	// Mode selects the Redis topology ("single", "sentinel", "cluster").
	// Defaults to "single".
	Mode string `mapstructure:"mode"`

	// Addrs lists Redis addresses (host:port), used in every mode. For
	// 'single', the first address wins when both Addrs and Addr are set.
	Addrs []string `mapstructure:"addrs"`

	// Addr is the single-mode address kept for backwards compatibility.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName names the Redis master (sentinel mode only).
	MasterName string `mapstructure:"master_name"`

	// MaxRetries caps reconnection attempts (-1 = unlimited). 0 = no retries.
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff between attempts, in milliseconds. Default 8ms.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff between attempts, in milliseconds. Default 512ms.
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// EngineConfig holds the assessment engine policy knobs.
type EngineConfig struct {
	// RewardScoreThreshold is the minimum score that fires a completion
	// event toward the rewards service.
	RewardScoreThreshold int `mapstructure:"reward_score_threshold"`

	// QuestionCountdown arms the per-question time limit timer.
	QuestionCountdown bool `mapstructure:"question_countdown"`

	// LevelCountdown arms the whole-level duration timer.
	LevelCountdown bool `mapstructure:"level_countdown"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads the configuration from the file and environment. Environment
// variables are bound explicitly per key so the mapping stays greppable.
func Load(configPath string) (*Config, error) {
	vip := viper.New() // fresh instance, no global viper state

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("engine.reward_score_threshold", 80)
	vip.SetDefault("engine.question_countdown", true)
	vip.SetDefault("engine.level_countdown", true)

	// Database section
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Redis section
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Engine section
	vip.BindEnv("engine.reward_score_threshold", "ENGINE_REWARD_SCORE_THRESHOLD")
	vip.BindEnv("engine.question_countdown", "ENGINE_QUESTION_COUNTDOWN")
	vip.BindEnv("engine.level_countdown", "ENGINE_LEVEL_COUNTDOWN")

	// Server section
	vip.BindEnv("server.port", "SERVER_PORT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file '%s' not found, falling back to environment variables and defaults.", configPath)
			} else {
				log.Printf("Warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Reward Score Threshold: %d", cfg.Engine.RewardScoreThreshold)
		log.Printf("----------------------------")
	}

	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}

	return &cfg, nil
}
