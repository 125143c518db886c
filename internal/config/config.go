// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all server and simulation settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the tick driver and session settings.
type SimConfig struct {
	TickRate     int    // Simulation ticks per second (also countdown pacing)
	Seed         int64  // PRNG seed; 0 seeds from the clock
	EventLogPath string // JSONL event log file; empty disables the sink
	P1Name       string // Default player display names
	P2Name       string
	Mode         string // "classic" or "hardcore"
	AutoStart    bool   // Start a match immediately on boot
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:     24, // Matches the renderer frame rate
		Seed:         0,
		EventLogPath: "events.jsonl",
		P1Name:       "Player 1",
		P2Name:       "Player 2",
		Mode:         "classic",
		AutoStart:    true,
	}
}

// SimFromEnv returns simulation configuration with environment variable
// overrides. Environment variables take precedence over defaults.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if seed := getEnvInt64("RNG_SEED", 0); seed != 0 {
		cfg.Seed = seed
	}
	if p := os.Getenv("EVENT_LOG_PATH"); p != "" {
		cfg.EventLogPath = p
	}
	if n := os.Getenv("P1_NAME"); n != "" {
		cfg.P1Name = n
	}
	if n := os.Getenv("P2_NAME"); n != "" {
		cfg.P2Name = n
	}
	if m := os.Getenv("GAME_MODE"); m != "" {
		cfg.Mode = m
	}
	if os.Getenv("AUTO_START") == "false" {
		cfg.AutoStart = false
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:        3000,
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}

	return cfg
}

// =============================================================================
// PERSISTENCE CONFIGURATION
// =============================================================================

// PersistConfig holds the optional leaderboard store settings.
// An empty URI disables persistence entirely; the service runs fine without it.
type PersistConfig struct {
	MongoURI string
}

// PersistFromEnv returns persistence configuration from the environment.
func PersistFromEnv() PersistConfig {
	return PersistConfig{
		MongoURI: os.Getenv("MONGO_URI"),
	}
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim     SimConfig
	Server  ServerConfig
	Persist PersistConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:     SimFromEnv(),
		Server:  ServerFromEnv(),
		Persist: PersistFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}
