// Package config loads runtime settings from the environment, with an
// optional .env file for local runs. Every key has a sensible default so
// both binaries start with no setup at all.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the two binaries read at startup.
type Config struct {
	Port     int    // TCP port the host listens on and the client dials
	HostAddr string // numeric IPv4 the client connects to

	MazeWidth  int // requested maze width, coerced odd by the generator
	MazeHeight int // requested maze height, coerced odd by the generator

	MoveSpeed     float64 // player speed in world units per second
	GoalThreshold float64 // world distance that counts as reaching the goal

	ObserveAddr string // host observer HTTP address, empty disables it
}

// Load reads the environment. Call once at process start.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("config: no .env loaded: %v", err)
	}

	return Config{
		Port:          envInt("GATEMAZE_PORT", 8080),
		HostAddr:      envStr("GATEMAZE_HOST_ADDR", "127.0.0.1"),
		MazeWidth:     envInt("GATEMAZE_MAZE_WIDTH", 15),
		MazeHeight:    envInt("GATEMAZE_MAZE_HEIGHT", 15),
		MoveSpeed:     envFloat("GATEMAZE_MOVE_SPEED", 2.5),
		GoalThreshold: envFloat("GATEMAZE_GOAL_THRESHOLD", 0.6),
		ObserveAddr:   envStr("GATEMAZE_OBSERVE_ADDR", ""),
	}
}

func envStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warnf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warnf("config: %s=%q is not a number, using %g", key, v, fallback)
		return fallback
	}
	return f
}
