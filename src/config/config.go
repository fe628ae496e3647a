package config

import (
	"os"
	"time"
)

const TIME_PARSE_FORMAT = time.RFC3339

// SWEEP_INTERVAL is how often the expiry sweeper promotes accepted bookings
// whose window has passed. Availability reads compare end times directly and
// never wait on the sweep, so the cadence only affects status history.
const SWEEP_INTERVAL = 30 * time.Second

// WAIT_BUFFER pads every wait-time estimate to cover handover between
// consecutive borrowers.
const WAIT_BUFFER = 10 * time.Minute

func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SnapshotDir is where the file-backed store keeps its snapshots when no
// Redis host is configured.
func SnapshotDir() string {
	return Env("SNAPSHOT_DIR", "data")
}

func RedisHost() string {
	return os.Getenv("REDIS_HOST")
}
