package config

import (
	"os"
	"time"
)

// Timeouts holds the bounds for the advisory polling loops.
// These values can be customized via environment variables.
type Timeouts struct {
	PodDrain     time.Duration // Waiting for running pods to reach zero during pause
	NodeDrain    time.Duration // Waiting for nodes to reach zero during pause
	NodeReady    time.Duration // Waiting for the first ready node during resume
	PodReady     time.Duration // Waiting for running pods to match expected count
	Rollout      time.Duration // Waiting for a deployment rollout to complete
	PollInterval time.Duration // Sleep between poll attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GKEOPS_TIMEOUT_POD_DRAIN (default: 5m)
//   - GKEOPS_TIMEOUT_NODE_DRAIN (default: 10m)
//   - GKEOPS_TIMEOUT_NODE_READY (default: 10m)
//   - GKEOPS_TIMEOUT_POD_READY (default: 5m)
//   - GKEOPS_TIMEOUT_ROLLOUT (default: 5m)
//   - GKEOPS_POLL_INTERVAL (default: 10s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PodDrain:     parseDuration("GKEOPS_TIMEOUT_POD_DRAIN", 5*time.Minute),
		NodeDrain:    parseDuration("GKEOPS_TIMEOUT_NODE_DRAIN", 10*time.Minute),
		NodeReady:    parseDuration("GKEOPS_TIMEOUT_NODE_READY", 10*time.Minute),
		PodReady:     parseDuration("GKEOPS_TIMEOUT_POD_READY", 5*time.Minute),
		Rollout:      parseDuration("GKEOPS_TIMEOUT_ROLLOUT", 5*time.Minute),
		PollInterval: parseDuration("GKEOPS_POLL_INTERVAL", 10*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, parsing fails, or the value is not positive,
// the default value is returned. Non-positive intervals would break the
// polling loops.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
