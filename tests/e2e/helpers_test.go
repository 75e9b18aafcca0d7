//go:build e2e

package e2e

import (
	"time"

	"github.com/aiconcierge/gkeops/internal/config"
)

// testTimeouts uses longer node waits than the defaults; e2e clusters
// scale from zero and that regularly exceeds ten minutes.
func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		PodDrain:     5 * time.Minute,
		NodeDrain:    15 * time.Minute,
		NodeReady:    15 * time.Minute,
		PodReady:     10 * time.Minute,
		Rollout:      5 * time.Minute,
		PollInterval: 15 * time.Second,
	}
}
