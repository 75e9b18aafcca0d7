// Package lifecycle implements the cluster pause/resume coordinator.
//
// Pausing scales every workload and node pool to zero after recording their
// sizes in a snapshot; resuming restores the recorded state. Per-resource
// failures are advisory so a partial pause or resume can be completed by
// re-running the command. The only fatal conditions are a missing snapshot
// on resume and failure to reach the cluster at all.
package lifecycle

import (
	"time"

	"github.com/aiconcierge/gkeops/internal/k8s"
)

// State classifies a cluster for the operator.
type State string

const (
	// StateActive means the cluster has nodes (worker billing applies).
	StateActive State = "ACTIVE"
	// StatePaused means zero nodes; only the control plane is billed.
	StatePaused State = "PAUSED"
)

// PoolState records one node pool's size and autoscaler settings at pause
// time.
type PoolState struct {
	Name               string `json:"name"`
	NodeCount          int    `json:"nodeCount"`
	MachineType        string `json:"machineType,omitempty"`
	AutoscalingEnabled bool   `json:"autoscalingEnabled"`
	MinNodes           int    `json:"minNodes,omitempty"`
	MaxNodes           int    `json:"maxNodes,omitempty"`
}

// Snapshot is the persisted pre-pause record used to drive resume.
// A snapshot is only meaningful for the cluster it was captured from.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Cluster   string    `json:"cluster"`
	ProjectID string    `json:"projectId"`
	Zone      string    `json:"zone"`
	Autopilot bool      `json:"autopilot,omitempty"`

	NodePools []PoolState    `json:"nodePools,omitempty"`
	Workloads []k8s.Workload `json:"workloads,omitempty"`
}

// ExpectedPods returns the pod count implied by the recorded replica
// counts.
func (s *Snapshot) ExpectedPods() int {
	total := 0
	for _, w := range s.Workloads {
		total += int(w.Replicas)
	}
	return total
}

// NodeCount returns the total recorded node count across pools.
func (s *Snapshot) NodeCount() int {
	total := 0
	for _, p := range s.NodePools {
		total += p.NodeCount
	}
	return total
}
