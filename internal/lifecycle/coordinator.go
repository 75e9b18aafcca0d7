package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/k8s"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/util/poll"
)

// ClusterAPI is the cloud-side surface the coordinator needs.
type ClusterAPI interface {
	DescribeCluster(ctx context.Context, projectID, zone, name string) (*gcloud.Cluster, error)
	ResizeNodePool(ctx context.Context, projectID, zone, cluster, pool string, nodes int) error
	DisableAutoscaling(ctx context.Context, projectID, zone, cluster, pool string) error
	EnableAutoscaling(ctx context.Context, projectID, zone, cluster, pool string, minNodes, maxNodes int) error
}

// WorkloadAPI is the Kubernetes surface the coordinator needs.
type WorkloadAPI interface {
	ListWorkloads(ctx context.Context, namespace string) ([]k8s.Workload, error)
	ScaleWorkload(ctx context.Context, w k8s.Workload, replicas int32) error
	CountRunningPods(ctx context.Context, namespace string) (int, error)
	CountNodes(ctx context.Context) (total, ready int, err error)
}

// Coordinator transitions a cluster between ACTIVE and PAUSED.
type Coordinator struct {
	cfg       *config.Config
	cluster   ClusterAPI
	workloads WorkloadAPI
	store     *Store
	timeouts  *config.Timeouts
}

// NewCoordinator wires a coordinator for one configured cluster.
func NewCoordinator(cfg *config.Config, cluster ClusterAPI, workloads WorkloadAPI, store *Store, timeouts *config.Timeouts) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		cluster:   cluster,
		workloads: workloads,
		store:     store,
		timeouts:  timeouts,
	}
}

// PauseResult reports what a pause achieved.
type PauseResult struct {
	Snapshot *Snapshot
	Estimate Estimate

	// ScaleFailures counts workloads that could not be scaled down.
	// A partial pause is accepted; re-running pause retries them.
	ScaleFailures int

	PodDrain  poll.Result
	NodeDrain poll.Result
}

// Pause scales all workloads and node pools to zero, persisting their
// previous sizes first. Per-resource failures are logged and skipped.
func (c *Coordinator) Pause(ctx context.Context) (*PauseResult, error) {
	cluster, err := c.cluster.DescribeCluster(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName)
	if err != nil {
		return nil, err
	}

	workloads, err := c.workloads.ListWorkloads(ctx, c.cfg.Namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate workloads: %w", err)
	}

	snap := &Snapshot{
		Timestamp: time.Now().UTC(),
		Cluster:   c.cfg.ClusterName,
		ProjectID: c.cfg.ProjectID,
		Zone:      c.cfg.Zone,
		Autopilot: cluster.Autopilot.Enabled,
	}
	for _, pool := range cluster.NodePools {
		count := pool.InitialNodeCount
		if len(cluster.NodePools) == 1 {
			// With a single pool the cluster-wide count is exact; the
			// per-pool initial count can be stale after manual resizes.
			count = cluster.CurrentNodeCount
		}
		snap.NodePools = append(snap.NodePools, PoolState{
			Name:               pool.Name,
			NodeCount:          count,
			MachineType:        pool.Config.MachineType,
			AutoscalingEnabled: pool.Autoscaling.Enabled,
			MinNodes:           pool.Autoscaling.MinNodeCount,
			MaxNodes:           pool.Autoscaling.MaxNodeCount,
		})
	}

	for _, w := range workloads {
		if w.Replicas > 0 {
			snap.Workloads = append(snap.Workloads, w)
		}
	}

	// A pause re-run after a partial pause sees a mostly drained cluster.
	// Merge with the prior snapshot so recorded sizes survive the retry.
	prior, err := c.store.Load(c.cfg.ClusterName)
	switch {
	case err == nil:
		mergeSnapshot(snap, prior)
	case !errors.Is(err, ErrNoSnapshot):
		log.Printf("Warning: replacing unreadable snapshot: %v", err)
	}

	// Persist before mutating anything so an interrupted pause still
	// leaves a resume path.
	if err := c.store.Save(snap); err != nil {
		return nil, err
	}

	result := &PauseResult{Snapshot: snap}

	for _, w := range workloads {
		if w.Replicas == 0 {
			continue
		}
		if err := c.workloads.ScaleWorkload(ctx, w, 0); err != nil {
			log.Printf("Warning: %v", err)
			result.ScaleFailures++
		}
	}

	// Courtesy wait for pods to terminate, not a correctness requirement.
	result.PodDrain, err = poll.Until(ctx, c.timeouts.PollInterval, c.timeouts.PodDrain, func(ctx context.Context) (bool, error) {
		n, err := c.workloads.CountRunningPods(ctx, c.cfg.Namespace)
		return n == 0, err
	})
	if err != nil {
		return nil, err
	}
	if !result.PodDrain.Ok() {
		log.Printf("Warning: pods still running after %v, continuing", result.PodDrain.Elapsed.Round(time.Second))
	}

	if cluster.Autopilot.Enabled {
		// Fully managed node provisioning reclaims nodes on its own once
		// workloads hit zero.
		log.Printf("Autopilot cluster: skipping node pool resize")
	} else {
		for _, pool := range snap.NodePools {
			if pool.AutoscalingEnabled {
				if err := c.cluster.DisableAutoscaling(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName, pool.Name); err != nil {
					log.Printf("Warning: %v", err)
				}
			}
			if err := c.cluster.ResizeNodePool(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName, pool.Name, 0); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	result.NodeDrain, err = poll.Until(ctx, c.timeouts.PollInterval, c.timeouts.NodeDrain, func(ctx context.Context) (bool, error) {
		total, _, err := c.workloads.CountNodes(ctx)
		return total == 0, err
	})
	if err != nil {
		return nil, err
	}
	if !result.NodeDrain.Ok() {
		log.Printf("Warning: nodes still present after %v, continuing", result.NodeDrain.Elapsed.Round(time.Second))
	}

	result.Estimate = EstimateCost(0, c.machineType(snap))
	return result, nil
}

// mergeSnapshot carries recorded sizes over from a prior snapshot for
// everything the live cluster already shows drained. A recorded non-zero
// pool count is never downgraded to zero, and workloads scaled down by an
// earlier pause keep their recorded replicas.
func mergeSnapshot(snap, prior *Snapshot) {
	recorded := make(map[string]PoolState, len(prior.NodePools))
	for _, p := range prior.NodePools {
		recorded[p.Name] = p
	}
	for i, p := range snap.NodePools {
		rec, ok := recorded[p.Name]
		if !ok {
			continue
		}
		if p.NodeCount == 0 && rec.NodeCount > 0 {
			snap.NodePools[i] = rec
			continue
		}
		// The earlier pause may have disabled the autoscaler before its
		// resize failed; keep the recorded settings.
		if rec.AutoscalingEnabled && !p.AutoscalingEnabled {
			snap.NodePools[i].AutoscalingEnabled = true
			snap.NodePools[i].MinNodes = rec.MinNodes
			snap.NodePools[i].MaxNodes = rec.MaxNodes
		}
	}

	live := make(map[string]bool, len(snap.Workloads))
	for _, w := range snap.Workloads {
		live[w.String()] = true
	}
	for _, w := range prior.Workloads {
		if !live[w.String()] {
			snap.Workloads = append(snap.Workloads, w)
		}
	}
}

// ResumeResult reports what a resume achieved.
type ResumeResult struct {
	Snapshot *Snapshot

	// ScaleFailures counts workloads that could not be scaled back up.
	ScaleFailures int

	NodeReady poll.Result
	PodReady  poll.Result
}

// Resume restores the sizes recorded by the most recent pause. Without a
// snapshot there is no resume path; the cluster is left untouched.
func (c *Coordinator) Resume(ctx context.Context) (*ResumeResult, error) {
	snap, err := c.store.Load(c.cfg.ClusterName)
	if err != nil {
		return nil, err
	}

	result := &ResumeResult{Snapshot: snap}

	if snap.Autopilot {
		log.Printf("Autopilot cluster: node provisioning resumes with the workloads")
	} else {
		for _, pool := range snap.NodePools {
			if err := c.cluster.ResizeNodePool(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName, pool.Name, pool.NodeCount); err != nil {
				log.Printf("Warning: %v", err)
			}
			if pool.AutoscalingEnabled {
				if err := c.cluster.EnableAutoscaling(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName, pool.Name, pool.MinNodes, pool.MaxNodes); err != nil {
					log.Printf("Warning: %v", err)
				}
			}
		}

		result.NodeReady, err = poll.Until(ctx, c.timeouts.PollInterval, c.timeouts.NodeReady, func(ctx context.Context) (bool, error) {
			_, ready, err := c.workloads.CountNodes(ctx)
			return ready > 0, err
		})
		if err != nil {
			return nil, err
		}
		if !result.NodeReady.Ok() {
			log.Printf("Warning: no ready node after %v, scaling workloads anyway", result.NodeReady.Elapsed.Round(time.Second))
		}
	}

	for _, w := range snap.Workloads {
		if err := c.workloads.ScaleWorkload(ctx, w, w.Replicas); err != nil {
			log.Printf("Warning: %v", err)
			result.ScaleFailures++
		}
	}

	expected := snap.ExpectedPods()
	result.PodReady, err = poll.Until(ctx, c.timeouts.PollInterval, c.timeouts.PodReady, func(ctx context.Context) (bool, error) {
		n, err := c.workloads.CountRunningPods(ctx, c.cfg.Namespace)
		return n >= expected, err
	})
	if err != nil {
		return nil, err
	}
	if !result.PodReady.Ok() {
		log.Printf("Warning: %d/%d pods running after %v", podCount(ctx, c, expected), expected, result.PodReady.Elapsed.Round(time.Second))
	}

	return result, nil
}

// Status describes the cluster's current lifecycle state.
type Status struct {
	Cluster     string
	State       State
	Nodes       int
	ReadyNodes  int
	RunningPods int
	Workloads   []k8s.Workload
	HasSnapshot bool
	Estimate    Estimate
}

// ClusterStatus collects the current state and a point-in-time cost
// estimate. Kubernetes-side counts are best effort when the cluster is
// unreachable (paused clusters keep serving the API, so normally they
// resolve).
func (c *Coordinator) ClusterStatus(ctx context.Context) (*Status, error) {
	cluster, err := c.cluster.DescribeCluster(ctx, c.cfg.ProjectID, c.cfg.Zone, c.cfg.ClusterName)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Cluster:     c.cfg.ClusterName,
		Nodes:       cluster.CurrentNodeCount,
		State:       StatePaused,
		HasSnapshot: c.store.Exists(c.cfg.ClusterName),
	}
	if cluster.CurrentNodeCount > 0 {
		status.State = StateActive
	}

	machineType := c.cfg.MachineType
	if len(cluster.NodePools) > 0 && cluster.NodePools[0].Config.MachineType != "" {
		machineType = cluster.NodePools[0].Config.MachineType
	}
	status.Estimate = EstimateCost(cluster.CurrentNodeCount, machineType)

	if _, ready, err := c.workloads.CountNodes(ctx); err == nil {
		status.ReadyNodes = ready
	}
	if pods, err := c.workloads.CountRunningPods(ctx, c.cfg.Namespace); err == nil {
		status.RunningPods = pods
	}
	if workloads, err := c.workloads.ListWorkloads(ctx, c.cfg.Namespace); err == nil {
		status.Workloads = workloads
	}

	return status, nil
}

// machineType picks a machine type for cost estimation from the snapshot,
// falling back to the configured default.
func (c *Coordinator) machineType(snap *Snapshot) string {
	for _, pool := range snap.NodePools {
		if pool.MachineType != "" {
			return pool.MachineType
		}
	}
	return c.cfg.MachineType
}

func podCount(ctx context.Context, c *Coordinator, fallback int) int {
	if n, err := c.workloads.CountRunningPods(ctx, c.cfg.Namespace); err == nil {
		return n
	}
	return fallback
}
