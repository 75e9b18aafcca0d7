package gcloud

import (
	"context"
	"fmt"
	"strconv"
)

// Cluster is the subset of GKE cluster metadata the lifecycle coordinator
// works with.
type Cluster struct {
	Name             string     `json:"name"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	CurrentNodeCount int        `json:"currentNodeCount"`
	Autopilot        Autopilot  `json:"autopilot"`
	NodePools        []NodePool `json:"nodePools"`
}

// Autopilot reports whether node provisioning is fully managed.
type Autopilot struct {
	Enabled bool `json:"enabled"`
}

// NodePool describes one explicit node pool.
type NodePool struct {
	Name             string      `json:"name"`
	InitialNodeCount int         `json:"initialNodeCount"`
	Autoscaling      Autoscaling `json:"autoscaling"`
	Config           NodeConfig  `json:"config"`
}

// Autoscaling holds a pool's autoscaler settings.
type Autoscaling struct {
	Enabled      bool `json:"enabled"`
	MinNodeCount int  `json:"minNodeCount"`
	MaxNodeCount int  `json:"maxNodeCount"`
}

// NodeConfig holds the machine configuration of a pool.
type NodeConfig struct {
	MachineType string `json:"machineType"`
}

// DescribeCluster fetches cluster metadata. A missing cluster is an error
// carrying the CLI's not-found output in its message.
func (c *Client) DescribeCluster(ctx context.Context, projectID, zone, name string) (*Cluster, error) {
	var cluster Cluster
	err := c.json(ctx, &cluster,
		"container", "clusters", "describe", name,
		"--project="+projectID, "--zone="+zone)
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %s: %w", name, err)
	}
	return &cluster, nil
}

// GetCredentials fetches cluster credentials into the local kubeconfig.
// This must succeed before any Kubernetes API operation; failure is fatal
// to the calling stage.
func (c *Client) GetCredentials(ctx context.Context, projectID, zone, name string) error {
	err := c.quiet(ctx,
		"container", "clusters", "get-credentials", name,
		"--project="+projectID, "--zone="+zone)
	if err != nil {
		return fmt.Errorf("failed to get credentials for cluster %s: %w", name, err)
	}
	return nil
}

// ResizeNodePool sets the node count of a pool.
func (c *Client) ResizeNodePool(ctx context.Context, projectID, zone, cluster, pool string, nodes int) error {
	err := c.quiet(ctx,
		"container", "clusters", "resize", cluster,
		"--node-pool="+pool,
		"--num-nodes="+strconv.Itoa(nodes),
		"--project="+projectID, "--zone="+zone)
	if err != nil {
		return fmt.Errorf("failed to resize pool %s to %d nodes: %w", pool, nodes, err)
	}
	return nil
}

// DisableAutoscaling turns a pool's autoscaler off so a manual resize
// sticks.
func (c *Client) DisableAutoscaling(ctx context.Context, projectID, zone, cluster, pool string) error {
	err := c.quiet(ctx,
		"container", "clusters", "update", cluster,
		"--no-enable-autoscaling",
		"--node-pool="+pool,
		"--project="+projectID, "--zone="+zone)
	if err != nil {
		return fmt.Errorf("failed to disable autoscaling on pool %s: %w", pool, err)
	}
	return nil
}

// EnableAutoscaling restores a pool's autoscaler with the given bounds.
func (c *Client) EnableAutoscaling(ctx context.Context, projectID, zone, cluster, pool string, minNodes, maxNodes int) error {
	err := c.quiet(ctx,
		"container", "clusters", "update", cluster,
		"--enable-autoscaling",
		"--node-pool="+pool,
		"--min-nodes="+strconv.Itoa(minNodes),
		"--max-nodes="+strconv.Itoa(maxNodes),
		"--project="+projectID, "--zone="+zone)
	if err != nil {
		return fmt.Errorf("failed to enable autoscaling on pool %s: %w", pool, err)
	}
	return nil
}
