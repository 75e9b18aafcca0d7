package gcloud

import (
	"context"
	"fmt"
)

// Disk is a persistent disk left behind by the cluster.
type Disk struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// Instance is a compute instance, used for post-teardown verification.
type Instance struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ListInstances lists compute instances in the project, optionally filtered.
func (c *Client) ListInstances(ctx context.Context, projectID, filter string) ([]Instance, error) {
	args := []string{"compute", "instances", "list", "--project=" + projectID}
	if filter != "" {
		args = append(args, "--filter="+filter)
	}
	var instances []Instance
	if err := c.json(ctx, &instances, args...); err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instances, nil
}

// ListDisks lists persistent disks in the project, optionally filtered.
func (c *Client) ListDisks(ctx context.Context, projectID, filter string) ([]Disk, error) {
	args := []string{"compute", "disks", "list", "--project=" + projectID}
	if filter != "" {
		args = append(args, "--filter="+filter)
	}
	var disks []Disk
	if err := c.json(ctx, &disks, args...); err != nil {
		return nil, fmt.Errorf("failed to list disks: %w", err)
	}
	return disks, nil
}

// DeleteDisk deletes one persistent disk.
func (c *Client) DeleteDisk(ctx context.Context, projectID string, disk Disk) error {
	err := c.quiet(ctx,
		"compute", "disks", "delete", disk.Name,
		"--zone="+disk.Zone,
		"--project="+projectID)
	if err != nil {
		return fmt.Errorf("failed to delete disk %s: %w", disk.Name, err)
	}
	return nil
}
