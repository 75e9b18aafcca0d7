package gcloud

import (
	"context"
	"fmt"
)

// Project is the subset of project metadata the bootstrapper needs.
type Project struct {
	ProjectID      string `json:"projectId"`
	Name           string `json:"name"`
	LifecycleState string `json:"lifecycleState"`
}

// ProjectExists reports whether the project exists and is visible to the
// active credentials.
func (c *Client) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var p Project
	err := c.json(ctx, &p, "projects", "describe", projectID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe project %s: %w", projectID, err)
	}
	return p.ProjectID != "", nil
}

// CreateProject creates a new project with the given display name.
func (c *Client) CreateProject(ctx context.Context, projectID, name string) error {
	if err := c.quiet(ctx, "projects", "create", projectID, "--name="+name); err != nil {
		return fmt.Errorf("failed to create project %s: %w", projectID, err)
	}
	return nil
}

// DeleteProject schedules the project for deletion.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.quiet(ctx, "projects", "delete", projectID); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	return nil
}

// LinkBilling links the project to a billing account.
func (c *Client) LinkBilling(ctx context.Context, projectID, billingAccount string) error {
	err := c.quiet(ctx, "billing", "projects", "link", projectID,
		"--billing-account="+billingAccount)
	if err != nil {
		return fmt.Errorf("failed to link billing account: %w", err)
	}
	return nil
}

// EnableServices enables the given APIs on the project. The CLI treats
// already-enabled services as a no-op, so this is idempotent.
func (c *Client) EnableServices(ctx context.Context, projectID string, services ...string) error {
	args := append([]string{"services", "enable"}, services...)
	args = append(args, "--project="+projectID)
	if err := c.quiet(ctx, args...); err != nil {
		return fmt.Errorf("failed to enable services: %w", err)
	}
	return nil
}
