package gcloud

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Image is one container image version in the artifact registry.
type Image struct {
	// Package is the fully qualified image path without version,
	// e.g. us-central1-docker.pkg.dev/proj/repo/app.
	Package string `json:"package"`

	// Version is the image digest (sha256:...).
	Version string `json:"version"`

	Tags       []string  `json:"tags"`
	CreateTime time.Time `json:"createTime"`
}

// Ref returns the deletable package@digest reference.
func (i Image) Ref() string {
	return i.Package + "@" + i.Version
}

// RepositoryExists reports whether the artifact registry repository exists.
func (c *Client) RepositoryExists(ctx context.Context, projectID, region, repository string) (bool, error) {
	var out struct {
		Name string `json:"name"`
	}
	err := c.json(ctx, &out,
		"artifacts", "repositories", "describe", repository,
		"--project="+projectID, "--location="+region)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe repository %s: %w", repository, err)
	}
	return out.Name != "", nil
}

// CreateRepository creates a docker-format artifact registry repository.
func (c *Client) CreateRepository(ctx context.Context, projectID, region, repository string) error {
	err := c.quiet(ctx,
		"artifacts", "repositories", "create", repository,
		"--repository-format=docker",
		"--project="+projectID, "--location="+region)
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", repository, err)
	}
	return nil
}

// DeleteRepository deletes the repository and everything in it.
func (c *Client) DeleteRepository(ctx context.Context, projectID, region, repository string) error {
	err := c.quiet(ctx,
		"artifacts", "repositories", "delete", repository,
		"--project="+projectID, "--location="+region)
	if err != nil {
		return fmt.Errorf("failed to delete repository %s: %w", repository, err)
	}
	return nil
}

// ListImages returns all image versions under the given image path, newest
// first.
func (c *Client) ListImages(ctx context.Context, imagePath string) ([]Image, error) {
	var images []Image
	err := c.json(ctx, &images,
		"artifacts", "docker", "images", "list", imagePath,
		"--include-tags")
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list images for %s: %w", imagePath, err)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreateTime.After(images[j].CreateTime)
	})
	return images, nil
}

// DeleteImage deletes a single image version, including its tags.
func (c *Client) DeleteImage(ctx context.Context, image Image) error {
	err := c.quiet(ctx,
		"artifacts", "docker", "images", "delete", image.Ref(),
		"--delete-tags")
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", image.Ref(), err)
	}
	return nil
}

// ConfigureDockerAuth registers the registry host with the local docker
// credential helper so pushes authenticate through the CLI.
func (c *Client) ConfigureDockerAuth(ctx context.Context, registryHost string) error {
	if err := c.quiet(ctx, "auth", "configure-docker", registryHost); err != nil {
		return fmt.Errorf("failed to configure docker auth for %s: %w", registryHost, err)
	}
	return nil
}
