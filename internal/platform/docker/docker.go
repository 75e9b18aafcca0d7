// Package docker shells out to the local docker CLI for image builds and
// pushes. The daemon does the heavy lifting; this wrapper only assembles
// command lines and classifies failures.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/aiconcierge/gkeops/internal/util/runner"
)

// Client runs docker commands.
type Client struct {
	run runner.Runner
}

// NewClient returns a docker client using the given runner.
func NewClient(run runner.Runner) *Client {
	return &Client{run: run}
}

// Build builds the image from the given context directory. Build output is
// streamed so long builds stay observable.
func (c *Client) Build(ctx context.Context, image, contextDir string) error {
	err := c.run.RunStreaming(ctx, "docker", "build", "-t", image, contextDir)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", image, err)
	}
	return nil
}

// Push pushes the image to its registry.
func (c *Client) Push(ctx context.Context, image string) error {
	if err := c.run.RunStreaming(ctx, "docker", "push", image); err != nil {
		return fmt.Errorf("failed to push %s: %w", image, err)
	}
	return nil
}

// RemoveImage removes a local image. Missing images are not an error.
func (c *Client) RemoveImage(ctx context.Context, image string) error {
	out, err := c.run.Run(ctx, "docker", "rmi", image)
	if err != nil {
		if strings.Contains(out, "No such image") || strings.Contains(err.Error(), "No such image") {
			return nil
		}
		return fmt.Errorf("failed to remove local image %s: %w", image, err)
	}
	return nil
}

// ListLocalImages lists local image references for one repository path.
func (c *Client) ListLocalImages(ctx context.Context, repo string) ([]string, error) {
	out, err := c.run.Run(ctx, "docker", "images", repo, "--format", "{{.Repository}}:{{.Tag}}")
	if err != nil {
		return nil, fmt.Errorf("failed to list local images for %s: %w", repo, err)
	}
	return splitLines(out), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
