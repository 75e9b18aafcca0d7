// Package gcloud wraps the cloud CLI surface the tool depends on: project
// lifecycle, billing, service enablement, artifact registry, and GKE
// cluster operations.
//
// Structured output is requested as JSON and parsed back into the types in
// this package. Every method takes the project explicitly; nothing relies on
// the CLI's active configuration.
package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aiconcierge/gkeops/internal/util/runner"
)

const binary = "gcloud"

// Client invokes the cloud CLI through an injectable Runner.
type Client struct {
	run runner.Runner
}

// NewClient returns a Client backed by the given runner.
func NewClient(run runner.Runner) *Client {
	return &Client{run: run}
}

// json runs a gcloud command with --format=json and decodes the output.
func (c *Client) json(ctx context.Context, out any, args ...string) error {
	raw, err := c.run.Run(ctx, binary, append(args, "--format=json")...)
	if err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to parse %s output: %w", binary, err)
	}
	return nil
}

// quiet runs a gcloud command with --quiet, discarding output.
func (c *Client) quiet(ctx context.Context, args ...string) error {
	_, err := c.run.Run(ctx, binary, append(args, "--quiet")...)
	return err
}

// isNotFound reports whether an error looks like a missing-resource
// response from the CLI.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "notfound") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "404")
}
