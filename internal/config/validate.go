package config

import (
	"fmt"
	"regexp"
	"strings"
)

// projectIDPattern follows the platform's project id rules: 6-30 chars,
// lowercase letters, digits and hyphens, starting with a letter.
var projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// Validate checks the configuration for missing or malformed fields.
// It returns the first error found.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if !projectIDPattern.MatchString(c.ProjectID) {
		return fmt.Errorf("project_id %q is not a valid project id", c.ProjectID)
	}
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	if !strings.HasPrefix(c.Zone, c.Region) {
		return fmt.Errorf("zone %q is not in region %q", c.Zone, c.Region)
	}
	if c.KeepImages < 0 {
		return fmt.Errorf("keep_images must not be negative")
	}

	seen := make(map[string]bool, len(c.Apps))
	for _, app := range c.Apps {
		if app.Name == "" {
			return fmt.Errorf("every app needs a name")
		}
		if seen[app.Name] {
			return fmt.Errorf("duplicate app %q", app.Name)
		}
		seen[app.Name] = true

		if app.Port <= 0 || app.Port > 65535 {
			return fmt.Errorf("app %q: port %d is out of range", app.Name, app.Port)
		}
		if app.Expose != "" && app.Expose != ExposeInternal && app.Expose != ExposeExternal {
			return fmt.Errorf("app %q: expose must be %q or %q", app.Name, ExposeInternal, ExposeExternal)
		}
		if app.Replicas < 0 {
			return fmt.Errorf("app %q: replicas must not be negative", app.Name)
		}
	}

	return nil
}
