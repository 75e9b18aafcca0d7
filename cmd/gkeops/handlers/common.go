// Package handlers implements the command logic behind the CLI surface.
//
// Handlers wire the platform clients together and delegate to the
// internal packages. External dependencies are created through package
// level factory variables so tests can substitute fakes.
package handlers

import (
	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/k8s"
	"github.com/aiconcierge/gkeops/internal/lifecycle"
	"github.com/aiconcierge/gkeops/internal/platform/docker"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/platform/terraform"
	"github.com/aiconcierge/gkeops/internal/stage"
	"github.com/aiconcierge/gkeops/internal/util/prerequisites"
	"github.com/aiconcierge/gkeops/internal/util/runner"
)

// Factory function variables - replaced in tests.
var (
	newRunner = func() runner.Runner {
		return &runner.Exec{}
	}

	newCloud = func(run runner.Runner) *gcloud.Client {
		return gcloud.NewClient(run)
	}

	newInfra = func(run runner.Runner, dir string) stage.Infra {
		return terraform.New(run, dir)
	}

	newDocker = func(run runner.Runner) *docker.Client {
		return docker.NewClient(run)
	}

	newKubernetes = func() (*k8s.Client, error) {
		return k8s.NewClient()
	}

	loadTimeouts = config.LoadTimeouts

	checkDefaultTools   = prerequisites.CheckDefault
	checkProvisionTools = prerequisites.CheckForProvision
	checkDeployTools    = prerequisites.CheckForDeploy
)

// loadConfig loads and validates the configuration, discovering the file
// when no explicit path was given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

// newStore returns the snapshot store for a configuration.
func newStore(cfg *config.Config) *lifecycle.Store {
	return lifecycle.NewStore(cfg.StateDir)
}
