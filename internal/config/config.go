// Package config defines the declarative configuration for the demo stack
// and its deployment target.
//
// All stages receive an explicit *Config; nothing reads configuration from
// process-global state beyond the documented environment overrides in
// [LoadTimeouts].
package config

import (
	"fmt"
	"path/filepath"
)

// ServiceExposure selects how an application's Service is exposed.
type ServiceExposure string

const (
	// ExposeInternal keeps the service cluster-local (ClusterIP).
	ExposeInternal ServiceExposure = "internal"
	// ExposeExternal publishes the service through a LoadBalancer.
	ExposeExternal ServiceExposure = "external"
)

// Config holds the full configuration for one demo-stack installation.
type Config struct {
	// ProjectID is the cloud project everything lives in.
	ProjectID string `yaml:"project_id"`

	// ProjectName is the display name used when the bootstrapper has to
	// create the project. Defaults to ProjectID.
	ProjectName string `yaml:"project_name,omitempty"`

	// BillingAccount is the billing account to link on bootstrap.
	BillingAccount string `yaml:"billing_account,omitempty"`

	Region string `yaml:"region"`
	Zone   string `yaml:"zone"`

	// ClusterName identifies the GKE cluster.
	ClusterName string `yaml:"cluster_name"`

	// Autopilot marks clusters with fully managed node provisioning.
	// Pause/resume skips node-pool manipulation on such clusters.
	Autopilot bool `yaml:"autopilot,omitempty"`

	// MachineType is the default node machine type, used for provisioning
	// defaults and cost estimation.
	MachineType string `yaml:"machine_type,omitempty"`

	// Namespace is where the demo workloads run.
	Namespace string `yaml:"namespace,omitempty"`

	// Repository is the artifact registry repository for application images.
	Repository string `yaml:"repository,omitempty"`

	// TerraformDir is the directory holding the infrastructure definition.
	TerraformDir string `yaml:"terraform_dir,omitempty"`

	// AppsDir is the directory containing per-application build contexts.
	AppsDir string `yaml:"apps_dir,omitempty"`

	// StateDir holds persisted cluster state snapshots.
	StateDir string `yaml:"state_dir,omitempty"`

	// KeepImages is how many remote images to retain per app after a deploy.
	KeepImages int `yaml:"keep_images,omitempty"`

	// APIKeySecret names the Kubernetes secret holding the model API key
	// injected into the agent workloads.
	APIKeySecret string `yaml:"api_key_secret,omitempty"`

	// Apps are the deployable applications of the stack.
	Apps []App `yaml:"apps,omitempty"`
}

// App describes one deployable application.
type App struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`

	// Expose selects internal (ClusterIP) or external (LoadBalancer)
	// service exposure. Defaults to internal.
	Expose ServiceExposure `yaml:"expose,omitempty"`

	// Replicas is the desired replica count. Defaults to 1.
	Replicas int32 `yaml:"replicas,omitempty"`

	Resources Resources `yaml:"resources,omitempty"`

	// UseAPIKey injects the configured API key secret as an env var.
	UseAPIKey bool `yaml:"use_api_key,omitempty"`
}

// Resources holds container resource requests and limits.
type Resources struct {
	CPURequest    string `yaml:"cpu_request,omitempty"`
	MemoryRequest string `yaml:"memory_request,omitempty"`
	CPULimit      string `yaml:"cpu_limit,omitempty"`
	MemoryLimit   string `yaml:"memory_limit,omitempty"`
}

// Defaults applied by ApplyDefaults.
const (
	DefaultNamespace    = "default"
	DefaultRepository   = "demo-images"
	DefaultMachineType  = "e2-standard-4"
	DefaultTerraformDir = "terraform"
	DefaultAppsDir      = "apps"
	DefaultKeepImages   = 3
	DefaultAPIKeySecret = "gemini-api-key"
)

// ApplyDefaults fills unset optional fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = c.ProjectID
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Repository == "" {
		c.Repository = DefaultRepository
	}
	if c.MachineType == "" {
		c.MachineType = DefaultMachineType
	}
	if c.TerraformDir == "" {
		c.TerraformDir = DefaultTerraformDir
	}
	if c.AppsDir == "" {
		c.AppsDir = DefaultAppsDir
	}
	if c.StateDir == "" {
		c.StateDir = defaultStateDir()
	}
	if c.KeepImages == 0 {
		c.KeepImages = DefaultKeepImages
	}
	if c.APIKeySecret == "" {
		c.APIKeySecret = DefaultAPIKeySecret
	}
	for i := range c.Apps {
		if c.Apps[i].Expose == "" {
			c.Apps[i].Expose = ExposeInternal
		}
		if c.Apps[i].Replicas == 0 {
			c.Apps[i].Replicas = 1
		}
	}
}

// RegistryHost returns the artifact registry hostname for the region.
func (c *Config) RegistryHost() string {
	return c.Region + "-docker.pkg.dev"
}

// ImageRepo returns the registry path for an application's images,
// without a tag.
func (c *Config) ImageRepo(app string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.RegistryHost(), c.ProjectID, c.Repository, app)
}

// AppContext returns the build context directory for an application.
func (c *Config) AppContext(app string) string {
	return filepath.Join(c.AppsDir, app)
}

// FindApp returns the app with the given name, if configured.
func (c *Config) FindApp(name string) (App, bool) {
	for _, a := range c.Apps {
		if a.Name == name {
			return a, true
		}
	}
	return App{}, false
}
