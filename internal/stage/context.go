// Package stage runs the multi-step workflows of the stack lifecycle:
// bootstrap, provision and teardown. Each workflow is an ordered list of
// named stages sharing one Context; the first stage failure aborts the
// run.
package stage

import (
	"context"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/lifecycle"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/platform/terraform"
)

// CloudAPI is the project, registry and cluster surface the stages use.
type CloudAPI interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	CreateProject(ctx context.Context, projectID, name string) error
	DeleteProject(ctx context.Context, projectID string) error
	LinkBilling(ctx context.Context, projectID, billingAccount string) error
	EnableServices(ctx context.Context, projectID string, services ...string) error

	RepositoryExists(ctx context.Context, projectID, region, repository string) (bool, error)
	CreateRepository(ctx context.Context, projectID, region, repository string) error

	GetCredentials(ctx context.Context, projectID, zone, name string) error

	ListInstances(ctx context.Context, projectID, filter string) ([]gcloud.Instance, error)
	ListDisks(ctx context.Context, projectID, filter string) ([]gcloud.Disk, error)
	DeleteDisk(ctx context.Context, projectID string, disk gcloud.Disk) error
}

// Infra is the infrastructure-as-code surface the stages use.
type Infra interface {
	WriteVars(vars terraform.Vars) error
	Init(ctx context.Context) error
	Plan(ctx context.Context) error
	Apply(ctx context.Context) error
	Destroy(ctx context.Context) error
}

// AppCleaner removes deployed application objects. A nil AppCleaner in the
// Context means the cluster is unreachable; stages that need it degrade to
// a warning.
type AppCleaner interface {
	DeleteAppObjects(ctx context.Context, namespace, app string) error
}

// State carries results between stages of one run.
type State struct {
	ProjectCreated    bool
	RepositoryCreated bool
	InfraDestroyed    bool
	ProjectDeleted    bool
	DisksDeleted      int

	// InstancesRemaining counts compute instances still matching the
	// cluster filter after the infrastructure destroy.
	InstancesRemaining int
}

// Context is the shared environment of one stage run.
type Context struct {
	context.Context

	Config   *config.Config
	Cloud    CloudAPI
	Infra    Infra
	Apps     AppCleaner
	Store    *lifecycle.Store
	Observer Observer
	Timeouts *config.Timeouts
	State    *State
}

// NewContext assembles a stage context. Observer defaults to the console
// observer when nil.
func NewContext(ctx context.Context, cfg *config.Config, cloud CloudAPI, infra Infra, obs Observer) *Context {
	if obs == nil {
		obs = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Cloud:    cloud,
		Infra:    infra,
		Observer: obs,
		State:    &State{},
	}
}
