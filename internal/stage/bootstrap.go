package stage

import (
	"fmt"
	"time"
)

// requiredServices are the project APIs the stack depends on.
var requiredServices = []string{
	"container.googleapis.com",
	"artifactregistry.googleapis.com",
	"cloudbilling.googleapis.com",
	"compute.googleapis.com",
}

// BootstrapStages returns the project bootstrap workflow: ensure the
// project and its billing link exist, enable the required APIs, create
// the image repository and initialize the infrastructure definition.
// Every stage is idempotent; re-running bootstrap is always safe.
func BootstrapStages() []Stage {
	return []Stage{
		funcStage{"project", ensureProject},
		funcStage{"billing", linkBilling},
		funcStage{"services", enableServices},
		funcStage{"repository", ensureRepository},
		funcStage{"infra-init", infraInit},
	}
}

func ensureProject(ctx *Context) error {
	exists, err := ctx.Cloud.ProjectExists(ctx, ctx.Config.ProjectID)
	if err != nil {
		return err
	}
	if exists {
		ctx.Observer.Event(Event{Type: EventResourceExists, Stage: "project", Resource: ctx.Config.ProjectID, Timestamp: time.Now()})
		return nil
	}

	ctx.Observer.Event(Event{Type: EventResourceCreating, Stage: "project", Resource: ctx.Config.ProjectID, Timestamp: time.Now()})
	if err := ctx.Cloud.CreateProject(ctx, ctx.Config.ProjectID, ctx.Config.ProjectName); err != nil {
		return err
	}
	ctx.State.ProjectCreated = true
	ctx.Observer.Event(Event{Type: EventResourceCreated, Stage: "project", Resource: ctx.Config.ProjectID, Timestamp: time.Now()})
	return nil
}

func linkBilling(ctx *Context) error {
	if ctx.Config.BillingAccount == "" {
		if ctx.State.ProjectCreated {
			return fmt.Errorf("project %s was just created and needs a billing account; set billing_account", ctx.Config.ProjectID)
		}
		ctx.Observer.Printf("No billing account configured, assuming billing is already linked")
		return nil
	}
	return ctx.Cloud.LinkBilling(ctx, ctx.Config.ProjectID, ctx.Config.BillingAccount)
}

func enableServices(ctx *Context) error {
	return ctx.Cloud.EnableServices(ctx, ctx.Config.ProjectID, requiredServices...)
}

func ensureRepository(ctx *Context) error {
	exists, err := ctx.Cloud.RepositoryExists(ctx, ctx.Config.ProjectID, ctx.Config.Region, ctx.Config.Repository)
	if err != nil {
		return err
	}
	if exists {
		ctx.Observer.Event(Event{Type: EventResourceExists, Stage: "repository", Resource: ctx.Config.Repository, Timestamp: time.Now()})
		return nil
	}

	ctx.Observer.Event(Event{Type: EventResourceCreating, Stage: "repository", Resource: ctx.Config.Repository, Timestamp: time.Now()})
	if err := ctx.Cloud.CreateRepository(ctx, ctx.Config.ProjectID, ctx.Config.Region, ctx.Config.Repository); err != nil {
		return err
	}
	ctx.State.RepositoryCreated = true
	ctx.Observer.Event(Event{Type: EventResourceCreated, Stage: "repository", Resource: ctx.Config.Repository, Timestamp: time.Now()})
	return nil
}

func infraInit(ctx *Context) error {
	return ctx.Infra.Init(ctx)
}
