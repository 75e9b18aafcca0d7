package stage

import (
	"fmt"
	"time"
)

// TeardownStages returns the teardown workflow. Application cleanup and
// leftover-disk removal are best effort; destroying the infrastructure is
// fatal on failure. Project deletion only runs when deleteProject is set,
// which callers gate behind an explicit confirmation.
func TeardownStages(deleteProject bool) []Stage {
	stages := []Stage{
		funcStage{"apps", deleteApps},
		funcStage{"infra-destroy", infraDestroy},
		funcStage{"instances", verifyInstances},
		funcStage{"disks", cleanupDisks},
		funcStage{"snapshot", deleteSnapshot},
	}
	if deleteProject {
		stages = append(stages, funcStage{"project-delete", deleteProjectStage})
	}
	return stages
}

// deleteApps removes the deployed objects so load balancers release their
// cloud resources before the infrastructure goes. An unreachable cluster
// is not fatal; the destroy takes everything with it anyway.
func deleteApps(ctx *Context) error {
	if ctx.Apps == nil {
		ctx.Observer.Printf("Cluster unreachable, skipping application cleanup")
		return nil
	}
	for _, app := range ctx.Config.Apps {
		ctx.Observer.Event(Event{Type: EventResourceDeleting, Stage: "apps", Resource: app.Name, Timestamp: time.Now()})
		if err := ctx.Apps.DeleteAppObjects(ctx, ctx.Config.Namespace, app.Name); err != nil {
			ctx.Observer.Printf("Warning: %v", err)
			continue
		}
		ctx.Observer.Event(Event{Type: EventResourceDeleted, Stage: "apps", Resource: app.Name, Timestamp: time.Now()})
	}
	return nil
}

func infraDestroy(ctx *Context) error {
	if err := ctx.Infra.Destroy(ctx); err != nil {
		return err
	}
	ctx.State.InfraDestroyed = true
	return nil
}

// verifyInstances checks that the destroy actually released the cluster's
// compute instances. Anything still matching the cluster filter keeps
// accruing node billing, so leftovers are surfaced to the operator. The
// check itself is best effort.
func verifyInstances(ctx *Context) error {
	filter := fmt.Sprintf("name~^gke-%s", ctx.Config.ClusterName)
	instances, err := ctx.Cloud.ListInstances(ctx, ctx.Config.ProjectID, filter)
	if err != nil {
		ctx.Observer.Printf("Warning: %v", err)
		return nil
	}
	for _, inst := range instances {
		ctx.Observer.Printf("Warning: instance %s still %s after destroy", inst.Name, inst.Status)
	}
	ctx.State.InstancesRemaining = len(instances)
	return nil
}

// cleanupDisks removes persistent disks dynamically provisioned by the
// cluster that the infrastructure definition does not know about.
func cleanupDisks(ctx *Context) error {
	filter := fmt.Sprintf("name~^gke-%s", ctx.Config.ClusterName)
	disks, err := ctx.Cloud.ListDisks(ctx, ctx.Config.ProjectID, filter)
	if err != nil {
		ctx.Observer.Printf("Warning: %v", err)
		return nil
	}
	for _, disk := range disks {
		ctx.Observer.Event(Event{Type: EventResourceDeleting, Stage: "disks", Resource: disk.Name, Timestamp: time.Now()})
		if err := ctx.Cloud.DeleteDisk(ctx, ctx.Config.ProjectID, disk); err != nil {
			ctx.Observer.Printf("Warning: %v", err)
			continue
		}
		ctx.State.DisksDeleted++
	}
	return nil
}

func deleteSnapshot(ctx *Context) error {
	if ctx.Store == nil {
		return nil
	}
	if err := ctx.Store.Delete(ctx.Config.ClusterName); err != nil {
		ctx.Observer.Printf("Warning: %v", err)
	}
	return nil
}

func deleteProjectStage(ctx *Context) error {
	if err := ctx.Cloud.DeleteProject(ctx, ctx.Config.ProjectID); err != nil {
		return err
	}
	ctx.State.ProjectDeleted = true
	return nil
}
