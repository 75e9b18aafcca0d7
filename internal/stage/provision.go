package stage

import (
	"github.com/aiconcierge/gkeops/internal/platform/terraform"
)

// ProvisionStages returns the infrastructure provisioning workflow. Any
// failure here is fatal: a half-applied definition is corrected by
// re-running provision, not by continuing.
func ProvisionStages() []Stage {
	return []Stage{
		funcStage{"vars", writeVars},
		funcStage{"init", infraInit},
		funcStage{"plan", infraPlan},
		funcStage{"apply", infraApply},
		funcStage{"credentials", fetchCredentials},
	}
}

func writeVars(ctx *Context) error {
	return ctx.Infra.WriteVars(terraform.Vars{
		ProjectID:   ctx.Config.ProjectID,
		Region:      ctx.Config.Region,
		Zone:        ctx.Config.Zone,
		ClusterName: ctx.Config.ClusterName,
		Repository:  ctx.Config.Repository,
		MachineType: ctx.Config.MachineType,
		Autopilot:   ctx.Config.Autopilot,
	})
}

func infraPlan(ctx *Context) error {
	return ctx.Infra.Plan(ctx)
}

func infraApply(ctx *Context) error {
	return ctx.Infra.Apply(ctx)
}

// fetchCredentials wires kubectl/client-go access to the new cluster.
// Without credentials nothing downstream works, so failure is fatal.
func fetchCredentials(ctx *Context) error {
	return ctx.Cloud.GetCredentials(ctx, ctx.Config.ProjectID, ctx.Config.Zone, ctx.Config.ClusterName)
}
