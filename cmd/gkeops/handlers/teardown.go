package handlers

import (
	"context"
	"log"

	"github.com/aiconcierge/gkeops/internal/stage"
	"github.com/aiconcierge/gkeops/internal/ui"
)

// TeardownOptions carries the teardown flags.
type TeardownOptions struct {
	DeleteProject bool
	Force         bool
}

// Prompt function variables - replaced in tests.
var (
	confirm      = ui.Confirm
	confirmTyped = ui.ConfirmTyped
)

// Teardown handles the teardown command. A declined confirmation is a
// clean no-op, not an error. Project deletion additionally requires
// typing the exact project id; a mismatch keeps the project while the
// infrastructure is still destroyed.
func Teardown(ctx context.Context, configPath string, opts TeardownOptions) error {
	if err := checkProvisionTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !opts.Force {
		ok, err := confirm("Destroy cluster " + cfg.ClusterName + " and all its infrastructure?")
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("Teardown cancelled")
			return nil
		}
	}

	deleteProject := opts.DeleteProject
	if deleteProject && !opts.Force {
		ok, err := confirmTyped("Also delete project "+cfg.ProjectID+"?", cfg.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("Project deletion not confirmed; the project will be kept")
			deleteProject = false
		}
	}

	run := newRunner()
	sctx := stage.NewContext(ctx, cfg, newCloud(run), newInfra(run, cfg.TerraformDir), nil)
	sctx.Store = newStore(cfg)
	sctx.Timeouts = loadTimeouts()

	// Best effort: without cluster access the destroy removes the
	// applications together with the cluster.
	if kube, err := newKubernetes(); err == nil {
		sctx.Apps = kube
	} else {
		log.Printf("Warning: cluster unreachable, skipping application cleanup: %v", err)
	}

	if err := stage.Run(sctx, stage.TeardownStages(deleteProject)); err != nil {
		return err
	}

	switch {
	case sctx.State.ProjectDeleted:
		log.Printf("Cluster %s destroyed; project %s scheduled for deletion", cfg.ClusterName, cfg.ProjectID)
	default:
		log.Printf("Cluster %s destroyed; project %s kept", cfg.ClusterName, cfg.ProjectID)
	}
	return nil
}
