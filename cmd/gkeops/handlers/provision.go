package handlers

import (
	"context"
	"log"

	"github.com/aiconcierge/gkeops/internal/stage"
)

// Provision handles the provision command: apply the infrastructure
// definition and fetch cluster credentials.
func Provision(ctx context.Context, configPath string) error {
	if err := checkProvisionTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Provisioning cluster %s in %s", cfg.ClusterName, cfg.Zone)

	run := newRunner()
	sctx := stage.NewContext(ctx, cfg, newCloud(run), newInfra(run, cfg.TerraformDir), nil)
	if err := stage.Run(sctx, stage.ProvisionStages()); err != nil {
		return err
	}

	log.Printf("Cluster %s is ready; run: gkeops deploy", cfg.ClusterName)
	return nil
}
