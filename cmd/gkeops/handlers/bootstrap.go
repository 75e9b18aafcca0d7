package handlers

import (
	"context"
	"log"

	"github.com/aiconcierge/gkeops/internal/stage"
)

// Bootstrap handles the bootstrap command: project, billing, APIs, image
// repository and infrastructure init.
func Bootstrap(ctx context.Context, configPath string) error {
	if err := checkProvisionTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Bootstrapping project %s", cfg.ProjectID)

	run := newRunner()
	sctx := stage.NewContext(ctx, cfg, newCloud(run), newInfra(run, cfg.TerraformDir), nil)
	if err := stage.Run(sctx, stage.BootstrapStages()); err != nil {
		return err
	}

	log.Printf("Project %s is ready; run: gkeops provision", cfg.ProjectID)
	return nil
}
