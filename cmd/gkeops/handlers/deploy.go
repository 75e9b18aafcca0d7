package handlers

import (
	"context"
	"log"

	"github.com/aiconcierge/gkeops/internal/deploy"
)

// Deploy handles the deploy command for the given apps (all when empty).
func Deploy(ctx context.Context, configPath string, apps []string) error {
	if err := checkDeployTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	kube, err := newKubernetes()
	if err != nil {
		return err
	}

	run := newRunner()
	cloud := newCloud(run)
	deployer := deploy.NewDeployer(cfg, newDocker(run), cloud, kube, loadTimeouts())

	result, err := deployer.Deploy(ctx, apps...)
	if err != nil {
		return err
	}
	deployer.PruneLocal(ctx, result)

	for _, status := range result.Apps {
		switch {
		case status.Skipped:
			log.Printf("%-14s skipped (%s)", status.App, status.SkipReason)
		case !status.Rollout.Ok():
			log.Printf("%-14s deployed as %s (rollout still in progress)", status.App, status.Image)
		default:
			log.Printf("%-14s deployed as %s", status.App, status.Image)
		}
		if status.PruneFailures > 0 {
			log.Printf("%-14s %d old image(s) could not be pruned", status.App, status.PruneFailures)
		}
	}
	log.Printf("Deploy %s complete", result.Tag)
	return nil
}
