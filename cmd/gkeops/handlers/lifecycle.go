package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/lifecycle"
)

// newCoordinator builds the pause/resume coordinator. Replaced in tests.
var newCoordinator = func(cfg *config.Config) (*lifecycle.Coordinator, error) {
	kube, err := newKubernetes()
	if err != nil {
		return nil, err
	}
	cloud := newCloud(newRunner())
	return lifecycle.NewCoordinator(cfg, cloud, kube, newStore(cfg), loadTimeouts()), nil
}

// Pause handles the pause command.
func Pause(ctx context.Context, configPath string) error {
	if err := checkDefaultTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	coord, err := newCoordinator(cfg)
	if err != nil {
		return err
	}

	log.Printf("Pausing cluster %s", cfg.ClusterName)
	result, err := coord.Pause(ctx)
	if err != nil {
		return err
	}

	if result.ScaleFailures > 0 {
		log.Printf("Paused with %d workload(s) still scaled up; re-run pause to retry", result.ScaleFailures)
	} else {
		log.Printf("Cluster %s paused", cfg.ClusterName)
	}
	fmt.Print(renderEstimate("While paused", result.Estimate))
	return nil
}

// Resume handles the resume command.
func Resume(ctx context.Context, configPath string) error {
	if err := checkDefaultTools().Error(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	coord, err := newCoordinator(cfg)
	if err != nil {
		return err
	}

	log.Printf("Resuming cluster %s", cfg.ClusterName)
	result, err := coord.Resume(ctx)
	if err != nil {
		return err
	}

	if result.ScaleFailures > 0 {
		log.Printf("Resumed with %d workload(s) not scaled up; re-run resume to retry", result.ScaleFailures)
	} else if !result.PodReady.Ok() {
		log.Printf("Cluster %s resumed; pods are still starting", cfg.ClusterName)
	} else {
		log.Printf("Cluster %s resumed (snapshot from %s)", cfg.ClusterName, result.Snapshot.Timestamp.Format(time.RFC3339))
	}
	return nil
}

// Status handles the status command.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	coord, err := newCoordinator(cfg)
	if err != nil {
		return err
	}

	status, err := coord.ClusterStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Print(renderStatus(status))
	return nil
}

// Cost handles the cost command. With asJSON the estimate is printed as
// a machine-readable document instead of the rendered table.
func Cost(ctx context.Context, configPath string, asJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cloud := newCloud(newRunner())
	cluster, err := cloud.DescribeCluster(ctx, cfg.ProjectID, cfg.Zone, cfg.ClusterName)
	if err != nil {
		return err
	}

	machineType := cfg.MachineType
	if len(cluster.NodePools) > 0 && cluster.NodePools[0].Config.MachineType != "" {
		machineType = cluster.NodePools[0].Config.MachineType
	}

	current := lifecycle.EstimateCost(cluster.CurrentNodeCount, machineType)
	paused := lifecycle.EstimateCost(0, machineType)

	if asJSON {
		doc, err := json.MarshalIndent(costReport{
			Cluster: cfg.ClusterName,
			Current: current,
			Paused:  paused,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
		return nil
	}

	fmt.Print(renderCost(cfg.ClusterName, current, paused))
	return nil
}

// costReport is the --json document of the cost command.
type costReport struct {
	Cluster string             `json:"cluster"`
	Current lifecycle.Estimate `json:"current"`
	Paused  lifecycle.Estimate `json:"paused"`
}
