package handlers

import (
	"fmt"
	"log"
	"os"

	"github.com/aiconcierge/gkeops/internal/config"
)

// Init writes a starter configuration file describing the demo stack.
func Init(path, projectID string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if projectID == "" {
		projectID = "my-demo-project"
	}

	cfg := &config.Config{
		ProjectID:   projectID,
		Region:      "us-central1",
		Zone:        "us-central1-a",
		ClusterName: "demo-cluster",
		Apps: []config.App{
			{
				Name:      "adk-agents",
				Port:      8000,
				Replicas:  1,
				UseAPIKey: true,
				Resources: config.Resources{
					CPURequest:    "250m",
					MemoryRequest: "512Mi",
					CPULimit:      "500m",
					MemoryLimit:   "1Gi",
				},
			},
			{
				Name:     "mcp-server",
				Port:     8080,
				Replicas: 1,
				Resources: config.Resources{
					CPURequest:    "100m",
					MemoryRequest: "256Mi",
				},
			},
			{
				Name:     "streamlit-ui",
				Port:     8501,
				Expose:   config.ExposeExternal,
				Replicas: 1,
				Resources: config.Resources{
					CPURequest:    "100m",
					MemoryRequest: "256Mi",
				},
			},
		},
	}
	cfg.ApplyDefaults()

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	log.Printf("Wrote %s", path)
	log.Printf("Edit project_id, billing_account and the apps, then run: gkeops bootstrap -c %s", path)
	return nil
}
