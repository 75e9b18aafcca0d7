//go:build e2e

// Package e2e runs the lifecycle against a real cluster.
//
// The suite is gated on environment variables so plain `go test ./...`
// never touches cloud resources:
//
//	GKEOPS_E2E_PROJECT  cloud project with an existing demo cluster
//	GKEOPS_E2E_CLUSTER  cluster name (default demo-cluster)
//	GKEOPS_E2E_ZONE     cluster zone (default us-central1-a)
//
// Run with:
//
//	go test -tags=e2e ./tests/e2e/...
package e2e

import (
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aiconcierge/gkeops/internal/config"
)

var cfg *config.Config

func TestE2E(t *testing.T) {
	project := os.Getenv("GKEOPS_E2E_PROJECT")
	if project == "" {
		t.Skip("GKEOPS_E2E_PROJECT not set, skipping e2e suite")
	}

	cluster := os.Getenv("GKEOPS_E2E_CLUSTER")
	if cluster == "" {
		cluster = "demo-cluster"
	}
	zone := os.Getenv("GKEOPS_E2E_ZONE")
	if zone == "" {
		zone = "us-central1-a"
	}
	region := zone
	if i := strings.LastIndex(zone, "-"); i > 0 {
		region = zone[:i]
	}

	cfg = &config.Config{
		ProjectID:   project,
		Region:      region,
		Zone:        zone,
		ClusterName: cluster,
		StateDir:    t.TempDir(),
	}
	cfg.ApplyDefaults()

	RegisterFailHandler(Fail)
	RunSpecs(t, "Lifecycle Suite")
}
