//go:build e2e

package e2e

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aiconcierge/gkeops/internal/k8s"
	"github.com/aiconcierge/gkeops/internal/lifecycle"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/util/runner"
)

var _ = Describe("cluster lifecycle", Ordered, func() {
	var (
		ctx   context.Context
		coord *lifecycle.Coordinator
	)

	BeforeAll(func() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Minute)
		DeferCleanup(cancel)

		cloud := gcloud.NewClient(&runner.Exec{})
		Expect(cloud.GetCredentials(ctx, cfg.ProjectID, cfg.Zone, cfg.ClusterName)).To(Succeed())

		kube, err := k8s.NewClient()
		Expect(err).NotTo(HaveOccurred())

		coord = lifecycle.NewCoordinator(cfg, cloud, kube,
			lifecycle.NewStore(cfg.StateDir), testTimeouts())
	})

	It("reports an active cluster", func() {
		status, err := coord.ClusterStatus(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.State).To(Equal(lifecycle.StateActive))
		Expect(status.Nodes).To(BeNumerically(">", 0))
	})

	It("pauses down to the control-plane cost floor", func() {
		result, err := coord.Pause(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.ScaleFailures).To(BeZero())
		Expect(result.Estimate.Hourly).To(BeNumerically("~", 0.10, 1e-9))

		status, err := coord.ClusterStatus(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.State).To(Equal(lifecycle.StatePaused))
		Expect(status.HasSnapshot).To(BeTrue())
	})

	It("resumes to the recorded size", func() {
		result, err := coord.Resume(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.ScaleFailures).To(BeZero())
		Expect(result.NodeReady.Ok()).To(BeTrue())

		status, err := coord.ClusterStatus(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.State).To(Equal(lifecycle.StateActive))
	})
})
