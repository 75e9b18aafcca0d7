// Package deploy builds, pushes and rolls out the demo applications.
//
// Each deploy tags every image with one shared timestamp so a whole stack
// rollout is identifiable in the registry. Missing build contexts are
// skipped, rollout waits are advisory and registry pruning tolerates
// per-image failures; only build, push and apply failures abort a deploy.
package deploy

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/util/poll"
)

// imageTagLayout is the shared tag format for one deploy run.
const imageTagLayout = "20060102-150405"

// Builder is the local image build surface.
type Builder interface {
	Build(ctx context.Context, image, contextDir string) error
	Push(ctx context.Context, image string) error
	RemoveImage(ctx context.Context, image string) error
	ListLocalImages(ctx context.Context, repo string) ([]string, error)
}

// Registry is the remote image registry surface.
type Registry interface {
	ListImages(ctx context.Context, imagePath string) ([]gcloud.Image, error)
	DeleteImage(ctx context.Context, image gcloud.Image) error
	ConfigureDockerAuth(ctx context.Context, registryHost string) error
}

// Applier applies manifests and watches rollouts.
type Applier interface {
	Apply(ctx context.Context, manifest []byte) error
	WaitForRollout(ctx context.Context, namespace, name string, interval, timeout time.Duration) (poll.Result, error)
}

// Deployer rolls out the configured applications.
type Deployer struct {
	cfg      *config.Config
	docker   Builder
	registry Registry
	applier  Applier
	timeouts *config.Timeouts

	// now is swappable for deterministic tags in tests.
	now func() time.Time
}

// NewDeployer wires a deployer for one configured stack.
func NewDeployer(cfg *config.Config, docker Builder, registry Registry, applier Applier, timeouts *config.Timeouts) *Deployer {
	return &Deployer{
		cfg:      cfg,
		docker:   docker,
		registry: registry,
		applier:  applier,
		timeouts: timeouts,
		now:      time.Now,
	}
}

// AppStatus reports the outcome for one application.
type AppStatus struct {
	App   string
	Image string

	// Skipped is set when the app has no build context to deploy from.
	Skipped    bool
	SkipReason string

	Rollout poll.Result

	// Pruned counts remote image versions removed after the push;
	// PruneFailures counts versions that could not be removed.
	Pruned        int
	PruneFailures int
}

// Result reports one deploy run.
type Result struct {
	Tag  string
	Apps []AppStatus
}

// ImageTag returns the shared tag for a deploy starting now.
func (d *Deployer) ImageTag() string {
	return d.now().UTC().Format(imageTagLayout)
}

// Deploy builds, pushes and applies the named applications, or every
// configured application when names is empty.
func (d *Deployer) Deploy(ctx context.Context, names ...string) (*Result, error) {
	apps, err := d.selectApps(names)
	if err != nil {
		return nil, err
	}

	if err := d.registry.ConfigureDockerAuth(ctx, d.cfg.RegistryHost()); err != nil {
		return nil, err
	}

	result := &Result{Tag: d.ImageTag()}
	for _, app := range apps {
		status, err := d.deployApp(ctx, app, result.Tag)
		if err != nil {
			return nil, err
		}
		result.Apps = append(result.Apps, status)
	}
	return result, nil
}

func (d *Deployer) deployApp(ctx context.Context, app config.App, tag string) (AppStatus, error) {
	status := AppStatus{App: app.Name}

	contextDir := d.cfg.AppContext(app.Name)
	if _, err := os.Stat(filepath.Join(contextDir, "Dockerfile")); err != nil {
		status.Skipped = true
		status.SkipReason = fmt.Sprintf("no Dockerfile in %s", contextDir)
		log.Printf("Skipping %s: %s", app.Name, status.SkipReason)
		return status, nil
	}

	status.Image = d.cfg.ImageRepo(app.Name) + ":" + tag
	log.Printf("Building %s", status.Image)
	if err := d.docker.Build(ctx, status.Image, contextDir); err != nil {
		return status, err
	}
	if err := d.docker.Push(ctx, status.Image); err != nil {
		return status, err
	}

	manifest, err := RenderManifests(d.cfg, app, status.Image)
	if err != nil {
		return status, err
	}
	if err := d.applier.Apply(ctx, manifest); err != nil {
		return status, fmt.Errorf("failed to apply %s: %w", app.Name, err)
	}

	status.Rollout, err = d.applier.WaitForRollout(ctx, d.cfg.Namespace, app.Name, d.timeouts.PollInterval, d.timeouts.Rollout)
	if err != nil {
		return status, err
	}
	if !status.Rollout.Ok() {
		log.Printf("Warning: rollout of %s not complete after %v, continuing", app.Name, status.Rollout.Elapsed.Round(time.Second))
	}

	status.Pruned, status.PruneFailures = d.pruneRemote(ctx, app.Name)
	return status, nil
}

// pruneRemote deletes remote image versions beyond the configured retention
// for one app, newest first. Individual delete failures are logged and
// counted, never fatal.
func (d *Deployer) pruneRemote(ctx context.Context, app string) (pruned, failures int) {
	images, err := d.registry.ListImages(ctx, d.cfg.ImageRepo(app))
	if err != nil {
		log.Printf("Warning: %v", err)
		return 0, 0
	}
	if len(images) <= d.cfg.KeepImages {
		return 0, 0
	}

	for _, image := range images[d.cfg.KeepImages:] {
		if err := d.registry.DeleteImage(ctx, image); err != nil {
			log.Printf("Warning: %v", err)
			failures++
			continue
		}
		pruned++
	}
	return pruned, failures
}

// PruneLocal removes local images for the configured apps except the one
// just pushed. Failures are advisory.
func (d *Deployer) PruneLocal(ctx context.Context, result *Result) {
	for _, status := range result.Apps {
		if status.Skipped || status.Image == "" {
			continue
		}
		images, err := d.docker.ListLocalImages(ctx, d.cfg.ImageRepo(status.App))
		if err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		for _, image := range images {
			if image == status.Image {
				continue
			}
			if err := d.docker.RemoveImage(ctx, image); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}
}

func (d *Deployer) selectApps(names []string) ([]config.App, error) {
	if len(names) == 0 {
		return d.cfg.Apps, nil
	}
	var apps []config.App
	for _, name := range names {
		app, ok := d.cfg.FindApp(name)
		if !ok {
			return nil, fmt.Errorf("unknown app %q", name)
		}
		apps = append(apps, app)
	}
	return apps, nil
}
