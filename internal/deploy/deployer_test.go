package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/platform/gcloud"
	"github.com/aiconcierge/gkeops/internal/util/poll"
)

type fakeBuilder struct {
	builds   []string
	pushes   []string
	removed  []string
	local    map[string][]string
	buildErr error
}

func (f *fakeBuilder) Build(_ context.Context, image, _ string) error {
	if f.buildErr != nil {
		return f.buildErr
	}
	f.builds = append(f.builds, image)
	return nil
}

func (f *fakeBuilder) Push(_ context.Context, image string) error {
	f.pushes = append(f.pushes, image)
	return nil
}

func (f *fakeBuilder) RemoveImage(_ context.Context, image string) error {
	f.removed = append(f.removed, image)
	return nil
}

func (f *fakeBuilder) ListLocalImages(_ context.Context, repo string) ([]string, error) {
	return f.local[repo], nil
}

type fakeRegistry struct {
	images    map[string][]gcloud.Image
	deleted   []string
	deleteErr map[string]error
	authHosts []string
}

func (f *fakeRegistry) ListImages(_ context.Context, imagePath string) ([]gcloud.Image, error) {
	return f.images[imagePath], nil
}

func (f *fakeRegistry) DeleteImage(_ context.Context, image gcloud.Image) error {
	if err := f.deleteErr[image.Ref()]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, image.Ref())
	return nil
}

func (f *fakeRegistry) ConfigureDockerAuth(_ context.Context, host string) error {
	f.authHosts = append(f.authHosts, host)
	return nil
}

type fakeApplier struct {
	applied  [][]byte
	rollouts []string
	applyErr error
}

func (f *fakeApplier) Apply(_ context.Context, manifest []byte) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, manifest)
	return nil
}

func (f *fakeApplier) WaitForRollout(_ context.Context, _, name string, _, _ time.Duration) (poll.Result, error) {
	f.rollouts = append(f.rollouts, name)
	return poll.Result{Outcome: poll.Succeeded, Attempts: 1}, nil
}

func deployConfig(t *testing.T, apps ...string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		ProjectID:   "concierge-demo",
		Region:      "us-central1",
		Zone:        "us-central1-a",
		ClusterName: "demo-cluster",
		AppsDir:     t.TempDir(),
		StateDir:    t.TempDir(),
	}
	for i, name := range apps {
		cfg.Apps = append(cfg.Apps, config.App{Name: name, Port: 8000 + i})
	}
	cfg.ApplyDefaults()
	return cfg
}

func writeDockerfile(t *testing.T, cfg *config.Config, app string) {
	t.Helper()
	dir := cfg.AppContext(app)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))
}

func newTestDeployer(cfg *config.Config) (*Deployer, *fakeBuilder, *fakeRegistry, *fakeApplier) {
	builder := &fakeBuilder{local: map[string][]string{}}
	registry := &fakeRegistry{images: map[string][]gcloud.Image{}, deleteErr: map[string]error{}}
	applier := &fakeApplier{}
	d := NewDeployer(cfg, builder, registry, applier, &config.Timeouts{PollInterval: time.Millisecond, Rollout: 20 * time.Millisecond})
	d.now = func() time.Time { return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC) }
	return d, builder, registry, applier
}

func TestDeploySharedTimestampTag(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents", "mcp-server")
	writeDockerfile(t, cfg, "adk-agents")
	writeDockerfile(t, cfg, "mcp-server")
	d, builder, registry, applier := newTestDeployer(cfg)

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "20250601-123045", result.Tag)
	require.Len(t, result.Apps, 2)
	assert.Equal(t, "us-central1-docker.pkg.dev/concierge-demo/demo-images/adk-agents:20250601-123045", result.Apps[0].Image)
	assert.Equal(t, builder.builds, builder.pushes)
	assert.Equal(t, []string{"us-central1-docker.pkg.dev"}, registry.authHosts)
	assert.Equal(t, []string{"adk-agents", "mcp-server"}, applier.rollouts)
	assert.Len(t, applier.applied, 2)
	assert.True(t, result.Apps[0].Rollout.Ok())
}

func TestDeploySkipsAppWithoutDockerfile(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents", "mcp-server")
	writeDockerfile(t, cfg, "adk-agents")
	d, builder, _, applier := newTestDeployer(cfg)

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Apps, 2)
	assert.False(t, result.Apps[0].Skipped)
	assert.True(t, result.Apps[1].Skipped)
	assert.Contains(t, result.Apps[1].SkipReason, "no Dockerfile")
	assert.Len(t, builder.builds, 1)
	assert.Equal(t, []string{"adk-agents"}, applier.rollouts)
}

func TestDeployUnknownAppIsFatal(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents")
	d, _, _, _ := newTestDeployer(cfg)

	_, err := d.Deploy(context.Background(), "cartservice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cartservice")
}

func TestDeployBuildFailureIsFatal(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents")
	writeDockerfile(t, cfg, "adk-agents")
	d, builder, _, applier := newTestDeployer(cfg)
	builder.buildErr = errors.New("build failed")

	_, err := d.Deploy(context.Background())
	require.Error(t, err)
	assert.Empty(t, applier.applied)
}

func TestPruneRemoteKeepsNewest(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents")
	writeDockerfile(t, cfg, "adk-agents")
	d, _, registry, _ := newTestDeployer(cfg)

	repo := cfg.ImageRepo("adk-agents")
	for i := 0; i < 5; i++ {
		registry.images[repo] = append(registry.images[repo], gcloud.Image{
			Package:    repo,
			Version:    fmt.Sprintf("sha256:%02d", i),
			CreateTime: time.Date(2025, 6, 1, 12-i, 0, 0, 0, time.UTC),
		})
	}

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	// Five versions, keep three: the two oldest go.
	assert.Equal(t, 2, result.Apps[0].Pruned)
	assert.Equal(t, 0, result.Apps[0].PruneFailures)
	assert.Equal(t, []string{repo + "@sha256:03", repo + "@sha256:04"}, registry.deleted)
}

func TestPruneRemoteToleratesDeleteFailure(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents")
	writeDockerfile(t, cfg, "adk-agents")
	d, _, registry, _ := newTestDeployer(cfg)

	repo := cfg.ImageRepo("adk-agents")
	for i := 0; i < 5; i++ {
		registry.images[repo] = append(registry.images[repo], gcloud.Image{
			Package:    repo,
			Version:    fmt.Sprintf("sha256:%02d", i),
			CreateTime: time.Date(2025, 6, 1, 12-i, 0, 0, 0, time.UTC),
		})
	}
	registry.deleteErr[repo+"@sha256:03"] = errors.New("still referenced")

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Apps[0].Pruned)
	assert.Equal(t, 1, result.Apps[0].PruneFailures)
	assert.Equal(t, []string{repo + "@sha256:04"}, registry.deleted)
}

func TestPruneLocalKeepsPushedImage(t *testing.T) {
	t.Parallel()

	cfg := deployConfig(t, "adk-agents")
	writeDockerfile(t, cfg, "adk-agents")
	d, builder, _, _ := newTestDeployer(cfg)

	repo := cfg.ImageRepo("adk-agents")
	builder.local[repo] = []string{repo + ":old-1", repo + ":20250601-123045", repo + ":old-2"}

	result, err := d.Deploy(context.Background())
	require.NoError(t, err)

	d.PruneLocal(context.Background(), result)
	assert.Equal(t, []string{repo + ":old-1", repo + ":old-2"}, builder.removed)
}
