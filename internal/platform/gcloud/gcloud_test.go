package gcloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiconcierge/gkeops/internal/util/runner"
)

const clusterJSON = `{
  "name": "demo-cluster",
  "location": "us-central1-a",
  "status": "RUNNING",
  "currentNodeCount": 3,
  "autopilot": {"enabled": false},
  "nodePools": [
    {
      "name": "default-pool",
      "initialNodeCount": 3,
      "autoscaling": {"enabled": true, "minNodeCount": 1, "maxNodeCount": 5},
      "config": {"machineType": "e2-standard-4"}
    }
  ]
}`

func TestDescribeCluster(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.Respond("clusters describe", runner.Response{Output: clusterJSON})

	c := NewClient(fake)
	cluster, err := c.DescribeCluster(context.Background(), "concierge-demo", "us-central1-a", "demo-cluster")
	require.NoError(t, err)

	assert.Equal(t, "RUNNING", cluster.Status)
	assert.Equal(t, 3, cluster.CurrentNodeCount)
	assert.False(t, cluster.Autopilot.Enabled)
	require.Len(t, cluster.NodePools, 1)

	pool := cluster.NodePools[0]
	assert.Equal(t, "default-pool", pool.Name)
	assert.True(t, pool.Autoscaling.Enabled)
	assert.Equal(t, 5, pool.Autoscaling.MaxNodeCount)
	assert.Equal(t, "e2-standard-4", pool.Config.MachineType)

	require.Len(t, fake.Calls(), 1)
	assert.Contains(t, fake.CallLines()[0], "--project=concierge-demo")
	assert.Contains(t, fake.CallLines()[0], "--format=json")
}

func TestDescribeClusterError(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.FailWith("clusters describe", "ERROR: (gcloud.container.clusters.describe) Not found")

	c := NewClient(fake)
	_, err := c.DescribeCluster(context.Background(), "concierge-demo", "us-central1-a", "gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to describe cluster")
}

func TestResizeAndAutoscaling(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	c := NewClient(fake)
	ctx := context.Background()

	require.NoError(t, c.ResizeNodePool(ctx, "p", "z", "demo", "default-pool", 0))
	require.NoError(t, c.DisableAutoscaling(ctx, "p", "z", "demo", "default-pool"))
	require.NoError(t, c.EnableAutoscaling(ctx, "p", "z", "demo", "default-pool", 1, 5))

	lines := fake.CallLines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "--num-nodes=0")
	assert.Contains(t, lines[0], "--quiet")
	assert.Contains(t, lines[1], "--no-enable-autoscaling")
	assert.Contains(t, lines[2], "--min-nodes=1")
	assert.Contains(t, lines[2], "--max-nodes=5")
}

func TestProjectExists(t *testing.T) {
	t.Parallel()

	t.Run("exists", func(t *testing.T) {
		t.Parallel()
		fake := &runner.Fake{}
		fake.Respond("projects describe", runner.Response{Output: `{"projectId":"concierge-demo","lifecycleState":"ACTIVE"}`})

		ok, err := NewClient(fake).ProjectExists(context.Background(), "concierge-demo")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		fake := &runner.Fake{}
		fake.FailWith("projects describe", "ERROR: Project concierge-demo not found or permission denied")

		ok, err := NewClient(fake).ProjectExists(context.Background(), "concierge-demo")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other error", func(t *testing.T) {
		t.Parallel()
		fake := &runner.Fake{}
		fake.FailWith("projects describe", "ERROR: quota exceeded")

		_, err := NewClient(fake).ProjectExists(context.Background(), "concierge-demo")
		require.Error(t, err)
	})
}

func TestListImagesSortsNewestFirst(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.Respond("images list", runner.Response{Output: `[
	  {"package":"r/p/app","version":"sha256:aaa","tags":["20240101-000000"],"createTime":"2024-01-01T00:00:00Z"},
	  {"package":"r/p/app","version":"sha256:ccc","tags":["20240301-000000"],"createTime":"2024-03-01T00:00:00Z"},
	  {"package":"r/p/app","version":"sha256:bbb","tags":["20240201-000000"],"createTime":"2024-02-01T00:00:00Z"}
	]`})

	images, err := NewClient(fake).ListImages(context.Background(), "r/p/app")
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "sha256:ccc", images[0].Version)
	assert.Equal(t, "sha256:bbb", images[1].Version)
	assert.Equal(t, "sha256:aaa", images[2].Version)
	assert.Equal(t, "r/p/app@sha256:ccc", images[0].Ref())
}

func TestListImagesMissingRepoIsEmpty(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.FailWith("images list", "ERROR: repository does not exist")

	images, err := NewClient(fake).ListImages(context.Background(), "r/p/app")
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestEnableServices(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	err := NewClient(fake).EnableServices(context.Background(), "concierge-demo",
		"container.googleapis.com", "artifactregistry.googleapis.com")
	require.NoError(t, err)

	line := fake.CallLines()[0]
	assert.Contains(t, line, "services enable container.googleapis.com artifactregistry.googleapis.com")
	assert.Contains(t, line, "--project=concierge-demo")
}

func TestRepositoryExists(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.Respond("repositories describe", runner.Response{Output: `{"name":"projects/p/locations/us-central1/repositories/demo-images"}`})

	ok, err := NewClient(fake).RepositoryExists(context.Background(), "p", "us-central1", "demo-images")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListDisksAndDelete(t *testing.T) {
	t.Parallel()

	fake := &runner.Fake{}
	fake.Respond("disks list", runner.Response{Output: `[{"name":"pvc-123","zone":"us-central1-a"}]`})

	c := NewClient(fake)
	disks, err := c.ListDisks(context.Background(), "p", "name~^gke-demo-cluster")
	require.NoError(t, err)
	require.Len(t, disks, 1)

	require.NoError(t, c.DeleteDisk(context.Background(), "p", disks[0]))
	assert.Contains(t, fake.CallLines()[1], "disks delete pvc-123")
}
