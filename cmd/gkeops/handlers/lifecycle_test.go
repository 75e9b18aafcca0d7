package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiconcierge/gkeops/internal/lifecycle"
	"github.com/aiconcierge/gkeops/internal/util/runner"
)

const describeClusterJSON = `{
  "name": "demo-cluster",
  "location": "us-central1-a",
  "status": "RUNNING",
  "currentNodeCount": 2,
  "autopilot": {},
  "nodePools": [
    {
      "name": "default-pool",
      "initialNodeCount": 2,
      "autoscaling": {"enabled": false},
      "config": {"machineType": "e2-standard-4"}
    }
  ]
}`

func TestPauseThenResume(t *testing.T) {
	fake := &runner.Fake{}
	fake.Respond("clusters describe", runner.Response{Output: describeClusterJSON})
	swapFactories(t, fake)
	path := writeTestConfig(t)

	require.NoError(t, Pause(context.Background(), path))

	lines := fake.CallLines()
	assert.True(t, hasLine(lines, "clusters resize demo-cluster --node-pool=default-pool --num-nodes=0"), "got %v", lines)

	require.NoError(t, Resume(context.Background(), path))
	assert.True(t, hasLine(fake.CallLines(), "--num-nodes=2"), "got %v", fake.CallLines())
}

func TestResumeWithoutSnapshotFails(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	path := writeTestConfig(t)

	err := Resume(context.Background(), path)
	require.ErrorIs(t, err, lifecycle.ErrNoSnapshot)
	assert.False(t, hasLine(fake.CallLines(), "resize"))
}

func TestStatusAndCostRender(t *testing.T) {
	fake := &runner.Fake{}
	fake.Respond("clusters describe", runner.Response{Output: describeClusterJSON})
	swapFactories(t, fake)
	path := writeTestConfig(t)

	require.NoError(t, Status(context.Background(), path))
	require.NoError(t, Cost(context.Background(), path, false))
	require.NoError(t, Cost(context.Background(), path, true))
}

func TestRenderEstimateValues(t *testing.T) {
	out := renderEstimate("While paused", lifecycle.EstimateCost(0, "e2-standard-4"))
	assert.Contains(t, out, "$    0.10")
	assert.Contains(t, out, "$    2.40")
	assert.Contains(t, out, "$   72.00")
}

func TestRenderCostShowsSavings(t *testing.T) {
	current := lifecycle.EstimateCost(3, "e2-standard-4")
	paused := lifecycle.EstimateCost(0, "e2-standard-4")

	out := renderCost("demo-cluster", current, paused)
	assert.Contains(t, out, "demo-cluster")
	assert.Contains(t, out, "Pausing saves")
}
