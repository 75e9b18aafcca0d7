package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiconcierge/gkeops/internal/util/runner"
)

func swapConfirms(t *testing.T, approve, typedOK bool) {
	t.Helper()
	prevConfirm, prevTyped := confirm, confirmTyped
	confirm = func(string) (bool, error) { return approve, nil }
	confirmTyped = func(string, string) (bool, error) { return typedOK, nil }
	t.Cleanup(func() { confirm, confirmTyped = prevConfirm, prevTyped })
}

func hasLine(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestTeardownDeclinedIsCleanNoop(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	swapConfirms(t, false, false)
	path := writeTestConfig(t)

	require.NoError(t, Teardown(context.Background(), path, TeardownOptions{}))
	assert.Empty(t, fake.Calls())
}

func TestTeardownDestroysInfra(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	swapConfirms(t, true, false)
	path := writeTestConfig(t)

	require.NoError(t, Teardown(context.Background(), path, TeardownOptions{}))

	lines := fake.CallLines()
	assert.True(t, hasLine(lines, "terraform"), "expected a terraform invocation, got %v", lines)
	assert.True(t, hasLine(lines, "destroy"), "expected destroy, got %v", lines)
	assert.False(t, hasLine(lines, "projects delete"), "project must be kept, got %v", lines)
}

func TestTeardownTypedMismatchKeepsProject(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	swapConfirms(t, true, false)
	path := writeTestConfig(t)

	require.NoError(t, Teardown(context.Background(), path, TeardownOptions{DeleteProject: true}))

	lines := fake.CallLines()
	assert.True(t, hasLine(lines, "destroy"))
	assert.False(t, hasLine(lines, "projects delete"), "unconfirmed project deletion must not run, got %v", lines)
}

func TestTeardownConfirmedProjectDeletion(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	swapConfirms(t, true, true)
	path := writeTestConfig(t)

	require.NoError(t, Teardown(context.Background(), path, TeardownOptions{DeleteProject: true}))
	assert.True(t, hasLine(fake.CallLines(), "projects delete concierge-demo"))
}

func TestTeardownForceSkipsPrompts(t *testing.T) {
	fake := &runner.Fake{}
	swapFactories(t, fake)
	prevConfirm := confirm
	confirm = func(string) (bool, error) { t.Fatal("prompt must not run with --force"); return false, nil }
	t.Cleanup(func() { confirm = prevConfirm })
	path := writeTestConfig(t)

	require.NoError(t, Teardown(context.Background(), path, TeardownOptions{DeleteProject: true, Force: true}))
	assert.True(t, hasLine(fake.CallLines(), "projects delete concierge-demo"))
}

func TestTeardownDestroyFailureIsFatal(t *testing.T) {
	fake := &runner.Fake{}
	fake.FailWith("destroy", "state lock held")
	swapFactories(t, fake)
	swapConfirms(t, true, false)
	path := writeTestConfig(t)

	err := Teardown(context.Background(), path, TeardownOptions{})
	require.Error(t, err)
	assert.False(t, hasLine(fake.CallLines(), "projects delete"))
}
