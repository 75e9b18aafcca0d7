package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	autoscalingv1 "k8s.io/api/autoscaling/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"
)

func deployment(name string, replicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec:       appsv1.DeploymentSpec{Replicas: ptr.To(replicas)},
	}
}

func statefulset(name string, replicas int32) *appsv1.StatefulSet {
	return &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec:       appsv1.StatefulSetSpec{Replicas: ptr.To(replicas)},
	}
}

func pod(name string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default", Labels: map[string]string{"app": name}},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func node(name string, ready bool) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: status}},
		},
	}
}

func TestListWorkloads(t *testing.T) {
	t.Parallel()

	clientset := fake.NewSimpleClientset(
		deployment("adk-agents", 2),
		deployment("mcp-server", 1),
		statefulset("redis-cart", 1),
	)
	c := NewForClientset(clientset)

	workloads, err := c.ListWorkloads(context.Background(), "default")
	require.NoError(t, err)
	require.Len(t, workloads, 3)

	assert.Equal(t, KindDeployment, workloads[0].Kind)
	assert.Equal(t, "adk-agents", workloads[0].Name)
	assert.Equal(t, int32(2), workloads[0].Replicas)
	assert.Equal(t, KindStatefulSet, workloads[2].Kind)
	assert.Equal(t, "deployment/default/adk-agents", workloads[0].String())
}

func TestScaleWorkload(t *testing.T) {
	t.Parallel()

	clientset := fake.NewSimpleClientset(deployment("adk-agents", 2))

	var scaled *autoscalingv1.Scale
	clientset.PrependReactor("update", "deployments",
		func(action k8stesting.Action) (bool, runtime.Object, error) {
			update := action.(k8stesting.UpdateAction)
			if action.GetSubresource() != "scale" {
				return false, nil, nil
			}
			scaled = update.GetObject().(*autoscalingv1.Scale)
			return true, scaled, nil
		})

	c := NewForClientset(clientset)
	w := Workload{Kind: KindDeployment, Name: "adk-agents", Namespace: "default", Replicas: 2}
	require.NoError(t, c.ScaleWorkload(context.Background(), w, 0))

	require.NotNil(t, scaled)
	assert.Equal(t, int32(0), scaled.Spec.Replicas)
}

func TestScaleWorkloadUnknownKind(t *testing.T) {
	t.Parallel()

	c := NewForClientset(fake.NewSimpleClientset())
	err := c.ScaleWorkload(context.Background(), Workload{Kind: "daemonset", Name: "x"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown workload kind")
}

func TestCountRunningPods(t *testing.T) {
	t.Parallel()

	clientset := fake.NewSimpleClientset(
		pod("a", corev1.PodRunning),
		pod("b", corev1.PodRunning),
		pod("c", corev1.PodSucceeded),
	)
	c := NewForClientset(clientset)

	n, err := c.CountRunningPods(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCountNodes(t *testing.T) {
	t.Parallel()

	clientset := fake.NewSimpleClientset(node("n1", true), node("n2", false))
	c := NewForClientset(clientset)

	total, ready, err := c.CountNodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, ready)
}

func TestDeleteAppObjects(t *testing.T) {
	t.Parallel()

	clientset := fake.NewSimpleClientset(
		deployment("mcp-server", 1),
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "mcp-server-service", Namespace: "default"}},
	)
	c := NewForClientset(clientset)

	require.NoError(t, c.DeleteAppObjects(context.Background(), "default", "mcp-server"))

	// Deleting again hits only not-found errors, which are ignored.
	require.NoError(t, c.DeleteAppObjects(context.Background(), "default", "mcp-server"))
}

func TestPodLogsNoPods(t *testing.T) {
	t.Parallel()

	c := NewForClientset(fake.NewSimpleClientset())
	_, err := c.PodLogs(context.Background(), "default", "adk-agents", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pods found")
}

func TestPodLogs(t *testing.T) {
	t.Parallel()

	c := NewForClientset(fake.NewSimpleClientset(pod("adk-agents", corev1.PodRunning)))
	logs, err := c.PodLogs(context.Background(), "default", "adk-agents", 100)
	require.NoError(t, err)
	assert.Equal(t, "fake logs", logs)
}
