package k8s

import (
	"context"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/aiconcierge/gkeops/internal/util/poll"
)

// WaitForRollout waits for a deployment to become ready. The wait is
// advisory: a timeout is reported in the result, not as an error.
func (c *Client) WaitForRollout(ctx context.Context, namespace, name string, interval, timeout time.Duration) (poll.Result, error) {
	return poll.Until(ctx, interval, timeout, func(ctx context.Context) (bool, error) {
		deployment, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, err
		}
		return isDeploymentReady(deployment), nil
	})
}

// isDeploymentReady checks generation, replica counts and the Available
// condition.
func isDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Generation > deployment.Status.ObservedGeneration {
		return false
	}

	want := int32(1)
	if deployment.Spec.Replicas != nil {
		want = *deployment.Spec.Replicas
	}
	if deployment.Status.UpdatedReplicas != want ||
		deployment.Status.AvailableReplicas != want {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
