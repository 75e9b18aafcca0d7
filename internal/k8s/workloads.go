package k8s

import (
	"context"
	"fmt"

	autoscalingv1 "k8s.io/api/autoscaling/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WorkloadKind identifies a replica-count controller.
type WorkloadKind string

const (
	// KindDeployment is a Kubernetes Deployment.
	KindDeployment WorkloadKind = "deployment"
	// KindStatefulSet is a Kubernetes StatefulSet.
	KindStatefulSet WorkloadKind = "statefulset"
)

// Workload is one replica-count controller and its desired replicas.
type Workload struct {
	Kind      WorkloadKind `json:"kind"`
	Name      string       `json:"name"`
	Namespace string       `json:"namespace"`
	Replicas  int32        `json:"replicas"`
}

// String returns kind/namespace/name for log lines.
func (w Workload) String() string {
	return fmt.Sprintf("%s/%s/%s", w.Kind, w.Namespace, w.Name)
}

// ListWorkloads returns all deployments and statefulsets in the namespace
// with their desired replica counts, deployments first, each group in list
// order.
func (c *Client) ListWorkloads(ctx context.Context, namespace string) ([]Workload, error) {
	var workloads []Workload

	deployments, err := c.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	for _, d := range deployments.Items {
		replicas := int32(1)
		if d.Spec.Replicas != nil {
			replicas = *d.Spec.Replicas
		}
		workloads = append(workloads, Workload{
			Kind:      KindDeployment,
			Name:      d.Name,
			Namespace: d.Namespace,
			Replicas:  replicas,
		})
	}

	statefulsets, err := c.clientset.AppsV1().StatefulSets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list statefulsets: %w", err)
	}
	for _, s := range statefulsets.Items {
		replicas := int32(1)
		if s.Spec.Replicas != nil {
			replicas = *s.Spec.Replicas
		}
		workloads = append(workloads, Workload{
			Kind:      KindStatefulSet,
			Name:      s.Name,
			Namespace: s.Namespace,
			Replicas:  replicas,
		})
	}

	return workloads, nil
}

// ScaleWorkload sets the desired replica count of a workload through the
// scale subresource.
func (c *Client) ScaleWorkload(ctx context.Context, w Workload, replicas int32) error {
	scale := &autoscalingv1.Scale{
		ObjectMeta: metav1.ObjectMeta{Name: w.Name, Namespace: w.Namespace},
		Spec:       autoscalingv1.ScaleSpec{Replicas: replicas},
	}

	var err error
	switch w.Kind {
	case KindDeployment:
		_, err = c.clientset.AppsV1().Deployments(w.Namespace).UpdateScale(ctx, w.Name, scale, metav1.UpdateOptions{})
	case KindStatefulSet:
		_, err = c.clientset.AppsV1().StatefulSets(w.Namespace).UpdateScale(ctx, w.Name, scale, metav1.UpdateOptions{})
	default:
		return fmt.Errorf("unknown workload kind %q", w.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to scale %s to %d: %w", w, replicas, err)
	}
	return nil
}

// CountRunningPods returns the number of pods in the namespace that are in
// the Running phase.
func (c *Client) CountRunningPods(ctx context.Context, namespace string) (int, error) {
	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list pods: %w", err)
	}

	running := 0
	for _, pod := range pods.Items {
		if pod.Status.Phase == corev1.PodRunning {
			running++
		}
	}
	return running, nil
}

// CountNodes returns total and ready node counts.
func (c *Client) CountNodes(ctx context.Context) (total, ready int, err error) {
	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list nodes: %w", err)
	}

	for _, node := range nodes.Items {
		total++
		for _, cond := range node.Status.Conditions {
			if cond.Type == corev1.NodeReady && cond.Status == corev1.ConditionTrue {
				ready++
				break
			}
		}
	}
	return total, ready, nil
}

// DeleteAppObjects removes the Deployment and Service belonging to one
// application. Missing objects are not an error.
func (c *Client) DeleteAppObjects(ctx context.Context, namespace, app string) error {
	err := c.clientset.AppsV1().Deployments(namespace).Delete(ctx, app, metav1.DeleteOptions{})
	if err != nil && !isIgnorableDeleteError(err) {
		return fmt.Errorf("failed to delete deployment %s: %w", app, err)
	}

	err = c.clientset.CoreV1().Services(namespace).Delete(ctx, ServiceName(app), metav1.DeleteOptions{})
	if err != nil && !isIgnorableDeleteError(err) {
		return fmt.Errorf("failed to delete service %s: %w", ServiceName(app), err)
	}
	return nil
}

// PodLogs fetches recent logs from the first pod of an application,
// best effort.
func (c *Client) PodLogs(ctx context.Context, namespace, app string, tailLines int64) (string, error) {
	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: "app=" + app,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods for %s: %w", app, err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("no pods found for app %s", app)
	}

	req := c.clientset.CoreV1().Pods(namespace).GetLogs(pods.Items[0].Name, &corev1.PodLogOptions{
		TailLines: &tailLines,
	})
	raw, err := req.DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch logs for %s: %w", pods.Items[0].Name, err)
	}
	return string(raw), nil
}

// ListPods returns pod name, phase and node for diagnostics.
func (c *Client) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	return pods.Items, nil
}
