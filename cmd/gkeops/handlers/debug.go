package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	corev1 "k8s.io/api/core/v1"
)

// Logs handles the logs command: print recent log lines of one app.
func Logs(ctx context.Context, configPath, app string, tail int64) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if _, ok := cfg.FindApp(app); !ok {
		return fmt.Errorf("unknown app %q", app)
	}

	kube, err := newKubernetes()
	if err != nil {
		return err
	}

	logs, err := kube.PodLogs(ctx, cfg.Namespace, app, tail)
	if err != nil {
		return err
	}
	fmt.Print(logs)
	return nil
}

// Debug handles the debug command: a raw dump of workload, pod and node
// state for troubleshooting.
func Debug(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	kube, err := newKubernetes()
	if err != nil {
		return err
	}

	workloads, err := kube.ListWorkloads(ctx, cfg.Namespace)
	if err != nil {
		return err
	}
	fmt.Printf("Workloads in %s:\n", cfg.Namespace)
	for _, w := range workloads {
		fmt.Printf("  %-40s %d replica(s)\n", w.String(), w.Replicas)
	}

	pods, err := kube.ListPods(ctx, cfg.Namespace)
	if err != nil {
		return err
	}
	fmt.Printf("\nPods in %s:\n", cfg.Namespace)
	for _, pod := range pods {
		age := time.Since(pod.CreationTimestamp.Time).Round(time.Second)
		fmt.Printf("  %-50s %-10s restarts=%d age=%s\n",
			pod.Name, pod.Status.Phase, podRestarts(pod), age)
	}

	total, ready, err := kube.CountNodes(ctx)
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	fmt.Printf("\nNodes: %d total, %d ready\n", total, ready)
	return nil
}

func podRestarts(pod corev1.Pod) int32 {
	var restarts int32
	for _, cs := range pod.Status.ContainerStatuses {
		restarts += cs.RestartCount
	}
	return restarts
}
