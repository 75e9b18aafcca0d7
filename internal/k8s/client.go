// Package k8s provides the Kubernetes client wrapper used by the deploy
// orchestrator and the lifecycle coordinator.
package k8s

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the typed and dynamic Kubernetes clients.
type Client struct {
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
}

// NewClient creates a client from the standard kubeconfig loading rules
// (KUBECONFIG or ~/.kube/config), i.e. the credentials written by
// `gcloud container clusters get-credentials`.
func NewClient() (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})

	config, err := loader.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &Client{clientset: clientset, dynamic: dynamicClient}, nil
}

// NewForClientset wraps an existing clientset. Used by tests with a fake.
func NewForClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// NewForClients wraps existing typed and dynamic clients.
func NewForClients(clientset kubernetes.Interface, dyn dynamic.Interface) *Client {
	return &Client{clientset: clientset, dynamic: dyn}
}
