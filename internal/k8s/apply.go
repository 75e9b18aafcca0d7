package k8s

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// Apply applies a multi-document YAML manifest to the cluster, creating or
// updating each object.
func (c *Client) Apply(ctx context.Context, manifest []byte) error {
	if c.dynamic == nil {
		return fmt.Errorf("client has no dynamic interface")
	}

	decoder := yaml.NewYAMLOrJSONDecoder(strings.NewReader(string(manifest)), 4096)

	for {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to decode manifest: %w", err)
		}

		if len(obj.Object) == 0 {
			continue
		}

		if err := c.applyObject(ctx, &obj); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) applyObject(ctx context.Context, obj *unstructured.Unstructured) error {
	gvk := obj.GroupVersionKind()
	gvr := schema.GroupVersionResource{
		Group:    gvk.Group,
		Version:  gvk.Version,
		Resource: resourceForKind(gvk.Kind),
	}

	namespace := obj.GetNamespace()
	if namespace == "" {
		namespace = "default"
	}

	iface := c.dynamic.Resource(gvr).Namespace(namespace)

	_, err := iface.Create(ctx, obj, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		// Carry the resourceVersion over so the update is accepted.
		existing, getErr := iface.Get(ctx, obj.GetName(), metav1.GetOptions{})
		if getErr != nil {
			return fmt.Errorf("failed to fetch existing %s/%s: %w", obj.GetKind(), obj.GetName(), getErr)
		}
		obj.SetResourceVersion(existing.GetResourceVersion())
		_, err = iface.Update(ctx, obj, metav1.UpdateOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s/%s: %w", obj.GetKind(), obj.GetName(), err)
	}

	log.Printf("Applied %s/%s in namespace %s", obj.GetKind(), obj.GetName(), namespace)
	return nil
}

// resourceForKind maps the kinds this tool renders to their resource names.
func resourceForKind(kind string) string {
	switch kind {
	case "Deployment":
		return "deployments"
	case "StatefulSet":
		return "statefulsets"
	case "Service":
		return "services"
	case "ConfigMap":
		return "configmaps"
	case "Secret":
		return "secrets"
	case "ServiceAccount":
		return "serviceaccounts"
	default:
		return strings.ToLower(kind) + "s"
	}
}
