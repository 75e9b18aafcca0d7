package deploy

import (
	"bytes"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/k8s"
)

// RenderManifests produces the Deployment and Service manifests for one
// application at a specific image reference, as a multi-document YAML
// stream.
func RenderManifests(cfg *config.Config, app config.App, image string) ([]byte, error) {
	deployment, err := renderDeployment(cfg, app, image)
	if err != nil {
		return nil, err
	}
	service := renderService(cfg, app)

	var buf bytes.Buffer
	for i, obj := range []any{deployment, service} {
		data, err := sigsyaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to render manifest for %s: %w", app.Name, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func renderDeployment(cfg *config.Config, app config.App, image string) (*appsv1.Deployment, error) {
	resources, err := renderResources(app.Resources)
	if err != nil {
		return nil, fmt.Errorf("invalid resources for %s: %w", app.Name, err)
	}

	container := corev1.Container{
		Name:      app.Name,
		Image:     image,
		Ports:     []corev1.ContainerPort{{ContainerPort: int32(app.Port)}},
		Resources: resources,
	}
	if app.UseAPIKey {
		container.Env = append(container.Env, corev1.EnvVar{
			Name: "GOOGLE_API_KEY",
			ValueFrom: &corev1.EnvVarSource{
				SecretKeyRef: &corev1.SecretKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: cfg.APIKeySecret},
					Key:                  "api-key",
				},
			},
		})
	}

	labels := map[string]string{"app": app.Name}
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      app.Name,
			Namespace: cfg.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(app.Replicas),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container},
				},
			},
		},
	}, nil
}

func renderService(cfg *config.Config, app config.App) *corev1.Service {
	svcType := corev1.ServiceTypeClusterIP
	if app.Expose == config.ExposeExternal {
		svcType = corev1.ServiceTypeLoadBalancer
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      k8s.ServiceName(app.Name),
			Namespace: cfg.Namespace,
			Labels:    map[string]string{"app": app.Name},
		},
		Spec: corev1.ServiceSpec{
			Type:     svcType,
			Selector: map[string]string{"app": app.Name},
			Ports: []corev1.ServicePort{{
				Port:       int32(app.Port),
				TargetPort: intstr.FromInt32(int32(app.Port)),
			}},
		},
	}
}

func renderResources(r config.Resources) (corev1.ResourceRequirements, error) {
	var out corev1.ResourceRequirements

	requests, err := quantities(map[corev1.ResourceName]string{
		corev1.ResourceCPU:    r.CPURequest,
		corev1.ResourceMemory: r.MemoryRequest,
	})
	if err != nil {
		return out, err
	}
	limits, err := quantities(map[corev1.ResourceName]string{
		corev1.ResourceCPU:    r.CPULimit,
		corev1.ResourceMemory: r.MemoryLimit,
	})
	if err != nil {
		return out, err
	}

	out.Requests = requests
	out.Limits = limits
	return out, nil
}

func quantities(spec map[corev1.ResourceName]string) (corev1.ResourceList, error) {
	var list corev1.ResourceList
	for name, value := range spec {
		if value == "" {
			continue
		}
		q, err := resource.ParseQuantity(value)
		if err != nil {
			return nil, fmt.Errorf("bad quantity %q for %s: %w", value, name, err)
		}
		if list == nil {
			list = corev1.ResourceList{}
		}
		list[name] = q
	}
	return list, nil
}
