package k8s

import (
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ServiceName returns the conventional service name for an application.
// The in-cluster services address each other by this convention
// (e.g. adk-agents-service.default.svc.cluster.local).
func ServiceName(app string) string {
	return app + "-service"
}

func isIgnorableDeleteError(err error) bool {
	return apierrors.IsNotFound(err)
}
