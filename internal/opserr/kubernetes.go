package opserr

import "fmt"

func NewKubernetesError(message string, namespace string) *Error {
	return newKubernetes(message, "", namespace).with("KubernetesError", ErrKubernetes)
}

func newKubernetes(message string, code string, namespace string) *Error {
	if len(namespace) == 0 {
		namespace = "default"
	}
	return New(message, code, map[string]any{
		"namespace": namespace,
	}, false).with("KubernetesError", ErrKubernetes)
}

func NewPodNotFound(podName string, namespace string) *Error {
	return newKubernetes(fmt.Sprintf("Pod '%s' not found", podName), "POD_NOT_FOUND", namespace).
		with("PodNotFoundError", ErrKubernetes)
}

func NewDeploymentFailed(deploymentName string, reason string, namespace string) *Error {
	return newKubernetes(
		fmt.Sprintf("Deployment '%s' failed: %s", deploymentName, reason),
		"DEPLOYMENT_FAILED", namespace,
	).with("DeploymentFailedError", ErrKubernetes)
}
