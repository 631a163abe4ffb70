package env

import (
	"os"

	"github.com/google/uuid"
)

var instanceId = uuid.NewString()

// PodName example: k8ssta-goauction-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: scheduler
func AppName() string {
	return os.Getenv("APP_NAME")
}

// InstanceId identifies this process among replicas. It is the pod name
// when running in k8s, a random id otherwise.
func InstanceId() string {
	if pod := PodName(); pod != "" {
		return pod
	}
	return instanceId
}
