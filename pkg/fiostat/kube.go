package fiostat

import (
	"github.com/kanisterio/kanister/pkg/kube"
	"github.com/pkg/errors"
	"k8s.io/client-go/kubernetes"
)

// LoadKubeCli builds a Kubernetes client from the in-cluster config or the
// local kubeconfig.
func LoadKubeCli() (kubernetes.Interface, error) {
	cli, err := kube.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to load Kubernetes client")
	}
	return cli, nil
}
