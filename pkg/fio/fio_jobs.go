package fio

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kastenhq/fiostat/pkg/common"
	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IsConfigMapJobRef reports whether ref names a job stored in a ConfigMap
// (configmap://<namespace>/<name>[/<key>]) rather than a local file.
func IsConfigMapJobRef(ref string) bool {
	return strings.HasPrefix(ref, common.ConfigMapJobPrefix)
}

func parseConfigMapJobRef(ref string) (namespace, name, key string, err error) {
	parts := strings.Split(strings.TrimPrefix(ref, common.ConfigMapJobPrefix), "/")
	switch {
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return parts[0], parts[1], "", nil
	case len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "":
		return parts[0], parts[1], parts[2], nil
	}
	return "", "", "", fmt.Errorf("ConfigMap job reference (%s) doesn't match pattern '%s<namespace>/<name>[/<key>]'", ref, common.ConfigMapJobPrefix)
}

// loadJobFile returns a path fio can read the job from. Local paths are
// passed through untouched; ConfigMap jobs are copied to a temporary file
// that cleanup removes.
func (s *fioStepper) loadJobFile(ctx context.Context, ref string) (string, func(), error) {
	if !IsConfigMapJobRef(ref) {
		return ref, func() {}, nil
	}
	if s.cli == nil {
		return "", nil, fmt.Errorf("A Kubernetes client is required to load job (%s)", ref)
	}
	namespace, name, key, err := parseConfigMapJobRef(ref)
	if err != nil {
		return "", nil, err
	}
	configMap, err := s.cli.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", nil, errors.Wrapf(err, "Unable to find ConfigMap (%s/%s)", namespace, name)
	}
	if key == "" {
		if key, err = fioTestFilename(configMap.Data); err != nil {
			return "", nil, err
		}
	}
	job, ok := configMap.Data[key]
	if !ok {
		return "", nil, fmt.Errorf("FIO job not found in ConfigMap (%s/%s) - (%s)", namespace, name, key)
	}

	f, err := os.CreateTemp("", "fiostat-"+key+"-*")
	if err != nil {
		return "", nil, errors.Wrap(err, "Unable to create job file")
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.WriteString(job); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, errors.Wrap(err, "Unable to write job file")
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, "Unable to write job file")
	}
	return f.Name(), cleanup, nil
}

func fioTestFilename(configMap map[string]string) (string, error) {
	if len(configMap) != 1 {
		return "", fmt.Errorf("Unable to find fio file in configmap/more than one found %v", configMap)
	}
	var fileName string
	for key := range configMap {
		fileName = key
	}
	return fileName, nil
}
