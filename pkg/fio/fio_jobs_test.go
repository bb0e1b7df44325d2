package fio

import (
	"context"
	"os"

	. "gopkg.in/check.v1"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
)

const seqReadJob = `[global]
ioengine=libaio
direct=1
[seq_read]
rw=read
bs=1M
size=1G
`

func (s *FIOTestSuite) TestParseConfigMapJobRef(c *C) {
	for _, tc := range []struct {
		ref        string
		namespace  string
		name       string
		key        string
		errChecker Checker
	}{
		{ref: "configmap://default/fio-jobs", namespace: "default", name: "fio-jobs", errChecker: IsNil},
		{ref: "configmap://default/fio-jobs/seq-read.fio", namespace: "default", name: "fio-jobs", key: "seq-read.fio", errChecker: IsNil},
		{ref: "configmap://default", errChecker: NotNil},
		{ref: "configmap:///fio-jobs", errChecker: NotNil},
		{ref: "configmap://default/fio-jobs/", errChecker: NotNil},
		{ref: "configmap://a/b/c/d", errChecker: NotNil},
	} {
		namespace, name, key, err := parseConfigMapJobRef(tc.ref)
		c.Check(err, tc.errChecker, Commentf("ref %s", tc.ref))
		c.Check(namespace, Equals, tc.namespace)
		c.Check(name, Equals, tc.name)
		c.Check(key, Equals, tc.key)
	}
}

func (s *FIOTestSuite) TestLoadJobFile(c *C) {
	ctx := context.Background()
	jobs := &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "fio-jobs", Namespace: "default"},
		Data:       map[string]string{"seq-read.fio": seqReadJob},
	}
	twoJobs := &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "two-jobs", Namespace: "default"},
		Data:       map[string]string{"a.fio": "[a]\n", "b.fio": seqReadJob},
	}
	for _, tc := range []struct {
		cli        kubernetes.Interface
		ref        string
		expJob     string
		isTemp     bool
		errChecker Checker
	}{
		{ // local file passes through
			ref:        "/etc/fio/seq-read.fio",
			errChecker: IsNil,
		},
		{ // configmap without a client
			ref:        "configmap://default/fio-jobs",
			errChecker: NotNil,
		},
		{ // single key is picked automatically
			cli:        fake.NewSimpleClientset(jobs),
			ref:        "configmap://default/fio-jobs",
			expJob:     seqReadJob,
			isTemp:     true,
			errChecker: IsNil,
		},
		{ // explicit key
			cli:        fake.NewSimpleClientset(twoJobs),
			ref:        "configmap://default/two-jobs/b.fio",
			expJob:     seqReadJob,
			isTemp:     true,
			errChecker: IsNil,
		},
		{ // ambiguous key
			cli:        fake.NewSimpleClientset(twoJobs),
			ref:        "configmap://default/two-jobs",
			errChecker: NotNil,
		},
		{ // missing key
			cli:        fake.NewSimpleClientset(jobs),
			ref:        "configmap://default/fio-jobs/rand-read.fio",
			errChecker: NotNil,
		},
		{ // wrong namespace
			cli:        fake.NewSimpleClientset(jobs),
			ref:        "configmap://kube-system/fio-jobs",
			errChecker: NotNil,
		},
		{ // malformed reference
			cli:        fake.NewSimpleClientset(jobs),
			ref:        "configmap://fio-jobs",
			errChecker: NotNil,
		},
	} {
		stepper := &fioStepper{cli: tc.cli}
		path, cleanup, err := stepper.loadJobFile(ctx, tc.ref)
		c.Check(err, tc.errChecker, Commentf("ref %s", tc.ref))
		if err != nil {
			continue
		}
		if !tc.isTemp {
			c.Check(path, Equals, tc.ref)
			cleanup()
			continue
		}
		data, err := os.ReadFile(path)
		c.Assert(err, IsNil)
		c.Check(string(data), Equals, tc.expJob)
		cleanup()
		_, err = os.Stat(path)
		c.Check(os.IsNotExist(err), Equals, true)
	}
}

func (s *FIOTestSuite) TestFioTestFilename(c *C) {
	for _, tc := range []struct {
		data       map[string]string
		expName    string
		errChecker Checker
	}{
		{data: map[string]string{"job.fio": ""}, expName: "job.fio", errChecker: IsNil},
		{data: map[string]string{}, errChecker: NotNil},
		{data: map[string]string{"a": "", "b": ""}, errChecker: NotNil},
	} {
		name, err := fioTestFilename(tc.data)
		c.Check(err, tc.errChecker)
		c.Check(name, Equals, tc.expName)
	}
}

func (s *FIOTestSuite) TestIsConfigMapJobRef(c *C) {
	c.Assert(IsConfigMapJobRef("configmap://default/fio-jobs"), Equals, true)
	c.Assert(IsConfigMapJobRef("/etc/fio/configmap://x"), Equals, false)
	c.Assert(IsConfigMapJobRef("job.fio"), Equals, false)
}
