package fiostat

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kastenhq/fiostat/pkg/fio"
	"github.com/pkg/errors"
)

// ErrPrivilege is returned when fiostat is not running as root.
var ErrPrivilege = errors.New("This program must be run as root.")

// Preflight holds the host probes run before fio is started.
type Preflight struct {
	Geteuid  func() int
	LookPath func(file string) (string, error)
	// Version returns the output of `<binary> --version`.
	Version func(ctx context.Context, binary string) (string, error)
	Stat    func(name string) (os.FileInfo, error)
}

// NewPreflight returns probes backed by the host.
func NewPreflight() *Preflight {
	return &Preflight{
		Geteuid:  os.Geteuid,
		LookPath: exec.LookPath,
		Version:  fioVersion,
		Stat:     os.Stat,
	}
}

// RequireRoot fails with ErrPrivilege unless the effective uid is 0.
func (p *Preflight) RequireRoot() error {
	if p.Geteuid() != 0 {
		return ErrPrivilege
	}
	return nil
}

// Checks runs the informational host checks. None of them stop a run.
func (p *Preflight) Checks(ctx context.Context, binary, jobFile string) []*TestOutput {
	var result []*TestOutput
	result = append(result, p.validateBinary(ctx, binary))
	result = append(result, p.validateJobFile(jobFile))
	return result
}

func (p *Preflight) validateBinary(ctx context.Context, binary string) *TestOutput {
	testName := "FIO Binary Check"
	version, err := p.validateBinaryHelper(ctx, binary)
	if err != nil {
		return MakeTestOutput(testName, StatusError, err.Error(), nil)
	}
	return MakeTestOutput(testName, StatusOK, fmt.Sprintf("Found %s", version), version)
}

func (p *Preflight) validateBinaryHelper(ctx context.Context, binary string) (string, error) {
	path, err := p.LookPath(binary)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to find fio binary (%s)", binary)
	}
	version, err := p.Version(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to get fio version (%s)", path)
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "fio-") {
		return "", fmt.Errorf("unrecognized fio version output (%s)", version)
	}
	return version, nil
}

func (p *Preflight) validateJobFile(jobFile string) *TestOutput {
	testName := "FIO Job File Check"
	if fio.IsConfigMapJobRef(jobFile) {
		return MakeTestOutput(testName, StatusInfo, fmt.Sprintf("Job is read from %s", jobFile), nil)
	}
	info, err := p.Stat(jobFile)
	if err != nil {
		return MakeTestOutput(testName, StatusError, errors.Wrap(err, "Unable to read job file").Error(), nil)
	}
	if info.IsDir() {
		return MakeTestOutput(testName, StatusError, fmt.Sprintf("Job file (%s) is a directory", jobFile), nil)
	}
	return MakeTestOutput(testName, StatusOK, fmt.Sprintf("Job file (%s) found", jobFile), nil)
}

func fioVersion(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
