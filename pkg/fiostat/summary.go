package fiostat

import (
	"fmt"

	"github.com/kastenhq/fiostat/pkg/fio"
	"github.com/pkg/errors"
)

const runSummaryName = "FIO run summary"

// RunSummary turns the outcome of a fio run into a printable report.
func RunSummary(res *fio.RunFIOResult, runErr error) *TestOutput {
	out := &TestOutput{TestName: runSummaryName, Raw: res}
	var subprocErr *fio.SubprocessError
	switch {
	case runErr == nil:
		out.AddStatus(StatusOK, "fio completed")
	case errors.As(runErr, &subprocErr):
		out.AddStatus(StatusError, fmt.Sprintf("fio exited with status %d", subprocErr.ExitCode))
	default:
		out.AddStatus(StatusError, runErr.Error())
	}
	if res == nil {
		return out
	}
	if res.JobFile != "" {
		out.AddStatus(StatusInfo, fmt.Sprintf("Job file: %s", res.JobFile))
	}
	out.AddStatus(StatusInfo, fmt.Sprintf("Reports: %d, samples: %d", res.Frames, res.Samples))
	if res.WriteFailures > 0 {
		out.AddStatus(StatusWarning, fmt.Sprintf("Points written: %d, failed: %d", res.Writes, res.WriteFailures))
	} else {
		out.AddStatus(StatusInfo, fmt.Sprintf("Points written: %d", res.Writes))
	}
	if res.BucketError != "" {
		out.AddStatus(StatusWarning, fmt.Sprintf("Bucket check failed: %s", res.BucketError))
	}
	if res.DiscardedBytes > 0 {
		out.AddStatus(StatusWarning, fmt.Sprintf("Discarded %d bytes of fio output", res.DiscardedBytes))
	}
	if res.LastReport != nil && len(res.LastReport.Jobs) > 0 {
		out.AddStatus(StatusInfo, fmt.Sprintf("Last report (%s):\n%s", res.LastReport.FioVersion, res.LastReport.Print()))
	}
	return out
}
