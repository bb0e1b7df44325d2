package fio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	// KiBPerMiB converts fio's KiB/s bandwidth into MB/s
	KiBPerMiB = 1024
	// NsPerMs converts fio's nanosecond latencies into milliseconds
	NsPerMs = 1000000
)

// Sample is one read observation taken from a status report.
// CompletionLatencyMS is nil when the report carried no mean completion latency.
type Sample struct {
	Timestamp           time.Time
	ReadThroughputMBps  float64
	CompletionLatencyMS *float64
}

// String renders the sample as the console line printed per report.
func (s Sample) String() string {
	ts := s.Timestamp.Format(time.RFC3339Nano)
	if s.CompletionLatencyMS == nil {
		return fmt.Sprintf("Timestamp: %s, Sequential Read Speed: %.2f MB/s", ts, s.ReadThroughputMBps)
	}
	return fmt.Sprintf("Timestamp: %s, Sequential Read Speed: %.2f MB/s, Completion Latency: %.2f ms",
		ts, s.ReadThroughputMBps, *s.CompletionLatencyMS)
}

// ParseReport decodes a frame into a status report.
func ParseReport(frame []byte) (*FioResult, error) {
	var report FioResult
	if err := json.Unmarshal(frame, &report); err != nil {
		return nil, errors.Wrap(err, "Unable to parse fio status report")
	}
	return &report, nil
}

// ExtractSample reads the first job's read statistics. It returns false when
// the report lists no jobs. The timestamp is now, not the report's own time.
func ExtractSample(report *FioResult, now time.Time) (Sample, bool) {
	if report == nil || len(report.Jobs) == 0 {
		return Sample{}, false
	}
	read := report.Jobs[0].Read
	sample := Sample{
		Timestamp:          now.UTC(),
		ReadThroughputMBps: read.BW / KiBPerMiB,
	}
	if read.ClatNs.Mean != nil {
		latency := *read.ClatNs.Mean / NsPerMs
		sample.CompletionLatencyMS = &latency
	}
	return sample, true
}
