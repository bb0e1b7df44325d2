package fio

import "fmt"

// FioResult is one fio JSON status report. With --status-interval fio
// writes one of these per interval and a final one when the job ends.
type FioResult struct {
	FioVersion    string           `json:"fio version,omitempty"`
	Timestamp     int64            `json:"timestamp,omitempty"`
	TimestampMS   int64            `json:"timestamp_ms,omitempty"`
	Time          string           `json:"time,omitempty"`
	GlobalOptions FioGlobalOptions `json:"global options,omitempty"`
	Jobs          []FioJobs        `json:"jobs,omitempty"`
}

func (f FioResult) Print() string {
	var res string
	res += fmt.Sprintf("FIO version - %s\n", f.FioVersion)
	res += fmt.Sprintf("Global options - %s\n\n", f.GlobalOptions.Print())
	for _, job := range f.Jobs {
		res += fmt.Sprintf("%s\n", job.Print())
	}
	return res
}

type FioGlobalOptions struct {
	Directory string `json:"directory,omitempty"`
	IOEngine  string `json:"ioengine,omitempty"`
	Direct    string `json:"direct,omitempty"`
}

func (g FioGlobalOptions) Print() string {
	return fmt.Sprintf("ioengine=%s direct=%s directory=%s", g.IOEngine, g.Direct, g.Directory)
}

type FioJobs struct {
	JobName string   `json:"jobname,omitempty"`
	GroupID int      `json:"groupid,omitempty"`
	Error   int      `json:"error,omitempty"`
	Eta     int      `json:"eta,omitempty"`
	Elapsed int      `json:"elapsed,omitempty"`
	Read    FioStats `json:"read,omitempty"`
	Write   FioStats `json:"write,omitempty"`
}

func (j FioJobs) Print() string {
	job := fmt.Sprintf("JobName: %s (elapsed %ds)\n", j.JobName, j.Elapsed)
	if j.Read.Iops != 0 || j.Read.BW != 0 {
		job += fmt.Sprintf("read:\n%s\n", j.Read.Print())
	}
	if j.Write.Iops != 0 || j.Write.BW != 0 {
		job += fmt.Sprintf("write:\n%s\n", j.Write.Print())
	}
	return job
}

// FioStats are the per-direction statistics of a job. BW is in KiB/s.
type FioStats struct {
	IOBytes  int64   `json:"io_bytes,omitempty"`
	BWBytes  float64 `json:"bw_bytes,omitempty"`
	BW       float64 `json:"bw,omitempty"`
	Iops     float64 `json:"iops,omitempty"`
	Runtime  int64   `json:"runtime,omitempty"`
	TotalIos int64   `json:"total_ios,omitempty"`
	ClatNs   FioNS   `json:"clat_ns,omitempty"`
	LatNs    FioNS   `json:"lat_ns,omitempty"`
	BwMin    float64 `json:"bw_min,omitempty"`
	BwMax    float64 `json:"bw_max,omitempty"`
	BwMean   float64 `json:"bw_mean,omitempty"`
}

func (s FioStats) Print() string {
	var stats string
	stats += fmt.Sprintf("  IOPS=%f BW(KiB/s)=%.0f\n", s.Iops, s.BW)
	stats += fmt.Sprintf("  bw(KiB/s): min=%.0f max=%.0f avg=%f", s.BwMin, s.BwMax, s.BwMean)
	return stats
}

// FioNS is a latency summary in nanoseconds. Mean is a pointer so a report
// without a mean can be told apart from a mean of zero.
type FioNS struct {
	Min    int64    `json:"min,omitempty"`
	Max    int64    `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	StdDev float64  `json:"stddev,omitempty"`
	N      int64    `json:"N,omitempty"`
}
