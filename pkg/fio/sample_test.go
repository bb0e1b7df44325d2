package fio

import (
	"time"

	. "gopkg.in/check.v1"
)

// statusIntervalReport is trimmed from what fio-3.35 prints per
// --status-interval tick for a single sequential read job.
const statusIntervalReport = `{
  "fio version" : "fio-3.35",
  "timestamp" : 1709294400,
  "timestamp_ms" : 1709294400123,
  "time" : "Fri Mar  1 12:00:00 2024",
  "global options" : {
    "ioengine" : "libaio",
    "direct" : "1"
  },
  "jobs" : [
    {
      "jobname" : "seq_read",
      "groupid" : 0,
      "error" : 0,
      "eta" : 14,
      "elapsed" : 2,
      "job options" : {
        "rw" : "read",
        "bs" : "1M"
      },
      "read" : {
        "io_bytes" : 1073741824,
        "io_kbytes" : 1048576,
        "bw_bytes" : 536870912,
        "bw" : 524288,
        "iops" : 512.000000,
        "runtime" : 2000,
        "total_ios" : 1024,
        "short_ios" : 0,
        "drop_ios" : 0,
        "slat_ns" : {
          "min" : 2000,
          "max" : 90000,
          "mean" : 4512.250000,
          "stddev" : 812.000000,
          "N" : 1024
        },
        "clat_ns" : {
          "min" : 1200000,
          "max" : 4100000,
          "mean" : 1953125.000000,
          "stddev" : 120000.000000,
          "N" : 1024,
          "percentile" : {
            "50.000000" : 1941504,
            "99.000000" : 2310144
          }
        },
        "bw_min" : 501760,
        "bw_max" : 540672,
        "bw_agg" : 100.000000,
        "bw_mean" : 524288.000000,
        "bw_dev" : 9000.000000,
        "bw_samples" : 4
      },
      "write" : {
        "io_bytes" : 0,
        "bw" : 0,
        "iops" : 0.000000
      }
    }
  ],
  "disk_util" : [
    {
      "name" : "nvme0n1",
      "read_ios" : 8192,
      "util" : 97.5
    }
  ]
}
`

func (s *FIOTestSuite) TestParseReport(c *C) {
	for _, tc := range []struct {
		frame      string
		errChecker Checker
		expJobs    int
	}{
		{frame: statusIntervalReport, errChecker: IsNil, expJobs: 1},
		{frame: `{"jobs":[]}`, errChecker: IsNil, expJobs: 0},
		{frame: `{}`, errChecker: IsNil, expJobs: 0},
		{frame: `{"jobs":"none"}`, errChecker: NotNil},
		{frame: `{"jobs":[{"read":{"bw":"fast"}}]}`, errChecker: NotNil},
	} {
		report, err := ParseReport([]byte(tc.frame))
		c.Check(err, tc.errChecker)
		if err == nil {
			c.Check(report.Jobs, HasLen, tc.expJobs)
		}
	}
}

func (s *FIOTestSuite) TestExtractSample(c *C) {
	now := time.Date(2024, 3, 1, 13, 0, 0, 500, time.FixedZone("CET", 3600))
	for _, tc := range []struct {
		frame      string
		ok         bool
		expMBps    float64
		expLatency *float64
	}{
		{ // no jobs is not a sample
			frame: `{"jobs":[]}`,
			ok:    false,
		},
		{ // missing jobs
			frame: `{"fio version":"fio-3.35"}`,
			ok:    false,
		},
		{ // KiB/s to MB/s, no latency
			frame:   `{"jobs":[{"read":{"bw":2048}}]}`,
			ok:      true,
			expMBps: 2.0,
		},
		{ // ns to ms
			frame:      `{"jobs":[{"read":{"bw":1024,"clat_ns":{"mean":1500000}}}]}`,
			ok:         true,
			expMBps:    1.0,
			expLatency: floatPtr(1.5),
		},
		{ // a zero mean is still a latency
			frame:      `{"jobs":[{"read":{"bw":1024,"clat_ns":{"mean":0.0}}}]}`,
			ok:         true,
			expMBps:    1.0,
			expLatency: floatPtr(0),
		},
		{ // clat without a mean
			frame:   `{"jobs":[{"read":{"bw":1536,"clat_ns":{"min":1}}}]}`,
			ok:      true,
			expMBps: 1.5,
		},
		{ // missing bandwidth defaults to zero
			frame:   `{"jobs":[{"read":{}}]}`,
			ok:      true,
			expMBps: 0,
		},
		{ // missing read section
			frame:   `{"jobs":[{"jobname":"w","write":{"bw":4096}}]}`,
			ok:      true,
			expMBps: 0,
		},
		{ // only the first job counts
			frame:   `{"jobs":[{"read":{"bw":3072}},{"read":{"bw":9999}}]}`,
			ok:      true,
			expMBps: 3.0,
		},
		{
			frame:      statusIntervalReport,
			ok:         true,
			expMBps:    512,
			expLatency: floatPtr(1.953125),
		},
	} {
		report, err := ParseReport([]byte(tc.frame))
		c.Assert(err, IsNil)
		sample, ok := ExtractSample(report, now)
		c.Assert(ok, Equals, tc.ok, Commentf("frame %s", tc.frame))
		if !ok {
			continue
		}
		c.Check(sample.ReadThroughputMBps, Equals, tc.expMBps)
		c.Check(sample.Timestamp.Equal(now), Equals, true)
		c.Check(sample.Timestamp.Location(), Equals, time.UTC)
		if tc.expLatency == nil {
			c.Check(sample.CompletionLatencyMS, IsNil)
		} else {
			c.Assert(sample.CompletionLatencyMS, NotNil)
			c.Check(*sample.CompletionLatencyMS, Equals, *tc.expLatency)
		}
	}
}

func (s *FIOTestSuite) TestExtractSampleNilReport(c *C) {
	_, ok := ExtractSample(nil, time.Now())
	c.Assert(ok, Equals, false)
}

func (s *FIOTestSuite) TestConversionConstants(c *C) {
	c.Assert(KiBPerMiB, Equals, 1024)
	c.Assert(NsPerMs, Equals, 1000000)
}

func (s *FIOTestSuite) TestSampleString(c *C) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.Assert(Sample{Timestamp: ts, ReadThroughputMBps: 2}.String(), Equals,
		"Timestamp: 2024-03-01T12:00:00Z, Sequential Read Speed: 2.00 MB/s")
	c.Assert(Sample{Timestamp: ts, ReadThroughputMBps: 2, CompletionLatencyMS: floatPtr(1.5)}.String(), Equals,
		"Timestamp: 2024-03-01T12:00:00Z, Sequential Read Speed: 2.00 MB/s, Completion Latency: 1.50 ms")
}
