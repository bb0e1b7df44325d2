package influx

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/kastenhq/fiostat/pkg/common"
	"github.com/kastenhq/fiostat/pkg/fio"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Sink writes fio samples to an InfluxDB v2 bucket. It owns the client it
// was built with; Close releases it.
type Sink struct {
	Provisioner BucketProvisioner
	Writer      PointWriter
	RunID       string
	Host        string

	close func()
}

var _ fio.MetricsSink = &Sink{}

// NewSink connects to the InfluxDB server at url. host is written as the
// hostname tag of every point.
func NewSink(url, token, host string) *Sink {
	client := influxdb2.NewClient(url, token)
	ops := &clientOps{client: client}
	return &Sink{
		Provisioner: ops,
		Writer:      ops,
		RunID:       common.RunIDTagValue,
		Host:        host,
		close:       client.Close,
	}
}

// Close releases the underlying client. It is safe to call more than once.
func (s *Sink) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// EnsureBucket creates bucket in org unless a bucket with exactly that name
// already exists.
func (s *Sink) EnsureBucket(ctx context.Context, bucket, org string) error {
	orgID, err := s.Provisioner.FindOrganizationID(ctx, org)
	if err != nil {
		return err
	}
	names, err := s.Provisioner.ListBucketNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == bucket {
			log.Info().Str("bucket", bucket).Msg("Bucket already exists")
			return nil
		}
	}
	if err := s.Provisioner.CreateBucket(ctx, orgID, bucket); err != nil {
		return err
	}
	log.Info().Str("bucket", bucket).Str("org", org).Msg("Bucket created successfully")
	return nil
}

// Write sends one point for sample and returns once it has been written.
func (s *Sink) Write(ctx context.Context, sample fio.Sample, bucket, org string) error {
	if err := s.Writer.WritePoint(ctx, org, bucket, s.point(sample)); err != nil {
		return errors.Wrapf(err, "Unable to write point to bucket (%s)", bucket)
	}
	return nil
}

// point maps a sample onto the FIO measurement. A missing latency is
// written as N/A so every point carries the same fields.
func (s *Sink) point(sample fio.Sample) *write.Point {
	var latency interface{} = common.NotApplicable
	if sample.CompletionLatencyMS != nil {
		latency = *sample.CompletionLatencyMS
	}
	return influxdb2.NewPoint(common.MeasurementName,
		map[string]string{
			common.RunIDTagKey:    s.RunID,
			common.HostnameTagKey: s.Host,
		},
		map[string]interface{}{
			common.ReadBandwidthField:     sample.ReadThroughputMBps,
			common.CompletionLatencyField: latency,
		},
		sample.Timestamp)
}
