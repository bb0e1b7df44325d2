package influx

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
)

// bucketPageSize is the largest page the buckets endpoint serves.
const bucketPageSize = 100

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock_bucket_provisioner.go -package=mocks . BucketProvisioner
type BucketProvisioner interface {
	FindOrganizationID(ctx context.Context, org string) (string, error)
	ListBucketNames(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, orgID, name string) error
}

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock_point_writer.go -package=mocks . PointWriter
type PointWriter interface {
	WritePoint(ctx context.Context, org, bucket string, point *write.Point) error
}

type clientOps struct {
	client influxdb2.Client
}

var (
	_ BucketProvisioner = &clientOps{}
	_ PointWriter       = &clientOps{}
)

func (o *clientOps) FindOrganizationID(ctx context.Context, org string) (string, error) {
	organization, err := o.client.OrganizationsAPI().FindOrganizationByName(ctx, org)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to find organization (%s)", org)
	}
	if organization.Id == nil {
		return "", errors.Errorf("Organization (%s) has no ID", org)
	}
	return *organization.Id, nil
}

func (o *clientOps) ListBucketNames(ctx context.Context) ([]string, error) {
	var names []string
	for offset := 0; ; offset += bucketPageSize {
		buckets, err := o.client.BucketsAPI().GetBuckets(ctx, api.PagingWithOffset(offset), api.PagingWithLimit(bucketPageSize))
		if err != nil {
			return nil, errors.Wrap(err, "Unable to list buckets")
		}
		if buckets == nil {
			return names, nil
		}
		for _, bucket := range *buckets {
			names = append(names, bucket.Name)
		}
		if len(*buckets) < bucketPageSize {
			return names, nil
		}
	}
}

func (o *clientOps) CreateBucket(ctx context.Context, orgID, name string) error {
	if _, err := o.client.BucketsAPI().CreateBucketWithNameWithID(ctx, orgID, name); err != nil {
		return errors.Wrapf(err, "Unable to create bucket (%s)", name)
	}
	return nil
}

// WritePoint uses the blocking write API, which sends the point before
// returning and keeps nothing buffered.
func (o *clientOps) WritePoint(ctx context.Context, org, bucket string, point *write.Point) error {
	return o.client.WriteAPIBlocking(org, bucket).WritePoint(ctx, point)
}
