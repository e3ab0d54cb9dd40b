package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/stations"
)

// L3Bucket is the public Unidata bucket of Level III products, keyed like
// GYX_DPR_2021_09_02_00_04_28.
const L3Bucket = "unidata-nexrad-level3"

// S3Fetcher picks the newest DPR object of a station from an S3 bucket.
type S3Fetcher struct {
	svc    s3iface.S3API
	bucket string
	clock  clockwork.Clock
}

// NewS3Fetcher connects anonymously to the bucket in us-east-1. An empty bucket means L3Bucket.
func NewS3Fetcher(bucket string, clock clockwork.Clock) (*S3Fetcher, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.AnonymousCredentials,
		Region:      aws.String("us-east-1"),
	})
	if err != nil {
		return nil, err
	}
	return NewS3FetcherWithClient(s3.New(sess), bucket, clock), nil
}

// NewS3FetcherWithClient uses an existing S3 client.
func NewS3FetcherWithClient(svc s3iface.S3API, bucket string, clock clockwork.Clock) *S3Fetcher {
	if bucket == "" {
		bucket = L3Bucket
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &S3Fetcher{svc: svc, bucket: bucket, clock: clock}
}

// Latest looks at today's keys first and falls back to yesterday's so a fetch shortly after
// midnight UTC still finds a file.
func (f *S3Fetcher) Latest(ctx context.Context, station string) ([]byte, error) {
	now := f.clock.Now().UTC()
	for _, day := range []int{0, -1} {
		prefix := s3DayPrefix(station, now.AddDate(0, 0, day).Format("2006_01_02"))
		key, err := f.newestKey(ctx, prefix)
		if err != nil {
			return nil, err
		}
		if key == "" {
			continue
		}

		logrus.Debugf("Fetching s3://%s/%s", f.bucket, color.CyanString(key))
		obj, err := f.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
			Bucket: aws.String(f.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, err
		}
		defer obj.Body.Close()
		return io.ReadAll(obj.Body)
	}
	return nil, fmt.Errorf("%w: %s in s3://%s", ErrNotFound, station, f.bucket)
}

func (f *S3Fetcher) newestKey(ctx context.Context, prefix string) (string, error) {
	newest := ""
	err := f.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(f.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			if key := aws.StringValue(obj.Key); key > newest {
				newest = key
			}
		}
		return true
	})
	return newest, err
}

func s3DayPrefix(station, day string) string {
	return fmt.Sprintf("%s_DPR_%s", stations.SiteID(station), day)
}
