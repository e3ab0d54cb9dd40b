package fetch

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jddeal/go-dipr/stations"
)

// GCSBucket is the Google public dataset of realtime Level III products.
const GCSBucket = "gcp-public-data-nexrad-l3-realtime"

// GCSFetcher picks the newest object under NIDS/<site>/DPR/.
type GCSFetcher struct {
	client *storage.Client
	bucket string
}

// NewGCSFetcher opens an unauthenticated client. An empty bucket means GCSBucket.
func NewGCSFetcher(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSFetcher, error) {
	if bucket == "" {
		bucket = GCSBucket
	}
	client, err := storage.NewClient(ctx, append([]option.ClientOption{option.WithoutAuthentication()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &GCSFetcher{client: client, bucket: bucket}, nil
}

func (f *GCSFetcher) Latest(ctx context.Context, station string) ([]byte, error) {
	bucket := f.client.Bucket(f.bucket)

	names, err := listGCS(ctx, bucket, gcsPrefix(station))
	if err != nil {
		return nil, err
	}
	name := newest(names)
	if name == "" {
		return nil, fmt.Errorf("%w: %s in gs://%s", ErrNotFound, station, f.bucket)
	}

	logrus.Debugf("Fetching gs://%s/%s", f.bucket, color.CyanString(name))
	r, err := bucket.Object(name).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Close releases the storage client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}

func listGCS(ctx context.Context, bucket *storage.BucketHandle, prefix string) ([]string, error) {
	it := bucket.Objects(ctx, &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gs://%s: %w", prefix, err)
		}
		if attrs.Prefix == "" {
			names = append(names, attrs.Name)
		}
	}
	return names, nil
}

func gcsPrefix(station string) string {
	return "NIDS/" + stations.SiteID(station) + "/DPR/"
}

// newest returns the greatest name; object names end in a sortable timestamp.
func newest(names []string) string {
	best := ""
	for _, n := range names {
		if n > best {
			best = n
		}
	}
	return best
}
