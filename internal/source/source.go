// Package source builds the Fetcher selected by the fetch section of the config file.
package source

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/fetch"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/metrics"
)

// New returns the configured fetcher, instrumented with m and wrapped in a cache when the TTL is
// positive. closeFn releases the underlying client.
func New(ctx context.Context, cfg config.FetchConfig, m *metrics.Metrics, clock clockwork.Clock) (f fetch.Fetcher, closeFn func() error, err error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	closeFn = func() error { return nil }

	switch cfg.Source {
	case config.SourceTGFTP:
		f = fetch.NewHTTPFetcher(cfg.BaseURL, cfg.Timeout)
	case config.SourceS3:
		s3f, err := fetch.NewS3Fetcher(cfg.S3Bucket, clock)
		if err != nil {
			return nil, nil, fmt.Errorf("s3 session: %w", err)
		}
		f = s3f
	case config.SourceGCS:
		gcsf, err := fetch.NewGCSFetcher(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs client: %w", err)
		}
		f, closeFn = gcsf, gcsf.Close
	default:
		return nil, nil, fmt.Errorf("unknown fetch source %q", cfg.Source)
	}

	if m != nil {
		f = m.Fetcher(cfg.Source, f)
	}
	if cfg.CacheTTL > 0 {
		f = fetch.NewCachedFetcher(f, cfg.CacheTTL, clock)
	}
	logrus.Debugf("fetching DPR files from %s (cache %s)", cfg.Source, cfg.CacheTTL)
	return f, closeFn, nil
}
