// Package fetch downloads the latest DPR file for a radar station.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a source has no DPR file for the station.
var ErrNotFound = errors.New("no DPR file found")

// Fetcher retrieves the newest raw DPR file of a station.
type Fetcher interface {
	Latest(ctx context.Context, station string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, station string) ([]byte, error)

func (f FetcherFunc) Latest(ctx context.Context, station string) ([]byte, error) {
	return f(ctx, station)
}

// TGFTPBaseURL is the NWS directory holding one SI.<station> directory per radar. The newest
// file in each is always called sn.last.
const TGFTPBaseURL = "https://tgftp.nws.noaa.gov/SL.us008001/DF.of/DC.radar/DS.176pr"

// HTTPFetcher downloads sn.last from the NWS tgftp server.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher for baseURL. An empty baseURL means TGFTPBaseURL.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	if baseURL == "" {
		baseURL = TGFTPBaseURL
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Latest(ctx context.Context, station string) ([]byte, error) {
	url := fmt.Sprintf("%s/SI.%s/sn.last", f.BaseURL, strings.ToLower(station))
	logrus.Debugf("Fetching %s", color.CyanString(url))
	return get(ctx, f.Client, url)
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("bad status code fetching %s: %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
