package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Latest(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("dpr bytes")) //nolint:errcheck
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", time.Second)
	data, err := f.Latest(context.Background(), "KGYX")
	require.NoError(t, err)
	assert.Equal(t, []byte("dpr bytes"), data)
	assert.Equal(t, "/SI.kgyx/sn.last", gotPath)
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, time.Second).Latest(context.Background(), "KZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, time.Second).Latest(context.Background(), "KGYX")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPFetcher_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, TGFTPBaseURL, NewHTTPFetcher("", time.Second).BaseURL)
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	fetched []string
}

func (f *fakeS3) ListObjectsV2PagesWithContext(_ aws.Context, in *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option) error {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.StringValue(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// two pages to exercise paging
	half := len(keys) / 2
	for i, page := range [][]string{keys[:half], keys[half:]} {
		out := &s3.ListObjectsV2Output{}
		for _, k := range page {
			out.Contents = append(out.Contents, &s3.Object{Key: aws.String(k)})
		}
		if !fn(out, i == 1) {
			break
		}
	}
	return nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(in.Key)
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	f.fetched = append(f.fetched, key)
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Fetcher_NewestOfToday(t *testing.T) {
	svc := &fakeS3{objects: map[string][]byte{
		"GYX_DPR_2024_05_13_15_58_00": []byte("old"),
		"GYX_DPR_2024_05_13_16_02_00": []byte("new"),
		"GYX_DPR_2024_05_13_16_00_00": []byte("mid"),
		"GYX_N0Q_2024_05_13_16_04_00": []byte("other product"),
		"BOX_DPR_2024_05_13_16_04_00": []byte("other station"),
	}}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 13, 16, 5, 0, 0, time.UTC))

	f := NewS3FetcherWithClient(svc, "", clock)
	data, err := f.Latest(context.Background(), "KGYX")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
	assert.Equal(t, []string{"GYX_DPR_2024_05_13_16_02_00"}, svc.fetched)
}

func TestS3Fetcher_FallsBackToYesterday(t *testing.T) {
	svc := &fakeS3{objects: map[string][]byte{
		"GYX_DPR_2024_05_12_23_56_00": []byte("late yesterday"),
		"GYX_DPR_2024_05_12_12_00_00": []byte("earlier"),
	}}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 13, 0, 1, 0, 0, time.UTC))

	data, err := NewS3FetcherWithClient(svc, L3Bucket, clock).Latest(context.Background(), "gyx")
	require.NoError(t, err)
	assert.Equal(t, []byte("late yesterday"), data)
}

func TestS3Fetcher_NothingFound(t *testing.T) {
	svc := &fakeS3{objects: map[string][]byte{}}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 13, 12, 0, 0, 0, time.UTC))

	_, err := NewS3FetcherWithClient(svc, "", clock).Latest(context.Background(), "KGYX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3DayPrefix(t *testing.T) {
	assert.Equal(t, "GYX_DPR_2024_05_13", s3DayPrefix("kgyx", "2024_05_13"))
}

func TestGCSHelpers(t *testing.T) {
	assert.Equal(t, "NIDS/GYX/DPR/", gcsPrefix("KGYX"))
	assert.Equal(t, "NIDS/GYX/DPR/GYX_DPR_20240513_1602", newest([]string{
		"NIDS/GYX/DPR/GYX_DPR_20240513_1558",
		"NIDS/GYX/DPR/GYX_DPR_20240513_1602",
		"NIDS/GYX/DPR/GYX_DPR_20240512_2359",
	}))
	assert.Empty(t, newest(nil))
}

func TestCachedFetcher(t *testing.T) {
	calls := 0
	inner := FetcherFunc(func(_ context.Context, station string) ([]byte, error) {
		calls++
		return []byte(station), nil
	})
	clock := clockwork.NewFakeClock()
	c := NewCachedFetcher(inner, 2*time.Minute, clock)
	ctx := context.Background()

	_, err := c.Latest(ctx, "KGYX")
	require.NoError(t, err)
	_, err = c.Latest(ctx, "kgyx")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	_, err = c.Latest(ctx, "KGYX")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	_, err = c.Latest(ctx, "KGYX")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = c.Latest(ctx, "KBOX")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	c.Invalidate("KBOX")
	_, err = c.Latest(ctx, "KBOX")
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestCachedFetcher_ConcurrentMissesShareDownload(t *testing.T) {
	var calls atomic.Int32
	started, release := make(chan struct{}), make(chan struct{})
	inner := FetcherFunc(func(_ context.Context, station string) ([]byte, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []byte(station), nil
	})
	c := NewCachedFetcher(inner, time.Minute, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := c.Latest(context.Background(), "KGYX")
			assert.NoError(t, err)
			results[i] = data
		}()
	}
	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, data := range results {
		assert.Equal(t, []byte("KGYX"), data)
	}
}

func TestCachedFetcher_WaiterCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	inner := FetcherFunc(func(context.Context, string) ([]byte, error) {
		<-release
		return []byte("dpr"), nil
	})
	c := NewCachedFetcher(inner, time.Minute, clockwork.NewFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Latest(ctx, "KGYX")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	calls := 0
	inner := FetcherFunc(func(context.Context, string) ([]byte, error) {
		calls++
		return nil, ErrNotFound
	})
	c := NewCachedFetcher(inner, time.Hour, clockwork.NewFakeClock())

	_, err := c.Latest(context.Background(), "KGYX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Latest(context.Background(), "KGYX")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, calls)
}

const statusPage = `<table>
<tr><td bgcolor="#33FF33"><a href="/site/KGYX">KGYX</a></td></tr>
<tr><td bgcolor="#FF0000"><a href="/site/KBOX">KBOX</a></td></tr>
<tr><td bgcolor="#FFFF00">KOKX</td></tr>
<tr><td>no colour KTLX</td></tr>
</table>`

func TestParseStatuses(t *testing.T) {
	assert.Equal(t, []Status{
		{Station: "KGYX", Online: true},
		{Station: "KBOX", Online: false},
		{Station: "KOKX", Online: false},
	}, parseStatuses(statusPage))
}

func TestStatusChecker_Statuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, statusPage) //nolint:errcheck
	}))
	defer srv.Close()

	statuses, err := NewStatusChecker(srv.URL, time.Second).Statuses(context.Background())
	require.NoError(t, err)
	assert.Len(t, statuses, 3)
}
