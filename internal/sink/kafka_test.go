package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/dipr/diprtest"
	"github.com/jddeal/go-dipr/internal/metrics"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testScan(t *testing.T) *dipr.PrecipRate {
	t.Helper()
	f := diprtest.New()
	f.Radials = diprtest.UniformRadials(4, 0, 1250)
	p, err := dipr.Decode(f.MustBytes())
	require.NoError(t, err)
	return p
}

func headers(msg kafkago.Message) map[string]string {
	h := make(map[string]string, len(msg.Headers))
	for _, kv := range msg.Headers {
		h[kv.Key] = string(kv.Value)
	}
	return h
}

func TestMessage(t *testing.T) {
	scan := testScan(t)

	msg, err := Message(scan, true)
	require.NoError(t, err)

	assert.Equal(t, []byte("KGYX"), msg.Key)
	assert.Equal(t, time.Date(2020, 5, 13, 16, 0, 0, 0, time.UTC), msg.Time.UTC())
	assert.Equal(t, map[string]string{
		HeaderStation:       "KGYX",
		HeaderCaptureTime:   "2020-05-13T16:00:00Z",
		HeaderScanNumber:    "42",
		HeaderMaxPrecipRate: "1.250",
	}, headers(msg))

	fc, err := geojson.UnmarshalFeatureCollection(msg.Value)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 4)
	assert.Equal(t, "KGYX", fc.ExtraMembers["station"])
}

func TestMessage_KeepZeros(t *testing.T) {
	msg, err := Message(testScan(t), false)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(msg.Value)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 8)
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	m, _ := metrics.NewForTesting()
	p := newPublisher(w, true, m)

	require.NoError(t, p.Publish(context.Background(), testScan(t), testScan(t)))
	assert.Len(t, w.msgs, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Published.WithLabelValues("success")))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublish_Nothing(t *testing.T) {
	w := &fakeWriter{err: errors.New("unreachable")}
	p := newPublisher(w, true, nil)
	assert.NoError(t, p.Publish(context.Background()))
}

func TestPublish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	m, _ := metrics.NewForTesting()
	p := newPublisher(w, true, m)

	err := p.Publish(context.Background(), testScan(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Published.WithLabelValues("error")))
}
