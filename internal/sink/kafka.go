// Package sink publishes decoded scans to Kafka.
package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/gis"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/metrics"
)

// Message header keys.
const (
	HeaderStation       = "station"
	HeaderCaptureTime   = "capture_time"
	HeaderScanNumber    = "scan_number"
	HeaderMaxPrecipRate = "max_precip_rate"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per scan: keyed by station, valued by the GeoJSON feature
// collection of the scan.
type Publisher struct {
	writer    messageWriter
	skipZeros bool
	metrics   *metrics.Metrics
}

// NewPublisher creates a Kafka producer for the configured topic. A nil m means unregistered
// metrics.
func NewPublisher(cfg config.KafkaConfig, skipZeros bool, m *metrics.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newPublisher(w, skipZeros, m)
}

func newPublisher(w messageWriter, skipZeros bool, m *metrics.Metrics) *Publisher {
	if m == nil {
		m, _ = metrics.NewForTesting()
	}
	return &Publisher{writer: w, skipZeros: skipZeros, metrics: m}
}

// Publish serializes the scans and writes them in a single WriteMessages call.
func (p *Publisher) Publish(ctx context.Context, scans ...*dipr.PrecipRate) error {
	if len(scans) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(scans))
	for i, scan := range scans {
		msg, err := Message(scan, p.skipZeros)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	err := p.writer.WriteMessages(ctx, msgs...)
	for range scans {
		p.metrics.ObservePublish(err)
	}
	if err != nil {
		return fmt.Errorf("publish %d scans: %w", len(scans), err)
	}
	logrus.Debugf("published %d scans", len(scans))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Message converts a scan into its Kafka message.
func Message(scan *dipr.PrecipRate, skipZeros bool) (kafkago.Message, error) {
	data, err := gis.Marshal(scan, skipZeros)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s scan: %w", scan.StationCode, err)
	}
	return kafkago.Message{
		Key:   []byte(scan.StationCode),
		Value: data,
		Time:  scan.CaptureTime,
		Headers: []kafkago.Header{
			{Key: HeaderStation, Value: []byte(scan.StationCode)},
			{Key: HeaderCaptureTime, Value: []byte(scan.CaptureTime.Format(time.RFC3339))},
			{Key: HeaderScanNumber, Value: []byte(strconv.Itoa(int(scan.ScanNumber)))},
			{Key: HeaderMaxPrecipRate, Value: []byte(strconv.FormatFloat(float64(scan.MaxPrecipRate), 'f', 3, 64))},
		},
	}, nil
}
