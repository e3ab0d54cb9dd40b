package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/sink"
	"github.com/jddeal/go-dipr/internal/source"
	"github.com/jddeal/go-dipr/stations"
)

func (a *app) fetchCmd() *cobra.Command {
	var out, from string
	cmd := &cobra.Command{
		Use:   "fetch <station>",
		Short: "Download the newest DPR file of a station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := stations.Default.Station(args[0])
			if err != nil {
				return err
			}
			data, err := a.fetchLatest(cmd.Context(), st.Code, from)
			if err != nil {
				return err
			}

			w, err := a.output(out)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				w.Close()
				return err
			}
			logrus.Debugf("fetched %d bytes for %s", len(data), color.CyanString(st.Code))
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().StringVar(&from, "source", "", "override fetch.source: tgftp, s3 or gcs")
	return cmd
}

func (a *app) fetchLatest(ctx context.Context, station, from string) ([]byte, error) {
	cfg := a.cfg.Fetch
	cfg.CacheTTL = 0
	if from != "" {
		cfg.Source = from
	}
	f, closeFn, err := source.New(ctx, cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return f.Latest(ctx, station)
}

func (a *app) publishCmd() *cobra.Command {
	var (
		brokers []string
		topic   string
		live    bool
	)
	cmd := &cobra.Command{
		Use:   "publish <file|station>...",
		Short: "Publish scans to Kafka as GeoJSON messages",
		Long: "Publish decodes each file and writes one message per scan to Kafka. With --live the " +
			"arguments are station codes and their newest scans are downloaded first.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kcfg := a.cfg.Kafka
			if len(brokers) > 0 {
				kcfg.Brokers = brokers
			}
			if topic != "" {
				kcfg.Topic = topic
			}

			scans := make([]*dipr.PrecipRate, 0, len(args))
			for _, arg := range args {
				p, err := a.loadScan(cmd.Context(), arg, live)
				if err != nil {
					return err
				}
				scans = append(scans, p)
			}
			return a.publish(cmd.Context(), kcfg, a.skipZeros(cmd), scans)
		},
	}
	cmd.Flags().StringSliceVar(&brokers, "brokers", nil, "override kafka.brokers")
	cmd.Flags().StringVar(&topic, "topic", "", "override kafka.topic")
	cmd.Flags().BoolVar(&live, "live", false, "treat arguments as station codes and fetch their newest scans")
	cmd.Flags().Bool("skip-zeros", false, "leave out bins without precipitation")
	return cmd
}

func (a *app) loadScan(ctx context.Context, arg string, live bool) (*dipr.PrecipRate, error) {
	if !live {
		return a.decode(arg)
	}
	st, err := stations.Default.Station(arg)
	if err != nil {
		return nil, err
	}
	data, err := a.fetchLatest(ctx, st.Code, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", st.Code, err)
	}
	return dipr.Decode(data)
}

func (a *app) publish(ctx context.Context, kcfg config.KafkaConfig, skipZeros bool, scans []*dipr.PrecipRate) error {
	pub := sink.NewPublisher(kcfg, skipZeros, nil)
	defer pub.Close()
	if err := pub.Publish(ctx, scans...); err != nil {
		return err
	}
	logrus.Infof("published %d scans to %s", len(scans), color.CyanString(kcfg.Topic))
	return nil
}
