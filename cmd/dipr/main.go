// Command dipr decodes NEXRAD Digital Instantaneous Precipitation Rate files and converts them
// to GeoJSON, shapefiles, images and PDF reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/logging"
)

type app struct {
	configPath string
	logLevel   string

	cfg       config.Config
	logCloser io.Closer
	stdin     io.Reader
	stdout    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout}

	root := &cobra.Command{
		Use:           "dipr",
		Short:         "Decode and convert NEXRAD DPR (product 176) files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logCloser != nil {
				a.logCloser.Close()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "",
		"logging level ("+strings.Join(logging.LevelNames(), ", ")+")")

	root.AddCommand(
		a.infoCmd(),
		a.geojsonCmd(),
		a.shapefileCmd(),
		a.renderCmd(),
		a.reportCmd(),
		a.queryCmd(),
		a.fetchCmd(),
		a.publishCmd(),
		a.batchCmd(),
		a.stationsCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.logCloser = cfg, closer
	return nil
}

// decode reads a DPR file from path, or from stdin when path is empty or "-".
func (a *app) decode(path string) (*dipr.PrecipRate, error) {
	if path == "" || path == "-" {
		logrus.Debug(color.CyanString("decoding stdin"))
		return dipr.DecodeReader(a.stdin)
	}
	logrus.Debug(color.CyanString("decoding ", path))
	p, err := dipr.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// output opens path for writing, or returns stdout when path is empty or "-".
func (a *app) output(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{a.stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// skipZeros honours --skip-zeros when given and the config file otherwise.
func (a *app) skipZeros(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("skip-zeros") {
		v, _ := cmd.Flags().GetBool("skip-zeros")
		return v
	}
	return a.cfg.SkipZeros
}
