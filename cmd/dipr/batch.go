package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/gis"
	"github.com/jddeal/go-dipr/render"
)

// batch formats
const (
	formatGeoJSON = "geojson"
	formatPNG     = "png"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		outDir   string
		format   string
		size     int
		workers  int
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Convert many DPR files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatGeoJSON && format != formatPNG {
				return fmt.Errorf("unknown format %q: must be %s or %s", format, formatGeoJSON, formatPNG)
			}
			if workers <= 0 {
				workers = a.cfg.Workers
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			b := batch{
				outDir:    outDir,
				format:    format,
				size:      size,
				skipZeros: a.skipZeros(cmd),
			}
			return b.run(args, workers, progress)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for the converted files")
	cmd.Flags().StringVarP(&format, "format", "f", formatGeoJSON, "output format: geojson or png")
	cmd.Flags().IntVarP(&size, "size", "s", 800, "image size for png output")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent conversions, the config value when 0")
	cmd.Flags().BoolVar(&progress, "progress", true, "show a progress bar")
	cmd.Flags().Bool("skip-zeros", false, "leave out bins without precipitation")
	return cmd
}

type batch struct {
	outDir    string
	format    string
	size      int
	skipZeros bool
}

// run converts every file with a bounded pool of workers. Failures are logged and collected;
// the other files are still converted.
func (b batch) run(files []string, workers int, progress bool) error {
	var bar *pb.ProgressBar
	if progress {
		bar = pb.Full.New(len(files)).SetWriter(os.Stderr).Start()
		defer bar.Finish()
	}

	jobs := make(chan string)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range min(workers, len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				if err := b.convert(file); err != nil {
					logrus.Warnf("%s: %v", file, err)
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", file, err))
					mu.Unlock()
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}
	for _, file := range files {
		jobs <- file
	}
	close(jobs)
	wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

func (b batch) convert(file string) error {
	p, err := dipr.DecodeFile(file)
	if err != nil {
		return err
	}

	f, err := os.Create(b.outputPath(file))
	if err != nil {
		return err
	}
	switch b.format {
	case formatPNG:
		err = render.PNG(f, p, b.size)
	default:
		err = gis.WriteGeoJSON(f, p, b.skipZeros)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// outputPath swaps the extension of file for the batch format inside outDir.
func (b batch) outputPath(file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(b.outDir, base+"."+b.format)
}
