package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/gis"
	"github.com/jddeal/go-dipr/gis/shapefile"
	"github.com/jddeal/go-dipr/render"
	"github.com/jddeal/go-dipr/report"
	"github.com/jddeal/go-dipr/stations"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *app) infoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Print the summary of a DPR file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			if asJSON {
				meta := gis.Metadata(p)
				meta["radials"] = len(p.Radials)
				data, err := json.Marshal(meta)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(data))
				return err
			}
			_, err = fmt.Fprintln(a.stdout, p.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func (a *app) geojsonCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "geojson [file]",
		Short: "Convert a DPR file to a GeoJSON feature collection of bin polygons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			w, err := a.output(out)
			if err != nil {
				return err
			}
			if err := gis.WriteGeoJSON(w, p, a.skipZeros(cmd)); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().Bool("skip-zeros", false, "leave out bins without precipitation")
	return cmd
}

func (a *app) shapefileCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "shapefile [file]",
		Short: "Convert a DPR file to an ESRI shapefile of bin polygons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			if err := shapefile.Write(out, p, a.skipZeros(cmd)); err != nil {
				return err
			}
			logrus.Info(color.CyanString("wrote ", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output .shp file")
	cmd.Flags().Bool("skip-zeros", false, "leave out bins without precipitation")
	cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DPR file to a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			w, err := a.output(out)
			if err != nil {
				return err
			}
			if err := render.PNG(w, p, size); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().IntVarP(&size, "size", "s", 800, "image width and height in pixels")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var (
		out  string
		opts report.Options
	)
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Write a PDF report of a DPR file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			if err := report.Write(out, p, opts); err != nil {
				return err
			}
			logrus.Info(color.CyanString("wrote ", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output .pdf file")
	cmd.Flags().StringVar(&opts.Title, "title", "", "report title")
	cmd.Flags().StringVar(&opts.Link, "link", "", "URL encoded as a QR code on the report")
	cmd.Flags().IntVar(&opts.RenderSize, "size", 0, "size of the embedded image in pixels")
	cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "query [file]",
		Short: "Print the precipitation rate at a point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(argOrEmpty(args))
			if err != nil {
				return err
			}
			rate, ok := p.RateAt(lon, lat)
			if !ok {
				return errors.New("point is not covered by the scan")
			}
			_, err = fmt.Fprintf(a.stdout, "%.3f in/hr (%s)\n", rate, dipr.Classify(rate))
			return err
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")
	return cmd
}

func (a *app) stationsCmd() *cobra.Command {
	var lat, lon, radius float64
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List radar stations, or those covering a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("lat") && !cmd.Flags().Changed("lon") {
				for _, s := range stations.Default.All() {
					fmt.Fprintf(a.stdout, "%s %9.4f %8.4f\n", s.Code, s.Lon, s.Lat)
				}
				return nil
			}
			matches, err := stations.Default.Nearest(lon, lat, radius*1000)
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintf(a.stdout, "%s %6.1f km\n", m.Code, m.Distance/1000)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	cmd.Flags().Float64Var(&radius, "radius", stations.CoverageRadius/1000, "search radius in km")
	return cmd
}
