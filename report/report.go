// Package report renders a one page PDF summary of a DPR scan.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/render"
)

// Options tune the report.
type Options struct {
	Title      string // defaults to "<station> Precipitation Rate"
	RenderSize int    // pixel size of the embedded scan image, defaults to 800
	Link       string // encoded as a QR code when set, eg the GeoJSON URL of the scan
	QRSize     int    // pixel size of the QR code, defaults to 128
}

func (o Options) withDefaults(p *dipr.PrecipRate) Options {
	if o.Title == "" {
		o.Title = p.StationCode + " Precipitation Rate"
	}
	if o.RenderSize <= 0 {
		o.RenderSize = 800
	}
	if o.QRSize <= 0 {
		o.QRSize = 128
	}
	return o
}

// Write saves the report of p to path.
func Write(path string, p *dipr.PrecipRate, opts Options) error {
	pdf, err := build(p, opts)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteTo writes the report of p to w.
func WriteTo(w io.Writer, p *dipr.PrecipRate, opts Options) error {
	pdf, err := build(p, opts)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func build(p *dipr.PrecipRate, opts Options) (*gofpdf.Fpdf, error) {
	opts = opts.withDefaults(p)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, false)
	pdf.SetAuthor("dipr", false)
	pdf.SetCreator("dipr", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addTitle(pdf, opts.Title)
	addSummarySection(pdf, p)
	addIntensitySection(pdf, p)
	if err := addScanImage(pdf, p, opts.RenderSize); err != nil {
		return nil, err
	}
	if opts.Link != "" {
		if err := addQR(pdf, opts.Link, opts.QRSize); err != nil {
			return nil, err
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func addTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, p *dipr.PrecipRate) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "Station", value: p.StationCode},
		{label: "Capture Time", value: p.CaptureTime.Format(time.RFC3339)},
		{label: "Scan Number", value: strconv.Itoa(int(p.ScanNumber))},
		{label: "Operational Mode", value: p.OperationalMode.String()},
		{label: "Precip Detected", value: yesNo(p.PrecipDetected)},
		{label: "Max Precip Rate", value: fmt.Sprintf("%.3f in/hr", float64(p.MaxPrecipRate))},
		{label: "Location", value: fmt.Sprintf("%.3f, %.3f", float64(p.Location.Lat), float64(p.Location.Lon))},
		{label: "Bin Size", value: fmt.Sprintf("%.0f m", float64(p.BinSize))},
		{label: "Radials", value: strconv.Itoa(len(p.Radials))},
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// IntensityCounts tallies the bins of p by intensity class.
func IntensityCounts(p *dipr.PrecipRate) map[dipr.Intensity]int {
	counts := map[dipr.Intensity]int{}
	for _, r := range p.Radials {
		for _, rate := range r.Rates {
			counts[dipr.Classify(rate)]++
		}
	}
	return counts
}

func addIntensitySection(pdf *gofpdf.Fpdf, p *dipr.PrecipRate) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Bins by Intensity")
	pdf.Ln(9)

	widths := []float64{40, 30}
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 7, "Intensity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 7, "Bins", "1", 1, "L", true, 0, "")

	counts := IntensityCounts(p)
	pdf.SetFont("Helvetica", "", 10)
	for i := dipr.IntensityNone; i <= dipr.IntensityViolent; i++ {
		pdf.CellFormat(widths[0], 6, i.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(counts[i]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func addScanImage(pdf *gofpdf.Fpdf, p *dipr.PrecipRate, size int) error {
	var buf bytes.Buffer
	if err := render.PNG(&buf, p, size); err != nil {
		return fmt.Errorf("render scan: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scan", opts, &buf)
	pdf.ImageOptions("scan", pdf.GetX(), pdf.GetY(), 120, 120, true, opts, 0, "")
	return nil
}

func addQR(pdf *gofpdf.Fpdf, link string, size int) error {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))

	pdf.Ln(4)
	pdf.ImageOptions("qr", pdf.GetX(), pdf.GetY(), 30, 30, true, opts, 0, link)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, link, "", "L", false)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
