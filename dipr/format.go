package dipr

import (
	"fmt"
	"strings"
	"time"
)

// String returns the multi-line scan summary printed by `dipr info`.
func (p *PrecipRate) String() string {
	detected := "No"
	if p.PrecipDetected {
		detected = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Station Code:        %s\n", p.StationCode)
	fmt.Fprintf(&b, "Capture Time:        %s\n", p.CaptureTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Operational Mode:    %s\n", p.OperationalMode)
	fmt.Fprintf(&b, "Precip Detected:     %s\n", detected)
	fmt.Fprintf(&b, "Scan Number:         %d\n", p.ScanNumber)
	fmt.Fprintf(&b, "Max Precip Rate:     %.3f in/hr\n", float64(p.MaxPrecipRate))
	fmt.Fprintf(&b, "Bin Size:            %3.0f m\n", float64(p.BinSize))
	fmt.Fprintf(&b, "Number of Radials:  %4d\n", len(p.Radials))
	fmt.Fprintf(&b, "Range to First Bin:  %3.0f m", float64(p.RangeToFirstBin))
	return b.String()
}
