package flightdata

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ErrUnsupportedFormat is returned for an export format Export cannot write.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ValidFormat reports whether Export accepts format. Empty means JSON.
func ValidFormat(format string) bool {
	switch normalizeFormat(format) {
	case "", FormatJSON, FormatYAML, FormatCSV:
		return true
	}
	return false
}

// CheckFormat returns ErrUnsupportedFormat, wrapped with the name, when
// format is not one Export writes.
func CheckFormat(format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	return nil
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

type exportDocument struct {
	FileName string  `json:"fileName" yaml:"fileName"`
	Summary  Summary `json:"summary" yaml:"summary"`
	Frames   []Frame `json:"frames" yaml:"frames"`
}

var csvHeader = []string{"index", "latitude", "longitude", "altitude", "speed_x", "speed_y", "speed_z", "pitch", "roll", "yaw"}

// Export writes the flight in the requested format.
func (d *FlightData) Export(w io.Writer, format string) error {
	if d == nil {
		return fmt.Errorf("no flight data")
	}
	switch normalizeFormat(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d.document()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.document()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return d.writeCSV(w)
	default:
		return CheckFormat(format)
	}
}

func (d *FlightData) document() exportDocument {
	frames := d.Frames()
	if frames == nil {
		frames = []Frame{}
	}
	return exportDocument{FileName: d.FileName, Summary: d.Summary(), Frames: frames}
}

func (d *FlightData) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, f := range d.frames {
		row := []string{
			strconv.Itoa(f.Index),
			formatFloat(f.Latitude, 7),
			formatFloat(f.Longitude, 7),
			formatFloat(f.Altitude, 1),
			formatFloat(f.SpeedX, 1),
			formatFloat(f.SpeedY, 1),
			formatFloat(f.SpeedZ, 1),
			formatFloat(f.Pitch, 1),
			formatFloat(f.Roll, 1),
			formatFloat(f.Yaw, 1),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", f.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
