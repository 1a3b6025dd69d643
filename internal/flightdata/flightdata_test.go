package flightdata

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleFrames() []Frame {
	return []Frame{
		{Index: 0, Latitude: 0, Longitude: 0, Altitude: 0},
		{Index: 1, Latitude: 47.0, Longitude: 8.0, Altitude: 10, SpeedX: 3, SpeedY: 4},
		{Index: 2, Latitude: 47.001, Longitude: 8.0, Altitude: 42.5, SpeedX: 1},
	}
}

func TestFramesReturnsCopy(t *testing.T) {
	d := New("flight.txt", sampleFrames())
	frames := d.Frames()
	frames[1].Altitude = 999

	got, ok := d.Frame(1)
	require.True(t, ok)
	require.Equal(t, 10.0, got.Altitude)
	require.Equal(t, 3, d.Len())

	_, ok = d.Frame(3)
	require.False(t, ok)
}

func TestNilFlightDataIsEmpty(t *testing.T) {
	var d *FlightData
	require.Zero(t, d.Len())
	require.Nil(t, d.Frames())
	require.Equal(t, Summary{}, d.Summary())
	require.Empty(t, d.StaticMapURL("token"))
}

func TestSummary(t *testing.T) {
	s := New("flight.txt", sampleFrames()).Summary()

	require.Equal(t, 3, s.Frames)
	require.InDelta(t, 42.5, s.MaxAltitude, 1e-9)
	require.InDelta(t, 5.0, s.MaxSpeed, 1e-9)
	// 0.001 degrees of latitude is roughly 111 m; the 0,0 frame has no fix.
	require.InDelta(t, 111.2, s.Distance, 0.5)
}

func TestStaticMapURL(t *testing.T) {
	d := New("flight.txt", sampleFrames())

	require.Empty(t, d.StaticMapURL("  "))
	require.Empty(t, New("empty.txt", []Frame{{Index: 0}}).StaticMapURL("tok"))

	raw := d.StaticMapURL("tok")
	require.True(t, strings.HasPrefix(raw, mapboxStaticBase+"/"+mapPathStyle+"("), raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "tok", u.Query().Get("access_token"))
}

func TestEncodePolyline(t *testing.T) {
	// Reference example from the encoded polyline format documentation.
	points := []Frame{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	require.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encodePolyline(points))
}

func TestDownsampleKeepsEndpoints(t *testing.T) {
	points := make([]Frame, 1000)
	for i := range points {
		points[i].Index = i
	}
	out := downsample(points, 10)
	require.Len(t, out, 10)
	require.Equal(t, 0, out[0].Index)
	require.Equal(t, 999, out[9].Index)
}

func TestExportFormats(t *testing.T) {
	d := New("flight.txt", sampleFrames())

	var jsonOut bytes.Buffer
	require.NoError(t, d.Export(&jsonOut, FormatJSON))
	var doc exportDocument
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &doc))
	require.Equal(t, "flight.txt", doc.FileName)
	require.Len(t, doc.Frames, 3)
	require.Equal(t, 3, doc.Summary.Frames)

	var yamlOut bytes.Buffer
	require.NoError(t, d.Export(&yamlOut, "YAML"))
	var ydoc exportDocument
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &ydoc))
	require.Len(t, ydoc.Frames, 3)

	var csvOut bytes.Buffer
	require.NoError(t, d.Export(&csvOut, FormatCSV))
	rows, err := csv.NewReader(&csvOut).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "42.5", rows[3][3])

	require.ErrorIs(t, d.Export(&bytes.Buffer{}, "xml"), ErrUnsupportedFormat)
}

func TestValidFormat(t *testing.T) {
	for _, format := range []string{"", "json", "YAML", " csv "} {
		require.True(t, ValidFormat(format), "format %q", format)
		require.NoError(t, CheckFormat(format))
	}
	for _, format := range []string{"xml", "jsonl", "c sv"} {
		require.False(t, ValidFormat(format), "format %q", format)
		err := CheckFormat(format)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
		require.Contains(t, err.Error(), format)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := haversine(47, 8, 48, 9)
	b := haversine(48, 9, 47, 8)
	require.False(t, math.IsNaN(a))
	require.InDelta(t, a, b, 1e-6)
}
