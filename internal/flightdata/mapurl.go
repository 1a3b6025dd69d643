package flightdata

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

const (
	mapboxStaticBase = "https://api.mapbox.com/styles/v1/mapbox/satellite-streets-v12/static"
	mapPathStyle     = "path-3+f44-0.8"
	mapSize          = "800x600"
	maxPathPoints    = 200
)

// StaticMapURL returns a Mapbox static image URL tracing the flight path, or
// an empty string when token is blank or no frame has a position.
func (d *FlightData) StaticMapURL(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || d == nil {
		return ""
	}
	var points []Frame
	for _, f := range d.frames {
		if hasPosition(f) {
			points = append(points, f)
		}
	}
	if len(points) == 0 {
		return ""
	}
	points = downsample(points, maxPathPoints)

	overlay := fmt.Sprintf("%s(%s)", mapPathStyle, url.PathEscape(encodePolyline(points)))
	values := url.Values{}
	values.Set("access_token", token)
	return fmt.Sprintf("%s/%s/auto/%s?%s", mapboxStaticBase, overlay, mapSize, values.Encode())
}

// downsample keeps the first and last point and spreads the rest evenly.
func downsample(points []Frame, limit int) []Frame {
	if len(points) <= limit || limit < 2 {
		return points
	}
	out := make([]Frame, 0, limit)
	step := float64(len(points)-1) / float64(limit-1)
	for i := 0; i < limit; i++ {
		out = append(out, points[int(math.Round(float64(i)*step))])
	}
	return out
}

// encodePolyline implements the precision-5 encoded polyline format.
func encodePolyline(points []Frame) string {
	var b strings.Builder
	var prevLat, prevLon int64
	for _, p := range points {
		lat := int64(math.Round(p.Latitude * 1e5))
		lon := int64(math.Round(p.Longitude * 1e5))
		encodeValue(&b, lat-prevLat)
		encodeValue(&b, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return b.String()
}

func encodeValue(b *strings.Builder, v int64) {
	v <<= 1
	if v < 0 {
		v = ^v
	}
	for v >= 0x20 {
		b.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	b.WriteByte(byte(v + 63))
}
