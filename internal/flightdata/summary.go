package flightdata

import "math"

const earthRadius = 6371008.8 // meters

// Summary aggregates a flight for display.
type Summary struct {
	Frames      int     `json:"frames" yaml:"frames"`
	MaxAltitude float64 `json:"maxAltitude" yaml:"maxAltitude"` // meters
	MaxSpeed    float64 `json:"maxSpeed" yaml:"maxSpeed"`       // m/s, horizontal
	Distance    float64 `json:"distance" yaml:"distance"`       // meters along the track
}

// Summary walks the frames once.
func (d *FlightData) Summary() Summary {
	var s Summary
	if d == nil {
		return s
	}
	s.Frames = len(d.frames)
	for i, f := range d.frames {
		if i == 0 || f.Altitude > s.MaxAltitude {
			s.MaxAltitude = f.Altitude
		}
		if speed := math.Hypot(f.SpeedX, f.SpeedY); speed > s.MaxSpeed {
			s.MaxSpeed = speed
		}
		if i > 0 {
			prev := d.frames[i-1]
			if hasPosition(prev) && hasPosition(f) {
				s.Distance += haversine(prev.Latitude, prev.Longitude, f.Latitude, f.Longitude)
			}
		}
	}
	return s
}

// hasPosition reports whether the frame carries a GPS fix. Aircraft report
// 0,0 before acquiring satellites.
func hasPosition(f Frame) bool {
	return f.Latitude != 0 || f.Longitude != 0
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	dφ := (lat2 - lat1) * math.Pi / 180
	dλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dφ/2)*math.Sin(dφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
