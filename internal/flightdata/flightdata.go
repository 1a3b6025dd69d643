// Package flightdata holds decoded flight records.
package flightdata

// Frame is one decoded telemetry sample.
type Frame struct {
	Index     int     `json:"index" yaml:"index"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`   // degrees
	Longitude float64 `json:"longitude" yaml:"longitude"` // degrees
	Altitude  float64 `json:"altitude" yaml:"altitude"`   // meters
	SpeedX    float64 `json:"speedX" yaml:"speedX"`       // m/s, north
	SpeedY    float64 `json:"speedY" yaml:"speedY"`       // m/s, east
	SpeedZ    float64 `json:"speedZ" yaml:"speedZ"`       // m/s, down
	Pitch     float64 `json:"pitch" yaml:"pitch"`         // degrees
	Roll      float64 `json:"roll" yaml:"roll"`           // degrees
	Yaw       float64 `json:"yaw" yaml:"yaw"`             // degrees
}

// FlightData pairs a file name with its decoded frames. It is not modified
// after New returns.
type FlightData struct {
	FileName string
	frames   []Frame
}

// New builds a FlightData that owns frames.
func New(fileName string, frames []Frame) *FlightData {
	return &FlightData{FileName: fileName, frames: frames}
}

// Len returns the number of frames.
func (d *FlightData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.frames)
}

// Frames returns a copy of the decoded frames.
func (d *FlightData) Frames() []Frame {
	if d == nil || len(d.frames) == 0 {
		return nil
	}
	dup := make([]Frame, len(d.frames))
	copy(dup, d.frames)
	return dup
}

// Frame returns the frame at i.
func (d *FlightData) Frame(i int) (Frame, bool) {
	if d == nil || i < 0 || i >= len(d.frames) {
		return Frame{}, false
	}
	return d.frames[i], true
}
