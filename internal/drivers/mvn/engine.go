package mvn

import (
	"time"

	"github.com/robwear/wearcore/internal/calibration"
	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// Layout describes the elements a connected suit exposes. Names are stable
// across frames and become part of the sensor names the driver registers.
type Layout struct {
	// Links are the body segments the engine estimates.
	Links []string

	// Joints are the spherical joints between segments.
	Joints []string

	// IMUs are the physical inertial units on the suit.
	IMUs []string
}

// IMUSample is one inertial unit's contribution to a frame.
type IMUSample struct {
	Acceleration     wearable.Vector3
	AngularVelocity  wearable.Vector3
	MagneticField    wearable.Vector3
	FreeAcceleration wearable.Vector3
	Orientation      wearable.Quaternion
}

// JointSample is one spherical joint's contribution to a frame, as RPY
// angles and their derivatives.
type JointSample struct {
	Angles        wearable.Vector3
	Velocities    wearable.Vector3
	Accelerations wearable.Vector3
}

// Frame is one processed engine output. Maps are keyed by the layout names;
// elements missing from a frame keep their previous buffered value.
type Frame struct {
	Time   time.Time
	Links  map[string]buffered.LinkState
	Joints map[string]JointSample
	IMUs   map[string]IMUSample
}

// Engine is the device link the driver consumes: calibration control plus
// frame streaming. Start begins frame delivery to the handler registered
// with SetOnFrame; the handler is invoked from the engine's goroutine and
// must not block.
type Engine interface {
	calibration.Connector

	// Layout returns the suit's element names. Valid once Connected.
	Layout() Layout

	// SetOnFrame registers the frame handler. Must be called before Start.
	SetOnFrame(handler func(Frame))

	// Start begins streaming frames.
	Start() error

	// Stop ends streaming and releases the device link.
	Stop()
}
