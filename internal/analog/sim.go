package analog

import (
	"math"
	"time"
)

// SimSource is a hardware-free Source. Channels carry phase-shifted
// sinusoids so downstream consumers see plausible, continuous values.
type SimSource struct {
	channels int
	start    time.Time
}

// NewSimSource creates a simulated source with the given channel count.
func NewSimSource(channels int) *SimSource {
	return &SimSource{
		channels: channels,
		start:    time.Now(),
	}
}

// ChannelCount implements Source.
func (s *SimSource) ChannelCount() int { return s.channels }

// Read implements Source. It never fails.
func (s *SimSource) Read() ([]float64, error) {
	t := time.Since(s.start).Seconds()
	frame := make([]float64, s.channels)
	for i := range frame {
		frame[i] = math.Sin(t + float64(i)*0.35)
	}
	return frame, nil
}

// ChannelState implements Source. Simulated channels are always healthy.
func (s *SimSource) ChannelState(int) ChannelState { return ChannelOk }
