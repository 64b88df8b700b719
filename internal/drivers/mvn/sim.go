package mvn

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robwear/wearcore/internal/calibration"
	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// Canonical MVN suit layout: 23 body segments, 22 joints, 17 trackers.
var (
	simLinks = []string{
		"Pelvis", "L5", "L3", "T12", "T8", "Neck", "Head",
		"RightShoulder", "RightUpperArm", "RightForeArm", "RightHand",
		"LeftShoulder", "LeftUpperArm", "LeftForeArm", "LeftHand",
		"RightUpperLeg", "RightLowerLeg", "RightFoot", "RightToe",
		"LeftUpperLeg", "LeftLowerLeg", "LeftFoot", "LeftToe",
	}
	simJoints = []string{
		"jL5S1", "jL4L3", "jL1T12", "jT9T8", "jT1C7", "jC1Head",
		"jRightT4Shoulder", "jRightShoulder", "jRightElbow", "jRightWrist",
		"jLeftT4Shoulder", "jLeftShoulder", "jLeftElbow", "jLeftWrist",
		"jRightHip", "jRightKnee", "jRightAnkle", "jRightBallFoot",
		"jLeftHip", "jLeftKnee", "jLeftAnkle", "jLeftBallFoot",
	}
	simIMUs = []string{
		"Pelvis", "T8", "Head",
		"RightShoulder", "RightUpperArm", "RightForeArm", "RightHand",
		"LeftShoulder", "LeftUpperArm", "LeftForeArm", "LeftHand",
		"RightUpperLeg", "RightLowerLeg", "RightFoot",
		"LeftUpperLeg", "LeftLowerLeg", "LeftFoot",
	}
	simDimensionLabels = []string{
		"bodyHeight", "footSize", "armSpan", "hipHeight",
		"hipWidth", "kneeHeight", "ankleHeight", "shoulderWidth",
	}
)

// SimOptions configures a Sim engine.
type SimOptions struct {
	// FrameRate is the streaming cadence. Zero keeps 60 Hz.
	FrameRate time.Duration

	// Quality is the grade every calibration run achieves.
	// Zero keeps QualityGood.
	Quality calibration.Quality

	// PhaseBounds overrides the calibration pose phases. Nil keeps two
	// 120-frame phases.
	PhaseBounds []int

	// ConfirmDelay is how long the sim waits before firing a callback
	// after a stop, finalize, abort or dimension upload. Zero keeps 5ms.
	ConfirmDelay time.Duration
}

// Sim is a hardware-free Engine. Frames carry smooth sinusoidal motion so
// downstream consumers see plausible, continuous data.
type Sim struct {
	frameRate    time.Duration
	quality      calibration.Quality
	phaseBounds  []int
	confirmDelay time.Duration

	mu         sync.Mutex
	cbs        []calibration.Callbacks
	onFrame    func(Frame)
	started    bool
	current    string
	stored     map[string]bool
	dimensions map[string]float64
	tick       uint64

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewSim builds a simulated suit with the canonical MVN layout.
func NewSim(opts SimOptions) *Sim {
	if opts.FrameRate <= 0 {
		opts.FrameRate = time.Second / 60
	}
	if opts.Quality == calibration.QualityUnknown {
		opts.Quality = calibration.QualityGood
	}
	if opts.PhaseBounds == nil {
		opts.PhaseBounds = []int{0, 120, 240}
	}
	if opts.ConfirmDelay <= 0 {
		opts.ConfirmDelay = 5 * time.Millisecond
	}
	return &Sim{
		frameRate:    opts.FrameRate,
		quality:      opts.Quality,
		phaseBounds:  opts.PhaseBounds,
		confirmDelay: opts.ConfirmDelay,
		stored:       make(map[string]bool),
		dimensions: map[string]float64{
			"bodyHeight": 1.78,
			"armSpan":    1.79,
			"footSize":   0.27,
		},
		done: make(chan struct{}),
	}
}

// Layout implements Engine.
func (s *Sim) Layout() Layout {
	return Layout{Links: simLinks, Joints: simJoints, IMUs: simIMUs}
}

// SetOnFrame implements Engine.
func (s *Sim) SetOnFrame(handler func(Frame)) {
	s.mu.Lock()
	s.onFrame = handler
	s.mu.Unlock()
}

// Start implements Engine.
func (s *Sim) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("mvn: sim already started")
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.stream()
	return nil
}

// Stop implements Engine.
func (s *Sim) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
	})
}

func (s *Sim) stream() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.tick++
			tick := s.tick
			handler := s.onFrame
			s.mu.Unlock()
			if handler != nil {
				handler(s.synthesize(tick, now))
			}
		}
	}
}

// synthesize builds one frame of smooth motion. Each element oscillates
// with a phase offset derived from its index so no two move identically.
func (s *Sim) synthesize(tick uint64, now time.Time) Frame {
	t := float64(tick) * s.frameRate.Seconds()
	f := Frame{
		Time:   now,
		Links:  make(map[string]buffered.LinkState, len(simLinks)),
		Joints: make(map[string]JointSample, len(simJoints)),
		IMUs:   make(map[string]IMUSample, len(simIMUs)),
	}

	for i, link := range simLinks {
		phase := t + float64(i)*0.37
		angle := 0.1 * math.Sin(phase)
		f.Links[link] = buffered.LinkState{
			Position:            wearable.Vector3{0.01 * math.Sin(phase), 0.01 * math.Cos(phase), 1.0},
			Orientation:         wearable.RPYToQuaternion(wearable.Vector3{0, 0, angle}),
			LinearVelocity:      wearable.Vector3{0.01 * math.Cos(phase), -0.01 * math.Sin(phase), 0},
			AngularVelocity:     wearable.Vector3{0, 0, 0.1 * math.Cos(phase)},
			LinearAcceleration:  wearable.Vector3{-0.01 * math.Sin(phase), -0.01 * math.Cos(phase), 0},
			AngularAcceleration: wearable.Vector3{0, 0, -0.1 * math.Sin(phase)},
		}
	}
	for i, joint := range simJoints {
		phase := t + float64(i)*0.53
		f.Joints[joint] = JointSample{
			Angles:        wearable.Vector3{0.2 * math.Sin(phase), 0.1 * math.Cos(phase), 0},
			Velocities:    wearable.Vector3{0.2 * math.Cos(phase), -0.1 * math.Sin(phase), 0},
			Accelerations: wearable.Vector3{-0.2 * math.Sin(phase), -0.1 * math.Cos(phase), 0},
		}
	}
	for i, imu := range simIMUs {
		phase := t + float64(i)*0.71
		f.IMUs[imu] = IMUSample{
			Acceleration:     wearable.Vector3{0.2 * math.Sin(phase), 0.2 * math.Cos(phase), 9.81},
			AngularVelocity:  wearable.Vector3{0.05 * math.Cos(phase), 0, 0.05 * math.Sin(phase)},
			MagneticField:    wearable.Vector3{0.2, 0, 0.45},
			FreeAcceleration: wearable.Vector3{0.2 * math.Sin(phase), 0.2 * math.Cos(phase), 0},
			Orientation:      wearable.RPYToQuaternion(wearable.Vector3{0.05 * math.Sin(phase), 0, 0}),
		}
	}
	return f
}

// confirm fires one callback notification after the configured delay, from
// its own goroutine like real device acknowledgements.
func (s *Sim) confirm(fire func(calibration.Callbacks)) {
	s.mu.Lock()
	cbs := make([]calibration.Callbacks, len(s.cbs))
	copy(cbs, s.cbs)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.confirmDelay)
		for _, cb := range cbs {
			fire(cb)
		}
	}()
}

// Connected implements calibration.Connector.
func (s *Sim) Connected() bool { return true }

// IsCalibrationPerformed implements calibration.Connector.
func (s *Sim) IsCalibrationPerformed(calibrationType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored[calibrationType]
}

// ClearCalibration implements calibration.Connector.
func (s *Sim) ClearCalibration(calibrationType string) {
	s.mu.Lock()
	s.stored[calibrationType] = false
	s.mu.Unlock()
}

// InitializeCalibration implements calibration.Connector.
func (s *Sim) InitializeCalibration(calibrationType string) {
	s.mu.Lock()
	s.current = calibrationType
	s.mu.Unlock()
}

// CalibrationPhaseBounds implements calibration.Connector.
func (s *Sim) CalibrationPhaseBounds() []int { return s.phaseBounds }

// CalibrationPhaseText implements calibration.Connector.
func (s *Sim) CalibrationPhaseText(phase int) string {
	switch phase {
	case 0:
		return "stand still in N-pose"
	case 1:
		return "walk back and forth"
	default:
		return fmt.Sprintf("phase %d", phase)
	}
}

// StartCalibration implements calibration.Connector.
func (s *Sim) StartCalibration() {}

// CalibrationPose implements calibration.Connector.
func (s *Sim) CalibrationPose(int) {}

// StopCalibration implements calibration.Connector.
func (s *Sim) StopCalibration() {
	s.confirm(func(cb calibration.Callbacks) { cb.CalibrationProcessed() })
}

// CalibrationResult implements calibration.Connector.
func (s *Sim) CalibrationResult(string) calibration.Result {
	return calibration.Result{Quality: s.quality}
}

// FinalizeCalibration implements calibration.Connector.
func (s *Sim) FinalizeCalibration() {
	s.mu.Lock()
	if s.current != "" {
		s.stored[s.current] = true
	}
	s.mu.Unlock()
	s.confirm(func(cb calibration.Callbacks) { cb.OperationCompleted() })
}

// AbortCalibration implements calibration.Connector.
func (s *Sim) AbortCalibration() {
	s.confirm(func(cb calibration.Callbacks) { cb.CalibrationAborted() })
}

// BodyDimensionLabels implements calibration.Connector.
func (s *Sim) BodyDimensionLabels() []string { return simDimensionLabels }

// SetBodyDimension implements calibration.Connector.
func (s *Sim) SetBodyDimension(name string, value float64) {
	s.mu.Lock()
	s.dimensions[name] = value
	s.mu.Unlock()
	s.confirm(func(cb calibration.Callbacks) { cb.OperationCompleted() })
}

// BodyDimensionEstimate implements calibration.Connector.
func (s *Sim) BodyDimensionEstimate(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.dimensions[name]
	return v, ok
}

// RegisterCallbacks implements calibration.Connector.
func (s *Sim) RegisterCallbacks(cb calibration.Callbacks) {
	s.mu.Lock()
	s.cbs = append(s.cbs, cb)
	s.mu.Unlock()
}

// UnregisterCallbacks implements calibration.Connector.
func (s *Sim) UnregisterCallbacks(cb calibration.Callbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.cbs {
		if registered == cb {
			s.cbs = append(s.cbs[:i], s.cbs[i+1:]...)
			return
		}
	}
}

var _ Engine = (*Sim)(nil)
