package calibration

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is the subset of a structured logger the calibrator needs.
// *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Recorder persists the outcome of finished calibration attempts. The
// calibrator treats recording as best effort: a recorder failure is logged
// and does not change the calibration outcome.
type Recorder interface {
	Record(s Session) error
}

// Marker is flagged for the duration of a calibration run. The suit driver
// implements it by flipping every sensor to the calibrating status, so
// registry readers can tell reference data from live data.
type Marker interface {
	MarkCalibrating(on bool)
}

// Timing groups the protocol delays. The defaults are dictated by the
// hardware; tests shrink them to keep runs fast.
type Timing struct {
	// PollInterval is the sleep between checks of a callback flag.
	PollInterval time.Duration

	// SettleDelay is the pause between initialising a calibration and
	// opening the recording window, giving the subject time to assume the
	// starting pose.
	SettleDelay time.Duration

	// FramePeriod is the cadence of calibration pose playback, matching
	// the device's 60 Hz frame rate.
	FramePeriod time.Duration

	// StopGrace is the pause after closing the recording window before
	// polling for the processed flag.
	StopGrace time.Duration

	// WaitTimeout bounds every poll loop that depends on a device
	// callback. Zero means wait forever.
	WaitTimeout time.Duration
}

// DefaultTiming returns the production protocol delays.
func DefaultTiming() Timing {
	return Timing{
		PollInterval: 10 * time.Millisecond,
		SettleDelay:  3000 * time.Millisecond,
		FramePeriod:  16 * time.Millisecond,
		StopGrace:    100 * time.Millisecond,
		WaitTimeout:  2 * time.Minute,
	}
}

func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.PollInterval <= 0 {
		t.PollInterval = def.PollInterval
	}
	if t.SettleDelay <= 0 {
		t.SettleDelay = def.SettleDelay
	}
	if t.FramePeriod <= 0 {
		t.FramePeriod = def.FramePeriod
	}
	if t.StopGrace <= 0 {
		t.StopGrace = def.StopGrace
	}
	return t
}

// Options configures a Calibrator.
type Options struct {
	// Connector is the device link. Required.
	Connector Connector

	// MinimumQuality is the lowest quality accepted before a finished
	// calibration is discarded. QualityUnknown selects the default,
	// QualityAcceptable.
	MinimumQuality Quality

	// Timing overrides the protocol delays. Zero fields keep defaults.
	Timing Timing

	// Recorder, if set, receives a Session per finished attempt.
	Recorder Recorder

	// Marker, if set, is raised while a run is active and lowered on any
	// terminal path.
	Marker Marker

	// Logger receives protocol progress. Defaults to a no-op.
	Logger Logger
}

// Calibrator sequences a Connector through the calibration protocol.
// One calibration runs at a time; Calibrate is safe to call concurrently
// and all but one caller will fail with ErrInProgress.
type Calibrator struct {
	connector Connector
	recorder  Recorder
	marker    Marker
	logger    Logger
	timing    Timing

	// Flipped only by Connector callbacks, polled by the calibration
	// goroutine.
	abortedFlag   atomic.Bool
	completedFlag atomic.Bool
	processedFlag atomic.Bool

	inProgress atomic.Bool

	mu          sync.Mutex
	minQuality  Quality
	usedType    string
	usedQuality Quality
}

// New wires a Calibrator to a connector and registers for its callbacks.
// Call Close to unregister.
func New(opts Options) (*Calibrator, error) {
	if opts.Connector == nil {
		return nil, fmt.Errorf("calibration: nil connector")
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if opts.MinimumQuality == QualityUnknown {
		opts.MinimumQuality = QualityAcceptable
	}
	c := &Calibrator{
		connector:  opts.Connector,
		recorder:   opts.Recorder,
		marker:     opts.Marker,
		logger:     opts.Logger,
		timing:     opts.Timing.withDefaults(),
		minQuality: opts.MinimumQuality,
	}
	// A fresh calibrator has no operation pending.
	c.completedFlag.Store(true)
	c.connector.RegisterCallbacks(c)
	return c, nil
}

// Close detaches the calibrator from the connector's callbacks.
func (c *Calibrator) Close() error {
	c.connector.UnregisterCallbacks(c)
	return nil
}

// CalibrationAborted implements Callbacks.
func (c *Calibrator) CalibrationAborted() { c.abortedFlag.Store(true) }

// OperationCompleted implements Callbacks.
func (c *Calibrator) OperationCompleted() { c.completedFlag.Store(true) }

// CalibrationProcessed implements Callbacks.
func (c *Calibrator) CalibrationProcessed() { c.processedFlag.Store(true) }

// InProgress reports whether a calibration is currently running.
func (c *Calibrator) InProgress() bool { return c.inProgress.Load() }

// SetMinimumQuality changes the acceptance threshold for future runs.
func (c *Calibrator) SetMinimumQuality(q Quality) {
	c.mu.Lock()
	c.minQuality = q
	c.mu.Unlock()
}

// MinimumQuality returns the current acceptance threshold.
func (c *Calibrator) MinimumQuality() Quality {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minQuality
}

// LastCalibration returns the type and quality of the calibration currently
// applied on the device, empty and QualityUnknown if none is.
func (c *Calibrator) LastCalibration() (string, Quality) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usedType, c.usedQuality
}

// Abort requests that a running calibration be abandoned. It returns true
// if a calibration was in progress and the request was forwarded to the
// device. The run itself only terminates once the device confirms through
// the aborted callback.
func (c *Calibrator) Abort() bool {
	if !c.inProgress.Load() {
		return false
	}
	c.logger.Info("calibration abort requested")
	c.connector.AbortCalibration()
	return true
}

// Calibrate runs the full protocol for the given calibration type and
// blocks until it reaches a terminal state. It returns nil on success,
// ErrAborted if the run was abandoned, ErrQualityRejected if the result
// fell below the minimum quality, or ErrWaitTimeout if the device went
// quiet. Whatever the outcome, the calibrator is ready for a new run when
// Calibrate returns.
func (c *Calibrator) Calibrate(calibrationType string) error {
	if !c.connector.Connected() {
		return ErrNotConnected
	}
	if !c.inProgress.CompareAndSwap(false, true) {
		return ErrInProgress
	}
	if c.marker != nil {
		c.marker.MarkCalibrating(true)
		defer c.marker.MarkCalibrating(false)
	}

	session := newSession(calibrationType)
	err := c.run(&session, calibrationType)
	session.finish(err)
	c.record(session)
	return err
}

func (c *Calibrator) run(session *Session, calibrationType string) error {
	// Discard any stored calibration of this type first.
	if c.connector.IsCalibrationPerformed(calibrationType) {
		c.logger.Info("discarding stored calibration", "type", calibrationType)
		c.mu.Lock()
		c.usedType = ""
		c.usedQuality = QualityUnknown
		c.mu.Unlock()
		c.connector.ClearCalibration(calibrationType)

		if err := c.pollUntil(func() bool {
			return !c.connector.IsCalibrationPerformed(calibrationType)
		}); err != nil {
			c.cleanup()
			return fmt.Errorf("discarding stored calibration: %w", err)
		}
	}

	c.connector.InitializeCalibration(calibrationType)
	bounds := c.connector.CalibrationPhaseBounds()

	c.logger.Info("starting calibration",
		"type", calibrationType, "phases", max(len(bounds)-1, 0))
	time.Sleep(c.timing.SettleDelay)
	c.connector.StartCalibration()

	for phase := 0; phase+1 < len(bounds); phase++ {
		c.logger.Info("calibration phase",
			"phase", phase, "pose", c.connector.CalibrationPhaseText(phase))
		for frame := bounds[phase]; frame < bounds[phase+1]; frame++ {
			if c.abortedFlag.Load() {
				break
			}
			c.connector.CalibrationPose(frame)
			time.Sleep(c.timing.FramePeriod)
		}
		if c.abortedFlag.Load() {
			c.logger.Warn("calibration aborted during posing", "phase", phase)
			c.cleanup()
			return ErrAborted
		}
	}

	c.processedFlag.Store(false)
	c.connector.StopCalibration()
	time.Sleep(c.timing.StopGrace)

	// Wait for the device to finish processing. Abort wins if both flags
	// become observable.
	if err := c.pollUntil(c.processedFlag.Load); err != nil {
		c.cleanup()
		return fmt.Errorf("waiting for calibration processing: %w", err)
	}

	result := c.connector.CalibrationResult(calibrationType)
	session.Quality = result.Quality
	session.Warnings = result.Warnings
	for _, w := range result.Warnings {
		c.logger.Warn("calibration warning", "type", calibrationType, "warning", w)
	}

	c.mu.Lock()
	minQuality := c.minQuality
	c.mu.Unlock()
	if result.Quality < minQuality {
		// The device has no reject primitive, so a below-threshold result
		// is discarded through the abort path.
		c.logger.Warn("calibration quality below minimum",
			"achieved", result.Quality.String(), "minimum", minQuality.String())
		c.connector.AbortCalibration()
		if err := c.pollAbortConfirmed(); err != nil {
			c.cleanup()
			return fmt.Errorf("discarding rejected calibration: %w", err)
		}
		c.cleanup()
		return fmt.Errorf("%w: achieved %s, minimum %s",
			ErrQualityRejected, result.Quality, minQuality)
	}

	c.completedFlag.Store(false)
	c.connector.FinalizeCalibration()
	if err := c.pollUntil(c.completedFlag.Load); err != nil {
		c.cleanup()
		return fmt.Errorf("finalizing calibration: %w", err)
	}

	c.mu.Lock()
	c.usedType = calibrationType
	c.usedQuality = result.Quality
	c.mu.Unlock()
	c.inProgress.Store(false)
	c.logger.Info("calibration complete",
		"type", calibrationType, "quality", result.Quality.String())
	return nil
}

// pollUntil sleeps in PollInterval steps until cond holds, the aborted flag
// is raised, or the wait budget runs out. The aborted flag is checked first
// so an abort beats a simultaneously satisfied condition.
func (c *Calibrator) pollUntil(cond func() bool) error {
	var deadline time.Time
	if c.timing.WaitTimeout > 0 {
		deadline = time.Now().Add(c.timing.WaitTimeout)
	}
	for {
		if c.abortedFlag.Load() {
			return ErrAborted
		}
		if cond() {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrWaitTimeout
		}
		time.Sleep(c.timing.PollInterval)
	}
}

// pollAbortConfirmed waits for the device to acknowledge a self-triggered
// abort. Unlike pollUntil, a raised aborted flag is the success condition.
func (c *Calibrator) pollAbortConfirmed() error {
	var deadline time.Time
	if c.timing.WaitTimeout > 0 {
		deadline = time.Now().Add(c.timing.WaitTimeout)
	}
	for !c.abortedFlag.Load() {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrWaitTimeout
		}
		time.Sleep(c.timing.PollInterval)
	}
	return nil
}

// cleanup resets the run state after any terminal outcome so the next
// Calibrate starts from a clean slate.
func (c *Calibrator) cleanup() {
	c.mu.Lock()
	c.usedType = ""
	c.usedQuality = QualityUnknown
	c.mu.Unlock()
	c.processedFlag.Store(false)
	c.completedFlag.Store(true)
	c.abortedFlag.Store(false)
	c.inProgress.Store(false)
}

func (c *Calibrator) record(s Session) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(s); err != nil {
		c.logger.Error("recording calibration session", "error", err)
	}
}

// SetBodyDimensions uploads subject dimensions to the device and blocks
// until the device confirms. Labels the device does not list are skipped
// with a warning.
func (c *Calibrator) SetBodyDimensions(dims map[string]float64) error {
	if !c.connector.Connected() {
		return ErrNotConnected
	}
	if len(dims) == 0 {
		return ErrNoDimensions
	}
	if !c.completedFlag.CompareAndSwap(true, false) {
		return ErrDeviceBusy
	}

	known := make(map[string]struct{})
	for _, label := range c.connector.BodyDimensionLabels() {
		known[label] = struct{}{}
	}
	sent := 0
	for name, value := range dims {
		if _, ok := known[name]; !ok {
			c.logger.Warn("skipping unknown body dimension", "name", name)
			continue
		}
		c.connector.SetBodyDimension(name, value)
		sent++
	}
	if sent == 0 {
		c.completedFlag.Store(true)
		return fmt.Errorf("%w: no recognised labels", ErrNoDimensions)
	}

	if err := c.pollUntil(c.completedFlag.Load); err != nil {
		return fmt.Errorf("applying body dimensions: %w", err)
	}
	return nil
}

// BodyDimension returns the device's estimate for one dimension.
func (c *Calibrator) BodyDimension(name string) (float64, error) {
	if !c.connector.Connected() {
		return 0, ErrNotConnected
	}
	value, ok := c.connector.BodyDimensionEstimate(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrDimensionNotFound, name)
	}
	return value, nil
}

// BodyDimensions returns every dimension the device has an estimate for.
func (c *Calibrator) BodyDimensions() (map[string]float64, error) {
	if !c.connector.Connected() {
		return nil, ErrNotConnected
	}
	out := make(map[string]float64)
	for _, label := range c.connector.BodyDimensionLabels() {
		if value, ok := c.connector.BodyDimensionEstimate(label); ok {
			out[label] = value
		}
	}
	return out, nil
}
