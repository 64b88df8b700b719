package mvn

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// Logger is the subset of a structured logger the driver needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

const defaultStaleAfter = 500 * time.Millisecond

// Options configures a Driver.
type Options struct {
	// WearableName is the registry name of this device, e.g. "MVNSuit".
	WearableName string

	// Engine is the device link. Required and must already be Connected,
	// since the sensor set is derived from its layout.
	Engine Engine

	// StaleAfter marks all sensors with a timeout status when no frame
	// arrives for this long. Zero keeps the default of 500ms.
	StaleAfter time.Duration

	// Logger receives driver events. Defaults to a no-op.
	Logger Logger
}

// Driver exposes a motion capture engine as a wearable device. It embeds a
// sensor collection, so the registry surface is available directly on the
// driver once New returns; buffers start in the waiting state and fill with
// the first frame after Start.
type Driver struct {
	*wearable.Collection

	engine     Engine
	logger     Logger
	staleAfter time.Duration

	seq       atomic.Uint64
	lastFrame atomic.Int64 // unix nanos of the newest frame, 0 before the first

	links     map[string]*buffered.VirtualLinkKinSensor
	poses     map[string]*buffered.PoseSensor
	positions map[string]*buffered.PositionSensor
	joints    map[string]*buffered.VirtualSphericalJointKinSensor

	accels   map[string]*buffered.Accelerometer
	gyros    map[string]*buffered.Gyroscope
	mags     map[string]*buffered.Magnetometer
	freeAccs map[string]*buffered.FreeBodyAccelerationSensor
	orients  map[string]*buffered.OrientationSensor

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// sensorName builds the registry name of one sensor:
// <wearable>::<type>::<element>.
func sensorName(wearableName string, typ wearable.SensorType, element string) string {
	return wearableName + "::" + typ.String() + "::" + element
}

// New creates the driver and registers one buffered sensor per capability
// and layout element. Frames do not flow until Start.
func New(opts Options) (*Driver, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("mvn: nil engine")
	}
	if opts.WearableName == "" {
		return nil, fmt.Errorf("mvn: empty wearable name")
	}
	if !opts.Engine.Connected() {
		return nil, fmt.Errorf("mvn: engine not connected")
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaultStaleAfter
	}

	d := &Driver{
		Collection: wearable.NewCollection(opts.WearableName),
		engine:     opts.Engine,
		logger:     opts.Logger,
		staleAfter: opts.StaleAfter,
		links:      make(map[string]*buffered.VirtualLinkKinSensor),
		poses:      make(map[string]*buffered.PoseSensor),
		positions:  make(map[string]*buffered.PositionSensor),
		joints:     make(map[string]*buffered.VirtualSphericalJointKinSensor),
		accels:     make(map[string]*buffered.Accelerometer),
		gyros:      make(map[string]*buffered.Gyroscope),
		mags:       make(map[string]*buffered.Magnetometer),
		freeAccs:   make(map[string]*buffered.FreeBodyAccelerationSensor),
		orients:    make(map[string]*buffered.OrientationSensor),
		done:       make(chan struct{}),
	}
	if err := d.buildSensors(opts.Engine.Layout()); err != nil {
		return nil, err
	}
	d.engine.SetOnFrame(d.onFrame)
	return d, nil
}

func (d *Driver) buildSensors(layout Layout) error {
	const waiting = wearable.SensorStatusWaitingForFirstRead
	name := d.WearableName()

	for _, link := range layout.Links {
		kin := buffered.NewVirtualLinkKinSensor(
			sensorName(name, wearable.SensorTypeVirtualLinkKinSensor, link), waiting)
		pose := buffered.NewPoseSensor(
			sensorName(name, wearable.SensorTypePoseSensor, link), waiting)
		pos := buffered.NewPositionSensor(
			sensorName(name, wearable.SensorTypePositionSensor, link), waiting)
		for _, s := range []wearable.Sensor{kin, pose, pos} {
			if err := d.AddSensor(s); err != nil {
				return fmt.Errorf("registering link sensors for %q: %w", link, err)
			}
		}
		d.links[link] = kin
		d.poses[link] = pose
		d.positions[link] = pos
	}

	for _, joint := range layout.Joints {
		s := buffered.NewVirtualSphericalJointKinSensor(
			sensorName(name, wearable.SensorTypeVirtualSphericalJointKinSensor, joint), waiting)
		if err := d.AddSensor(s); err != nil {
			return fmt.Errorf("registering joint sensor for %q: %w", joint, err)
		}
		d.joints[joint] = s
	}

	for _, imu := range layout.IMUs {
		acc := buffered.NewAccelerometer(
			sensorName(name, wearable.SensorTypeAccelerometer, imu), waiting)
		gyro := buffered.NewGyroscope(
			sensorName(name, wearable.SensorTypeGyroscope, imu), waiting)
		mag := buffered.NewMagnetometer(
			sensorName(name, wearable.SensorTypeMagnetometer, imu), waiting)
		free := buffered.NewFreeBodyAccelerationSensor(
			sensorName(name, wearable.SensorTypeFreeBodyAccelerationSensor, imu), waiting)
		orient := buffered.NewOrientationSensor(
			sensorName(name, wearable.SensorTypeOrientationSensor, imu), waiting)
		for _, s := range []wearable.Sensor{acc, gyro, mag, free, orient} {
			if err := d.AddSensor(s); err != nil {
				return fmt.Errorf("registering imu sensors for %q: %w", imu, err)
			}
		}
		d.accels[imu] = acc
		d.gyros[imu] = gyro
		d.mags[imu] = mag
		d.freeAccs[imu] = free
		d.orients[imu] = orient
	}

	d.logger.Info("mvn sensors registered",
		"wearable", name,
		"links", len(layout.Links),
		"joints", len(layout.Joints),
		"imus", len(layout.IMUs))
	return nil
}

// Start begins streaming and the staleness watchdog.
func (d *Driver) Start() error {
	if err := d.engine.Start(); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	d.wg.Add(1)
	go d.watchStaleness()
	d.logger.Info("mvn driver started", "wearable", d.WearableName())
	return nil
}

// Stop ends streaming. Buffers keep their last values.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		d.engine.Stop()
		d.wg.Wait()
		d.logger.Info("mvn driver stopped", "wearable", d.WearableName())
	})
}

// Engine returns the underlying device link, which also serves as the
// calibration connector.
func (d *Driver) Engine() Engine { return d.engine }

func (d *Driver) onFrame(f Frame) {
	seq := d.seq.Add(1)
	ts := f.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	d.lastFrame.Store(ts.UnixNano())

	const ok = wearable.SensorStatusOk
	for link, state := range f.Links {
		kin, found := d.links[link]
		if !found {
			d.logger.Warn("frame carries unknown link", "link", link)
			continue
		}
		kin.SetBuffer(state, ok)
		d.poses[link].SetBuffer(state.Orientation, state.Position, ok)
		d.positions[link].SetBuffer(state.Position, ok)
	}
	for joint, sample := range f.Joints {
		s, found := d.joints[joint]
		if !found {
			d.logger.Warn("frame carries unknown joint", "joint", joint)
			continue
		}
		s.SetBuffer(sample.Angles, sample.Velocities, sample.Accelerations, ok)
	}
	for imu, sample := range f.IMUs {
		acc, found := d.accels[imu]
		if !found {
			d.logger.Warn("frame carries unknown imu", "imu", imu)
			continue
		}
		acc.SetBuffer(sample.Acceleration, ok)
		d.gyros[imu].SetBuffer(sample.AngularVelocity, ok)
		d.mags[imu].SetBuffer(sample.MagneticField, ok)
		d.freeAccs[imu].SetBuffer(sample.FreeAcceleration, ok)
		d.orients[imu].SetBuffer(sample.Orientation, ok)
	}

	d.SetTimestamp(wearable.Timestamp{Time: ts, Sequence: seq})
	d.SetStatus(ok)
}

// MarkCalibrating flips every sensor between the calibrating status and its
// normal flow. It implements calibration.Marker: the calibrator brackets
// every run with it so registry readers can tell reference data from live
// data.
func (d *Driver) MarkCalibrating(on bool) {
	status := wearable.SensorStatusCalibrating
	if !on {
		status = wearable.SensorStatusOk
		if d.lastFrame.Load() == 0 {
			status = wearable.SensorStatusWaitingForFirstRead
		}
	}
	d.setAllSensorStatus(status)
	d.SetStatus(status)
}

func (d *Driver) setAllSensorStatus(status wearable.SensorStatus) {
	for _, s := range d.links {
		s.SetStatus(status)
	}
	for _, s := range d.poses {
		s.SetStatus(status)
	}
	for _, s := range d.positions {
		s.SetStatus(status)
	}
	for _, s := range d.joints {
		s.SetStatus(status)
	}
	for _, s := range d.accels {
		s.SetStatus(status)
	}
	for _, s := range d.gyros {
		s.SetStatus(status)
	}
	for _, s := range d.mags {
		s.SetStatus(status)
	}
	for _, s := range d.freeAccs {
		s.SetStatus(status)
	}
	for _, s := range d.orients {
		s.SetStatus(status)
	}
}

// watchStaleness marks every sensor with a timeout status when the engine
// goes quiet for longer than staleAfter, and clears it on the next frame.
func (d *Driver) watchStaleness() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.staleAfter / 2)
	defer ticker.Stop()

	stale := false
	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			last := d.lastFrame.Load()
			if last == 0 {
				continue
			}
			quiet := time.Since(time.Unix(0, last)) > d.staleAfter
			switch {
			case quiet && !stale:
				stale = true
				d.logger.Warn("mvn frames stale", "wearable", d.WearableName())
				d.setAllSensorStatus(wearable.SensorStatusTimeout)
				d.SetStatus(wearable.SensorStatusTimeout)
			case !quiet && stale:
				stale = false
				d.logger.Info("mvn frames resumed", "wearable", d.WearableName())
			}
		}
	}
}
