package buffered

import (
	"sync"

	"github.com/robwear/wearcore/internal/wearable"
)

// sensorBase carries the immutable identity shared by every buffered sensor.
// Status is deliberately not here: it lives next to each type's buffer so a
// reader never observes a buffer/status pair from two different writes.
type sensorBase struct {
	name string
	typ  wearable.SensorType
}

func (b *sensorBase) SensorName() string              { return b.name }
func (b *sensorBase) SensorType() wearable.SensorType { return b.typ }

// Accelerometer buffers the latest linear acceleration sample.
type Accelerometer struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewAccelerometer(name string, status wearable.SensorStatus) *Accelerometer {
	return &Accelerometer{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeAccelerometer},
		status:     status,
	}
}

func (s *Accelerometer) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Accelerometer) LinearAcceleration() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

// SetBuffer stores a new sample together with the status describing it.
func (s *Accelerometer) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *Accelerometer) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// EmgSensor buffers the latest EMG value and its normalisation.
type EmgSensor struct {
	sensorBase
	mu            sync.Mutex
	status        wearable.SensorStatus
	value         float64
	normalization float64
}

func NewEmgSensor(name string, status wearable.SensorStatus) *EmgSensor {
	return &EmgSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeEmgSensor},
		status:     status,
	}
}

func (s *EmgSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *EmgSensor) EmgSignal() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, true
}

func (s *EmgSensor) NormalizationValue() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.normalization, true
}

func (s *EmgSensor) SetBuffer(value, normalization float64, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.normalization = normalization
	s.status = status
}

func (s *EmgSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Force3DSensor buffers the latest 3D force sample.
type Force3DSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewForce3DSensor(name string, status wearable.SensorStatus) *Force3DSensor {
	return &Force3DSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeForce3DSensor},
		status:     status,
	}
}

func (s *Force3DSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Force3DSensor) Force3D() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *Force3DSensor) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *Force3DSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// ForceTorque6DSensor buffers a paired force and torque. Both vectors are
// written atomically in one critical section.
type ForceTorque6DSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	force  wearable.Vector3
	torque wearable.Vector3
}

func NewForceTorque6DSensor(name string, status wearable.SensorStatus) *ForceTorque6DSensor {
	return &ForceTorque6DSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeForceTorque6DSensor},
		status:     status,
	}
}

func (s *ForceTorque6DSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ForceTorque6DSensor) ForceTorque6D() (force, torque wearable.Vector3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.force, s.torque, true
}

func (s *ForceTorque6DSensor) SetBuffer(force, torque wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.force = force
	s.torque = torque
	s.status = status
}

func (s *ForceTorque6DSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// FreeBodyAccelerationSensor buffers gravity-compensated acceleration.
type FreeBodyAccelerationSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewFreeBodyAccelerationSensor(name string, status wearable.SensorStatus) *FreeBodyAccelerationSensor {
	return &FreeBodyAccelerationSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeFreeBodyAccelerationSensor},
		status:     status,
	}
}

func (s *FreeBodyAccelerationSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *FreeBodyAccelerationSensor) FreeBodyAcceleration() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *FreeBodyAccelerationSensor) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *FreeBodyAccelerationSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Gyroscope buffers the latest angular rate sample.
type Gyroscope struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewGyroscope(name string, status wearable.SensorStatus) *Gyroscope {
	return &Gyroscope{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeGyroscope},
		status:     status,
	}
}

func (s *Gyroscope) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Gyroscope) AngularRate() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *Gyroscope) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *Gyroscope) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Magnetometer buffers the latest magnetic field sample.
type Magnetometer struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewMagnetometer(name string, status wearable.SensorStatus) *Magnetometer {
	return &Magnetometer{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeMagnetometer},
		status:     status,
	}
}

func (s *Magnetometer) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Magnetometer) MagneticField() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *Magnetometer) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *Magnetometer) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// OrientationSensor buffers the latest orientation quaternion.
type OrientationSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Quaternion
}

func NewOrientationSensor(name string, status wearable.SensorStatus) *OrientationSensor {
	return &OrientationSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeOrientationSensor},
		status:     status,
	}
}

func (s *OrientationSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *OrientationSensor) Orientation() (wearable.Quaternion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *OrientationSensor) SetBuffer(data wearable.Quaternion, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *OrientationSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// PoseSensor buffers orientation plus position, written atomically.
type PoseSensor struct {
	sensorBase
	mu          sync.Mutex
	status      wearable.SensorStatus
	orientation wearable.Quaternion
	position    wearable.Vector3
}

func NewPoseSensor(name string, status wearable.SensorStatus) *PoseSensor {
	return &PoseSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypePoseSensor},
		status:     status,
	}
}

func (s *PoseSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *PoseSensor) Pose() (orientation wearable.Quaternion, position wearable.Vector3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orientation, s.position, true
}

func (s *PoseSensor) SetBuffer(orientation wearable.Quaternion, position wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orientation = orientation
	s.position = position
	s.status = status
}

func (s *PoseSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// PositionSensor buffers the latest position sample.
type PositionSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewPositionSensor(name string, status wearable.SensorStatus) *PositionSensor {
	return &PositionSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypePositionSensor},
		status:     status,
	}
}

func (s *PositionSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *PositionSensor) Position() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *PositionSensor) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *PositionSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// SkinSensor buffers a variable-length taxel pressure array. The length is
// fixed by the driver at attach time; readers get a copy.
type SkinSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	values []float64
}

func NewSkinSensor(name string, taxels int, status wearable.SensorStatus) *SkinSensor {
	return &SkinSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeSkinSensor},
		status:     status,
		values:     make([]float64, taxels),
	}
}

func (s *SkinSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *SkinSensor) Pressure() ([]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out, true
}

// SetBuffer copies the given values into the internal buffer. A length
// mismatch against the attach-time taxel count leaves the buffer unchanged
// and marks the sensor in error.
func (s *SkinSensor) SetBuffer(values []float64, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(values) != len(s.values) {
		s.status = wearable.SensorStatusError
		return
	}
	copy(s.values, values)
	s.status = status
}

func (s *SkinSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// TemperatureSensor buffers the latest temperature sample.
type TemperatureSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	value  float64
}

func NewTemperatureSensor(name string, status wearable.SensorStatus) *TemperatureSensor {
	return &TemperatureSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeTemperatureSensor},
		status:     status,
	}
}

func (s *TemperatureSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *TemperatureSensor) Temperature() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, true
}

func (s *TemperatureSensor) SetBuffer(value float64, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.status = status
}

func (s *TemperatureSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Torque3DSensor buffers the latest 3D torque sample.
type Torque3DSensor struct {
	sensorBase
	mu     sync.Mutex
	status wearable.SensorStatus
	buffer wearable.Vector3
}

func NewTorque3DSensor(name string, status wearable.SensorStatus) *Torque3DSensor {
	return &Torque3DSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeTorque3DSensor},
		status:     status,
	}
}

func (s *Torque3DSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Torque3DSensor) Torque3D() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, true
}

func (s *Torque3DSensor) SetBuffer(data wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = data
	s.status = status
}

func (s *Torque3DSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// VirtualLinkKinSensor buffers the full kinematic state of a body link.
// All six fields are written atomically so the three accessors observe a
// consistent frame.
type VirtualLinkKinSensor struct {
	sensorBase
	mu          sync.Mutex
	status      wearable.SensorStatus
	linearAcc   wearable.Vector3
	angularAcc  wearable.Vector3
	linearVel   wearable.Vector3
	angularVel  wearable.Vector3
	position    wearable.Vector3
	orientation wearable.Quaternion
}

func NewVirtualLinkKinSensor(name string, status wearable.SensorStatus) *VirtualLinkKinSensor {
	return &VirtualLinkKinSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeVirtualLinkKinSensor},
		status:     status,
	}
}

func (s *VirtualLinkKinSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *VirtualLinkKinSensor) LinkAcceleration() (linear, angular wearable.Vector3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linearAcc, s.angularAcc, true
}

func (s *VirtualLinkKinSensor) LinkPose() (position wearable.Vector3, orientation wearable.Quaternion, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, s.orientation, true
}

func (s *VirtualLinkKinSensor) LinkVelocity() (linear, angular wearable.Vector3, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linearVel, s.angularVel, true
}

// LinkState groups the six kinematic fields written in one SetBuffer call.
type LinkState struct {
	LinearAcceleration  wearable.Vector3
	AngularAcceleration wearable.Vector3
	LinearVelocity      wearable.Vector3
	AngularVelocity     wearable.Vector3
	Position            wearable.Vector3
	Orientation         wearable.Quaternion
}

func (s *VirtualLinkKinSensor) SetBuffer(state LinkState, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linearAcc = state.LinearAcceleration
	s.angularAcc = state.AngularAcceleration
	s.linearVel = state.LinearVelocity
	s.angularVel = state.AngularVelocity
	s.position = state.Position
	s.orientation = state.Orientation
	s.status = status
}

func (s *VirtualLinkKinSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// VirtualJointKinSensor buffers the kinematic state of a revolute joint.
type VirtualJointKinSensor struct {
	sensorBase
	mu           sync.Mutex
	status       wearable.SensorStatus
	position     float64
	velocity     float64
	acceleration float64
}

func NewVirtualJointKinSensor(name string, status wearable.SensorStatus) *VirtualJointKinSensor {
	return &VirtualJointKinSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeVirtualJointKinSensor},
		status:     status,
	}
}

func (s *VirtualJointKinSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *VirtualJointKinSensor) JointPosition() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, true
}

func (s *VirtualJointKinSensor) JointVelocity() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocity, true
}

func (s *VirtualJointKinSensor) JointAcceleration() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acceleration, true
}

func (s *VirtualJointKinSensor) SetBuffer(position, velocity, acceleration float64, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	s.velocity = velocity
	s.acceleration = acceleration
	s.status = status
}

func (s *VirtualJointKinSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// VirtualSphericalJointKinSensor buffers the kinematic state of a spherical
// joint as RPY angles plus derivatives, written atomically.
type VirtualSphericalJointKinSensor struct {
	sensorBase
	mu            sync.Mutex
	status        wearable.SensorStatus
	anglesRPY     wearable.Vector3
	velocities    wearable.Vector3
	accelerations wearable.Vector3
}

func NewVirtualSphericalJointKinSensor(name string, status wearable.SensorStatus) *VirtualSphericalJointKinSensor {
	return &VirtualSphericalJointKinSensor{
		sensorBase: sensorBase{name: name, typ: wearable.SensorTypeVirtualSphericalJointKinSensor},
		status:     status,
	}
}

func (s *VirtualSphericalJointKinSensor) SensorStatus() wearable.SensorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *VirtualSphericalJointKinSensor) JointAnglesRPY() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anglesRPY, true
}

func (s *VirtualSphericalJointKinSensor) JointVelocities() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocities, true
}

func (s *VirtualSphericalJointKinSensor) JointAccelerations() (wearable.Vector3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accelerations, true
}

func (s *VirtualSphericalJointKinSensor) SetBuffer(anglesRPY, velocities, accelerations wearable.Vector3, status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anglesRPY = anglesRPY
	s.velocities = velocities
	s.accelerations = accelerations
	s.status = status
}

func (s *VirtualSphericalJointKinSensor) SetStatus(status wearable.SensorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}
