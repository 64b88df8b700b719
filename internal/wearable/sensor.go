package wearable

// Sensor is the base contract shared by every sensor capability. The name is
// immutable after construction and unique within a driver; the type tag
// matches the concrete interface family.
type Sensor interface {
	SensorName() string
	SensorStatus() SensorStatus
	SensorType() SensorType
}

// Each capability interface below exposes exactly one semantically named read
// surface. Accessors return the buffered sample and true on success; on
// failure they return zero values and false, and the caller consults
// SensorStatus for the reason.

// Accelerometer reads proper linear acceleration in m/s^2.
type Accelerometer interface {
	Sensor
	LinearAcceleration() (Vector3, bool)
}

// EmgSensor reads a surface-EMG signal together with its maximum voluntary
// contraction normalisation value.
type EmgSensor interface {
	Sensor
	EmgSignal() (float64, bool)
	NormalizationValue() (float64, bool)
}

// Force3DSensor reads a 3D force in N.
type Force3DSensor interface {
	Sensor
	Force3D() (Vector3, bool)
}

// ForceTorque6DSensor reads a paired 3D force (N) and 3D torque (Nm).
// Both vectors come from the same buffered write.
type ForceTorque6DSensor interface {
	Sensor
	ForceTorque6D() (force, torque Vector3, ok bool)
}

// FreeBodyAccelerationSensor reads gravity-compensated linear acceleration.
type FreeBodyAccelerationSensor interface {
	Sensor
	FreeBodyAcceleration() (Vector3, bool)
}

// Gyroscope reads angular velocity in rad/s.
type Gyroscope interface {
	Sensor
	AngularRate() (Vector3, bool)
}

// Magnetometer reads the magnetic field vector.
type Magnetometer interface {
	Sensor
	MagneticField() (Vector3, bool)
}

// OrientationSensor reads an absolute orientation as a quaternion.
type OrientationSensor interface {
	Sensor
	Orientation() (Quaternion, bool)
}

// PoseSensor reads a full pose: orientation plus position. Both fields come
// from the same buffered write.
type PoseSensor interface {
	Sensor
	Pose() (orientation Quaternion, position Vector3, ok bool)
}

// PositionSensor reads a 3D position in m.
type PositionSensor interface {
	Sensor
	Position() (Vector3, bool)
}

// SkinSensor reads a variable-length pressure array, one value per taxel.
// The returned slice is a copy owned by the caller.
type SkinSensor interface {
	Sensor
	Pressure() ([]float64, bool)
}

// TemperatureSensor reads a temperature in degrees Celsius.
type TemperatureSensor interface {
	Sensor
	Temperature() (float64, bool)
}

// Torque3DSensor reads a 3D torque in Nm.
type Torque3DSensor interface {
	Sensor
	Torque3D() (Vector3, bool)
}

// VirtualLinkKinSensor reads the estimated kinematic state of a body link:
// pose, velocity and acceleration. All six vectors come from the same
// buffered write, so readings across the three accessors are mutually
// consistent only when taken from the same frame.
type VirtualLinkKinSensor interface {
	Sensor
	LinkAcceleration() (linear, angular Vector3, ok bool)
	LinkPose() (position Vector3, orientation Quaternion, ok bool)
	LinkVelocity() (linear, angular Vector3, ok bool)
}

// VirtualJointKinSensor reads the estimated kinematic state of a revolute
// joint: position (rad), velocity (rad/s) and acceleration (rad/s^2).
type VirtualJointKinSensor interface {
	Sensor
	JointPosition() (float64, bool)
	JointVelocity() (float64, bool)
	JointAcceleration() (float64, bool)
}

// VirtualSphericalJointKinSensor reads the estimated kinematic state of a
// spherical joint as roll-pitch-yaw angles and their derivatives.
type VirtualSphericalJointKinSensor interface {
	Sensor
	JointAnglesRPY() (Vector3, bool)
	JointVelocities() (Vector3, bool)
	JointAccelerations() (Vector3, bool)
}
