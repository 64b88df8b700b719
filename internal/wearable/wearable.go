package wearable

// Logger is the minimal logging interface used by the derived registry
// utilities. Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// logger receives downcast diagnostics. Set once during startup via
// SetLogger; not safe to swap while queries are running.
var logger Logger = noopLogger{}

// SetLogger sets the package logger used for capability downcast warnings.
func SetLogger(l Logger) {
	if l != nil {
		logger = l
	}
}

// Wearable is the registry surface every device driver exposes: a
// name-addressable, type-filterable collection of capability instances.
//
// Drivers implement the two primitive collection queries (SensorsOfType,
// ActuatorsOfType), exact-name lookup, and the typed single-element
// accessors. Single-element accessors return nil when the driver does not
// implement that capability for that name, never a partially initialised
// handle. The derived utilities below are implemented once against the
// primitives and must not be reimplemented per driver.
type Wearable interface {
	WearableName() string
	Status() SensorStatus
	Timestamp() Timestamp

	// Primitive queries.
	Sensor(name string) Sensor
	SensorsOfType(t SensorType) []Sensor
	Actuator(name string) Actuator
	ActuatorsOfType(t ActuatorType) []Actuator

	// Typed single-sensor accessors.
	Accelerometer(name string) Accelerometer
	EmgSensor(name string) EmgSensor
	Force3DSensor(name string) Force3DSensor
	ForceTorque6DSensor(name string) ForceTorque6DSensor
	FreeBodyAccelerationSensor(name string) FreeBodyAccelerationSensor
	Gyroscope(name string) Gyroscope
	Magnetometer(name string) Magnetometer
	OrientationSensor(name string) OrientationSensor
	PoseSensor(name string) PoseSensor
	PositionSensor(name string) PositionSensor
	SkinSensor(name string) SkinSensor
	TemperatureSensor(name string) TemperatureSensor
	Torque3DSensor(name string) Torque3DSensor
	VirtualLinkKinSensor(name string) VirtualLinkKinSensor
	VirtualJointKinSensor(name string) VirtualJointKinSensor
	VirtualSphericalJointKinSensor(name string) VirtualSphericalJointKinSensor

	// Typed single-actuator accessors.
	HapticActuator(name string) Haptic
	MotorActuator(name string) Motor
	HeaterActuator(name string) Heater
}

// AllSensors returns every sensor the wearable exposes: the union of
// SensorsOfType over the fixed enumeration of all sensor types.
func AllSensors(w Wearable) []Sensor {
	var all []Sensor
	for _, t := range AllSensorTypes {
		all = append(all, w.SensorsOfType(t)...)
	}
	return all
}

// AllActuators returns every actuator the wearable exposes.
func AllActuators(w Wearable) []Actuator {
	var all []Actuator
	for _, t := range AllActuatorTypes {
		all = append(all, w.ActuatorsOfType(t)...)
	}
	return all
}

// SensorNames returns the names of all sensors of the given type.
func SensorNames(w Wearable, t SensorType) []string {
	sensors := w.SensorsOfType(t)
	names := make([]string, 0, len(sensors))
	for _, s := range sensors {
		names = append(names, s.SensorName())
	}
	return names
}

// AllSensorNames returns the names of every sensor the wearable exposes.
func AllSensorNames(w Wearable) []string {
	sensors := AllSensors(w)
	names := make([]string, 0, len(sensors))
	for _, s := range sensors {
		names = append(names, s.SensorName())
	}
	return names
}

// ActuatorNames returns the names of all actuators of the given type.
func ActuatorNames(w Wearable, t ActuatorType) []string {
	actuators := w.ActuatorsOfType(t)
	names := make([]string, 0, len(actuators))
	for _, a := range actuators {
		names = append(names, a.ActuatorName())
	}
	return names
}

// AllActuatorNames returns the names of every actuator the wearable exposes.
func AllActuatorNames(w Wearable) []string {
	actuators := AllActuators(w)
	names := make([]string, 0, len(actuators))
	for _, a := range actuators {
		names = append(names, a.ActuatorName())
	}
	return names
}

// FilterSensors narrows a list of generic sensor handles to those that
// support the target capability. A handle that fails the assertion is
// dropped with a warning, not a hard failure, so mixed-capability
// collections yield partial results.
func FilterSensors[S Sensor](sensors []Sensor) []S {
	out := make([]S, 0, len(sensors))
	for _, s := range sensors {
		cast, ok := s.(S)
		if !ok {
			logger.Warn("sensor does not support requested capability",
				"sensor", s.SensorName(), "type", s.SensorType().String())
			continue
		}
		out = append(out, cast)
	}
	return out
}

// FilterActuators narrows a list of generic actuator handles to those that
// support the target capability, dropping mismatches with a warning.
func FilterActuators[A Actuator](actuators []Actuator) []A {
	out := make([]A, 0, len(actuators))
	for _, a := range actuators {
		cast, ok := a.(A)
		if !ok {
			logger.Warn("actuator does not support requested capability",
				"actuator", a.ActuatorName(), "type", a.ActuatorType().String())
			continue
		}
		out = append(out, cast)
	}
	return out
}

// Typed collection getters, one per capability family. Each is a thin
// composition of the type-filtered primitive and the capability downcast.

func Accelerometers(w Wearable) []Accelerometer {
	return FilterSensors[Accelerometer](w.SensorsOfType(SensorTypeAccelerometer))
}

func EmgSensors(w Wearable) []EmgSensor {
	return FilterSensors[EmgSensor](w.SensorsOfType(SensorTypeEmgSensor))
}

func Force3DSensors(w Wearable) []Force3DSensor {
	return FilterSensors[Force3DSensor](w.SensorsOfType(SensorTypeForce3DSensor))
}

func ForceTorque6DSensors(w Wearable) []ForceTorque6DSensor {
	return FilterSensors[ForceTorque6DSensor](w.SensorsOfType(SensorTypeForceTorque6DSensor))
}

func FreeBodyAccelerationSensors(w Wearable) []FreeBodyAccelerationSensor {
	return FilterSensors[FreeBodyAccelerationSensor](w.SensorsOfType(SensorTypeFreeBodyAccelerationSensor))
}

func Gyroscopes(w Wearable) []Gyroscope {
	return FilterSensors[Gyroscope](w.SensorsOfType(SensorTypeGyroscope))
}

func Magnetometers(w Wearable) []Magnetometer {
	return FilterSensors[Magnetometer](w.SensorsOfType(SensorTypeMagnetometer))
}

func OrientationSensors(w Wearable) []OrientationSensor {
	return FilterSensors[OrientationSensor](w.SensorsOfType(SensorTypeOrientationSensor))
}

func PoseSensors(w Wearable) []PoseSensor {
	return FilterSensors[PoseSensor](w.SensorsOfType(SensorTypePoseSensor))
}

func PositionSensors(w Wearable) []PositionSensor {
	return FilterSensors[PositionSensor](w.SensorsOfType(SensorTypePositionSensor))
}

func SkinSensors(w Wearable) []SkinSensor {
	return FilterSensors[SkinSensor](w.SensorsOfType(SensorTypeSkinSensor))
}

func TemperatureSensors(w Wearable) []TemperatureSensor {
	return FilterSensors[TemperatureSensor](w.SensorsOfType(SensorTypeTemperatureSensor))
}

func Torque3DSensors(w Wearable) []Torque3DSensor {
	return FilterSensors[Torque3DSensor](w.SensorsOfType(SensorTypeTorque3DSensor))
}

func VirtualLinkKinSensors(w Wearable) []VirtualLinkKinSensor {
	return FilterSensors[VirtualLinkKinSensor](w.SensorsOfType(SensorTypeVirtualLinkKinSensor))
}

func VirtualJointKinSensors(w Wearable) []VirtualJointKinSensor {
	return FilterSensors[VirtualJointKinSensor](w.SensorsOfType(SensorTypeVirtualJointKinSensor))
}

func VirtualSphericalJointKinSensors(w Wearable) []VirtualSphericalJointKinSensor {
	return FilterSensors[VirtualSphericalJointKinSensor](w.SensorsOfType(SensorTypeVirtualSphericalJointKinSensor))
}

func HapticActuators(w Wearable) []Haptic {
	return FilterActuators[Haptic](w.ActuatorsOfType(ActuatorTypeHaptic))
}

func MotorActuators(w Wearable) []Motor {
	return FilterActuators[Motor](w.ActuatorsOfType(ActuatorTypeMotor))
}

func HeaterActuators(w Wearable) []Heater {
	return FilterActuators[Heater](w.ActuatorsOfType(ActuatorTypeHeater))
}
