package wearable

import (
	"fmt"
	"sort"
	"sync"
)

// Collection is a ready-made implementation of the Wearable registry
// surface. Device drivers compose it: they register their capability
// instances at attach time and keep producing into them, while the
// Collection answers every registry query. This replaces per-driver
// reimplementation of the sixteen typed accessors with composition over one
// shared capability-set type.
//
// Thread Safety: registration and queries are safe for concurrent use. The
// instances themselves guard their own buffers.
type Collection struct {
	name string

	mu        sync.RWMutex
	status    SensorStatus
	timestamp Timestamp
	sensors   map[string]Sensor
	actuators map[string]Actuator
}

// NewCollection creates an empty registry for the named wearable.
func NewCollection(name string) *Collection {
	return &Collection{
		name:      name,
		status:    SensorStatusWaitingForFirstRead,
		sensors:   make(map[string]Sensor),
		actuators: make(map[string]Actuator),
	}
}

// AddSensor registers a sensor instance. Names are unique within the
// collection; a fully initialised handle must be passed, since it becomes
// visible to consumers immediately.
func (c *Collection) AddSensor(s Sensor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := s.SensorName()
	if _, exists := c.sensors[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSensor, name)
	}
	c.sensors[name] = s
	return nil
}

// AddActuator registers an actuator instance under its unique name.
func (c *Collection) AddActuator(a Actuator) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := a.ActuatorName()
	if _, exists := c.actuators[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateActuator, name)
	}
	c.actuators[name] = a
	return nil
}

// SetStatus updates the wearable-level status reported to consumers.
func (c *Collection) SetStatus(status SensorStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// SetTimestamp records the acquisition time of the latest frame.
func (c *Collection) SetTimestamp(ts Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timestamp = ts
}

func (c *Collection) WearableName() string { return c.name }

func (c *Collection) Status() SensorStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Collection) Timestamp() Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timestamp
}

// Sensor returns the sensor registered under name, or nil if absent.
func (c *Collection) Sensor(name string) Sensor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sensors[name]
}

// SensorsOfType returns all sensors whose tag equals t, sorted by name.
func (c *Collection) SensorsOfType(t SensorType) []Sensor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Sensor
	for _, s := range c.sensors {
		if s.SensorType() == t {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SensorName() < out[j].SensorName()
	})
	return out
}

// Actuator returns the actuator registered under name, or nil if absent.
func (c *Collection) Actuator(name string) Actuator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actuators[name]
}

// ActuatorsOfType returns all actuators whose tag equals t, sorted by name.
func (c *Collection) ActuatorsOfType(t ActuatorType) []Actuator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Actuator
	for _, a := range c.actuators {
		if a.ActuatorType() == t {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ActuatorName() < out[j].ActuatorName()
	})
	return out
}

// sensorAs resolves a name to a sensor of capability S, or nil. The check is
// done once here rather than per-call casting scattered across drivers.
func sensorAs[S Sensor](c *Collection, name string) S {
	var zero S
	s := c.Sensor(name)
	if s == nil {
		return zero
	}
	cast, ok := s.(S)
	if !ok {
		return zero
	}
	return cast
}

func actuatorAs[A Actuator](c *Collection, name string) A {
	var zero A
	a := c.Actuator(name)
	if a == nil {
		return zero
	}
	cast, ok := a.(A)
	if !ok {
		return zero
	}
	return cast
}

func (c *Collection) Accelerometer(name string) Accelerometer {
	return sensorAs[Accelerometer](c, name)
}

func (c *Collection) EmgSensor(name string) EmgSensor {
	return sensorAs[EmgSensor](c, name)
}

func (c *Collection) Force3DSensor(name string) Force3DSensor {
	return sensorAs[Force3DSensor](c, name)
}

func (c *Collection) ForceTorque6DSensor(name string) ForceTorque6DSensor {
	return sensorAs[ForceTorque6DSensor](c, name)
}

func (c *Collection) FreeBodyAccelerationSensor(name string) FreeBodyAccelerationSensor {
	return sensorAs[FreeBodyAccelerationSensor](c, name)
}

func (c *Collection) Gyroscope(name string) Gyroscope {
	return sensorAs[Gyroscope](c, name)
}

func (c *Collection) Magnetometer(name string) Magnetometer {
	return sensorAs[Magnetometer](c, name)
}

func (c *Collection) OrientationSensor(name string) OrientationSensor {
	return sensorAs[OrientationSensor](c, name)
}

func (c *Collection) PoseSensor(name string) PoseSensor {
	return sensorAs[PoseSensor](c, name)
}

func (c *Collection) PositionSensor(name string) PositionSensor {
	return sensorAs[PositionSensor](c, name)
}

func (c *Collection) SkinSensor(name string) SkinSensor {
	return sensorAs[SkinSensor](c, name)
}

func (c *Collection) TemperatureSensor(name string) TemperatureSensor {
	return sensorAs[TemperatureSensor](c, name)
}

func (c *Collection) Torque3DSensor(name string) Torque3DSensor {
	return sensorAs[Torque3DSensor](c, name)
}

func (c *Collection) VirtualLinkKinSensor(name string) VirtualLinkKinSensor {
	return sensorAs[VirtualLinkKinSensor](c, name)
}

func (c *Collection) VirtualJointKinSensor(name string) VirtualJointKinSensor {
	return sensorAs[VirtualJointKinSensor](c, name)
}

func (c *Collection) VirtualSphericalJointKinSensor(name string) VirtualSphericalJointKinSensor {
	return sensorAs[VirtualSphericalJointKinSensor](c, name)
}

func (c *Collection) HapticActuator(name string) Haptic {
	return actuatorAs[Haptic](c, name)
}

func (c *Collection) MotorActuator(name string) Motor {
	return actuatorAs[Motor](c, name)
}

func (c *Collection) HeaterActuator(name string) Heater {
	return actuatorAs[Heater](c, name)
}

var _ Wearable = (*Collection)(nil)
