package wearable

// Actuator is the base contract shared by every actuator capability.
type Actuator interface {
	ActuatorName() string
	ActuatorStatus() ActuatorStatus
	ActuatorType() ActuatorType
}

// Haptic drives a vibrotactile feedback element with a normalised intensity
// command in [0, 1].
type Haptic interface {
	Actuator
	SetHapticCommand(value float64) error
}

// Motor drives a positional motor. The target position is in radians.
type Motor interface {
	Actuator
	SetMotorPosition(rad float64) error
}

// Heater drives a thermal feedback element with a target temperature in
// degrees Celsius.
type Heater interface {
	Actuator
	SetTargetTemperature(celsius float64) error
}
