package wearable

import "errors"

// Domain errors for the wearable package, checked with errors.Is().
var (
	// ErrDuplicateSensor is returned when registering a sensor under a name
	// already present in the collection.
	ErrDuplicateSensor = errors.New("wearable: duplicate sensor name")

	// ErrDuplicateActuator is returned when registering an actuator under a
	// name already present in the collection.
	ErrDuplicateActuator = errors.New("wearable: duplicate actuator name")

	// ErrInvalidSensorType is returned when parsing an unrecognised sensor
	// type name.
	ErrInvalidSensorType = errors.New("wearable: invalid sensor type")

	// ErrInvalidActuatorType is returned when parsing an unrecognised
	// actuator type name.
	ErrInvalidActuatorType = errors.New("wearable: invalid actuator type")
)
