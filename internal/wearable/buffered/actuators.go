package buffered

import (
	"fmt"
	"sync"

	"github.com/robwear/wearcore/internal/wearable"
)

// CommandSink receives actuator commands. Drivers attach one at attach time
// to forward commands to the hardware transport; an actuator without a sink
// rejects commands and reports an error status.
type CommandSink func(value float64) error

// actuatorBase carries identity, status and the command sink shared by every
// buffered actuator. Status and last command live under one mutex.
type actuatorBase struct {
	name string
	typ  wearable.ActuatorType

	mu     sync.Mutex
	status wearable.ActuatorStatus
	last   float64
	sink   CommandSink
}

func (b *actuatorBase) ActuatorName() string                    { return b.name }
func (b *actuatorBase) ActuatorType() wearable.ActuatorType     { return b.typ }

func (b *actuatorBase) ActuatorStatus() wearable.ActuatorStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// SetSink attaches the hardware command sink.
func (b *actuatorBase) SetSink(sink CommandSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink = sink
}

// LastCommand returns the most recently accepted command value.
func (b *actuatorBase) LastCommand() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *actuatorBase) command(value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sink == nil {
		b.status = wearable.ActuatorStatusError
		return fmt.Errorf("actuator %q: no command sink attached", b.name)
	}
	if err := b.sink(value); err != nil {
		b.status = wearable.ActuatorStatusError
		return fmt.Errorf("actuator %q: %w", b.name, err)
	}
	b.last = value
	b.status = wearable.ActuatorStatusOk
	return nil
}

// Haptic is a buffered vibrotactile actuator.
type Haptic struct {
	actuatorBase
}

func NewHaptic(name string, status wearable.ActuatorStatus) *Haptic {
	return &Haptic{actuatorBase{name: name, typ: wearable.ActuatorTypeHaptic, status: status}}
}

func (a *Haptic) SetHapticCommand(value float64) error {
	return a.command(value)
}

// Motor is a buffered positional motor actuator.
type Motor struct {
	actuatorBase
}

func NewMotor(name string, status wearable.ActuatorStatus) *Motor {
	return &Motor{actuatorBase{name: name, typ: wearable.ActuatorTypeMotor, status: status}}
}

func (a *Motor) SetMotorPosition(rad float64) error {
	return a.command(rad)
}

// Heater is a buffered thermal actuator.
type Heater struct {
	actuatorBase
}

func NewHeater(name string, status wearable.ActuatorStatus) *Heater {
	return &Heater{actuatorBase{name: name, typ: wearable.ActuatorTypeHeater, status: status}}
}

func (a *Heater) SetTargetTemperature(celsius float64) error {
	return a.command(celsius)
}
