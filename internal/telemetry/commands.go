package telemetry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robwear/wearcore/internal/infrastructure/mqtt"
	"github.com/robwear/wearcore/internal/registry"
	"github.com/robwear/wearcore/internal/wearable"
)

// ActuatorCommand is the JSON payload expected on actuator command topics.
type ActuatorCommand struct {
	Value float64 `json:"value"`
}

// CommandRouter subscribes to the actuator command topic tree and
// forwards decoded commands to registered actuators.
type CommandRouter struct {
	reg    *registry.Registry
	broker Broker
	topics mqtt.Topics
	qos    byte
	logger Logger
}

// NewCommandRouter creates a router over the given registry and broker.
func NewCommandRouter(reg *registry.Registry, broker Broker, qos byte, logger Logger) (*CommandRouter, error) {
	if reg == nil {
		return nil, fmt.Errorf("telemetry: registry is required")
	}
	if broker == nil {
		return nil, fmt.Errorf("telemetry: broker is required")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &CommandRouter{reg: reg, broker: broker, qos: qos, logger: logger}, nil
}

// Start subscribes to the actuator command wildcard.
func (r *CommandRouter) Start() error {
	if err := r.broker.Subscribe(r.topics.AllActuatorCommands(), r.qos, r.handleCommand); err != nil {
		return fmt.Errorf("subscribing to actuator commands: %w", err)
	}
	r.logger.Info("actuator command router started")
	return nil
}

// Stop unsubscribes from the command topic.
func (r *CommandRouter) Stop() error {
	return r.broker.Unsubscribe(r.topics.AllActuatorCommands())
}

// handleCommand decodes a command message and dispatches it.
// Topic shape: wearcore/actuator/{wearable}/{type}/{name}/command
func (r *CommandRouter) handleCommand(topic string, payload []byte) error {
	parts := strings.Split(topic, "/")
	if len(parts) != 6 || parts[5] != "command" {
		return fmt.Errorf("malformed actuator command topic %q", topic)
	}
	wearableName, actuatorName := parts[2], parts[4]

	var cmd ActuatorCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("decoding actuator command on %q: %w", topic, err)
	}

	actuator, err := r.reg.FindActuator(wearableName, actuatorName)
	if err != nil {
		return fmt.Errorf("resolving actuator %q on %q: %w", actuatorName, wearableName, err)
	}

	if err := r.dispatch(actuator, cmd.Value); err != nil {
		return err
	}

	r.logger.Info("actuator command applied",
		"wearable", wearableName,
		"actuator", actuatorName,
		"value", cmd.Value)
	return nil
}

// dispatch routes the value through the capability-specific setter.
func (r *CommandRouter) dispatch(a wearable.Actuator, value float64) error {
	switch act := a.(type) {
	case wearable.Haptic:
		return act.SetHapticCommand(value)
	case wearable.Motor:
		return act.SetMotorPosition(value)
	case wearable.Heater:
		return act.SetTargetTemperature(value)
	default:
		return fmt.Errorf("actuator %q has no command surface", a.ActuatorName())
	}
}
