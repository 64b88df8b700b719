package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/robwear/wearcore/internal/wearable"
)

// Registry errors, checked with errors.Is().
var (
	// ErrWearableNotFound is returned when resolving an unregistered wearable.
	ErrWearableNotFound = errors.New("registry: wearable not found")

	// ErrDuplicateWearable is returned when registering a wearable under a
	// name already in use.
	ErrDuplicateWearable = errors.New("registry: duplicate wearable name")

	// ErrSensorNotFound is returned when a wearable has no sensor with the
	// requested name.
	ErrSensorNotFound = errors.New("registry: sensor not found")

	// ErrActuatorNotFound is returned when a wearable has no actuator with
	// the requested name.
	ErrActuatorNotFound = errors.New("registry: actuator not found")
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}

// Registry holds the wearables attached to this instance, keyed by
// wearable name.
type Registry struct {
	mu        sync.RWMutex
	wearables map[string]wearable.Wearable
	logger    Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		wearables: make(map[string]wearable.Wearable),
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Register adds a wearable under its own WearableName.
// Returns ErrDuplicateWearable if the name is already taken.
func (r *Registry) Register(w wearable.Wearable) error {
	name := w.WearableName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wearables[name]; ok {
		return ErrDuplicateWearable
	}
	r.wearables[name] = w

	r.logger.Info("wearable registered",
		"name", name,
		"sensors", len(wearable.AllSensors(w)),
		"actuators", len(wearable.AllActuators(w)))
	return nil
}

// Unregister removes a wearable by name. Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	_, ok := r.wearables[name]
	delete(r.wearables, name)
	r.mu.Unlock()

	if ok {
		r.logger.Info("wearable unregistered", "name", name)
	}
}

// Get resolves a wearable by name.
func (r *Registry) Get(name string) (wearable.Wearable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wearables[name]
	if !ok {
		return nil, ErrWearableNotFound
	}
	return w, nil
}

// Names returns the registered wearable names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.wearables))
	for name := range r.wearables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered wearables ordered by name.
func (r *Registry) All() []wearable.Wearable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.wearables))
	for name := range r.wearables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]wearable.Wearable, 0, len(names))
	for _, name := range names {
		out = append(out, r.wearables[name])
	}
	return out
}

// Count returns the number of registered wearables.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wearables)
}

// FindSensor resolves a sensor by wearable name and full sensor name.
func (r *Registry) FindSensor(wearableName, sensorName string) (wearable.Sensor, error) {
	w, err := r.Get(wearableName)
	if err != nil {
		return nil, err
	}

	s := w.Sensor(sensorName)
	if s == nil {
		return nil, ErrSensorNotFound
	}
	return s, nil
}

// FindActuator resolves an actuator by wearable name and full actuator name.
func (r *Registry) FindActuator(wearableName, actuatorName string) (wearable.Actuator, error) {
	w, err := r.Get(wearableName)
	if err != nil {
		return nil, err
	}

	a := w.Actuator(actuatorName)
	if a == nil {
		return nil, ErrActuatorNotFound
	}
	return a, nil
}

// Stats summarises the registry contents for monitoring.
type Stats struct {
	Wearables    int
	Sensors      int
	Actuators    int
	BySensorType map[wearable.SensorType]int
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Wearables:    len(r.wearables),
		BySensorType: make(map[wearable.SensorType]int),
	}

	for _, w := range r.wearables {
		sensors := wearable.AllSensors(w)
		stats.Sensors += len(sensors)
		stats.Actuators += len(wearable.AllActuators(w))
		for _, s := range sensors {
			stats.BySensorType[s.SensorType()]++
		}
	}

	return stats
}
