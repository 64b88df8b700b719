package wearable_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// newTestWearable builds a collection with a mixed capability set, the way a
// driver would at attach time.
func newTestWearable(t *testing.T) *wearable.Collection {
	t.Helper()
	c := wearable.NewCollection("TestSuit")

	sensors := []wearable.Sensor{
		buffered.NewAccelerometer("acc::left_wrist", wearable.SensorStatusOk),
		buffered.NewAccelerometer("acc::right_wrist", wearable.SensorStatusOk),
		buffered.NewGyroscope("gyro::left_wrist", wearable.SensorStatusOk),
		buffered.NewPoseSensor("pose::head", wearable.SensorStatusOk),
		buffered.NewSkinSensor("skin::palm", 8, wearable.SensorStatusOk),
		buffered.NewVirtualLinkKinSensor("link::pelvis", wearable.SensorStatusOk),
	}
	for _, s := range sensors {
		if err := c.AddSensor(s); err != nil {
			t.Fatalf("AddSensor(%s): %v", s.SensorName(), err)
		}
	}

	if err := c.AddActuator(buffered.NewHaptic("haptic::left_glove", wearable.ActuatorStatusOk)); err != nil {
		t.Fatalf("AddActuator: %v", err)
	}
	if err := c.AddActuator(buffered.NewMotor("motor::elbow", wearable.ActuatorStatusOk)); err != nil {
		t.Fatalf("AddActuator: %v", err)
	}
	return c
}

func TestSensorsOfTypeReturnsOnlyMatchingTags(t *testing.T) {
	w := newTestWearable(t)

	accels := w.SensorsOfType(wearable.SensorTypeAccelerometer)
	if len(accels) != 2 {
		t.Fatalf("got %d accelerometers, want 2", len(accels))
	}
	for _, s := range accels {
		if s.SensorType() != wearable.SensorTypeAccelerometer {
			t.Errorf("sensor %s has tag %v", s.SensorName(), s.SensorType())
		}
	}

	if emg := w.SensorsOfType(wearable.SensorTypeEmgSensor); len(emg) != 0 {
		t.Errorf("got %d EMG sensors, want 0", len(emg))
	}
}

func TestAllSensorsIsUnionOverAllTypes(t *testing.T) {
	w := newTestWearable(t)

	all := wearable.AllSensors(w)
	if len(all) != 6 {
		t.Fatalf("AllSensors returned %d sensors, want 6", len(all))
	}

	// Union over the fixed enumeration: no duplicates, no omissions.
	seen := make(map[string]int)
	for _, s := range all {
		seen[s.SensorName()]++
	}
	var manual []string
	for _, typ := range wearable.AllSensorTypes {
		manual = append(manual, wearable.SensorNames(w, typ)...)
	}
	if len(manual) != len(all) {
		t.Errorf("manual union has %d names, AllSensors has %d", len(manual), len(all))
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("sensor %s appears %d times", name, n)
		}
	}
}

func TestAllSensorNames(t *testing.T) {
	w := newTestWearable(t)

	names := wearable.AllSensorNames(w)
	sort.Strings(names)
	want := []string{
		"acc::left_wrist", "acc::right_wrist", "gyro::left_wrist",
		"link::pelvis", "pose::head", "skin::palm",
	}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	w := newTestWearable(t)

	if acc := w.Accelerometer("acc::left_wrist"); acc == nil {
		t.Error("Accelerometer lookup for existing name returned nil")
	}
	if acc := w.Accelerometer("acc::missing"); acc != nil {
		t.Error("Accelerometer lookup for absent name must return nil")
	}
	// A name registered under another capability must not leak through a
	// typed accessor of the wrong family.
	if gyro := w.Gyroscope("acc::left_wrist"); gyro != nil {
		t.Error("Gyroscope accessor returned an accelerometer handle")
	}
	if h := w.HapticActuator("haptic::left_glove"); h == nil {
		t.Error("HapticActuator lookup returned nil")
	}
	if m := w.MotorActuator("haptic::left_glove"); m != nil {
		t.Error("MotorActuator accessor returned a haptic handle")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	w := newTestWearable(t)

	err := w.AddSensor(buffered.NewAccelerometer("acc::left_wrist", wearable.SensorStatusOk))
	if !errors.Is(err, wearable.ErrDuplicateSensor) {
		t.Errorf("duplicate AddSensor error = %v, want ErrDuplicateSensor", err)
	}
	err = w.AddActuator(buffered.NewHaptic("haptic::left_glove", wearable.ActuatorStatusOk))
	if !errors.Is(err, wearable.ErrDuplicateActuator) {
		t.Errorf("duplicate AddActuator error = %v, want ErrDuplicateActuator", err)
	}
}

type capturingLogger struct {
	warnings int
}

func (l *capturingLogger) Warn(string, ...any) { l.warnings++ }

func TestFilterSensorsDropsMismatchesWithPartialResults(t *testing.T) {
	log := &capturingLogger{}
	wearable.SetLogger(log)
	defer wearable.SetLogger(nil)

	mixed := []wearable.Sensor{
		buffered.NewAccelerometer("acc::a", wearable.SensorStatusOk),
		buffered.NewGyroscope("gyro::b", wearable.SensorStatusOk),
		buffered.NewAccelerometer("acc::c", wearable.SensorStatusOk),
	}

	accels := wearable.FilterSensors[wearable.Accelerometer](mixed)
	if len(accels) != 2 {
		t.Fatalf("got %d accelerometers from mixed list, want 2", len(accels))
	}
	if log.warnings != 1 {
		t.Errorf("logged %d warnings, want 1 for the dropped gyroscope", log.warnings)
	}
}

func TestTypedCollectionGetters(t *testing.T) {
	w := newTestWearable(t)

	if got := wearable.Accelerometers(w); len(got) != 2 {
		t.Errorf("Accelerometers = %d, want 2", len(got))
	}
	if got := wearable.PoseSensors(w); len(got) != 1 {
		t.Errorf("PoseSensors = %d, want 1", len(got))
	}
	if got := wearable.TemperatureSensors(w); len(got) != 0 {
		t.Errorf("TemperatureSensors = %d, want 0", len(got))
	}
	if got := wearable.HapticActuators(w); len(got) != 1 {
		t.Errorf("HapticActuators = %d, want 1", len(got))
	}
	if got := wearable.AllActuatorNames(w); len(got) != 2 {
		t.Errorf("AllActuatorNames = %d, want 2", len(got))
	}
}

func TestSensorTypeStringRoundTrip(t *testing.T) {
	for _, typ := range wearable.AllSensorTypes {
		name := typ.String()
		if name == "invalid" {
			t.Errorf("sensor type %d has no name; type table out of lock-step", typ)
			continue
		}
		if back, err := wearable.SensorTypeFromString(name); err != nil || back != typ {
			t.Errorf("SensorTypeFromString(%q) = %v, %v, want %v", name, back, err, typ)
		}
	}
	if back, err := wearable.SensorTypeFromString("bogus"); back != wearable.SensorTypeInvalid ||
		!errors.Is(err, wearable.ErrInvalidSensorType) {
		t.Errorf("SensorTypeFromString(bogus) = %v, %v, want invalid + ErrInvalidSensorType", back, err)
	}

	for _, typ := range wearable.AllActuatorTypes {
		name := typ.String()
		if name == "invalid" {
			t.Errorf("actuator type %d has no name", typ)
			continue
		}
		if back, err := wearable.ActuatorTypeFromString(name); err != nil || back != typ {
			t.Errorf("ActuatorTypeFromString(%q) = %v, %v, want %v", name, back, err, typ)
		}
	}
	if back, err := wearable.ActuatorTypeFromString("bogus"); back != wearable.ActuatorTypeInvalid ||
		!errors.Is(err, wearable.ErrInvalidActuatorType) {
		t.Errorf("ActuatorTypeFromString(bogus) = %v, %v, want invalid + ErrInvalidActuatorType", back, err)
	}
}
