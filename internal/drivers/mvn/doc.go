// Package mvn adapts an MVN-style full-body motion capture engine to the
// wearable sensor registry.
//
// The engine streams processed frames carrying per-link kinematic states,
// per-joint angles and per-IMU inertial samples. At attach time the driver
// asks the engine for its layout and creates one buffered sensor per
// capability and element; every incoming frame then updates all buffers and
// bumps the wearable timestamp, so readers always observe a consistent
// frame through the registry.
//
// The engine also implements the calibration connector contract, which is
// how the calibration package drives the same device link.
//
// The Sim engine provides a hardware-free implementation used in tests and
// for bench setups without a suit.
package mvn
