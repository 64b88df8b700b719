// Package wearable defines the hardware-abstraction layer for heterogeneous
// wearable sensing devices.
//
// The package is built around two ideas:
//
//   - A closed set of narrow capability interfaces (Accelerometer, PoseSensor,
//     SkinSensor, Haptic, ...). A device driver implements only the subset its
//     hardware actually has and returns nil for the rest, so wildly different
//     backends (SDK-driven motion-capture suits, analog channel wrappers,
//     serial-protocol exosuits) present one uniform query surface.
//
//   - The Wearable registry interface: a name-addressable, type-filterable
//     collection of capability instances exposed by each driver. Drivers
//     implement only the two primitive queries plus the typed single-element
//     accessors; everything else (AllSensors, name listings, typed collection
//     getters) is derived once in this package and shared by every driver.
//
// Consumers (loggers, controllers, the operator API) hold read-only handles
// obtained from the registry and never know concrete device types.
//
// Thread Safety: the interfaces in this package are read surfaces; concrete
// implementations (see the buffered subpackage) guarantee that a reader never
// observes a buffer/status pair from two different writes.
package wearable
