// Package registry tracks the wearable devices attached to a running
// Wearcore instance.
//
// Drivers register themselves under their wearable name at startup; the
// API and telemetry layers resolve wearables and individual sensors
// through the registry without knowing which driver produced them.
//
// All public methods are thread-safe.
package registry
