// Package buffered provides concrete in-memory implementations of every
// wearable capability interface.
//
// Each instance buffers the latest sample under its own mutex: the producing
// device driver writes buffer and status together in one critical section,
// and any number of registry consumers copy the pair out under the same
// lock. No cross-instance or global locking exists, so readers of unrelated
// sensors never contend.
//
// Drivers create instances at attach time, once the concrete device's
// channel count and configuration are known, and keep the producer handle
// while handing the read-only capability interface to the registry.
package buffered
