// Package analog adapts generic multi-channel analog transports to the
// wearable capability surface.
//
// Many force platforms, insole arrays and strain-gauge frontends expose
// nothing richer than "n float channels plus a per-channel state". The
// Adapter wraps one such Source as a single wearable sensor (force, torque,
// force-torque, skin pressure or temperature), slicing the channel block at
// a configured offset and folding the per-channel states into one sensor
// status with the precedence Error > Overflow > Timeout > Ok.
package analog
