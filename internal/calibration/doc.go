// Package calibration drives the multi-phase hardware calibration protocol
// of a connected motion-capture device.
//
// The Calibrator sequences the device through discard, initialise, timed
// pose phases, stop, asynchronous processing, a quality gate and finalise.
// The device transport is abstracted behind the Connector interface; three
// connector-originated callbacks (aborted, operation completed, data
// processed) flip atomic flags that the calibration goroutine polls at a
// short fixed interval.
//
// Two details of the protocol are hardware requirements, not artifacts:
// the 3 s settle delay before data collection gives the subject time to
// assume the starting pose, and the 16 ms per-frame cadence matches the
// device's 60 Hz playback of calibration poses. Neither may be replaced by
// readiness signalling.
//
// A calibration whose achieved quality falls below the configured minimum
// is discarded by self-triggering the connector's abort: the connector has
// no reject primitive, so the abort path doubles as the rejection
// mechanism. Callers can still tell the two apart by the returned error
// (ErrAborted vs ErrQualityRejected).
package calibration
