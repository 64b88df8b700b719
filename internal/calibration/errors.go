package calibration

import "errors"

var (
	// ErrNotConnected is returned when an operation requires a live device
	// link and none exists.
	ErrNotConnected = errors.New("calibration: device not connected")

	// ErrInProgress is returned when a calibration is started while
	// another one is still running.
	ErrInProgress = errors.New("calibration: calibration already in progress")

	// ErrDeviceBusy is returned when a body dimension operation is issued
	// while the device is still applying a previous operation.
	ErrDeviceBusy = errors.New("calibration: device operation pending")

	// ErrAborted is returned when a calibration terminates because an
	// abort was requested, by the caller or by the hardware.
	ErrAborted = errors.New("calibration: calibration aborted")

	// ErrQualityRejected is returned when a calibration completes but its
	// quality falls below the configured minimum and it is discarded.
	ErrQualityRejected = errors.New("calibration: quality below minimum")

	// ErrWaitTimeout is returned when the device fails to deliver an
	// expected callback within the configured wait budget.
	ErrWaitTimeout = errors.New("calibration: timed out waiting for device")

	// ErrNoDimensions is returned when a body dimension upload is given an
	// empty set.
	ErrNoDimensions = errors.New("calibration: no body dimensions given")

	// ErrDimensionNotFound is returned when a requested body dimension has
	// no device-side estimate.
	ErrDimensionNotFound = errors.New("calibration: body dimension not found")
)
