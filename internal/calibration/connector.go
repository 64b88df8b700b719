package calibration

// Result is the device's verdict on a finished calibration.
type Result struct {
	Quality  Quality
	Warnings []string
}

// Callbacks receives connector-originated notifications. All methods may be
// invoked from the connector's own goroutines and must not block.
type Callbacks interface {
	// CalibrationAborted fires once the device has acknowledged an abort,
	// whether requested by the caller or raised by the hardware itself.
	CalibrationAborted()

	// OperationCompleted fires when a generic device operation (body
	// dimension upload, calibration finalisation) has been applied.
	OperationCompleted()

	// CalibrationProcessed fires when the device has finished crunching
	// the recorded calibration data and a Result is available.
	CalibrationProcessed()
}

// Connector is the device-side contract the Calibrator drives. Commands are
// fire-and-forget: completion surfaces through Callbacks, never through
// return values, which is why the Calibrator polls flags rather than waits
// on calls.
type Connector interface {
	// Connected reports whether a live device link exists.
	Connected() bool

	// IsCalibrationPerformed reports whether a calibration of the given
	// type is currently stored on the device.
	IsCalibrationPerformed(calibrationType string) bool

	// ClearCalibration asks the device to discard a stored calibration of
	// the given type. Completion is observed by IsCalibrationPerformed
	// turning false.
	ClearCalibration(calibrationType string)

	// InitializeCalibration prepares the device for a new recording of the
	// given calibration type.
	InitializeCalibration(calibrationType string)

	// CalibrationPhaseBounds returns the frame boundaries of the pose
	// phases: n+1 monotonically increasing frame indices delimiting n
	// phases, phase i spanning frames [bounds[i], bounds[i+1]).
	CalibrationPhaseBounds() []int

	// CalibrationPhaseText returns the operator-facing description of a
	// pose phase, for logging and UI.
	CalibrationPhaseText(phase int) string

	// StartCalibration opens the recording window on the device.
	StartCalibration()

	// CalibrationPose feeds the reference pose for one playback frame to
	// the device.
	CalibrationPose(frame int)

	// StopCalibration closes the recording window and kicks off the
	// device-side processing of the recorded data.
	StopCalibration()

	// CalibrationResult returns the device's verdict for the given type.
	// Only meaningful after the processed callback has fired.
	CalibrationResult(calibrationType string) Result

	// FinalizeCalibration commits the processed calibration on the device.
	FinalizeCalibration()

	// AbortCalibration requests that the device abandon the calibration in
	// progress. The aborted callback confirms it.
	AbortCalibration()

	// BodyDimensionLabels lists the dimension names the device accepts.
	BodyDimensionLabels() []string

	// SetBodyDimension uploads one subject dimension in metres. Completion
	// surfaces through the operation completed callback.
	SetBodyDimension(name string, value float64)

	// BodyDimensionEstimate returns the device's current estimate for a
	// dimension, false if the device has none.
	BodyDimensionEstimate(name string) (float64, bool)

	// RegisterCallbacks attaches a notification sink.
	RegisterCallbacks(cb Callbacks)

	// UnregisterCallbacks detaches a previously registered sink.
	UnregisterCallbacks(cb Callbacks)
}
