package analog

import "github.com/robwear/wearcore/internal/wearable"

// ChannelState is the health of a single analog channel as reported by the
// transport.
type ChannelState int

const (
	ChannelOk ChannelState = iota
	ChannelError
	ChannelOverflow
	ChannelTimeout
)

// CombineStatus folds per-channel states into one sensor status.
//
// Precedence: a single erroring channel forces Error; absent any error, any
// overflowing channel forces Overflow; absent both, any timeout forces
// Timeout; otherwise Ok.
func CombineStatus(states []ChannelState) wearable.SensorStatus {
	status := wearable.SensorStatusOk
	for _, st := range states {
		switch st {
		case ChannelError:
			return wearable.SensorStatusError
		case ChannelOverflow:
			status = wearable.SensorStatusOverflow
		case ChannelTimeout:
			if status == wearable.SensorStatusOverflow {
				break
			}
			status = wearable.SensorStatusTimeout
		case ChannelOk:
			// Keep checking the remaining channels.
		}
	}
	return status
}
