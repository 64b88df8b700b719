package analog

import (
	"errors"
	"fmt"
	"time"

	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// Domain errors for the analog package.
var (
	// ErrUnsupportedSensorType is returned when the configured capability
	// cannot be backed by a flat channel block.
	ErrUnsupportedSensorType = errors.New("analog: unsupported sensor type")

	// ErrChannelRange is returned when offset plus the capability's channel
	// demand exceeds the source's channel count.
	ErrChannelRange = errors.New("analog: channel range out of bounds")

	// ErrReadFailed is returned when the underlying source read fails.
	ErrReadFailed = errors.New("analog: source read failed")
)

// Source is the multi-channel analog transport the adapter consumes.
// Implementations live with the device transport layer.
type Source interface {
	// ChannelCount returns the fixed number of channels the source exposes.
	ChannelCount() int

	// Read returns the latest frame, one value per channel.
	Read() ([]float64, error)

	// ChannelState returns the health of channel i.
	ChannelState(i int) ChannelState
}

// Config selects which capability the channel block backs and where the
// block starts.
type Config struct {
	WearableName  string
	SensorName    string
	SensorType    wearable.SensorType
	ChannelOffset int

	// Taxels is the number of channels consumed by a skin sensor. Ignored
	// for fixed-width capabilities.
	Taxels int
}

// channelDemand returns how many channels the configured capability needs.
func (c Config) channelDemand() (int, error) {
	switch c.SensorType {
	case wearable.SensorTypeForce3DSensor, wearable.SensorTypeTorque3DSensor:
		return 3, nil
	case wearable.SensorTypeForceTorque6DSensor:
		return 6, nil
	case wearable.SensorTypeTemperatureSensor:
		return 1, nil
	case wearable.SensorTypeSkinSensor:
		if c.Taxels <= 0 {
			return 0, fmt.Errorf("%w: skin sensor needs a positive taxel count", ErrUnsupportedSensorType)
		}
		return c.Taxels, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedSensorType, c.SensorType)
	}
}

// Adapter exposes one analog channel block as a wearable device with a
// single sensor. It implements wearable.Wearable by composing a Collection.
type Adapter struct {
	*wearable.Collection

	src    Source
	cfg    Config
	demand int
	seq    uint64

	force3D *buffered.Force3DSensor
	torque  *buffered.Torque3DSensor
	ft6D    *buffered.ForceTorque6DSensor
	temp    *buffered.TemperatureSensor
	skin    *buffered.SkinSensor
}

// New validates the channel mapping and creates the backing sensor instance.
func New(cfg Config, src Source) (*Adapter, error) {
	demand, err := cfg.channelDemand()
	if err != nil {
		return nil, err
	}
	if cfg.ChannelOffset < 0 || cfg.ChannelOffset+demand > src.ChannelCount() {
		return nil, fmt.Errorf("%w: offset %d demand %d channels %d",
			ErrChannelRange, cfg.ChannelOffset, demand, src.ChannelCount())
	}

	a := &Adapter{
		Collection: wearable.NewCollection(cfg.WearableName),
		src:        src,
		cfg:        cfg,
		demand:     demand,
	}

	switch cfg.SensorType {
	case wearable.SensorTypeForce3DSensor:
		a.force3D = buffered.NewForce3DSensor(cfg.SensorName, wearable.SensorStatusWaitingForFirstRead)
		err = a.AddSensor(a.force3D)
	case wearable.SensorTypeTorque3DSensor:
		a.torque = buffered.NewTorque3DSensor(cfg.SensorName, wearable.SensorStatusWaitingForFirstRead)
		err = a.AddSensor(a.torque)
	case wearable.SensorTypeForceTorque6DSensor:
		a.ft6D = buffered.NewForceTorque6DSensor(cfg.SensorName, wearable.SensorStatusWaitingForFirstRead)
		err = a.AddSensor(a.ft6D)
	case wearable.SensorTypeTemperatureSensor:
		a.temp = buffered.NewTemperatureSensor(cfg.SensorName, wearable.SensorStatusWaitingForFirstRead)
		err = a.AddSensor(a.temp)
	case wearable.SensorTypeSkinSensor:
		a.skin = buffered.NewSkinSensor(cfg.SensorName, cfg.Taxels, wearable.SensorStatusWaitingForFirstRead)
		err = a.AddSensor(a.skin)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Refresh reads one frame from the source and pushes it into the backing
// sensor together with the combined channel status. On a failed transport
// read the sensor keeps its stale buffer and drops to Error.
func (a *Adapter) Refresh() error {
	frame, err := a.src.Read()
	if err != nil {
		a.setStatusOnly(wearable.SensorStatusError)
		a.SetStatus(wearable.SensorStatusError)
		return fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	if len(frame) < a.cfg.ChannelOffset+a.demand {
		a.setStatusOnly(wearable.SensorStatusError)
		a.SetStatus(wearable.SensorStatusError)
		return fmt.Errorf("%w: frame has %d channels", ErrChannelRange, len(frame))
	}

	states := make([]ChannelState, a.demand)
	for i := 0; i < a.demand; i++ {
		states[i] = a.src.ChannelState(a.cfg.ChannelOffset + i)
	}
	status := CombineStatus(states)

	block := frame[a.cfg.ChannelOffset : a.cfg.ChannelOffset+a.demand]
	switch {
	case a.force3D != nil:
		a.force3D.SetBuffer(wearable.Vector3{block[0], block[1], block[2]}, status)
	case a.torque != nil:
		a.torque.SetBuffer(wearable.Vector3{block[0], block[1], block[2]}, status)
	case a.ft6D != nil:
		a.ft6D.SetBuffer(
			wearable.Vector3{block[0], block[1], block[2]},
			wearable.Vector3{block[3], block[4], block[5]},
			status,
		)
	case a.temp != nil:
		a.temp.SetBuffer(block[0], status)
	case a.skin != nil:
		a.skin.SetBuffer(block, status)
	}

	a.seq++
	a.SetTimestamp(wearable.Timestamp{Time: time.Now(), Sequence: a.seq})
	a.SetStatus(status)
	return nil
}

// setStatusOnly marks the backing sensor without touching its buffer.
func (a *Adapter) setStatusOnly(status wearable.SensorStatus) {
	switch {
	case a.force3D != nil:
		a.force3D.SetStatus(status)
	case a.torque != nil:
		a.torque.SetStatus(status)
	case a.ft6D != nil:
		a.ft6D.SetStatus(status)
	case a.temp != nil:
		a.temp.SetStatus(status)
	case a.skin != nil:
		a.skin.SetStatus(status)
	}
}
