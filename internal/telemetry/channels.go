package telemetry

import (
	"fmt"

	"github.com/robwear/wearcore/internal/wearable"
)

// SensorChannels flattens a sensor reading into named scalar channels.
// A sensor whose read fails (stale buffer, wrong status) yields nil; the
// sample still goes out with its status so consumers see the gap. The API
// layer reuses this flattening for on-demand sensor reads.
func SensorChannels(s wearable.Sensor) map[string]float64 {
	switch s.SensorType() {
	case wearable.SensorTypeAccelerometer:
		if a, ok := s.(wearable.Accelerometer); ok {
			if v, ok := a.LinearAcceleration(); ok {
				return vectorChannels("", v)
			}
		}
	case wearable.SensorTypeEmgSensor:
		if e, ok := s.(wearable.EmgSensor); ok {
			out := make(map[string]float64, 2)
			if v, ok := e.EmgSignal(); ok {
				out["signal"] = v
			}
			if v, ok := e.NormalizationValue(); ok {
				out["normalization"] = v
			}
			if len(out) > 0 {
				return out
			}
		}
	case wearable.SensorTypeForce3DSensor:
		if f, ok := s.(wearable.Force3DSensor); ok {
			if v, ok := f.Force3D(); ok {
				return vectorChannels("force_", v)
			}
		}
	case wearable.SensorTypeForceTorque6DSensor:
		if ft, ok := s.(wearable.ForceTorque6DSensor); ok {
			if f, tq, ok := ft.ForceTorque6D(); ok {
				out := vectorChannels("force_", f)
				for k, v := range vectorChannels("torque_", tq) {
					out[k] = v
				}
				return out
			}
		}
	case wearable.SensorTypeFreeBodyAccelerationSensor:
		if a, ok := s.(wearable.FreeBodyAccelerationSensor); ok {
			if v, ok := a.FreeBodyAcceleration(); ok {
				return vectorChannels("", v)
			}
		}
	case wearable.SensorTypeGyroscope:
		if g, ok := s.(wearable.Gyroscope); ok {
			if v, ok := g.AngularRate(); ok {
				return vectorChannels("", v)
			}
		}
	case wearable.SensorTypeMagnetometer:
		if m, ok := s.(wearable.Magnetometer); ok {
			if v, ok := m.MagneticField(); ok {
				return vectorChannels("", v)
			}
		}
	case wearable.SensorTypeOrientationSensor:
		if o, ok := s.(wearable.OrientationSensor); ok {
			if q, ok := o.Orientation(); ok {
				return quaternionChannels("", q)
			}
		}
	case wearable.SensorTypePoseSensor:
		if p, ok := s.(wearable.PoseSensor); ok {
			if q, pos, ok := p.Pose(); ok {
				out := quaternionChannels("orientation_", q)
				for k, v := range vectorChannels("position_", pos) {
					out[k] = v
				}
				return out
			}
		}
	case wearable.SensorTypePositionSensor:
		if p, ok := s.(wearable.PositionSensor); ok {
			if v, ok := p.Position(); ok {
				return vectorChannels("", v)
			}
		}
	case wearable.SensorTypeSkinSensor:
		if sk, ok := s.(wearable.SkinSensor); ok {
			if pressures, ok := sk.Pressure(); ok {
				out := make(map[string]float64, len(pressures))
				for i, p := range pressures {
					out[fmt.Sprintf("taxel_%d", i)] = p
				}
				return out
			}
		}
	case wearable.SensorTypeTemperatureSensor:
		if t, ok := s.(wearable.TemperatureSensor); ok {
			if v, ok := t.Temperature(); ok {
				return map[string]float64{"celsius": v}
			}
		}
	case wearable.SensorTypeTorque3DSensor:
		if tq, ok := s.(wearable.Torque3DSensor); ok {
			if v, ok := tq.Torque3D(); ok {
				return vectorChannels("torque_", v)
			}
		}
	case wearable.SensorTypeVirtualLinkKinSensor:
		if l, ok := s.(wearable.VirtualLinkKinSensor); ok {
			out := make(map[string]float64, 19)
			if pos, orient, ok := l.LinkPose(); ok {
				for k, v := range vectorChannels("position_", pos) {
					out[k] = v
				}
				for k, v := range quaternionChannels("orientation_", orient) {
					out[k] = v
				}
			}
			if lin, ang, ok := l.LinkVelocity(); ok {
				for k, v := range vectorChannels("linear_velocity_", lin) {
					out[k] = v
				}
				for k, v := range vectorChannels("angular_velocity_", ang) {
					out[k] = v
				}
			}
			if lin, ang, ok := l.LinkAcceleration(); ok {
				for k, v := range vectorChannels("linear_acceleration_", lin) {
					out[k] = v
				}
				for k, v := range vectorChannels("angular_acceleration_", ang) {
					out[k] = v
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	case wearable.SensorTypeVirtualJointKinSensor:
		if j, ok := s.(wearable.VirtualJointKinSensor); ok {
			out := make(map[string]float64, 3)
			if v, ok := j.JointPosition(); ok {
				out["position"] = v
			}
			if v, ok := j.JointVelocity(); ok {
				out["velocity"] = v
			}
			if v, ok := j.JointAcceleration(); ok {
				out["acceleration"] = v
			}
			if len(out) > 0 {
				return out
			}
		}
	case wearable.SensorTypeVirtualSphericalJointKinSensor:
		if j, ok := s.(wearable.VirtualSphericalJointKinSensor); ok {
			out := make(map[string]float64, 9)
			if v, ok := j.JointAnglesRPY(); ok {
				out["angle_roll"] = v[0]
				out["angle_pitch"] = v[1]
				out["angle_yaw"] = v[2]
			}
			if v, ok := j.JointVelocities(); ok {
				out["velocity_roll"] = v[0]
				out["velocity_pitch"] = v[1]
				out["velocity_yaw"] = v[2]
			}
			if v, ok := j.JointAccelerations(); ok {
				out["acceleration_roll"] = v[0]
				out["acceleration_pitch"] = v[1]
				out["acceleration_yaw"] = v[2]
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func vectorChannels(prefix string, v wearable.Vector3) map[string]float64 {
	return map[string]float64{
		prefix + "x": v[0],
		prefix + "y": v[1],
		prefix + "z": v[2],
	}
}

func quaternionChannels(prefix string, q wearable.Quaternion) map[string]float64 {
	return map[string]float64{
		prefix + "w": q[0],
		prefix + "x": q[1],
		prefix + "y": q[2],
		prefix + "z": q[3],
	}
}
