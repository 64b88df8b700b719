package wearable

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Conversions between the orientation representations used across drivers.
// Quaternions are (w, x, y, z); RPY angles are intrinsic XYZ in radians.

func toNumber(q Quaternion) quat.Number {
	return quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
}

func fromNumber(n quat.Number) Quaternion {
	return Quaternion{n.Real, n.Imag, n.Jmag, n.Kmag}
}

// NormalizeQuaternion returns the unit quaternion with the same direction.
// A zero quaternion is returned unchanged.
func NormalizeQuaternion(q Quaternion) Quaternion {
	n := toNumber(q)
	norm := quat.Abs(n)
	if norm == 0 || norm == 1 {
		return q
	}
	return fromNumber(quat.Scale(1/norm, n))
}

// QuaternionToRPY converts a quaternion to roll-pitch-yaw angles.
func QuaternionToRPY(q Quaternion) Vector3 {
	n := toNumber(NormalizeQuaternion(q))
	qw, qx, qy, qz := n.Real, n.Imag, n.Jmag, n.Kmag

	var rpy Vector3

	// roll (x-axis rotation)
	sinr := 2.0 * (qw*qx + qy*qz)
	cosr := 1.0 - 2.0*(qx*qx+qy*qy)
	rpy[0] = math.Atan2(sinr, cosr)

	// pitch (y-axis rotation), clamped at the gimbal singularity
	sinp := 2.0 * (qw*qy - qx*qz)
	if math.Abs(sinp) >= 1.0 {
		rpy[1] = math.Copysign(math.Pi/2, sinp)
	} else {
		rpy[1] = math.Asin(sinp)
	}

	// yaw (z-axis rotation)
	siny := 2.0 * (qw*qz + qx*qy)
	cosy := 1.0 - 2.0*(qy*qy+qz*qz)
	rpy[2] = math.Atan2(siny, cosy)

	return rpy
}

// RPYToQuaternion converts roll-pitch-yaw angles to a unit quaternion.
func RPYToQuaternion(rpy Vector3) Quaternion {
	cr := math.Cos(rpy[0] * 0.5)
	sr := math.Sin(rpy[0] * 0.5)
	cp := math.Cos(rpy[1] * 0.5)
	sp := math.Sin(rpy[1] * 0.5)
	cy := math.Cos(rpy[2] * 0.5)
	sy := math.Sin(rpy[2] * 0.5)

	return Quaternion{
		cr*cp*cy + sr*sp*sy,
		sr*cp*cy - cr*sp*sy,
		cr*sp*cy + sr*cp*sy,
		cr*cp*sy - sr*sp*cy,
	}
}

// QuaternionToRotationMatrix converts a quaternion to a row-major rotation
// matrix.
func QuaternionToRotationMatrix(q Quaternion) Matrix3 {
	n := toNumber(NormalizeQuaternion(q))
	qw, qx, qy, qz := n.Real, n.Imag, n.Jmag, n.Kmag

	return Matrix3{
		{
			1.0 - 2.0*qy*qy - 2.0*qz*qz,
			2.0*qx*qy - 2.0*qz*qw,
			2.0*qx*qz + 2.0*qy*qw,
		},
		{
			2.0*qx*qy + 2.0*qz*qw,
			1.0 - 2.0*qx*qx - 2.0*qz*qz,
			2.0*qy*qz - 2.0*qx*qw,
		},
		{
			2.0*qx*qz - 2.0*qy*qw,
			2.0*qy*qz + 2.0*qx*qw,
			1.0 - 2.0*qx*qx - 2.0*qy*qy,
		},
	}
}

// RotationMatrixToRPY extracts roll-pitch-yaw angles from a rotation matrix.
// At the pitch singularity the roll is fixed to zero and the remaining
// rotation is folded into yaw.
func RotationMatrixToRPY(m Matrix3) Vector3 {
	var rpy Vector3

	switch {
	case m[2][0] < 1.0 && m[2][0] > -1.0:
		rpy[0] = math.Atan2(m[2][1], m[2][2])
		rpy[1] = math.Asin(-m[2][0])
		rpy[2] = math.Atan2(m[1][0], m[0][0])
	case m[2][0] <= -1.0:
		rpy[0] = 0.0
		rpy[1] = math.Pi / 2.0
		rpy[2] = -math.Atan2(-m[1][2], m[1][1])
	default:
		rpy[0] = 0.0
		rpy[1] = -math.Pi / 2.0
		rpy[2] = math.Atan2(-m[1][2], m[1][1])
	}
	return rpy
}
