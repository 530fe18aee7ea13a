package spatialmath

import (
	"gonum.org/v1/gonum/mat"

	"github.com/camgeom/pincam/utils"
)

// EulerAngles are three angles (in radians) used to represent the rotation of
// a camera relative to the world frame. Roll is about the X axis, pitch about
// Y, yaw about Z.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// NewEulerAnglesFromDegrees creates EulerAngles from degree-valued angles.
func NewEulerAnglesFromDegrees(roll, pitch, yaw float64) *EulerAngles {
	return &EulerAngles{
		Roll:  utils.DegToRad(roll),
		Pitch: utils.DegToRad(pitch),
		Yaw:   utils.DegToRad(yaw),
	}
}

// RotationMatrix returns the orientation in rotation matrix representation,
// composed as Rz * Ry * Rx.
func (ea *EulerAngles) RotationMatrix() *mat.Dense {
	return ComposeRotation(ea.Roll, ea.Pitch, ea.Yaw)
}
