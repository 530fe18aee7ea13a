// Package spatialmath defines the rotation math used to express the pose of a
// camera in 3D Euclidean space.
package spatialmath

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// OrthonormalityTolerance is the tolerance used when checking that a rotation
// matrix is orthonormal: the determinant must be within this distance of 1 and
// each row must have unit norm within this distance.
const OrthonormalityTolerance = 1e-6

// RotationX returns the 3x3 matrix for a rotation of angle radians about the
// X axis (roll).
func RotationX(angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// RotationY returns the 3x3 matrix for a rotation of angle radians about the
// Y axis (pitch). The sine placement follows the camera-model convention where
// a positive pitch tilts the +X axis toward +Z; this is the transpose of the
// aerospace convention, so do not mix the two.
func RotationY(angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	return mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	})
}

// RotationZ returns the 3x3 matrix for a rotation of angle radians about the
// Z axis (yaw).
func RotationZ(angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// ComposeRotation builds a single rotation matrix from roll, pitch and yaw
// angles in radians, composed as Rz * Ry * Rx (yaw outermost). The order is a
// fixed convention of the camera model; changing it produces a different,
// non-interchangeable pose.
func ComposeRotation(roll, pitch, yaw float64) *mat.Dense {
	zy := mat.NewDense(3, 3, nil)
	zy.Mul(RotationZ(yaw), RotationY(pitch))
	r := mat.NewDense(3, 3, nil)
	r.Mul(zy, RotationX(roll))
	return r
}

// CheckRotationValid returns an error if r is not a 3x3 orthonormal rotation
// matrix within OrthonormalityTolerance.
func CheckRotationValid(r *mat.Dense) error {
	rows, cols := r.Dims()
	if rows != 3 || cols != 3 {
		return errors.Errorf("rotation matrix must be 3x3, got %dx%d", rows, cols)
	}
	if det := mat.Det(r); math.Abs(det-1) > OrthonormalityTolerance {
		return errors.Errorf("rotation matrix determinant is %f, not 1", det)
	}
	// R * Rᵗ should be the identity for an orthonormal matrix.
	var rrt mat.Dense
	rrt.Mul(r, r.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.
			if i == j {
				want = 1.
			}
			if math.Abs(rrt.At(i, j)-want) > OrthonormalityTolerance {
				return errors.Errorf("rotation matrix rows are not orthonormal at (%d,%d)", i, j)
			}
		}
	}
	return nil
}
