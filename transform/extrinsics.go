package transform

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/camgeom/pincam/spatialmath"
)

// CameraExtrinsics stores the pose of a camera relative to the world frame as
// an orthonormal rotation matrix plus a translation. The pose maps
// camera-space coordinates to world-space coordinates; the inverse direction
// is obtained by inverting the augmented matrix.
type CameraExtrinsics struct {
	Rotation    *mat.Dense
	Translation r3.Vector
}

// NewCameraExtrinsics creates a camera pose from a rotation matrix and a
// translation vector. It fails when the rotation is not orthonormal within
// spatialmath.OrthonormalityTolerance, since the resulting transform would not
// be a rigid motion and may not invert.
func NewCameraExtrinsics(rotation *mat.Dense, translation r3.Vector) (*CameraExtrinsics, error) {
	if err := spatialmath.CheckRotationValid(rotation); err != nil {
		return nil, NewSingularTransformError(err.Error())
	}
	return &CameraExtrinsics{Rotation: rotation, Translation: translation}, nil
}

// NewCameraExtrinsicsFromEulerAngles creates a camera pose from roll, pitch
// and yaw angles (radians) and a translation vector. Rotations composed from
// Euler angles are always orthonormal, so there is no error to detect.
func NewCameraExtrinsicsFromEulerAngles(ea *spatialmath.EulerAngles, translation r3.Vector) *CameraExtrinsics {
	return &CameraExtrinsics{Rotation: ea.RotationMatrix(), Translation: translation}
}

// PoseMatrix returns the 3x4 pose matrix [R|t].
func (e *CameraExtrinsics) PoseMatrix() *mat.Dense {
	t := mat.NewDense(3, 1, []float64{e.Translation.X, e.Translation.Y, e.Translation.Z})
	pose := mat.NewDense(3, 4, nil)
	pose.Augment(e.Rotation, t)
	return pose
}

// AugmentedMatrix returns the pose matrix extended with a [0,0,0,1] row,
// giving the invertible 4x4 matrix that maps homogeneous camera coordinates
// to homogeneous world coordinates.
func (e *CameraExtrinsics) AugmentedMatrix() *mat.Dense {
	aug := mat.NewDense(4, 4, nil)
	aug.Stack(e.PoseMatrix(), mat.NewDense(1, 4, []float64{0, 0, 0, 1}))
	return aug
}

// Inverse returns the rigid transform in the opposite direction, i.e. the
// world-to-camera pose with rotation Rᵗ and translation -Rᵗt.
func (e *CameraExtrinsics) Inverse() *CameraExtrinsics {
	rt := mat.NewDense(3, 3, nil)
	rt.CloneFrom(e.Rotation.T())
	t := mat.NewVecDense(3, []float64{e.Translation.X, e.Translation.Y, e.Translation.Z})
	var invT mat.VecDense
	invT.MulVec(rt, t)
	invT.ScaleVec(-1, &invT)
	return &CameraExtrinsics{
		Rotation:    rt,
		Translation: r3.Vector{X: invT.AtVec(0), Y: invT.AtVec(1), Z: invT.AtVec(2)},
	}
}

// CheckValid checks that the stored rotation is still a valid orthonormal
// rotation matrix.
func (e *CameraExtrinsics) CheckValid() error {
	if e == nil {
		return NewInvalidParameterError("extrinsics do not exist")
	}
	if e.Rotation == nil {
		return NewInvalidParameterError("extrinsics have no rotation matrix")
	}
	if err := spatialmath.CheckRotationValid(e.Rotation); err != nil {
		return NewSingularTransformError(err.Error())
	}
	return nil
}
