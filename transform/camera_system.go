package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// DefaultProjectionEpsilon is the default threshold under which the magnitude
// of a homogeneous scale is treated as zero during projection.
const DefaultProjectionEpsilon = 1e-12

// A CameraSystem stores the intrinsic and extrinsic parameters of a pinhole
// camera and exposes the four directional conversions between image, camera
// and world coordinates. The matrix inverses are computed once at
// construction and reused for every point.
type CameraSystem struct {
	Intrinsics *PinholeCameraIntrinsics
	Extrinsics *CameraExtrinsics

	projectionEpsilon float64
	intrinsicInv      *mat.Dense
	camToWorld        *mat.Dense
	worldToCam        *mat.Dense
}

// NewCameraSystem validates the given parameters and builds a camera system
// with all transform matrices and their inverses precomputed.
func NewCameraSystem(intrinsics *PinholeCameraIntrinsics, extrinsics *CameraExtrinsics) (*CameraSystem, error) {
	return NewCameraSystemWithProjectionEpsilon(intrinsics, extrinsics, DefaultProjectionEpsilon)
}

// NewCameraSystemWithProjectionEpsilon is like NewCameraSystem but overrides
// the threshold under which a homogeneous scale is treated as zero. The
// epsilon is fixed at construction so a built CameraSystem stays safe for
// uncoordinated concurrent use.
func NewCameraSystemWithProjectionEpsilon(
	intrinsics *PinholeCameraIntrinsics, extrinsics *CameraExtrinsics, epsilon float64,
) (*CameraSystem, error) {
	if epsilon < 0 {
		return nil, NewInvalidParameterError("projection epsilon cannot be negative")
	}
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	if err := extrinsics.CheckValid(); err != nil {
		return nil, err
	}
	intrinsicInv, err := intrinsics.InverseMatrix()
	if err != nil {
		return nil, err
	}
	camToWorld := extrinsics.AugmentedMatrix()
	var worldToCam mat.Dense
	if err := worldToCam.Inverse(camToWorld); err != nil {
		return nil, NewSingularTransformError(err.Error())
	}
	return &CameraSystem{
		Intrinsics:        intrinsics,
		Extrinsics:        extrinsics,
		projectionEpsilon: epsilon,
		intrinsicInv:      intrinsicInv,
		camToWorld:        camToWorld,
		worldToCam:        &worldToCam,
	}, nil
}

// CameraPointToImagePoint projects a 3D point in camera space onto the image
// plane. It returns the pixel coordinates together with the homogeneous scale
// s, which with a zero-skew intrinsic matrix equals the point's z coordinate.
// The scale is what a caller needs to invert the projection later. It fails
// when the point lies on the camera's focal plane (scale near zero), since
// such a point has no image.
func (cs *CameraSystem) CameraPointToImagePoint(pt r3.Vector) (r2.Point, float64, error) {
	var ph mat.VecDense
	ph.MulVec(cs.Intrinsics.Matrix(), mat.NewVecDense(3, []float64{pt.X, pt.Y, pt.Z}))
	s := ph.AtVec(2)
	if math.Abs(s) <= cs.projectionEpsilon {
		return r2.Point{}, 0, NewDegenerateProjectionError(s)
	}
	return r2.Point{X: ph.AtVec(0) / s, Y: ph.AtVec(1) / s}, s, nil
}

// ImagePointToCameraPoint maps pixel coordinates back into 3D camera space.
// The homogeneous scale s cannot be recovered from the pixel alone, so the
// caller must supply it, either from a previous projection or from
// EstimateScale when the distance to the point is known.
func (cs *CameraSystem) ImagePointToCameraPoint(pt r2.Point, scale float64) (r3.Vector, error) {
	if math.Abs(scale) <= cs.projectionEpsilon {
		return r3.Vector{}, NewInvalidParameterError("homogeneous scale is too close to zero")
	}
	var p mat.VecDense
	p.MulVec(cs.intrinsicInv, mat.NewVecDense(3, []float64{scale * pt.X, scale * pt.Y, scale}))
	return r3.Vector{X: p.AtVec(0), Y: p.AtVec(1), Z: p.AtVec(2)}, nil
}

// WorldPointToCameraPoint maps a 3D point in world space into camera space by
// applying the inverse of the augmented extrinsic matrix to the homogeneous
// form of the point.
func (cs *CameraSystem) WorldPointToCameraPoint(pt r3.Vector) (r3.Vector, error) {
	return applyRigid(cs.worldToCam, pt)
}

// CameraPointToWorldPoint maps a 3D point in camera space into world space by
// applying the augmented extrinsic matrix directly.
func (cs *CameraSystem) CameraPointToWorldPoint(pt r3.Vector) (r3.Vector, error) {
	return applyRigid(cs.camToWorld, pt)
}

// EstimateScale recovers the homogeneous scale of a pixel from the known
// Euclidean distance between the camera origin and the 3D point along the
// camera ray through that pixel.
//
// The distance must be the true straight-line distance from the camera center
// to the point, not the depth along the optical axis. This closed form is
// only valid when that distance is externally known (e.g. from a
// rangefinder); it is not a general monocular depth technique.
func (cs *CameraSystem) EstimateScale(pt r2.Point, knownDistance float64) (float64, error) {
	if knownDistance <= 0 {
		return 0, NewInvalidParameterError("known distance must be positive")
	}
	xn := (pt.X - cs.Intrinsics.Ppx) / cs.Intrinsics.Fx
	yn := (pt.Y - cs.Intrinsics.Ppy) / cs.Intrinsics.Fy
	return knownDistance / math.Sqrt(xn*xn+yn*yn+1), nil
}

// WorldPointToImagePoint projects a 3D world point all the way to pixel
// coordinates, returning the homogeneous scale along with the pixel.
func (cs *CameraSystem) WorldPointToImagePoint(pt r3.Vector) (r2.Point, float64, error) {
	camPt, err := cs.WorldPointToCameraPoint(pt)
	if err != nil {
		return r2.Point{}, 0, err
	}
	return cs.CameraPointToImagePoint(camPt)
}

// ImagePointToWorldPoint maps pixel coordinates with a known homogeneous
// scale all the way back to a 3D world point.
func (cs *CameraSystem) ImagePointToWorldPoint(pt r2.Point, scale float64) (r3.Vector, error) {
	camPt, err := cs.ImagePointToCameraPoint(pt, scale)
	if err != nil {
		return r3.Vector{}, err
	}
	return cs.CameraPointToWorldPoint(camPt)
}

// applyRigid multiplies a 4x4 rigid transform with the homogeneous form of a
// 3D point and drops the trailing 1.
func applyRigid(m *mat.Dense, pt r3.Vector) (r3.Vector, error) {
	var ph mat.VecDense
	ph.MulVec(m, mat.NewVecDense(4, []float64{pt.X, pt.Y, pt.Z, 1}))
	// a rigid transform keeps the homogeneous component at exactly 1
	w := ph.AtVec(3)
	if math.Abs(w) <= DefaultProjectionEpsilon {
		return r3.Vector{}, NewSingularTransformError("homogeneous component vanished")
	}
	return r3.Vector{X: ph.AtVec(0) / w, Y: ph.AtVec(1) / w, Z: ph.AtVec(2) / w}, nil
}
