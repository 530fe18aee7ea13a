// Package transform implements the coordinate transforms of the pinhole
// camera model: mapping points between 2D image (pixel) space, 3D camera
// space, and 3D world space via intrinsic and extrinsic camera matrices.
package transform

import (
	"fmt"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// PinholeCameraIntrinsics holds the parameters necessary to do a perspective
// projection of a 3D scene to the 2D image plane. The skew term of the
// intrinsic matrix is fixed at zero; supporting a nonzero skew is an extension
// point, not implemented here.
type PinholeCameraIntrinsics struct {
	Fx  float64 `json:"fx"`
	Fy  float64 `json:"fy"`
	Ppx float64 `json:"ppx"`
	Ppy float64 `json:"ppy"`
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid
// inputs. A non-positive focal length would make the intrinsic matrix
// singular and break the image-to-camera inversion.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return NewInvalidParameterError("intrinsics do not exist")
	}
	var err error
	if params.Fx <= 0 {
		err = multierr.Append(err, NewInvalidParameterError(fmt.Sprintf("invalid focal length Fx = %#v", params.Fx)))
	}
	if params.Fy <= 0 {
		err = multierr.Append(err, NewInvalidParameterError(fmt.Sprintf("invalid focal length Fy = %#v", params.Fy)))
	}
	if params.Ppx < 0 {
		err = multierr.Append(err, NewInvalidParameterError(fmt.Sprintf("invalid principal point Ppx = %#v", params.Ppx)))
	}
	if params.Ppy < 0 {
		err = multierr.Append(err, NewInvalidParameterError(fmt.Sprintf("invalid principal point Ppy = %#v", params.Ppy)))
	}
	return err
}

// Matrix returns the 3x3 intrinsic matrix
//
//	| fx  0  ppx |
//	|  0 fy  ppy |
//	|  0  0   1  |
//
// mapping camera-space coordinates to homogeneous pixel coordinates.
func (params *PinholeCameraIntrinsics) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		params.Fx, 0, params.Ppx,
		0, params.Fy, params.Ppy,
		0, 0, 1,
	})
}

// InverseMatrix returns the inverse of the intrinsic matrix, used to map
// homogeneous pixel coordinates back into camera space. It fails when the
// parameters would make the matrix singular.
func (params *PinholeCameraIntrinsics) InverseMatrix() (*mat.Dense, error) {
	if err := params.CheckValid(); err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(params.Matrix()); err != nil {
		return nil, NewInvalidParameterError(err.Error())
	}
	return &inv, nil
}
