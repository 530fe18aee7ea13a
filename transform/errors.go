package transform

import "github.com/pkg/errors"

// ErrInvalidParameter is when a camera parameter makes the model unusable,
// e.g. a zero focal length that would make the intrinsic matrix singular.
var ErrInvalidParameter = errors.New("invalid camera parameter")

// ErrSingularTransform is when the extrinsic matrix cannot be inverted. With a
// valid orthonormal rotation this cannot happen, so it signals a caller
// contract violation.
var ErrSingularTransform = errors.New("extrinsic transform is not invertible")

// ErrDegenerateProjection is when the homogeneous scale of a projected point
// is zero or near zero, i.e. the point lies on the camera's focal plane and
// has no image.
var ErrDegenerateProjection = errors.New("degenerate projection")

// NewInvalidParameterError wraps ErrInvalidParameter with a description of the
// offending parameter.
func NewInvalidParameterError(msg string) error {
	return errors.Wrap(ErrInvalidParameter, msg)
}

// NewSingularTransformError wraps ErrSingularTransform with context.
func NewSingularTransformError(msg string) error {
	return errors.Wrap(ErrSingularTransform, msg)
}

// NewDegenerateProjectionError wraps ErrDegenerateProjection with the
// offending scale value.
func NewDegenerateProjectionError(scale float64) error {
	return errors.Wrapf(ErrDegenerateProjection, "homogeneous scale %g is too close to zero", scale)
}
