package transform

import (
	"encoding/json"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/camgeom/pincam/spatialmath"
)

// ExtrinsicConfig is the JSON representation of a camera pose: roll, pitch
// and yaw in degrees plus a translation. Degrees are converted to radians on
// load.
type ExtrinsicConfig struct {
	RotationRPYDegs [3]float64 `json:"rotation_rpy_degs"`
	Translation     [3]float64 `json:"translation"`
}

// Extrinsics builds the camera pose described by the config.
func (conf *ExtrinsicConfig) Extrinsics() *CameraExtrinsics {
	ea := spatialmath.NewEulerAnglesFromDegrees(
		conf.RotationRPYDegs[0], conf.RotationRPYDegs[1], conf.RotationRPYDegs[2],
	)
	t := r3.Vector{X: conf.Translation[0], Y: conf.Translation[1], Z: conf.Translation[2]}
	return NewCameraExtrinsicsFromEulerAngles(ea, t)
}

// CameraSystemConfig is the JSON representation of a full camera system.
type CameraSystemConfig struct {
	Intrinsics PinholeCameraIntrinsics `json:"intrinsics"`
	Extrinsics ExtrinsicConfig         `json:"extrinsics"`
}

// NewCameraSystemFromJSONFile reads intrinsic and extrinsic parameters from a
// JSON file and builds a validated CameraSystem from them.
func NewCameraSystemFromJSONFile(jsonPath string) (*CameraSystem, error) {
	//nolint:gosec
	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "error opening JSON file")
	}
	defer utils.UncheckedErrorFunc(jsonFile.Close)
	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading JSON data")
	}
	conf := &CameraSystemConfig{}
	if err := json.Unmarshal(byteValue, conf); err != nil {
		return nil, errors.Wrap(err, "error parsing JSON string")
	}
	return NewCameraSystem(&conf.Intrinsics, conf.Extrinsics.Extrinsics())
}
