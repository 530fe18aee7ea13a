// Package main is a small tool that transforms a single point between the
// image, camera and world frames of a pinhole camera described by a JSON
// parameter file.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/camgeom/pincam/transform"
)

func main() {
	logger := golog.NewDevelopmentLogger("project")

	paramsPath := flag.String("parameters", "", "path to the camera parameters JSON file")
	direction := flag.String("direction", "", "one of: camera-to-image, image-to-camera, "+
		"world-to-camera, camera-to-world, world-to-image, image-to-world")
	point := flag.String("point", "", "the point to transform, e.g. \"1.4,-0.7,2.2\" or \"795,467\"")
	scale := flag.Float64("scale", 0, "homogeneous scale for image-to-* directions")
	distance := flag.Float64("distance", 0, "known camera-to-point distance, used to estimate "+
		"the scale when -scale is not given")
	flag.Parse()

	if *paramsPath == "" {
		logger.Fatal("-parameters is required")
	}
	cs, err := transform.NewCameraSystemFromJSONFile(*paramsPath)
	if err != nil {
		logger.Fatalw("cannot load camera parameters", "path", *paramsPath, "error", err)
	}

	result, err := runProjection(cs, *direction, *point, *scale, *distance)
	if err != nil {
		logger.Fatalw("projection failed", "direction", *direction, "error", err)
	}
	logger.Infow("projected", "direction", *direction, "input", *point, "result", result)
}

// runProjection performs a single transform and renders the result.
func runProjection(cs *transform.CameraSystem, direction, point string, scale, distance float64) (string, error) {
	coords, err := parseCoords(point)
	if err != nil {
		return "", err
	}

	pt3, pt2, err := pointsForDirection(direction, coords)
	if err != nil {
		return "", err
	}

	// image-to-* directions need a homogeneous scale; estimate it from a
	// known distance when no scale is supplied
	if strings.HasPrefix(direction, "image-to-") && scale == 0 {
		if distance == 0 {
			return "", errors.New("image-to-* directions need -scale or -distance")
		}
		scale, err = cs.EstimateScale(pt2, distance)
		if err != nil {
			return "", err
		}
	}

	switch direction {
	case "camera-to-image":
		img, s, err := cs.CameraPointToImagePoint(pt3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("u=%g v=%g scale=%g", img.X, img.Y, s), nil
	case "image-to-camera":
		pt, err := cs.ImagePointToCameraPoint(pt2, scale)
		if err != nil {
			return "", err
		}
		return formatVector(pt), nil
	case "world-to-camera":
		pt, err := cs.WorldPointToCameraPoint(pt3)
		if err != nil {
			return "", err
		}
		return formatVector(pt), nil
	case "camera-to-world":
		pt, err := cs.CameraPointToWorldPoint(pt3)
		if err != nil {
			return "", err
		}
		return formatVector(pt), nil
	case "world-to-image":
		img, s, err := cs.WorldPointToImagePoint(pt3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("u=%g v=%g scale=%g", img.X, img.Y, s), nil
	case "image-to-world":
		pt, err := cs.ImagePointToWorldPoint(pt2, scale)
		if err != nil {
			return "", err
		}
		return formatVector(pt), nil
	default:
		return "", errors.Errorf("unknown direction %q", direction)
	}
}

// pointsForDirection checks the coordinate count against the direction and
// splits the parsed coordinates into the 2D or 3D point the direction needs.
func pointsForDirection(direction string, coords []float64) (r3.Vector, r2.Point, error) {
	fromImage := strings.HasPrefix(direction, "image-to-")
	if fromImage {
		if len(coords) != 2 {
			return r3.Vector{}, r2.Point{}, errors.Errorf("%s needs a 2D point, got %d coordinates", direction, len(coords))
		}
		return r3.Vector{}, r2.Point{X: coords[0], Y: coords[1]}, nil
	}
	if len(coords) != 3 {
		return r3.Vector{}, r2.Point{}, errors.Errorf("%s needs a 3D point, got %d coordinates", direction, len(coords))
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, r2.Point{}, nil
}

func parseCoords(s string) ([]float64, error) {
	if s == "" {
		return nil, errors.New("-point is required")
	}
	fields := strings.Split(s, ",")
	coords := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse coordinate %q", f)
		}
		coords = append(coords, v)
	}
	return coords, nil
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("x=%g y=%g z=%g", v.X, v.Y, v.Z)
}
