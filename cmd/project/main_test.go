package main

import (
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/camgeom/pincam/transform"
)

func loadRefSystem(t *testing.T) *transform.CameraSystem {
	t.Helper()
	cs, err := transform.NewCameraSystemFromJSONFile("../../transform/data/example_parameters.json")
	test.That(t, err, test.ShouldBeNil)
	return cs
}

func TestParseCoords(t *testing.T) {
	coords, err := parseCoords("1.5, -2, 3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coords, test.ShouldResemble, []float64{1.5, -2, 3})

	_, err = parseCoords("")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = parseCoords("1,banana")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRunProjectionDirections(t *testing.T) {
	cs := loadRefSystem(t)

	out, err := runProjection(cs, "camera-to-image", "1.43026,-0.73782,2.16788", 0, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "u=")
	u := extractField(t, out, "u")
	test.That(t, u, test.ShouldAlmostEqual, 795.0, 1e-3)

	out, err = runProjection(cs, "image-to-camera", "795,467", 2.16788, 0)
	test.That(t, err, test.ShouldBeNil)
	x := extractField(t, out, "x")
	test.That(t, x, test.ShouldAlmostEqual, 1.43026, 1e-3)

	out, err = runProjection(cs, "world-to-camera", "2.507,1.590,0.037", 0, 0)
	test.That(t, err, test.ShouldBeNil)
	z := extractField(t, out, "z")
	test.That(t, z, test.ShouldAlmostEqual, 2.1680, 1e-3)

	out, err = runProjection(cs, "camera-to-world", "1.430,-0.7377,2.1680", 0, 0)
	test.That(t, err, test.ShouldBeNil)
	x = extractField(t, out, "x")
	test.That(t, x, test.ShouldAlmostEqual, 2.507, 1e-3)
}

func TestRunProjectionScaleEstimation(t *testing.T) {
	cs := loadRefSystem(t)

	// distance from the camera to the reference point
	dist := 2.70013
	out, err := runProjection(cs, "image-to-camera", "795,467", 0, dist)
	test.That(t, err, test.ShouldBeNil)
	z := extractField(t, out, "z")
	test.That(t, z, test.ShouldAlmostEqual, 2.16788, 1e-3)

	_, err = runProjection(cs, "image-to-camera", "795,467", 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "-scale or -distance")
}

func TestRunProjectionErrors(t *testing.T) {
	cs := loadRefSystem(t)

	_, err := runProjection(cs, "sideways", "1,2,3", 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown direction")

	_, err = runProjection(cs, "camera-to-image", "1,2", 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "3D point")

	_, err = runProjection(cs, "image-to-camera", "1,2,3", 1, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "2D point")
}

// extractField pulls a named value out of a "k=v" formatted result string.
func extractField(t *testing.T, out, name string) float64 {
	t.Helper()
	for _, field := range strings.Fields(out) {
		if strings.HasPrefix(field, name+"=") {
			v, err := strconv.ParseFloat(strings.TrimPrefix(field, name+"="), 64)
			test.That(t, err, test.ShouldBeNil)
			return v
		}
	}
	t.Fatalf("field %q not found in %q", name, out)
	return 0
}
