package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceM(35.7295, 139.7109, 35.7295, 139.7109))
}

func TestDistanceMOneDegreeLatitude(t *testing.T) {
	// One degree of latitude on a 6371 km sphere is about 111.19 km.
	d := DistanceM(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 10)
}

func TestDistanceMOneDegreeLongitudeAtEquator(t *testing.T) {
	d := DistanceM(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 10)
}

func TestDistanceMSymmetric(t *testing.T) {
	a := DistanceM(35.7295, 139.7109, 35.6895, 139.6917)
	b := DistanceM(35.6895, 139.6917, 35.7295, 139.7109)
	assert.InDelta(t, a, b, 0.0001)
}

func TestDistanceMShortRange(t *testing.T) {
	// Ikebukuro station to a point ~500 m north.
	d := DistanceM(35.7295, 139.7109, 35.7340, 139.7109)
	assert.InDelta(t, 500, d, 10)
}
