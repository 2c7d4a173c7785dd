package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceNM_TucsonToLosAngeles(t *testing.T) {
	// KTUS -> KLAX, a known ~391 NM leg (~446 statute miles); validates
	// the haversine scaling.
	got := DistanceNM(32.1161, -110.9410, 33.9425, -118.4081)
	assert.InEpsilon(t, 391.4, got, 0.02)
}

func TestDistanceNM_SamePoint(t *testing.T) {
	assert.Zero(t, DistanceNM(51.4700, -0.4543, 51.4700, -0.4543))
}

func TestDistanceNM_Symmetric(t *testing.T) {
	ab := DistanceNM(40.6413, -73.7781, 33.9425, -118.4081)
	ba := DistanceNM(33.9425, -118.4081, 40.6413, -73.7781)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistanceNM_CrossesAntimeridian(t *testing.T) {
	// RJTT (Tokyo Haneda) -> KSFO; the short way crosses the date line.
	got := DistanceNM(35.5523, 139.7798, 37.6213, -122.3790)
	assert.Greater(t, got, 4000.0)
	assert.Less(t, got, 5000.0)
}
