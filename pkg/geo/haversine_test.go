package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(16.5449, 81.5212, 16.5449, 81.5212))
}

func TestDistanceKnownPoints(t *testing.T) {
	// Hyderabad to Chennai, roughly 515 km great-circle.
	d := Distance(17.3850, 78.4867, 13.0827, 80.2707)
	assert.InDelta(t, 515, d, 15)

	// Two hospitals a few hundred meters apart in Bhimavaram.
	d = Distance(16.5449, 81.5212, 16.5465, 81.5230)
	assert.Less(t, d, 1.0)
	assert.Greater(t, d, 0.0)
}

func TestDistanceSymmetric(t *testing.T) {
	a := Distance(16.5449, 81.5212, 17.3850, 78.4867)
	b := Distance(17.3850, 78.4867, 16.5449, 81.5212)
	assert.InDelta(t, a, b, 1e-9)
}
