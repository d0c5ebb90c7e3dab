package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-transform/pkg/geometry"
)

// TestCalculateErrors checks per-link residuals and RMS aggregation against
// an identity transform: residuals 3 and 4 give RMS sqrt((9+16)/2).
func TestCalculateErrors(t *testing.T) {
	xfm := Identity()
	links := []Link{
		{Name: "A", Source: geometry.Point2D{X: 0, Y: 0}, Target: geometry.Point2D{X: 3, Y: 0}},
		{Name: "B", Source: geometry.Point2D{X: 10, Y: 10}, Target: geometry.Point2D{X: 10, Y: 14}},
	}

	errs, rms := CalculateErrors(xfm, links)
	require.Len(t, errs, 2)

	assert.Equal(t, "A", errs[0].Name)
	assert.Equal(t, "B", errs[1].Name)
	assert.InDelta(t, 3.0, errs[0].Distance, 1e-12)
	assert.InDelta(t, 4.0, errs[1].Distance, 1e-12)
	assert.InDelta(t, math.Sqrt(12.5), rms, 1e-12)
}

// TestCalculateErrorsOrder checks that the report preserves link order even
// when names repeat.
func TestCalculateErrorsOrder(t *testing.T) {
	xfm := Identity()
	links := []Link{
		{Name: "P", Source: geometry.Point2D{X: 0, Y: 0}, Target: geometry.Point2D{X: 1, Y: 0}},
		{Name: "P", Source: geometry.Point2D{X: 0, Y: 0}, Target: geometry.Point2D{X: 2, Y: 0}},
		{Name: "Q", Source: geometry.Point2D{X: 0, Y: 0}, Target: geometry.Point2D{X: 0, Y: 0}},
	}

	errs, _ := CalculateErrors(xfm, links)
	require.Len(t, errs, 3)
	assert.InDelta(t, 1.0, errs[0].Distance, 1e-12)
	assert.InDelta(t, 2.0, errs[1].Distance, 1e-12)
	assert.InDelta(t, 0.0, errs[2].Distance, 1e-12)
}

// TestCalculateErrorsEmpty checks the empty-links degenerate case.
func TestCalculateErrorsEmpty(t *testing.T) {
	errs, rms := CalculateErrors(Identity(), nil)
	assert.Empty(t, errs)
	assert.Equal(t, 0.0, rms)
}
