package transform

import (
	"fmt"

	"grid-transform/pkg/geometry"
)

// Link is a correspondence between a source point and a target point, used as
// one observation when fitting a transform. The name is an opaque identifier
// carried through to error reports.
type Link struct {
	Name   string
	Source geometry.Point2D
	Target geometry.Point2D
}

// Weight is a per-link observation weight, correlated to a link by position
// and cross-checked by name.
type Weight struct {
	Name  string
	Value float64
}

// linkWeights validates the weights list against the links list and returns
// the plain weight vector. A nil weights list means equal weighting.
func linkWeights(links []Link, weights []Weight) ([]float64, error) {
	w := make([]float64, len(links))
	if weights == nil {
		for i := range w {
			w[i] = 1.0
		}
		return w, nil
	}

	if len(weights) != len(links) {
		return nil, fmt.Errorf("%w: %d weights for %d links", ErrWeightMismatch, len(weights), len(links))
	}

	var sum float64
	for i, wt := range weights {
		if wt.Name != links[i].Name {
			return nil, fmt.Errorf("%w: weight %q does not correlate with link %q at position %d",
				ErrWeightMismatch, wt.Name, links[i].Name, i)
		}
		if wt.Value < 0 {
			return nil, fmt.Errorf("%w: weight %q is %g", ErrNegativeWeight, wt.Name, wt.Value)
		}
		w[i] = wt.Value
		sum += wt.Value
	}
	if sum == 0 {
		return nil, ErrZeroWeight
	}
	return w, nil
}
