package transform

import (
	"math"
)

// LinkError is the residual distance for one link after applying a transform
// to its source point.
type LinkError struct {
	Name     string
	Distance float64
}

// CalculateErrors applies the transform to the source side of each link and
// reports the Euclidean distance to the target side, preserving link order,
// together with the root-mean-square of all residuals.
//
// With exactly the minimum number of links for the chosen strategy the fit is
// exact and all residuals are ~0; that is expected, not an error.
func CalculateErrors(xfm *Transform, links []Link) ([]LinkError, float64) {
	errs := make([]LinkError, len(links))
	var sumSq float64
	for i, ln := range links {
		d := xfm.Forward(ln.Source).Distance(ln.Target)
		errs[i] = LinkError{Name: ln.Name, Distance: d}
		sumSq += d * d
	}

	rms := 0.0
	if len(links) > 0 {
		rms = math.Sqrt(sumSq / float64(len(links)))
	}
	return errs, rms
}
