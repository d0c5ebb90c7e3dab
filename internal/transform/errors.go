package transform

import "errors"

var (
	// ErrNoLinks indicates the estimator was called with an empty links list.
	ErrNoLinks = errors.New("transform: at least one link is required")
	// ErrWeightMismatch indicates the weights list does not correlate with the
	// links list (different length, or a name differs at some position).
	ErrWeightMismatch = errors.New("transform: weights do not match links")
	// ErrNegativeWeight indicates a weight value below zero.
	ErrNegativeWeight = errors.New("transform: weight values must be non-negative")
	// ErrZeroWeight indicates the weights sum to zero, leaving the weighted
	// centroid undefined.
	ErrZeroWeight = errors.New("transform: weights must not all be zero")
	// ErrMirroredTransform indicates the best-fit alignment requires a
	// reflection, which a similarity transform cannot represent.
	ErrMirroredTransform = errors.New("transform: point configurations are mirror images")
	// ErrSingularSystem indicates the least-squares normal equations are not
	// solvable (source points collinear or coincident).
	ErrSingularSystem = errors.New("transform: singular system, source points are degenerate")
	// ErrSingularTransform indicates an inverse was requested on a zero-scale
	// transform.
	ErrSingularTransform = errors.New("transform: zero-scale transform has no inverse")
	// ErrBadParamFile indicates a parameter file with the wrong token count or
	// non-numeric data.
	ErrBadParamFile = errors.New("transform: malformed parameter file")
)
