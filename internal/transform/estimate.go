package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"grid-transform/pkg/geometry"
)

// mode is the estimation strategy, selected up front from the link count and
// which of rotation/scale the caller fixed.
type mode int

const (
	modeRotateScaleTranslate mode = iota
	modeProcrustes
	modeConformal
)

// selectMode picks the estimation strategy. A single link, or an explicit
// rotation, pins the rotation/scale matrix directly; a given scale leaves
// only the rotation to fit; otherwise all four parameters are solved at once.
func selectMode(nLinks int, haveRotate, haveScale bool) mode {
	switch {
	case nLinks == 1 || haveRotate:
		return modeRotateScaleTranslate
	case haveScale:
		return modeProcrustes
	default:
		return modeConformal
	}
}

// Estimate fits a similarity transform to one or more links.
//
// weights correlate to links by position (cross-checked by name); nil means
// equal weighting. rotate (degrees) and scale may be nil to request that the
// parameter be estimated; when fixed they constrain the fit:
//
//   - one link, or rotate given: rotation defaults to 0 and scale to 1 when
//     absent, and only the translation is computed (from weighted centroids).
//   - scale given, two or more links: best-fit rotation by weighted orthogonal
//     Procrustes alignment (SVD of the cross-covariance).
//   - neither given, two or more links: all four parameters by weighted
//     linear least squares.
func Estimate(links []Link, weights []Weight, rotate, scale *float64) (*Transform, error) {
	if len(links) == 0 {
		return nil, ErrNoLinks
	}
	w, err := linkWeights(links, weights)
	if err != nil {
		return nil, err
	}

	src := make([]geometry.Point2D, len(links))
	dst := make([]geometry.Point2D, len(links))
	for i, ln := range links {
		src[i] = ln.Source
		dst[i] = ln.Target
	}
	centroidSrc := geometry.WeightedCentroid(src, w)
	centroidDst := geometry.WeightedCentroid(dst, w)

	switch selectMode(len(links), rotate != nil, scale != nil) {
	case modeRotateScaleTranslate:
		r, k := 0.0, 1.0
		if rotate != nil {
			r = *rotate
		}
		if scale != nil {
			k = *scale
		}
		return solveRotateScaleTranslate(r, k, centroidSrc, centroidDst), nil

	case modeProcrustes:
		return solveProcrustes(src, dst, w, *scale, centroidSrc, centroidDst)

	default:
		return solveConformal(links, w)
	}
}

// solveRotateScaleTranslate builds the transform directly from a known
// rotation and scale; the translation maps the weighted source centroid onto
// the weighted target centroid. For a single link this reduces to the exact
// point pair.
func solveRotateScaleTranslate(rotateDeg, scale float64, centroidSrc, centroidDst geometry.Point2D) *Transform {
	xfm := newRotateScale(rotateDeg, scale, geometry.Point2D{}, KindRotateScaleTranslate)
	t := centroidDst.Sub(xfm.Forward(centroidSrc))
	xfm.a0 = t.X
	xfm.b0 = t.Y
	return xfm
}

// solveProcrustes fits the rotation for a fixed scale by weighted orthogonal
// Procrustes alignment: center both point sets on their weighted centroids,
// form the weighted cross-covariance H = src_c' * diag(w) * dst_c, and take
// the rotation V*U' from its singular value decomposition.
func solveProcrustes(src, dst []geometry.Point2D, w []float64, scale float64,
	centroidSrc, centroidDst geometry.Point2D) (*Transform, error) {

	h := mat.NewDense(2, 2, nil)
	for i := range src {
		s := src[i].Sub(centroidSrc)
		d := dst[i].Sub(centroidDst)
		h.Set(0, 0, h.At(0, 0)+w[i]*s.X*d.X)
		h.Set(0, 1, h.At(0, 1)+w[i]*s.X*d.Y)
		h.Set(1, 0, h.At(1, 0)+w[i]*s.Y*d.X)
		h.Set(1, 1, h.At(1, 1)+w[i]*s.Y*d.Y)
	}

	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return nil, fmt.Errorf("%w: SVD of cross-covariance failed", ErrSingularSystem)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var rot mat.Dense
	rot.Mul(&v, u.T())

	// det < 0 means the optimal alignment is a reflection, which a
	// similarity transform cannot represent.
	if mat.Det(&rot) < 0 {
		return nil, ErrMirroredTransform
	}

	xfm := &Transform{
		a1:   scale * rot.At(0, 0),
		b1:   scale * rot.At(1, 0),
		kind: KindSVD,
	}
	t := centroidDst.Sub(xfm.Forward(centroidSrc))
	xfm.a0 = t.X
	xfm.b0 = t.Y
	return xfm, nil
}

// solveConformal solves all four parameters simultaneously by weighted linear
// least squares. Each link contributes two equations
//
//	x1 = a0 + a1*x0 - b1*y0
//	y1 = b0 + b1*x0 + a1*y0
//
// stacked into a (2n, 4) design matrix with unknowns [a0, b0, a1, b1]. The
// weighted solution is obtained by scaling each row pair by sqrt(weight) and
// solving with QR.
func solveConformal(links []Link, w []float64) (*Transform, error) {
	n := len(links)
	a := mat.NewDense(2*n, 4, nil)
	b := mat.NewVecDense(2*n, nil)

	for i, ln := range links {
		sw := math.Sqrt(w[i])
		x0, y0 := ln.Source.X, ln.Source.Y

		a.Set(2*i, 0, sw)
		a.Set(2*i, 2, sw*x0)
		a.Set(2*i, 3, -sw*y0)
		b.SetVec(2*i, sw*ln.Target.X)

		a.Set(2*i+1, 1, sw)
		a.Set(2*i+1, 2, sw*y0)
		a.Set(2*i+1, 3, sw*x0)
		b.SetVec(2*i+1, sw*ln.Target.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	return &Transform{
		a0:   params.AtVec(0),
		b0:   params.AtVec(1),
		a1:   params.AtVec(2),
		b1:   params.AtVec(3),
		kind: KindConformal,
	}, nil
}
