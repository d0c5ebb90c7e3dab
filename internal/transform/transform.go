// Package transform estimates and applies 2D similarity transforms from
// lists of source/target point correspondences.
package transform

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"grid-transform/pkg/geometry"
)

// Kind identifies the strategy that produced a transform. It is diagnostic
// only and has no effect on the mapping.
type Kind string

const (
	// KindRotateScaleTranslate is the direct solution used for a single link
	// or when the rotation is supplied by the caller.
	KindRotateScaleTranslate Kind = "Rotate/Scale/Translate"
	// KindSVD is the Procrustes rotation fit used when only the scale is
	// supplied.
	KindSVD Kind = "SVD"
	// KindConformal is the full four-parameter least-squares solution.
	KindConformal Kind = "Conformal"
)

// Transform is a 4-parameter similarity transform.
//
// The forward transform, (x0, y0) -> (x1, y1):
//
//	x1 = a0 + a1*x0 - b1*y0
//	y1 = b0 + b1*x0 + a1*y0
//
// which is t + R*p with rotation/scale matrix R = [[a1, -b1], [b1, a1]] and
// translation t = (a0, b0). a1 and b1 encode rotation r and uniform scale k
// jointly:
//
//	r = atan2(b1, a1)
//	k = sqrt(a1^2 + b1^2)
//
// The matrix structure is an invariant: a Transform is always a similarity
// transform, never a general affine. Instances are immutable once built,
// except through Load.
type Transform struct {
	a0, b0 float64 // translation
	a1, b1 float64 // rotation/scale
	kind   Kind
}

// Identity returns the identity transform (zero rotation, unit scale, zero
// translation).
func Identity() *Transform {
	return &Transform{a1: 1}
}

// newRotateScale builds a transform from an explicit rotation (degrees),
// scale factor, and translation.
func newRotateScale(rotateDeg, scale float64, t geometry.Point2D, kind Kind) *Transform {
	r := rotateDeg * math.Pi / 180
	return &Transform{
		a0:   t.X,
		b0:   t.Y,
		a1:   scale * math.Cos(r),
		b1:   scale * math.Sin(r),
		kind: kind,
	}
}

// Type reports which estimation strategy produced the transform.
func (t *Transform) Type() Kind {
	return t.kind
}

// Translation returns the transform displacement (a0, b0).
func (t *Transform) Translation() geometry.Point2D {
	return geometry.Point2D{X: t.a0, Y: t.b0}
}

// Rotation returns the transform rotation in degrees, in (-180, 180].
func (t *Transform) Rotation() float64 {
	return math.Atan2(t.b1, t.a1) * 180 / math.Pi
}

// Scale returns the transform scale factor.
func (t *Transform) Scale() float64 {
	return math.Hypot(t.a1, t.b1)
}

// Forward maps a point from the source system to the target system.
func (t *Transform) Forward(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: t.a0 + t.a1*p.X - t.b1*p.Y,
		Y: t.b0 + t.b1*p.X + t.a1*p.Y,
	}
}

// Inverse maps a point from the target system back to the source system.
// It fails with ErrSingularTransform on a zero-scale transform.
func (t *Transform) Inverse(p geometry.Point2D) (geometry.Point2D, error) {
	// det(R) = a1^2 + b1^2, zero only at zero scale.
	det := t.a1*t.a1 + t.b1*t.b1
	if det < 1e-300 {
		return geometry.Point2D{}, ErrSingularTransform
	}
	a2 := t.a1 / det
	b2 := -t.b1 / det
	dx := p.X - t.a0
	dy := p.Y - t.b0
	return geometry.Point2D{
		X: a2*dx - b2*dy,
		Y: b2*dx + a2*dy,
	}, nil
}

// Save writes the transform parameters to a text file: two comment lines
// followed by a single data line with a0, b0, a1, b1 as whitespace-separated
// decimal numbers.
func (t *Transform) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save transform: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Similarity transform parameters a0 b0 a1 b1")
	fmt.Fprintf(w, "# Created %s\n", time.Now().Format(time.RFC1123))
	fmt.Fprintf(w, "%s %s %s %s\n",
		formatParam(t.a0), formatParam(t.b0), formatParam(t.a1), formatParam(t.b1))

	if err := w.Flush(); err != nil {
		return fmt.Errorf("save transform: %w", err)
	}
	return f.Close()
}

// Load reads transform parameters from a file written by Save. Comment lines
// (starting with '#') and blank lines are ignored; the remaining lines must
// contain exactly four numeric tokens in the order a0, b0, a1, b1.
func (t *Transform) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load transform: %w", err)
	}
	defer f.Close()

	var params []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("%w: bad token %q in %s", ErrBadParamFile, tok, path)
			}
			params = append(params, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load transform: %w", err)
	}
	if len(params) != 4 {
		return fmt.Errorf("%w: expected 4 parameters, found %d in %s", ErrBadParamFile, len(params), path)
	}

	t.a0, t.b0, t.a1, t.b1 = params[0], params[1], params[2], params[3]
	t.kind = ""
	return nil
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}
