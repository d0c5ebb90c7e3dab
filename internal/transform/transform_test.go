package transform

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-transform/pkg/geometry"
)

// TestIdentity checks that the identity transform maps points to themselves
// both forward and inverse.
func TestIdentity(t *testing.T) {
	xfm := Identity()
	p := geometry.Point2D{X: 12.5, Y: -7.25}

	assert.Equal(t, p, xfm.Forward(p))

	q, err := xfm.Inverse(p)
	require.NoError(t, err)
	assert.Equal(t, p, q)

	assert.Equal(t, 0.0, xfm.Rotation())
	assert.Equal(t, 1.0, xfm.Scale())
	assert.Equal(t, geometry.Point2D{}, xfm.Translation())
}

// TestAccessors checks rotation, scale, and translation readback for a
// transform with known parameters (rotation 30°, scale 2, translation (5,-3)).
func TestAccessors(t *testing.T) {
	r := 30.0 * math.Pi / 180
	xfm := &Transform{a0: 5, b0: -3, a1: 2 * math.Cos(r), b1: 2 * math.Sin(r)}

	assert.InDelta(t, 30.0, xfm.Rotation(), 1e-12)
	assert.InDelta(t, 2.0, xfm.Scale(), 1e-12)
	assert.Equal(t, geometry.Point2D{X: 5, Y: -3}, xfm.Translation())
}

// TestForwardInverseLaw checks that Inverse undoes Forward for a transform
// with nonzero scale.
func TestForwardInverseLaw(t *testing.T) {
	r := -48.3 * math.Pi / 180
	xfm := &Transform{a0: 1021.75, b0: -3.5, a1: 0.75 * math.Cos(r), b1: 0.75 * math.Sin(r)}

	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 100.5, Y: -200.25},
		{X: -1e6, Y: 3.75e5},
	}
	for _, p := range points {
		q, err := xfm.Inverse(xfm.Forward(p))
		require.NoError(t, err)
		assert.InDelta(t, p.X, q.X, 1e-9*math.Max(1, math.Abs(p.X)))
		assert.InDelta(t, p.Y, q.Y, 1e-9*math.Max(1, math.Abs(p.Y)))
	}
}

// TestInverseSingular checks that a zero-scale transform refuses to invert.
func TestInverseSingular(t *testing.T) {
	xfm := &Transform{a0: 10, b0: 20}

	_, err := xfm.Inverse(geometry.Point2D{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrSingularTransform)
}

// TestSaveLoadRoundTrip checks that saved parameters reload to a transform
// whose mapping matches the original within 1e-9 relative error.
func TestSaveLoadRoundTrip(t *testing.T) {
	r := 117.3 * math.Pi / 180
	orig := &Transform{
		a0:   1234567.8912345,
		b0:   -98765.4321,
		a1:   1.0000293847 * math.Cos(r),
		b1:   1.0000293847 * math.Sin(r),
		kind: KindConformal,
	}

	path := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, orig.Save(path))

	loaded := Identity()
	require.NoError(t, loaded.Load(path))

	p := geometry.Point2D{X: 51234.5, Y: -7789.25}
	want := orig.Forward(p)
	got := loaded.Forward(p)
	assert.InDelta(t, want.X, got.X, 1e-9*math.Abs(want.X))
	assert.InDelta(t, want.Y, got.Y, 1e-9*math.Abs(want.Y))
}

// TestLoadIgnoresComments checks that comment and blank lines are skipped and
// that data tokens may span multiple lines (the layout numpy savetxt used).
func TestLoadIgnoresComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	content := "# Similarity transform parameters a0 b0 a1 b1\n" +
		"# Created Mon Jan  2 15:04:05 2006\n" +
		"\n" +
		"10.5\n-20.25\n" +
		"0.5 0.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	xfm := Identity()
	require.NoError(t, xfm.Load(path))

	assert.Equal(t, geometry.Point2D{X: 10.5, Y: -20.25}, xfm.Translation())
	assert.InDelta(t, math.Hypot(0.5, 0.25), xfm.Scale(), 1e-15)
}

// TestLoadMalformed checks the failure modes: wrong parameter count and
// non-numeric tokens.
func TestLoadMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"too few", "1 2 3\n"},
		{"too many", "1 2 3 4 5\n"},
		{"not a number", "1 2 three 4\n"},
		{"empty", "# only a comment\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "params.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			err := Identity().Load(path)
			assert.ErrorIs(t, err, ErrBadParamFile)
		})
	}
}

// TestLoadMissingFile checks that a nonexistent path reports the underlying
// file error, not a format error.
func TestLoadMissingFile(t *testing.T) {
	err := Identity().Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadParamFile)
}
