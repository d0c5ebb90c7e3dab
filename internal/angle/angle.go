// Package angle converts rotation inputs expressed as decimal degrees or
// degrees-minutes-seconds into decimal degrees.
package angle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAngle indicates a malformed or out-of-range rotation value.
var ErrInvalidAngle = errors.New("angle: invalid rotation value")

// FromDMS converts separate degree, minute, and second components to decimal
// degrees. Degrees and minutes must be integer-valued; minutes and seconds
// must lie in [0, 60). The sign of the angle is taken from the degrees
// component, with minutes and seconds treated as unsigned magnitudes.
func FromDMS(deg, min, sec float64) (float64, error) {
	if min < 0 || sec < 0 {
		return 0, fmt.Errorf("%w: negative min/sec: min=%g sec=%g", ErrInvalidAngle, min, sec)
	}
	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("%w: min/sec out of range: min=%g sec=%g", ErrInvalidAngle, min, sec)
	}
	if deg != math.Trunc(deg) || min != math.Trunc(min) {
		return 0, fmt.Errorf("%w: non-integer deg/min: deg=%g min=%g", ErrInvalidAngle, deg, min)
	}

	decimal := min/60 + sec/3600
	if deg < 0 {
		return deg - decimal, nil
	}
	return deg + decimal, nil
}

// FromDM converts a degree component and a fractional minute component to
// decimal degrees; the fraction of the minutes becomes seconds.
func FromDM(deg, min float64) (float64, error) {
	if min < 0 {
		return 0, fmt.Errorf("%w: negative minutes: %g", ErrInvalidAngle, min)
	}
	whole := math.Trunc(min)
	return FromDMS(deg, whole, (min-whole)*60)
}

// FromPacked converts a packed DMS value of the form ±DDD.MMSSss... to
// decimal degrees: the first two fractional digits are minutes, the next two
// (plus any remainder) are seconds.
func FromPacked(v float64) (float64, error) {
	deg := math.Trunc(v)
	rest := math.Abs(v-deg) * 100
	min := math.Trunc(rest)
	sec := (rest - min) * 100
	return FromDMS(deg, min, sec)
}

// ParseRotation parses a rotation string of one to three whitespace-separated
// numeric tokens: decimal degrees, degrees + minutes, or degrees + minutes +
// seconds. Degree and minute tokens in the multi-token forms must be
// integers.
func ParseRotation(s string) (float64, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		dec, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
		}
		return dec, nil

	case 2:
		deg, err1 := strconv.Atoi(fields[0])
		min, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
		}
		dec, err := FromDM(float64(deg), min)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
		}
		return dec, nil

	case 3:
		deg, err1 := strconv.Atoi(fields[0])
		min, err2 := strconv.Atoi(fields[1])
		sec, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
		}
		dec, err := FromDMS(float64(deg), float64(min), sec)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
		}
		return dec, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
}
