// Package linkfile reads and writes the tab-separated text files used to
// exchange links, weights, and named point lists with surveying tools.
//
// All formats share the same framing: one record per line, fields separated
// by tabs, blank lines and lines starting with '#' ignored. The leading name
// field is optional; records without it are numbered 01, 02, ... in file
// order.
package linkfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grid-transform/internal/transform"
	"grid-transform/pkg/geometry"
)

// NamedPoint is a point with an identifying name, as read from or written to
// a points file.
type NamedPoint struct {
	Name  string
	Point geometry.Point2D
}

// ReadLinks reads a links file. Each record is
//
//	name <tab> x0 <tab> y0 <tab> x1 <tab> y1
//
// with the name optional.
func ReadLinks(path string) ([]transform.Link, error) {
	var links []transform.Link
	err := readRecords(path, func(fields []string, n int) error {
		if len(fields) == 4 {
			fields = append([]string{fmt.Sprintf("%02d", n+1)}, fields...)
		}
		if len(fields) != 5 {
			return fmt.Errorf("expected 4 or 5 fields, got %d", len(fields))
		}
		vals, err := parseFloats(fields[1:])
		if err != nil {
			return err
		}
		links = append(links, transform.Link{
			Name:   fields[0],
			Source: geometry.Point2D{X: vals[0], Y: vals[1]},
			Target: geometry.Point2D{X: vals[2], Y: vals[3]},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ReadWeights reads a weights file. Each record is
//
//	name <tab> weight
//
// with the name optional.
func ReadWeights(path string) ([]transform.Weight, error) {
	var weights []transform.Weight
	err := readRecords(path, func(fields []string, n int) error {
		if len(fields) == 1 {
			fields = append([]string{fmt.Sprintf("%02d", n+1)}, fields...)
		}
		if len(fields) != 2 {
			return fmt.Errorf("expected 1 or 2 fields, got %d", len(fields))
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad weight %q", fields[1])
		}
		weights = append(weights, transform.Weight{Name: fields[0], Value: v})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return weights, nil
}

// ReadPoints reads a points file. Each record is
//
//	name <tab> x <tab> y
//
// with the name optional.
func ReadPoints(path string) ([]NamedPoint, error) {
	var points []NamedPoint
	err := readRecords(path, func(fields []string, n int) error {
		if len(fields) == 2 {
			fields = append([]string{fmt.Sprintf("%02d", n+1)}, fields...)
		}
		if len(fields) != 3 {
			return fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
		}
		vals, err := parseFloats(fields[1:])
		if err != nil {
			return err
		}
		points = append(points, NamedPoint{
			Name:  fields[0],
			Point: geometry.Point2D{X: vals[0], Y: vals[1]},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// WritePoints writes a points file in the format ReadPoints accepts.
func WritePoints(path string, points []NamedPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write points: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", p.Name, p.Point.X, p.Point.Y)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write points: %w", err)
	}
	return f.Close()
}

// readRecords scans a file line by line, skipping blanks and comments, and
// hands tab-split fields to fn along with the running record count.
func readRecords(path string, fn func(fields []string, n int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(strings.Split(line, "\t"), n); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		n++
	}
	return scanner.Err()
}

func parseFloats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", s)
		}
		vals[i] = v
	}
	return vals, nil
}
