// Command xfmapply applies a saved similarity transform to a points file,
// forward (source to target system) or inverse.
package main

import (
	"flag"
	"fmt"
	"os"

	"grid-transform/internal/linkfile"
	"grid-transform/internal/transform"
)

func main() {
	paramsPath := flag.String("params", "", "Transform parameter file written by xfmcalc")
	pointsPath := flag.String("points", "", "Input points file (name, x, y)")
	outPath := flag.String("out", "", "Output points file")
	inverse := flag.Bool("inverse", false, "Apply the inverse transform (target to source)")
	flag.Parse()

	if *paramsPath == "" || *pointsPath == "" || *outPath == "" {
		fmt.Println("Usage: xfmapply -params <file> -points <file> -out <file> [-inverse]")
		os.Exit(1)
	}

	xfm := transform.Identity()
	if err := xfm.Load(*paramsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load parameters: %v\n", err)
		os.Exit(1)
	}

	points, err := linkfile.ReadPoints(*pointsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read points: %v\n", err)
		os.Exit(1)
	}

	out := make([]linkfile.NamedPoint, len(points))
	for i, p := range points {
		if *inverse {
			q, err := xfm.Inverse(p.Point)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Inverse failed: %v\n", err)
				os.Exit(1)
			}
			out[i] = linkfile.NamedPoint{Name: p.Name, Point: q}
		} else {
			out[i] = linkfile.NamedPoint{Name: p.Name, Point: xfm.Forward(p.Point)}
		}
	}

	if err := linkfile.WritePoints(*outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write points: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Transformed %d points (rotation %.6f°, scale %.8f) to %s\n",
		len(points), xfm.Rotation(), xfm.Scale(), *outPath)
}
