// Command xfmcalc estimates similarity transform parameters from a links file
// and writes them to a parameter file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"grid-transform/internal/angle"
	"grid-transform/internal/linkfile"
	"grid-transform/internal/transform"
)

func main() {
	linksPath := flag.String("links", "", "Path to links file (name, x0, y0, x1, y1)")
	weightsPath := flag.String("weights", "", "Optional path to weights file (name, weight)")
	rotateStr := flag.String("rotate", "", "Optional fixed rotation: decimal degrees or 'deg min [sec]'")
	scaleStr := flag.String("scale", "", "Optional fixed scale factor")
	outPath := flag.String("out", "", "Output transform parameter file")
	flag.Parse()

	if *linksPath == "" || *outPath == "" {
		fmt.Println("Usage: xfmcalc -links <file> -out <file> [-weights <file>] [-rotate <angle>] [-scale <factor>]")
		os.Exit(1)
	}

	links, err := linkfile.ReadLinks(*linksPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read links: %v\n", err)
		os.Exit(1)
	}

	var weights []transform.Weight
	if *weightsPath != "" {
		weights, err = linkfile.ReadWeights(*weightsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read weights: %v\n", err)
			os.Exit(1)
		}
	}

	var rotate, scale *float64
	if *rotateStr != "" {
		r, err := angle.ParseRotation(*rotateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad rotation value: %v\n", err)
			os.Exit(1)
		}
		rotate = &r
	}
	if *scaleStr != "" {
		k, err := strconv.ParseFloat(*scaleStr, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad scale value: %q\n", *scaleStr)
			os.Exit(1)
		}
		scale = &k
	}

	xfm, err := transform.Estimate(links, weights, rotate, scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Estimation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Number of links: %d\n", len(links))
	fmt.Printf("Transform type: %s\n", xfm.Type())
	fmt.Printf("Rotation: %.8f°\n", xfm.Rotation())
	fmt.Printf("Scale: %.10f\n", xfm.Scale())
	t := xfm.Translation()
	fmt.Printf("Translation: (%.4f, %.4f)\n", t.X, t.Y)

	if len(links) > 1 {
		linkErrors, rms := transform.CalculateErrors(xfm, links)
		fmt.Println("Errors:")
		for _, e := range linkErrors {
			fmt.Printf("  link %s: err=%.4f\n", e.Name, e.Distance)
		}
		fmt.Printf("RMS error: %.4f\n", rms)
	}

	if err := xfm.Save(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save parameters: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Parameters written to %s\n", *outPath)
}
