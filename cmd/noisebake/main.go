// Command noisebake writes the procedural fields used by the sun shader to WebP images,
// as equirectangular maps of the unit sphere.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

func main() {
	mode := flag.String("mode", "sun", "Field to bake: "+strings.Join(modeNames(), ", "))
	width := flag.Int("width", 512, "Image width in pixels; the height is half of it")
	at := flag.Float64("time", 0, "Scene time in seconds to evaluate animated fields at")
	out := flag.String("out", "", "Output file (default: <mode>.webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	flag.Parse()

	if *out == "" {
		*out = *mode + ".webp"
	}
	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	start := time.Now()
	img, err := bake(*mode, *width, float32(*at), *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeWebP(*out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d) in %s\n", *out, img.Bounds().Dx(), img.Bounds().Dy(), time.Since(start).Round(time.Millisecond))
}

// writeWebP encodes img losslessly to path. A failed close is an error.
func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
