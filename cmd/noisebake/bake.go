package main

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shading"
	"github.com/Carmen-Shannon/oxy-orrery/noise"
	"github.com/chewxy/math32"
)

// sampler maps a unit-sphere point to a color at time t.
type sampler func(p [3]float32, t float32) color.NRGBA

// modes holds every bakeable field keyed by its -mode name.
var modes = map[string]sampler{
	"perlin": func(p [3]float32, _ float32) color.NRGBA {
		return grey(0.5 + 0.5*noise.Perlin(scale3(p, 4)))
	},
	"turbulence": func(p [3]float32, _ float32) color.NRGBA {
		return grey(noise.Turbulence(p) + 0.5)
	},
	"displacement": func(p [3]float32, t float32) color.NRGBA {
		// Sun displacement stays roughly within [-10, 15].
		return grey((shading.SunDisplacement(p, t) + 10) / 25)
	},
	"sun": func(p [3]float32, t float32) color.NRGBA {
		c := shading.SunColor(shading.SunDisplacement(p, t), t)
		return color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
	},
}

// modeNames returns the sorted mode names.
func modeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bake renders mode as an equirectangular map of the unit sphere, width x width/2 pixels.
// Rows are rendered on a worker pool.
//
// Parameters:
//   - mode: the field to bake
//   - width: the image width in pixels
//   - t: the time the field is evaluated at
//   - workers: the maximum number of concurrent workers
//
// Returns:
//   - *image.NRGBA: the baked image
//   - error: if the mode is unknown or the size is too small
func bake(mode string, width int, t float32, workers int) (*image.NRGBA, error) {
	sample, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q (want one of %v)", mode, modeNames())
	}
	if width < 2 {
		return nil, fmt.Errorf("width %d is too small", width)
	}
	height := width / 2
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	pool := worker.NewDynamicWorkerPool(workers, height, time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	for y := range height {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: y,
			Do: func() (any, error) {
				defer wg.Done()
				for x := range width {
					img.SetNRGBA(x, y, sample(spherePoint(x, y, width, height), t))
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return img, nil
}

// spherePoint maps the center of pixel (x, y) to the unit sphere. x spans longitude and
// y spans latitude from the north pole down.
func spherePoint(x, y, width, height int) [3]float32 {
	lon := 2 * math32.Pi * (float32(x) + 0.5) / float32(width)
	lat := math32.Pi/2 - math32.Pi*(float32(y)+0.5)/float32(height)
	return [3]float32{
		math32.Cos(lat) * math32.Cos(lon),
		math32.Sin(lat),
		math32.Cos(lat) * math32.Sin(lon),
	}
}

func scale3(p [3]float32, s float32) [3]float32 {
	return [3]float32{p[0] * s, p[1] * s, p[2] * s}
}

func unit8(v float32) uint8 {
	return uint8(math32.Round(255 * min(max(v, 0), 1)))
}

func grey(v float32) color.NRGBA {
	g := unit8(v)
	return color.NRGBA{R: g, G: g, B: g, A: 255}
}
