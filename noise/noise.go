// Package noise implements classic 3D gradient noise, its tileable variant and a turbulence sum.
//
// The functions are pure and safe to call from any goroutine. The same algorithm is
// available to shaders through GPUNoiseSource, so CPU results can be used to reason about
// (and test) what the GPU displacement programs produce.
package noise

import (
	_ "embed"

	"github.com/chewxy/math32"
)

// GPUNoiseSource is the WGSL implementation of Perlin, Periodic and Turbulence
// (as perlin_noise, periodic_noise and turbulence). The shader pre-processor injects it
// for `//@oxy:include noise`.
//
//go:embed assets/noise.wgsl
var GPUNoiseSource string

// Amplitude is the factor applied to the raw gradient-noise interpolant so results
// land roughly in [-1, 1].
const Amplitude = 2.2

// TurbulenceOctaves is the number of octaves summed by Turbulence.
const TurbulenceOctaves = 10

// TurbulencePeriod is the lattice period of every octave summed by Turbulence.
var TurbulencePeriod = [3]float32{10, 10, 10}

type vec4 [4]float32

// mod289 wraps x into [0, 289).
func mod289(x float32) float32 {
	return x - math32.Floor(x*(1.0/289.0))*289.0
}

// floorMod is the floored modulo used for lattice wrapping: x - y*floor(x/y).
func floorMod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

// step returns 0 when x < edge and 1 otherwise.
func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func permute(x vec4) vec4 {
	for i := range x {
		x[i] = mod289((x[i]*34.0 + 1.0) * x[i])
	}
	return x
}

func taylorInvSqrt(r float32) float32 {
	return 1.79284291400159 - 0.85373472095314*r
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// gradients hashes a z-slab of four lattice corners to unit-ish gradient vectors.
// The returned gradients are normalised with the Taylor inverse square root.
func gradients(ixy vec4) [4][3]float32 {
	var gx, gy, gz vec4
	for i := range ixy {
		gx[i] = ixy[i] * (1.0 / 7.0)
		gy[i] = fract(math32.Floor(gx[i])*(1.0/7.0)) - 0.5
		gx[i] = fract(gx[i])
		gz[i] = 0.5 - math32.Abs(gx[i]) - math32.Abs(gy[i])
		sz := step(gz[i], 0)
		gx[i] -= sz * (step(0, gx[i]) - 0.5)
		gy[i] -= sz * (step(0, gy[i]) - 0.5)
	}

	var g [4][3]float32
	for i := range g {
		g[i] = [3]float32{gx[i], gy[i], gz[i]}
		n := taylorInvSqrt(dot3(g[i], g[i]))
		g[i] = [3]float32{g[i][0] * n, g[i][1] * n, g[i][2] * n}
	}
	return g
}

// gradientNoise evaluates the noise field at p given already-wrapped lattice
// coordinates pi0 (cell origin) and pi1 (cell origin + 1).
func gradientNoise(p, pi0, pi1 [3]float32) float32 {
	for i := 0; i < 3; i++ {
		pi0[i] = mod289(pi0[i])
		pi1[i] = mod289(pi1[i])
	}
	var pf0, pf1 [3]float32
	for i := 0; i < 3; i++ {
		pf0[i] = fract(p[i])
		pf1[i] = pf0[i] - 1
	}

	ix := vec4{pi0[0], pi1[0], pi0[0], pi1[0]}
	iy := vec4{pi0[1], pi0[1], pi1[1], pi1[1]}

	ixy := permute(ix)
	for i := range ixy {
		ixy[i] += iy[i]
	}
	ixy = permute(ixy)

	var ixy0, ixy1 vec4
	for i := range ixy {
		ixy0[i] = ixy[i] + pi0[2]
		ixy1[i] = ixy[i] + pi1[2]
	}
	g0 := gradients(permute(ixy0))
	g1 := gradients(permute(ixy1))

	// Corner order within a slab is (x0y0, x1y0, x0y1, x1y1).
	n000 := dot3(g0[0], pf0)
	n100 := dot3(g0[1], [3]float32{pf1[0], pf0[1], pf0[2]})
	n010 := dot3(g0[2], [3]float32{pf0[0], pf1[1], pf0[2]})
	n110 := dot3(g0[3], [3]float32{pf1[0], pf1[1], pf0[2]})
	n001 := dot3(g1[0], [3]float32{pf0[0], pf0[1], pf1[2]})
	n101 := dot3(g1[1], [3]float32{pf1[0], pf0[1], pf1[2]})
	n011 := dot3(g1[2], [3]float32{pf0[0], pf1[1], pf1[2]})
	n111 := dot3(g1[3], pf1)

	fx, fy, fz := fade(pf0[0]), fade(pf0[1]), fade(pf0[2])
	nz := vec4{
		mix(n000, n001, fz),
		mix(n100, n101, fz),
		mix(n010, n011, fz),
		mix(n110, n111, fz),
	}
	nyz0 := mix(nz[0], nz[2], fy)
	nyz1 := mix(nz[1], nz[3], fy)
	return Amplitude * mix(nyz0, nyz1, fx)
}

// Perlin evaluates classic 3D gradient noise at p.
// The result is continuous with a continuous gradient and lies roughly within [-1, 1].
// At integer lattice points the value is exactly zero.
//
// Parameters:
//   - p: the sample position
//
// Returns:
//   - float32: the noise value
func Perlin(p [3]float32) float32 {
	var pi0, pi1 [3]float32
	for i := 0; i < 3; i++ {
		pi0[i] = math32.Floor(p[i])
		pi1[i] = pi0[i] + 1
	}
	return gradientNoise(p, pi0, pi1)
}

// Periodic evaluates gradient noise whose lattice wraps with period rep on each axis,
// so Periodic(p + k*rep, rep) == Periodic(p, rep) for integer k (up to float rounding).
// Every rep component must be a positive whole number.
//
// Parameters:
//   - p: the sample position
//   - rep: the period per axis
//
// Returns:
//   - float32: the noise value
func Periodic(p, rep [3]float32) float32 {
	var pi0, pi1 [3]float32
	for i := 0; i < 3; i++ {
		pi0[i] = floorMod(math32.Floor(p[i]), rep[i])
		pi1[i] = floorMod(pi0[i]+1, rep[i])
	}
	return gradientNoise(p, pi0, pi1)
}

// Turbulence sums the absolute value of ten octaves of Periodic noise.
// Octave f (1..10) samples at frequency 2^f and is weighted by 1/2^f,
// and the sum starts from -0.5.
//
// Parameters:
//   - p: the sample position
//
// Returns:
//   - float32: the turbulence value, at least -0.5
func Turbulence(p [3]float32) float32 {
	t := float32(-0.5)
	for f := 1; f <= TurbulenceOctaves; f++ {
		power := math32.Pow(2, float32(f))
		q := [3]float32{p[0] * power, p[1] * power, p[2] * power}
		t += math32.Abs(Periodic(q, TurbulencePeriod) / power)
	}
	return t
}
