package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shading"
	"github.com/Carmen-Shannon/oxy-orrery/noise"
	"github.com/HugoSmits86/nativewebp"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBakeSize(t *testing.T) {
	img, err := bake("turbulence", 16, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
}

func TestBakeErrors(t *testing.T) {
	_, err := bake("plasma", 16, 0, 1)
	assert.ErrorContains(t, err, `"plasma"`)

	_, err = bake("sun", 1, 0, 1)
	assert.Error(t, err)
}

func TestBakeMatchesSamplers(t *testing.T) {
	const width, height = 12, 6
	img, err := bake("displacement", width, 3, 2)
	require.NoError(t, err)

	for _, px := range [][2]int{{0, 0}, {5, 3}, {11, 5}} {
		p := spherePoint(px[0], px[1], width, height)
		want := grey((shading.SunDisplacement(p, 3) + 10) / 25)
		assert.Equal(t, want, img.NRGBAAt(px[0], px[1]), "pixel %v", px)
	}
}

func TestBakeSunMatchesShaderColor(t *testing.T) {
	const width, height = 12, 6
	img, err := bake("sun", width, 3, 2)
	require.NoError(t, err)

	for _, px := range [][2]int{{0, 0}, {5, 3}, {11, 5}} {
		p := spherePoint(px[0], px[1], width, height)
		c := shading.SunColor(shading.SunDisplacement(p, 3), 3)
		want := color.NRGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(c[3])}
		assert.Equal(t, want, img.NRGBAAt(px[0], px[1]), "pixel %v", px)
	}
}

func TestSpherePointIsUnit(t *testing.T) {
	for _, px := range [][2]int{{0, 0}, {3, 1}, {7, 3}} {
		p := spherePoint(px[0], px[1], 8, 4)
		assert.InDelta(t, 1, math32.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]), 1e-5)
	}
	top := spherePoint(0, 0, 8, 4)
	assert.Positive(t, top[1], "row 0 is the northern hemisphere")
}

func TestPerlinModeIsGreyAroundMidpoint(t *testing.T) {
	p := [3]float32{0.25, 0.5, 0}
	c := modes["perlin"](p, 0)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.Equal(t, unit8(0.5+0.5*noise.Perlin(scale3(p, 4))), c.R)
}

func TestUnit8Clamps(t *testing.T) {
	assert.Equal(t, uint8(0), unit8(-2))
	assert.Equal(t, uint8(255), unit8(7))
	assert.Equal(t, uint8(128), unit8(0.5))
}

func TestBakedImageEncodesAsWebP(t *testing.T) {
	img, err := bake("sun", 8, 1, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, nativewebp.Encode(&buf, img, nil))
	assert.Equal(t, "RIFF", buf.String()[:4])
}

func TestWriteWebP(t *testing.T) {
	img, err := bake("perlin", 8, 0, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "perlin.webp")
	require.NoError(t, writeWebP(path, img))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	assert.Error(t, writeWebP(filepath.Join(t.TempDir(), "missing", "out.webp"), img))
}
