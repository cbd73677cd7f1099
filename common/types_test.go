package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureSourceDecode(t *testing.T) {
	data := encodePNG(t, 4, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	staged, err := TextureSource{Name: "swatch", Data: data}.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), staged.Width)
	assert.Equal(t, uint32(2), staged.Height)
	require.Len(t, staged.Pixels, 4*2*4)
	assert.Equal(t, []byte{10, 20, 30, 255}, staged.Pixels[:4])
}

func TestTextureSourceDecodeDownscales(t *testing.T) {
	data := encodePNG(t, 64, 16, color.NRGBA{R: 200, A: 255})

	staged, err := TextureSource{Name: "wide", Data: data, MaxSize: 32}.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(32), staged.Width)
	assert.Equal(t, uint32(8), staged.Height)
	assert.Len(t, staged.Pixels, 32*8*4)
}

func TestTextureSourceDecodeErrors(t *testing.T) {
	_, err := TextureSource{Name: "empty"}.Decode()
	assert.Error(t, err)

	_, err = TextureSource{Name: "garbage", Data: []byte("not an image")}.Decode()
	assert.Error(t, err)

	_, err = TextureSource{Path: "/nonexistent/texture.png"}.Decode()
	assert.Error(t, err)
}

func TestWhiteTexture(t *testing.T) {
	w := WhiteTexture()
	assert.Equal(t, uint32(1), w.Width)
	assert.Equal(t, uint32(1), w.Height)
	assert.Equal(t, []byte{255, 255, 255, 255}, w.Pixels)
}

func TestFilterSampler(t *testing.T) {
	assert.NotEqual(t, FilterNearest.Sampler().MagFilter, FilterLinear.Sampler().MagFilter)
	assert.Equal(t, FilterLinear.Sampler().AddressModeU, FilterNearest.Sampler().AddressModeU)
}

func TestKeyEventShift(t *testing.T) {
	assert.True(t, KeyEvent{Key: KeyE, Mods: ModShift}.Shift())
	assert.True(t, KeyEvent{Key: KeyE, Mods: ModShift | ModControl}.Shift())
	assert.False(t, KeyEvent{Key: KeyE}.Shift())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
