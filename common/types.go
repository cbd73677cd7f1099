// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// WhiteTexture returns a 1x1 opaque white texture.
// It is bound wherever a pipeline expects a texture but the material has none.
func WhiteTexture() TextureStagingData {
	return TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero-valued fields are replaced with linear filtering and repeat addressing by the backend.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level.
	MaxAnisotropy uint16
}

// TextureFilter selects how a texture is sampled when magnified or minified.
type TextureFilter uint8

const (
	// FilterLinear blends neighbouring texels.
	FilterLinear TextureFilter = iota
	// FilterNearest picks the closest texel, giving a pixelated look.
	FilterNearest
)

// Sampler returns the staging data for a repeat-addressed sampler with this filter.
func (f TextureFilter) Sampler() SamplerStagingData {
	mode := wgpu.FilterModeLinear
	mip := wgpu.MipmapFilterModeLinear
	if f == FilterNearest {
		mode = wgpu.FilterModeNearest
		mip = wgpu.MipmapFilterModeNearest
	}
	return SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		AddressModeW: wgpu.AddressModeRepeat,
		MagFilter:    mode,
		MinFilter:    mode,
		MipmapFilter: mip,
		LodMaxClamp:  32,
	}
}

// TextureSource describes an image to decode into GPU texture data.
// Either Data holds the encoded bytes or Path names a file on disk.
// PNG, JPEG, GIF, BMP, WebP and TGA are recognised.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "earth").
	Name string

	// Path is the file path of the encoded image.
	Path string

	// Data contains encoded image bytes and takes precedence over Path.
	Data []byte

	// MaxSize caps the larger image dimension. Bigger images are down-scaled
	// with Catmull-Rom filtering. Zero disables the cap.
	MaxSize int
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if reading or decoding fails
func (t TextureSource) Decode() (TextureStagingData, error) {
	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("texture: decode %s: %w", t.Name, err)
		}
	case t.Path != "":
		raw, readErr := os.ReadFile(t.Path)
		if readErr != nil {
			return TextureStagingData{}, fmt.Errorf("texture: read %s: %w", t.Path, readErr)
		}
		img, _, err = image.Decode(bytes.NewReader(raw))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("texture: decode %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, fmt.Errorf("texture: %q has neither data nor path", t.Name)
	}

	rgba := toRGBA(img, t.MaxSize)
	b := rgba.Bounds()
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}, nil
}

// toRGBA converts img to a tightly packed RGBA image anchored at the origin,
// down-scaling it so neither side exceeds maxSize when maxSize > 0.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}
