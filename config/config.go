// Package config holds the run configuration of the orrery and its TOML loader.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors wrapped by Validate.
var (
	ErrInvalidWindow = errors.New("invalid window config")
	ErrInvalidRender = errors.New("invalid render config")
	ErrInvalidScene  = errors.New("invalid scene config")
	ErrInvalidCamera = errors.New("invalid camera config")
)

// Window limits enforced by Validate.
const (
	MinWindowWidth  = 320
	MinWindowHeight = 240
)

// Config holds every setting of a run.
type Config struct {
	Window    WindowConfig `toml:"window"`
	Render    RenderConfig `toml:"render"`
	Scene     SceneConfig  `toml:"scene"`
	Camera    CameraConfig `toml:"camera"`
	Profiling bool         `toml:"profiling"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RenderConfig configures the renderer and the frame loop.
type RenderConfig struct {
	// MSAA is the sample count, 1 or 4.
	MSAA  int  `toml:"msaa"`
	VSync bool `toml:"vsync"`
	// FrameLimit caps the render rate in frames per second. 0 leaves it uncapped.
	FrameLimit int        `toml:"frame_limit"`
	ClearColor [4]float64 `toml:"clear_color"`
	Software   bool       `toml:"software"`
}

// SceneConfig configures the solar system.
type SceneConfig struct {
	StarCount  int    `toml:"star_count"`
	StarSeed   uint64 `toml:"star_seed"`
	TextureDir string `toml:"texture_dir"`
	// MaxTextureSize bounds the longest side of a decoded texture. 0 keeps the source size.
	MaxTextureSize int `toml:"max_texture_size"`
	// TimeScale multiplies the animation clock.
	TimeScale float64 `toml:"time_scale"`
	// Workers is the size of the asset loading pool. 0 uses one worker per CPU.
	Workers int `toml:"workers"`
}

// CameraConfig configures the free-fly controls.
type CameraConfig struct {
	MoveSpeed float64 `toml:"move_speed"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-orrery",
			Width:  1080,
			Height: 600,
		},
		Render: RenderConfig{
			MSAA:       4,
			VSync:      true,
			ClearColor: [4]float64{0, 0, 0, 1},
		},
		Scene: SceneConfig{
			StarCount:      30,
			StarSeed:       1,
			TextureDir:     "assets",
			MaxTextureSize: 2048,
			TimeScale:      1,
		},
		Camera: CameraConfig{
			MoveSpeed: 20,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result. Keys the file does
// not set keep their default. Unknown keys are rejected.
// A relative texture directory is resolved against the directory of the file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Scene.TextureDir != "" && !filepath.IsAbs(cfg.Scene.TextureDir) {
		cfg.Scene.TextureDir = filepath.Join(filepath.Dir(path), cfg.Scene.TextureDir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults without validating.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: if the document is malformed or has unknown keys
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w\n%s", err, strict.String())
		}
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes c as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: if writing fails
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports every invalid value, each wrapped with the sentinel of its section.
//
// Returns:
//   - error: nil, or the joined validation errors
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < MinWindowWidth || c.Window.Height < MinWindowHeight {
		errs = append(errs, fmt.Errorf("%w: size %dx%d is below %dx%d",
			ErrInvalidWindow, c.Window.Width, c.Window.Height, MinWindowWidth, MinWindowHeight))
	}
	if c.Render.MSAA != 1 && c.Render.MSAA != 4 {
		errs = append(errs, fmt.Errorf("%w: msaa must be 1 or 4, got %d", ErrInvalidRender, c.Render.MSAA))
	}
	if c.Render.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: frame_limit must not be negative", ErrInvalidRender))
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: clear_color[%d] = %v is outside [0, 1]", ErrInvalidRender, i, v))
		}
	}
	if c.Scene.StarCount < 0 {
		errs = append(errs, fmt.Errorf("%w: star_count must not be negative", ErrInvalidScene))
	}
	if c.Scene.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: time_scale must be positive", ErrInvalidScene))
	}
	if c.Scene.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("%w: max_texture_size must not be negative", ErrInvalidScene))
	}
	if c.Scene.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers must not be negative", ErrInvalidScene))
	}
	if c.Camera.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("%w: move_speed must be positive", ErrInvalidCamera))
	}
	return errors.Join(errs...)
}

// WorkerCount returns the asset pool size, defaulting to the CPU count.
//
// Returns:
//   - int: the number of workers
func (c SceneConfig) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Flags holds command-line values that override the loaded configuration.
// Zero values leave the configuration unchanged.
type Flags struct {
	TextureDir string
	Width      int
	Height     int
	Profiling  bool
}

// Apply overlays non-zero flags onto c.
//
// Parameters:
//   - f: the flag values
func (c *Config) Apply(f Flags) {
	if f.TextureDir != "" {
		c.Scene.TextureDir = f.TextureDir
	}
	if f.Width > 0 {
		c.Window.Width = f.Width
	}
	if f.Height > 0 {
		c.Window.Height = f.Height
	}
	if f.Profiling {
		c.Profiling = true
	}
}
