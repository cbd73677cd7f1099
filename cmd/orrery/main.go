// Command orrery opens a window and animates the solar system.
//
// Keys: W/S/A/D/Space/Z fly the camera, L toggles the lights, E and Shift+E enable and
// disable the camera selector, G and H pick the previous and next camera location.
// Escape closes the window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-orrery/config"
	"github.com/Carmen-Shannon/oxy-orrery/engine"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orrery/engine/scene"
	"github.com/Carmen-Shannon/oxy-orrery/engine/window"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	textureDir := flag.String("textures", "", "Texture directory (overrides the config)")
	width := flag.Int("width", 0, "Window width in pixels (overrides the config)")
	height := flag.Int("height", 0, "Window height in pixels (overrides the config)")
	profile := flag.Bool("profile", false, "Log frame rate and memory statistics")
	printConfig := flag.Bool("print-config", false, "Print the effective config as TOML and exit")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override the config file
	cfg.Apply(config.Flags{
		TextureDir: *textureDir,
		Width:      *width,
		Height:     *height,
		Profiling:  *profile,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("[Orrery] %v", err)
	}
}

func run(cfg config.Config) error {
	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(config.MinWindowWidth, config.MinWindowHeight),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithClearColor(cfg.Render.ClearColor),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)

	// ── Scene ───────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width()) / float32(win.Height())),
	)
	sc := scene.NewScene(r,
		scene.WithCamera(cam),
		scene.WithMovement(camera.NewMovement(camera.WithSpeed(float32(cfg.Camera.MoveSpeed)))),
		scene.WithStars(cfg.Scene.StarCount, cfg.Scene.StarSeed),
		scene.WithTextureDir(cfg.Scene.TextureDir),
		scene.WithMaxTextureSize(cfg.Scene.MaxTextureSize),
		scene.WithTimeScale(float32(cfg.Scene.TimeScale)),
		scene.WithLoadWorkers(cfg.Scene.WorkerCount()),
		scene.WithTitleCallback(func(title string) {
			win.SetTitle(cfg.Window.Title + " | " + title)
		}),
	)
	if err := sc.Init(); err != nil {
		return err
	}
	defer sc.Release()
	win.SetTitle(cfg.Window.Title + " | " + sc.Title())

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, sc),
		engine.WithTickRate(60),
		engine.WithRenderFrameLimit(float64(cfg.Render.FrameLimit)),
		engine.WithProfiling(cfg.Profiling),
	)

	log.Printf("[Orrery] running %dx%d, msaa %d, %d stars", cfg.Window.Width, cfg.Window.Height, cfg.Render.MSAA, cfg.Scene.StarCount)
	eng.Run()
	return nil
}
