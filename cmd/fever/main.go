// Command fever opens a window and presents a triangle every frame until the window closes.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/fever/assets"
	"github.com/Carmen-Shannon/fever/common"
	"github.com/Carmen-Shannon/fever/engine"
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/config"
	"github.com/Carmen-Shannon/fever/engine/drawable"
	"github.com/Carmen-Shannon/fever/engine/profiler"
	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/Carmen-Shannon/fever/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/fever/engine/renderer/shader"
	"github.com/Carmen-Shannon/fever/engine/state"
	"github.com/Carmen-Shannon/fever/engine/window"
)

// GLFW calls must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.FromEnv(config.Default())
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	cfg, err = parseFlags(cfg, args, os.Stderr)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, _ := profiler.ParseMode(cfg.ProfileMode)
	session := profiler.StartSession(mode, cfg.ProfileDir)
	defer session.Stop()

	w, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
		window.WithMaximized(cfg.Maximized),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	triangleShader, err := loadShader(cfg.ShaderDir)
	if err != nil {
		return err
	}

	presentMode, _ := renderer.ParsePresentMode(cfg.PresentMode)
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.ForceFallbackAdapter),
		renderer.WithClearColor(cfg.ClearColor),
		renderer.WithGPULogLevel(cfg.GPULogLevel),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// Deferred after r.Release so cached pipelines are released before the device.
	cache, err := pipeline.NewCache(pipeline.DeviceFactory(r.Device()))
	if err != nil {
		return err
	}
	defer cache.Purge()

	r.Registry().Add(drawable.NewTriangle(pipeline.NewPipeline("triangle", triangleShader), cache))

	e := engine.NewEngine(r,
		engine.WithWindow(w),
		engine.WithClock(clock.NewClock(clock.WithMaxDelta(cfg.MaxDelta))),
		engine.WithUpdater(state.NewStateSystem()),
		engine.WithProfiling(cfg.StatsInterval > 0),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(cfg.StatsInterval))),
	)
	return e.Run()
}

// loadShader preloads the shader library and returns the triangle shader.
// An empty dir uses the embedded shaders.
func loadShader(dir string) (shader.Shader, error) {
	var fsys fs.FS = assets.Shaders
	pattern := "shaders/*.wgsl"
	if dir != "" {
		fsys = os.DirFS(dir)
		pattern = "*.wgsl"
	}

	lib := shader.NewLibrary(fsys, shader.WithWorkers(runtime.NumCPU()))
	if err := lib.Preload(pattern); err != nil {
		return nil, fmt.Errorf("load shaders: %w", err)
	}
	return lib.Shader(shader.Key(assets.TriangleShader))
}

// parseFlags overlays command-line flags onto cfg.
func parseFlags(cfg config.Config, args []string, output io.Writer) (config.Config, error) {
	fl := flag.NewFlagSet("fever", flag.ContinueOnError)
	fl.SetOutput(output)

	fl.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fl.IntVar(&cfg.Width, "width", cfg.Width, "initial window width when not maximized")
	fl.IntVar(&cfg.Height, "height", cfg.Height, "initial window height when not maximized")
	fl.BoolVar(&cfg.Maximized, "maximized", cfg.Maximized, "open the window maximized")
	fl.StringVar(&cfg.PresentMode, "present", cfg.PresentMode, "present mode: vsync or uncapped")
	fl.BoolVar(&cfg.ForceFallbackAdapter, "software", cfg.ForceFallbackAdapter, "force the software fallback adapter")
	fl.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn or error")
	fl.StringVar(&cfg.GPULogLevel, "gpu-log", cfg.GPULogLevel, "wgpu log level: off, error, warn, info, debug or trace")
	fl.StringVar(&cfg.ProfileMode, "profile", cfg.ProfileMode, "pprof profile: off, cpu or mem")
	fl.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "directory for profile output")
	fl.StringVar(&cfg.ShaderDir, "shaders", cfg.ShaderDir, "directory with .wgsl files overriding the embedded shaders")
	fl.DurationVar(&cfg.StatsInterval, "stats", cfg.StatsInterval, "frame statistics interval, 0 to disable")
	fl.DurationVar(&cfg.MaxDelta, "max-delta", cfg.MaxDelta, "largest tick delta, 0 for no cap")
	fl.Func("clear", "clear color as r,g,b[,a]", func(s string) error {
		c, err := common.ParseColor(s)
		if err != nil {
			return err
		}
		cfg.ClearColor = c
		return nil
	})

	if err := fl.Parse(args); err != nil {
		return cfg, err
	}
	if fl.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fl.Args())
	}
	return cfg, nil
}
