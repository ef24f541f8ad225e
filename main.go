package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders, and writes the image to stdout or -out. Diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	envFile := envFileArg(args)
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.String("env", envFile, "Optional .env file with RAYTRACER_* and S3_* settings")
	sceneName := flags.String("scene", cfg.Scene, "Scene: 'random', 'simple', 'materials', 'sphere-grid' or a .json file")
	width := flags.Int("width", cfg.Width, "Image width in pixels")
	aspect := flags.String("aspect", "", "Aspect ratio, e.g. 16:9 or 1.5 (default 16:9)")
	samples := flags.Int("samples", cfg.SamplesPerPixel, "Samples per pixel")
	depth := flags.Int("depth", cfg.MaxDepth, "Maximum bounces per path")
	workers := flags.Int("workers", cfg.Workers, "Number of parallel row bands")
	seed := flags.Int64("seed", cfg.Seed, "Random seed for scene layout and sampling")
	out := flags.String("out", cfg.Output, "Output file (default stdout)")
	publishFlag := flags.Bool("publish", false, "Upload the image to the configured S3 bucket")
	help := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		fmt.Fprintln(stderr, "Weekend Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options] > image.ppm")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stderr, "  %-12s - %s\n", info.ID, info.Description)
		}
		return flag.ErrHelp
	}

	cfg.Scene = *sceneName
	cfg.Width = *width
	cfg.SamplesPerPixel = *samples
	cfg.MaxDepth = *depth
	cfg.Workers = *workers
	cfg.Seed = *seed
	cfg.Output = *out
	if *aspect != "" {
		if cfg.AspectRatio, err = config.ParseAspectRatio(*aspect); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger(stderr)

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Printf("Scene %q: %d spheres\n", cfg.Scene, selectedScene.GetPrimitiveCount())

	raytracer, err := renderer.NewRaytracer(selectedScene, selectedScene.NewIntegrator(),
		renderer.Config{NumWorkers: cfg.Workers, Seed: cfg.Seed}, logger)
	if err != nil {
		return err
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Render completed: %v\n", stats)

	data, err := renderer.EncodePPM(img)
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, data, stdout); err != nil {
		return err
	}

	if *publishFlag {
		publisher, err := publish.NewS3Publisher(cfg.S3)
		if err != nil {
			return err
		}
		name := publish.RenderName(cfg.Scene, img.Width, img.Height, cfg.SamplesPerPixel, cfg.Seed)
		if _, err := publisher.Publish(ctx, name, data, renderer.PPMContentType); err != nil {
			return err
		}
	}

	return nil
}

// envFileArg finds -env before the flag set is built, since the env file supplies the flag defaults.
// Both "-env path" and "-env=path" are accepted, with one or two dashes.
func envFileArg(args []string) string {
	envFile := ".env"
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "env" {
			continue
		}
		if hasValue {
			envFile = value
		} else if i+1 < len(args) {
			envFile = args[i+1]
		}
	}
	return envFile
}

// createScene builds the named scene at the configured size and applies sample settings
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, cfg.Seed, cfg.Width, cfg.AspectRatio)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig = cfg.ApplySampling(s.SamplingConfig)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
