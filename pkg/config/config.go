package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// S3Config holds the bucket a finished render is published to
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
}

// Enabled reports whether enough is configured to attempt an upload
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

// Config holds the settings for one render
type Config struct {
	Scene           string
	Width           int
	AspectRatio     float64
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	Seed            int64
	Output          string // Empty writes to stdout
	ScenesDir       string // Directory scanned for JSON scenes
	S3              S3Config
}

// Default returns the reference render settings
func Default() Config {
	sampling := core.DefaultSamplingConfig()
	return Config{
		Scene:           "random",
		Width:           sampling.Width,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		Workers:         runtime.NumCPU(),
		Seed:            42,
		ScenesDir:       "scenes",
	}
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads envFile (if it exists) into the environment and then builds a Config from
// RAYTRACER_* and S3_* variables over the defaults. Variables already set in the process
// environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	cfg.Scene = getEnv("RAYTRACER_SCENE", cfg.Scene)
	cfg.Output = getEnv("RAYTRACER_OUTPUT", cfg.Output)
	cfg.ScenesDir = getEnv("RAYTRACER_SCENES_DIR", cfg.ScenesDir)

	var err error
	if cfg.Width, err = envInt("RAYTRACER_WIDTH", cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.SamplesPerPixel, err = envInt("RAYTRACER_SAMPLES", cfg.SamplesPerPixel); err != nil {
		return Config{}, err
	}
	if cfg.MaxDepth, err = envInt("RAYTRACER_DEPTH", cfg.MaxDepth); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = envInt("RAYTRACER_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	seed, err := envInt("RAYTRACER_SEED", int(cfg.Seed))
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = int64(seed)
	if aspect, ok := os.LookupEnv("RAYTRACER_ASPECT"); ok {
		if cfg.AspectRatio, err = ParseAspectRatio(aspect); err != nil {
			return Config{}, err
		}
	}

	cfg.S3 = S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", core.ErrInvalidConfig, key, value)
	}
	return n, nil
}

// ParseAspectRatio accepts "16:9", "16/9" or a plain number such as "1.5"
func ParseAspectRatio(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{":", "/"} {
		if w, h, found := strings.Cut(s, sep); found {
			width, errW := strconv.ParseFloat(strings.TrimSpace(w), 64)
			height, errH := strconv.ParseFloat(strings.TrimSpace(h), 64)
			if errW != nil || errH != nil || !(width > 0) || !(height > 0) {
				return 0, fmt.Errorf("%w: invalid aspect ratio %q", core.ErrInvalidConfig, s)
			}
			return width / height, nil
		}
	}

	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || !(ratio > 0) {
		return 0, fmt.Errorf("%w: invalid aspect ratio %q", core.ErrInvalidConfig, s)
	}
	return ratio, nil
}

// MaxDepthLimit bounds the bounce count accepted from users
const MaxDepthLimit = 10000

// Validate checks the render settings
func (c Config) Validate() error {
	if c.Width < 2 {
		return fmt.Errorf("%w: width must be at least 2, got %d", core.ErrInvalidConfig, c.Width)
	}
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", core.ErrInvalidConfig, c.AspectRatio)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", core.ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("%w: depth must be in [1, %d], got %d", core.ErrInvalidConfig, MaxDepthLimit, c.MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", core.ErrInvalidConfig, c.Workers)
	}
	return nil
}

// ApplySampling overrides the sample count and depth of a scene's sampling config.
// Image size stays with the scene, which already derived it from Width and AspectRatio.
func (c Config) ApplySampling(sampling core.SamplingConfig) core.SamplingConfig {
	sampling.SamplesPerPixel = c.SamplesPerPixel
	sampling.MaxDepth = c.MaxDepth
	return sampling
}
