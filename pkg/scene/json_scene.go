package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	LookFrom      Vec3Cfg  `json:"lookFrom"`
	LookAt        Vec3Cfg  `json:"lookAt"`
	Up            *Vec3Cfg `json:"up,omitempty"` // defaults to +y
	VFov          float64  `json:"vfov"`
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 = distance to lookAt
}

type MaterialCfg struct {
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

type SkyCfg struct {
	Top    Vec3Cfg `json:"top"`
	Bottom Vec3Cfg `json:"bottom"`
}

// FileCfg is the on-disk scene description
type FileCfg struct {
	Width           int         `json:"width,omitempty"`
	AspectRatio     float64     `json:"aspectRatio,omitempty"`
	SamplesPerPixel int         `json:"samplesPerPixel,omitempty"`
	MaxDepth        int         `json:"maxDepth,omitempty"`
	Camera          CameraCfg   `json:"camera"`
	Sky             *SkyCfg     `json:"sky,omitempty"`
	Spheres         []SphereCfg `json:"spheres"`
}

// Build converts the material block into a validated material
func (m MaterialCfg) Build() (material.Material, error) {
	var mat material.Material
	switch m.Type {
	case "lambertian":
		mat = material.NewLambertian(m.Albedo.Vec3())
	case "metal":
		// Not NewMetal: it clamps fuzz, and an out-of-range value in a file is an error
		mat = material.Material{Kind: material.KindMetal, Albedo: m.Albedo.Vec3(), Fuzz: m.Fuzz}
	case "dielectric":
		mat = material.NewDielectric(m.RefractiveIndex)
	default:
		return material.Material{}, fmt.Errorf("%w: unknown material type %q", core.ErrInvalidConfig, m.Type)
	}
	if err := mat.Validate(); err != nil {
		return material.Material{}, err
	}
	return mat, nil
}

// LoadJSON reads a scene description file. Missing sampling fields take the defaults;
// width and aspect ratio, when non-zero, override the file.
func LoadJSON(path string, width int, aspectRatio float64) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	var cfg FileCfg
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	return cfg.Build(width, aspectRatio)
}

// Build creates the scene described by the config
func (cfg FileCfg) Build(width int, aspectRatio float64) (*Scene, error) {
	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("%w: scene has no spheres", core.ErrInvalidConfig)
	}
	if width <= 0 {
		width = cfg.Width
	}
	if aspectRatio <= 0 {
		aspectRatio = cfg.AspectRatio
	}

	sampling := samplingFor(width, aspectRatio)
	if cfg.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		sampling.MaxDepth = cfg.MaxDepth
	}

	up := core.NewVec3(0, 1, 0)
	if cfg.Camera.Up != nil {
		up = cfg.Camera.Up.Vec3()
	}
	cameraConfig := geometry.CameraConfig{
		LookFrom:      cfg.Camera.LookFrom.Vec3(),
		LookAt:        cfg.Camera.LookAt.Vec3(),
		Up:            up,
		VFov:          cfg.Camera.VFov,
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	}

	s, err := newScene(cameraConfig, sampling)
	if err != nil {
		return nil, err
	}
	if cfg.Sky != nil {
		s.TopColor = cfg.Sky.Top.Vec3()
		s.BottomColor = cfg.Sky.Bottom.Vec3()
	}

	for i, sp := range cfg.Spheres {
		mat, err := sp.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := s.AddSphere(sp.Center.Vec3(), sp.Radius, mat); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
