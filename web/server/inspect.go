package server

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
	Camera       CameraPose             `json:"camera"`
}

// CameraPose is the eye position and viewing axes the inspection ray was cast from
type CameraPose struct {
	Origin  [3]float64 `json:"origin"`
	Forward [3]float64 `json:"forward"`
	Up      [3]float64 `json:"up"`
	Right   [3]float64 `json:"right"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func cameraPose(camera *geometry.Camera) CameraPose {
	u, v, w := camera.Basis()
	return CameraPose{
		Origin:  toArray(camera.Origin()),
		Forward: toArray(w.Negate()),
		Up:      toArray(v),
		Right:   toArray(u),
	}
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = [3]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z}
		properties["color"] = hexColor(mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z)
	case material.KindMetal:
		properties["albedo"] = [3]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z}
		properties["color"] = hexColor(mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	}
	return mat.Kind.String(), properties
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

// InspectResult contains rich information about an object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that was hit
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), with y counted
// from the top row, and returns the first shape hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY float64) InspectResult {
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height

	// Fixed seed so lens sampling is repeatable
	random := rand.New(rand.NewSource(0))
	u := (pixelX + 0.5) / float64(width-1)
	v := (float64(height-1) - pixelY + 0.5) / float64(height-1)
	ray := sceneObj.Camera.GetRay(u, v, random)

	// Scan shapes directly; the list only reports the hit, not the shape
	var result InspectResult
	closest := math.Inf(1)
	for _, shape := range sceneObj.World.Shapes {
		if hit, isHit := shape.Hit(ray, integrator.ShadowAcneEpsilon, closest); isHit {
			closest = hit.T
			result = InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}
	return result
}

// extractGeometryInfo describes a shape for the inspector
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	height := scene.ImageHeight(req.Width, req.AspectRatio)

	pixelX, err := parseFloatParam(r.URL.Query(), "x", -1, 0, float64(req.Width-1))
	if err != nil || pixelX < 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseFloatParam(r.URL.Query(), "y", -1, 0, float64(height-1))
	if err != nil || pixelY < 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Camera: cameraPose(sceneObj.Camera)})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(result.HitRecord.Point),
		Normal:       toArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
		Camera: cameraPose(sceneObj.Camera),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
