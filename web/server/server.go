package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// consoleHistory is how many console messages /api/console keeps
const consoleHistory = 200

// Options configures the web server
type Options struct {
	Port      int
	ScenesDir string               // Directory scanned for JSON scenes
	CacheSize int                  // Number of finished renders kept in memory
	Publisher *publish.S3Publisher // Optional, enables ?publish=true
}

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	cache     *lru.Cache
	publisher *publish.S3Publisher

	console *Console
}

// NewServer creates a new web server
func NewServer(opts Options) (*Server, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 32
	}
	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	return &Server{
		port:      opts.Port,
		scenesDir: opts.ScenesDir,
		cache:     cache,
		publisher: opts.Publisher,
		console:   NewConsole(consoleHistory),
	}, nil
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Scene ID from /api/scenes
	Width           int     `json:"width"`           // Image width
	AspectRatio     float64 `json:"aspectRatio"`     // Width / height
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int     `json:"maxDepth"`        // Maximum bounces
	Seed            int64   `json:"seed"`            // Scene layout and sampling seed
	Workers         int     `json:"workers"`         // Parallel bands (0 = CPU count)
}

// cacheKey identifies a deterministic render; worker count changes the noise pattern so it is part of the key
func (r RenderRequest) cacheKey() string {
	return fmt.Sprintf("%s|%d|%g|%d|%d|%d|%d", r.Scene, r.Width, r.AspectRatio, r.SamplesPerPixel, r.MaxDepth, r.Seed, r.Workers)
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"scenes": scenes})
}

// handleRender renders a scene and returns the P3 image. Identical requests are served from the cache.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	publishRequested := r.URL.Query().Get("publish") == "true"
	if publishRequested && s.publisher == nil {
		writeJSONError(w, http.StatusBadRequest, "Publishing is not configured")
		return
	}

	key := req.cacheKey()
	cacheStatus := "HIT"
	var data []byte
	if cached, ok := s.cache.Get(key); ok {
		data = cached.([]byte)
	} else {
		cacheStatus = "MISS"
		data, err = s.render(r, req)
		if err != nil {
			// A client that went away gets no response worth writing
			if r.Context().Err() != nil {
				log.Printf("Render of %s cancelled: %v", req.Scene, err)
				return
			}
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
			return
		}
		s.cache.Add(key, data)
	}

	if publishRequested {
		name := publish.RenderName(req.Scene, req.Width, scene.ImageHeight(req.Width, req.AspectRatio), req.SamplesPerPixel, req.Seed)
		objectKey, err := s.publisher.Publish(r.Context(), name, data, renderer.PPMContentType)
		if err != nil {
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Object-Key", objectKey)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// render builds the scene and traces it, stopping early when the client disconnects
func (s *Server) render(r *http.Request, req *RenderRequest) ([]byte, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	logger := NewWebLogger(req.cacheKey(), s.console)
	raytracer, err := renderer.NewRaytracer(sceneObj, sceneObj.NewIntegrator(),
		renderer.Config{NumWorkers: req.Workers, Seed: req.Seed}, logger)
	if err != nil {
		return nil, err
	}

	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		return nil, err
	}
	log.Printf("Rendered %s: %v", req.Scene, stats)

	return renderer.EncodePPM(img)
}

// createScene builds the requested scene. Only IDs listed by /api/scenes are accepted so
// requests cannot point the JSON loader at arbitrary files.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	known := false
	for _, info := range scenes {
		if info.ID == req.Scene {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed, req.Width, req.AspectRatio)
	if err != nil {
		return nil, err
	}
	sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "random" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 2, 2000); err != nil {
		return nil, err
	}
	req.AspectRatio = scene.DefaultAspectRatio
	if aspect := query.Get("aspect"); aspect != "" {
		if req.AspectRatio, err = config.ParseAspectRatio(aspect); err != nil {
			return nil, err
		}
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", 100, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 50, 1, config.MaxDepthLimit); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*scene.ImageHeight(req.Width, req.AspectRatio) > 800*600 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
