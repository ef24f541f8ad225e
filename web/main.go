package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file with RAYTRACER_* and S3_* settings")
	scenesDir := flag.String("scenes", "", "Directory of JSON scenes (defaults to RAYTRACER_SCENES_DIR)")
	cacheSize := flag.Int("cache-size", 32, "Number of finished renders kept in memory")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		os.Exit(1)
	}
	if *scenesDir == "" {
		*scenesDir = cfg.ScenesDir
	}

	var publisher *publish.S3Publisher
	if cfg.S3.Enabled() {
		publisher, err = publish.NewS3Publisher(cfg.S3)
		if err != nil {
			log.Printf("Error configuring S3 publishing: %v", err)
			os.Exit(1)
		}
		log.Printf("Publishing renders to s3://%s/%s", cfg.S3.Bucket, cfg.S3.Prefix)
	}

	// Create and start web server
	webServer, err := server.NewServer(server.Options{
		Port:      *port,
		ScenesDir: *scenesDir,
		CacheSize: *cacheSize,
		Publisher: publisher,
	})
	if err != nil {
		log.Printf("Error creating server: %v", err)
		os.Exit(1)
	}

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
