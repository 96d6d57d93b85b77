package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NexiAssistant/app/clients"
	"NexiAssistant/app/configs"
	"NexiAssistant/app/metrics"
	"NexiAssistant/app/runtime"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := configs.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Error loading config: %v", err)
	}

	// keep the last lines of activity in memory next to stderr
	audit := runtime.NewAuditLogger(10000)
	log.SetOutput(io.MultiWriter(os.Stderr, audit))

	// one-time process-wide mutation, before any SDK dials out
	clients.ApplyTransportPatch()

	m := metrics.New()
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.Serve(cfg.Metrics.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := getStorage(cfg)
	if err != nil {
		log.Fatalf("❌ Error opening storage: %v", err)
	}
	defer db.Close()

	model := getModel(cfg)

	log.Println("🔄 Initializing RAG engine...")
	engine, err := getEngine(cfg, model, db, m)
	if err != nil {
		log.Fatalf("❌ Error creating RAG engine: %v", err)
	}
	if err := engine.Init(ctx); err != nil {
		log.Fatalf("❌ Error initializing RAG engine: %v", err)
	}
	defer engine.Close()
	log.Println("✅ RAG engine initialized!")

	assistant := getAssistant(model, engine, db, m)
	rt := runtime.NewRuntime(assistant, m)

	registry := clients.NewRegistry()
	defer registry.CloseAll()
	go func() {
		// connectors queue the session-started event, so the runtime loop
		// must already be draining when they subscribe
		for _, client := range getClients(cfg) {
			if err := registry.Register(client, rt); err != nil {
				log.Printf("❌ Error registering client: %v", err)
			}
		}
	}()

	log.Println("🎤 Worker running, waiting for session events...")
	rt.Start(ctx)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
