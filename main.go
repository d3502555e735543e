// ABOUTME: Entry point for the relay listener
// ABOUTME: Parses CLI flags, loads config, and runs the listener application
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relaywire/relay-go/internal/app"
	"github.com/relaywire/relay-go/internal/config"
)

var (
	configPath = flag.String("config", "", "Path to TOML config file")
	endpoint   = flag.String("endpoint", "", "Relay WebSocket endpoint (skip mDNS discovery)")
	name       = flag.String("name", "", "Listener friendly name (default: hostname-relay-listener)")
	authToken  = flag.String("token", "", "Bearer token for the handshake")
	alertSound = flag.String("alert-sound", "", "Path to alert MP3")
	volume     = flag.Int("volume", -1, "Alert volume 0-100")
	port       = flag.Int("port", 9410, "Port for mDNS advertisement")
	logFile    = flag.String("log-file", "", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Flags override file values.
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *authToken != "" {
		cfg.AuthToken = *authToken
	}
	if *alertSound != "" {
		cfg.AlertSound = *alertSound
	}
	if *volume >= 0 {
		cfg.Volume = *volume
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *noTUI {
		cfg.NoTUI = true
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	useTUI := !cfg.NoTUI

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	// Determine listener name
	listenerName := cfg.Name
	if listenerName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		listenerName = fmt.Sprintf("%s-relay-listener", hostname)
	}

	log.Printf("Starting Relay Listener: %s", listenerName)

	listener := app.New(app.Config{
		Endpoint:           cfg.Endpoint,
		Name:               listenerName,
		AuthToken:          cfg.AuthToken,
		RetryBase:          cfg.RetryBase,
		RetryUnit:          cfg.RetryUnit(),
		BackgroundSentinel: cfg.BackgroundSentinel,
		ForegroundSentinel: cfg.ForegroundSentinel,
		AlertSound:         cfg.AlertSound,
		Volume:             cfg.Volume,
		Port:               *port,
		UseTUI:             useTUI,
	})

	if err := listener.Start(); err != nil {
		log.Fatalf("Failed to start listener: %v", err)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if ctrl := listener.Control(); ctrl != nil {
		select {
		case <-ctrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	listener.Stop()
}
