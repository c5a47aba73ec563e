package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"musicbox/cmd"
	"musicbox/config"
	"musicbox/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		list       bool
		host       string
		port       int
	)

	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.BoolVar(&list, "list", false, "Print the track listing as JSON and exit")
	flag.StringVar(&host, "host", "", "Address to bind the web server to")
	flag.IntVar(&port, "port", 0, "Port for the web server")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}

	// Keep stdout clean for the JSON listing.
	if list {
		cfg.Log.Output = "stderr"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot initialise logger: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if list {
		if err := cmd.ListTracks(ctx, cfg, log, os.Stdout, os.Stderr); err != nil {
			log.Fatal("Cannot list tracks", zap.Error(err))
		}
		return
	}

	if err := cmd.StartWebServer(ctx, cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
