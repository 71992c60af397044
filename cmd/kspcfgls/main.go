package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cybersorcerer/kspcfg/internal/config"
	"github.com/cybersorcerer/kspcfg/internal/logger"
	"github.com/cybersorcerer/kspcfg/internal/lspapi"
	"github.com/cybersorcerer/kspcfg/pkg/lsp"
)

var (
	version = "0.1.0"
	debug   = flag.Bool("debug", false, "Enable debug logging")
	showVer = flag.Bool("version", false, "Show version")
)

func main() {
	// Custom usage message to show --debug instead of -debug
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  --debug\n")
		fmt.Fprintf(os.Stderr, "    	Enable debug logging\n")
		fmt.Fprintf(os.Stderr, "  --version\n")
		fmt.Fprintf(os.Stderr, "    	Show version\n")
	}

	flag.Parse()

	if *showVer {
		fmt.Printf("kspcfgls version %s\n", version)
		os.Exit(0)
	}

	// Initialize logger
	if err := logger.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("kspcfgls version %s starting", version)

	cfg := config.Default()
	if path := config.Find(); path != "" {
		logger.Info("Loading config: %s", path)
		if loaded, err := config.Load(path); err != nil {
			logger.Error("Failed to load config %s: %v", path, err)
		} else {
			cfg = loaded
		}
	}

	// Create handler
	h := lspapi.New(version, cfg.Settings())

	// Create LSP server
	server := lsp.NewServer(os.Stdin, os.Stdout, h)
	h.SetServer(server)

	logger.Info("LSP server starting")

	// Start server (blocks until client disconnects)
	if err := server.Start(); err != nil {
		logger.Fatal("Server error: %v", err)
	}

	logger.Info("Server stopped")
}
