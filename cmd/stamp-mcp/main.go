package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/stamp-mcp/internal/config"
	"github.com/ironsheep/stamp-mcp/internal/logging"
	"github.com/ironsheep/stamp-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("stamp-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; stderr is always safe.
		fmt.Fprintf(os.Stderr, "stamp-mcp: %v\n", err)
		os.Exit(2)
	}

	closer := logging.Setup(cfg.LogFile, cfg.Debug)
	defer closer.Close()

	if Version != "dev" {
		server.Version = Version
	}
	if logging.DebugEnabled() {
		log.Printf("Stamp MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Canvas %dpx, ring %gpx %s, exporting to %s", cfg.CanvasSize, cfg.StrokeWidth, cfg.StrokeColor, cfg.ExportDir)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("stamp-mcp - MCP server that turns photos into circular stamps")
	fmt.Println()
	fmt.Println("Usage: stamp-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug       Enable debug logging\n", config.EnvLogLevel)
	fmt.Printf("  %s=<path>       Log to a rotating file instead of stderr\n", config.EnvLogFile)
	fmt.Printf("  %s=<n>       Canvas and stamp size in pixels (default %d)\n", config.EnvCanvasSize, config.DefaultCanvasSize)
	fmt.Printf("  %s=<n>      Outline ring width (default %g)\n", config.EnvStrokeWidth, config.DefaultStrokeWidth)
	fmt.Printf("  %s=#RRGGBB  Outline ring color (default %s)\n", config.EnvStrokeColor, config.DefaultStrokeColor)
	fmt.Printf("  %s=<dir>      Directory for exported stamps (default %s)\n", config.EnvExportDir, config.DefaultExportDir)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
