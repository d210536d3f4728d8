/*
Package main implements the fault phrase suggestion server and CLI.

FaultServe suggests catalogued or technician-confirmed fault phrases while an
inspection finding is typed, standardizing the wording downstream pricing and
reporting depend on. It ranks a static per-section taxonomy with a four-tier
matcher (prefix, word, substring, fuzzy subsequence), learns confirmed
phrases per section with semantic duplicate suppression, and caches query
results per section.

# Usage

Start the msgpack IPC server with default settings:

	faultserve

Run the interactive fault entry screen for a section:

	faultserve -t -section tyres

Run in line-based CLI mode for testing and debugging:

	faultserve -c -section brakes -limit 10 -d

# Configuration

Runtime configuration is managed through a TOML file that supports engine,
learned-store, cache and UI settings:

	[engine]
	default_limit = 12
	max_limit = 64

	[learned]
	capacity = 200
	backend = "file"
	redis_addr = "localhost:6379"

	[cache]
	capacity = 20

	[ui]
	debounce_ms = 150
	max_visible = 8

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Suggestion and
learn requests are processed synchronously with timing information included
in responses; see the server package for message layouts.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/internal/cli"
	"github.com/inspectd/faultserve/internal/tui"
	"github.com/inspectd/faultserve/pkg/config"
	"github.com/inspectd/faultserve/pkg/server"
	"github.com/inspectd/faultserve/pkg/storage"
	"github.com/inspectd/faultserve/pkg/suggest"
	"github.com/inspectd/faultserve/pkg/taxonomy"
)

const (
	Version = "0.4.0"
	AppName = "faultserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, catalog, storage and the engine, then hands control to
// the selected mode. It does not implement any engine logic itself.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("t", false, "Run the interactive fault entry screen")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	catalogPath := flag.String("catalog", "", "Path to a TOML catalog overriding the builtin taxonomy")
	section := flag.String("section", "tyres", "Section key for CLI/TUI modes")
	limit := flag.Int("limit", defaults.Engine.DefaultLimit, "Number of suggestions to return")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	sections := taxonomy.BuiltinSections()
	if *catalogPath != "" {
		loaded, err := taxonomy.LoadCatalogFile(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog from %s: %v", *catalogPath, err)
			os.Exit(1)
		}
		sections = loaded
		log.Debugf("Loaded catalog with %d sections from %s", len(sections), *catalogPath)
	}
	index := taxonomy.NewIndex(sections)

	engine := suggest.NewEngine(index, openLearnedStore(cfg), suggest.Options{
		DefaultLimit:    cfg.Engine.DefaultLimit,
		MaxLimit:        cfg.Engine.MaxLimit,
		CacheCapacity:   cfg.Cache.Capacity,
		LearnedCapacity: cfg.Learned.Capacity,
	})

	if *tuiMode {
		runTUI(engine, index, cfg, *section)
		return
	}

	if *cliMode {
		inputHandler := cli.NewInputHandler(engine, resolveOrExit(index, *section), *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// openLearnedStore selects the durable backend from config. Any failure
// falls back to memory-only with a warning; learning still works for the
// session.
func openLearnedStore(cfg *config.Config) storage.KeyValueStore {
	switch cfg.Learned.Backend {
	case "redis":
		store, err := storage.NewRedisStore(cfg.Learned.RedisAddr)
		if err != nil {
			log.Warnf("Redis unavailable at %s, learned phrases are memory-only this session: %v", cfg.Learned.RedisAddr, err)
			return storage.NewMemoryStore()
		}
		return store
	case "memory":
		return storage.NewMemoryStore()
	default:
		dir, err := config.GetConfigDir()
		if err != nil {
			log.Warnf("No writable config dir, learned phrases are memory-only this session: %v", err)
			return storage.NewMemoryStore()
		}
		store, err := storage.NewFileStore(dir)
		if err != nil {
			log.Warnf("Cannot open learned store in %s, memory-only this session: %v", dir, err)
			return storage.NewMemoryStore()
		}
		return store
	}
}

func runTUI(engine *suggest.Engine, index *taxonomy.Index, cfg *config.Config, section string) {
	app := tui.NewApp(engine, resolveOrExit(index, section))
	app.SetDebounce(time.Duration(cfg.UI.DebounceMs) * time.Millisecond)
	app.SetMaxVisible(cfg.UI.MaxVisible)
	if _, err := tea.NewProgram(app).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
		os.Exit(1)
	}
}

// resolveOrExit resolves a section key or exits with the known keys listed.
func resolveOrExit(index *taxonomy.Index, raw string) string {
	key := index.ResolveSectionKey(raw)
	if key == "" {
		log.Errorf("Unknown section %q. Known sections:", raw)
		for _, s := range index.Sections() {
			log.Printf("  %s", s)
		}
		os.Exit(1)
	}
	return key
}

// printVersion displays version info with the styled logger.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ FaultServe ] Predictive fault phrase suggestions for inspections")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
}
