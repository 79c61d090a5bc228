package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lexcraft/lexcraft/internal/api"
	"github.com/lexcraft/lexcraft/internal/catalog"
	"github.com/lexcraft/lexcraft/internal/cli"
	"github.com/lexcraft/lexcraft/internal/service"
)

var version = "1.0.0"

func printHelp() {
	fmt.Print(`LexCraft - contract generation and modification engine

USAGE:
  lexcraft [flags]              Start in CLI mode (use a command) or show help
  lexcraft [flags] <command>    Execute a CLI command (see 'lexcraft help')
  lexcraft --serve              Start the HTTP API server

FLAGS:
  --serve              Start the HTTP API server
  --port <n>           Port for the API server (default 8080)
  --dir <path>         Catalog directory (default $LEXCRAFT_DIR or ~/.lexcraft)
  --init               Initialize an empty catalog directory and exit
  --watch              Reload the catalog when files change (with --serve)
  --log-level <level>  Log level: debug, info, warn, error (default info)
  --version            Print version information
  --help               Show help information

CLI COMMANDS:
  generate, modify, templates, clauses, clause, search, suggest, help

EXAMPLES:
  lexcraft --init
  lexcraft generate --file requirements.json
  lexcraft --serve --port 9090 --watch
`)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	var serve bool
	var port int
	var dir string
	var initCatalog bool
	var watch bool
	var logLevel string
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&serve, "serve", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for the API server")
	flag.StringVar(&dir, "dir", "", "Catalog directory (default $LEXCRAFT_DIR or ~/.lexcraft)")
	flag.BoolVar(&initCatalog, "init", false, "Initialize an empty catalog directory")
	flag.BoolVar(&watch, "watch", false, "Reload the catalog when files change")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lexcraft version %s\n", version)
		os.Exit(0)
	}

	logger, err := newLogger(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := catalog.NewFileStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}

	if initCatalog {
		if err := store.InitCatalog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized LexCraft catalog at %s\n", store.GetBaseDir())
		return
	}

	svc := service.NewServiceWithCatalog(store)

	if serve {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if watch {
			go func() {
				if err := store.Watch(ctx, logger); err != nil && ctx.Err() == nil {
					logger.Error("catalog watcher stopped", zap.Error(err))
				}
			}()
		}

		srv := api.NewAPIServer(svc, port, logger)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
			logger.Info("server stopped")
		case err := <-errCh:
			if err != nil {
				logger.Fatal("server failed", zap.Error(err))
			}
		}
		return
	}

	args := flag.Args()
	cliHandler := cli.NewCLI(svc, logger)
	if err := cliHandler.ExecuteCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
