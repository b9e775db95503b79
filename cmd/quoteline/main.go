package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tkwang/quoteline/internal/config"
	"github.com/tkwang/quoteline/internal/dispatch"
	"github.com/tkwang/quoteline/internal/doctor"
	"github.com/tkwang/quoteline/internal/line"
	"github.com/tkwang/quoteline/internal/log"
	"github.com/tkwang/quoteline/internal/quote"
	"github.com/tkwang/quoteline/internal/webhook"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "start":
		os.Exit(runStart(args))
	case "doctor":
		os.Exit(runDoctor(args))
	case "version":
		fmt.Printf("quoteline version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`quoteline - LINE webhook bot that echoes messages and quotes stock prices

Usage:
  quoteline <command> [flags]

Commands:
  start     Start the webhook server in foreground
  doctor    Validate configuration and credentials
  version   Show version information
  help      Show this help message

Flags:
  --config  Path to configuration file (default: config.yaml)
  --listen  Override the listen address from the config (start only)
`)
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	listen := fs.String("listen", "", "Override listen address")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("main")
	logger.Info("quoteline starting", "version", version, "config", *configPath)

	if digest, err := config.Digest(*configPath); err == nil {
		logger.Info("config loaded", "blake3", digest)
	}

	var lineOpts []line.ClientOption
	if cfg.Line.ReplyEndpoint != "" {
		lineOpts = append(lineOpts, line.WithEndpoint(cfg.Line.ReplyEndpoint))
	}
	gateway := line.NewClient(cfg.Line.ChannelToken, lineOpts...)

	var quoteOpts []quote.YahooOption
	if cfg.Quote.BaseURL != "" {
		quoteOpts = append(quoteOpts, quote.WithBaseURL(cfg.Quote.BaseURL))
	}
	source := quote.NewYahooClient(quoteOpts...)
	lookup := quote.NewLookup(source, log.WithComponent("quote"))

	disp := dispatch.New(gateway, lookup, log.WithComponent("dispatch"))

	server := webhook.New(webhook.Config{
		Listen:      cfg.Server.Listen,
		Path:        cfg.Server.Path,
		Secret:      cfg.Line.ChannelSecret,
		MaxBodySize: cfg.Server.MaxBodySize,
	}, disp, log.WithComponent("webhook"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("webhook server failed", "error", err)
		return 1
	}

	logger.Info("quoteline stopped")
	return 0
}

func runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	result := doctor.New(cfg).Validate()

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render result: %v\n", err)
		return 1
	}
	fmt.Println(string(out))

	if !result.Valid {
		return 1
	}
	return 0
}
