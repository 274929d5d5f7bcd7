// Cookbook — an AI-assisted recipe collection manager.
//
// Usage:
//
//	cookbook [-verbose] [-quiet] [-data-dir DIR] [-export-dir DIR]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/cookbook/internal/collection"
	"github.com/hammamikhairi/cookbook/internal/conversation"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/export"
	"github.com/hammamikhairi/cookbook/internal/gpt"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".cookbook-logs/cookbook.log", "file to write logs to (use \"stderr\" to log to console)")
	dataDir := flag.String("data-dir", ".cookbook-data", "directory for the persisted collection")
	exportDir := flag.String("export-dir", ".", "directory the exported HTML page is written to")
	noAI := flag.Bool("no-ai", false, "disable the AI assistant even if GPT keys are set")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	store, err := storage.NewFileStore(*dataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	svc, err := collection.New(ctx, store, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	styles := storage.NewStyleStore(*dataDir, log)
	exporter := export.New(log)
	ui := display.NewUI(display.NewActivity())
	parser := conversation.NewKeywordParser(log)
	notifier := conversation.NewCLINotifier(log, ui.Printf)

	// Build the AI agent if GPT credentials are available.
	var agent *gpt.Agent

	gptKey := os.Getenv("GPT_CHAT_KEY")
	gptEndpoint := os.Getenv("GPT_CHAT_ENDPOINT")

	if gptKey != "" && gptEndpoint != "" && !*noAI {
		var opts []gpt.ClientOption
		if imgEndpoint := os.Getenv("GPT_IMAGE_ENDPOINT"); imgEndpoint != "" {
			opts = append(opts, gpt.WithImageEndpoint(imgEndpoint))
		}
		if imgModel := os.Getenv("GPT_IMAGE_MODEL"); imgModel != "" {
			opts = append(opts, gpt.WithImageModel(imgModel))
		}
		gptClient := gpt.NewClient(gptEndpoint, gptKey, log, opts...)
		agent = gpt.NewAgent(gptClient, log)
		log.Info("AI assistant enabled")
	} else if !*noAI {
		log.Info("AI assistant disabled: set GPT_CHAT_KEY and GPT_CHAT_ENDPOINT env vars to enable")
	}

	// Build the CLI app.
	app := &cliApp{
		collection: svc,
		styles:     styles,
		exporter:   exporter,
		exportDir:  *exportDir,
		parser:     parser,
		notifier:   notifier,
		agent:      agent,
		log:        log,
		ui:         ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
