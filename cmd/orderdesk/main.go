package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/vsinha/orderdesk/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		catalogFile = flag.String("catalog", "", "Path to products CSV file (default: built-in demo catalog)")
		format      = flag.String("format", "text", "Output format: text, json")
		verbose     = flag.Bool("verbose", false, "Enable verbose output and debug logging")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
			os.Exit(1)
		}
		logger = dev
	}

	config := commands.Config{
		CatalogFile: *catalogFile,
		Format:      *format,
		Verbose:     *verbose,
		Help:        *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	cmd := commands.NewOrderCommand(config, logger)
	err := cmd.Execute(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
