package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/rarefinebooks/backroom/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	debug := flag.Bool("debug", false, "write debug log to backroom-debug.log")
	flag.Parse()

	// A .env in the working directory can set BACKROOM_API_URL.
	_ = godotenv.Load()

	if *debug {
		f, err := tea.LogToFile("backroom-debug.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "backroom: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
	} else {
		// Writing to stderr would tear the alternate screen.
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{ConfigPath: *configPath}); err != nil {
		fmt.Fprintf(os.Stderr, "backroom: %v\n", err)
		return 1
	}
	return 0
}
