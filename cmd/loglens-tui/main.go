package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loglens/loglens/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

const defaultServiceURL = "http://127.0.0.1:8000"

func main() {
	var serviceURL string
	var showVersion bool

	flag.StringVar(&serviceURL, "addr", "", "base URL of the loglens service (default is $LOGLENS_ADDR or "+defaultServiceURL+")")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Loglens CLI - Dashboard Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if serviceURL == "" {
		serviceURL = os.Getenv("LOGLENS_ADDR")
	}
	if serviceURL == "" {
		serviceURL = defaultServiceURL
	}

	if err := runTUI(serviceURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(serviceURL string) error {
	client := tui.NewClient(serviceURL)
	dashboard := tui.NewDashboard(client)

	p := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
