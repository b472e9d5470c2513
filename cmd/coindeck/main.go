package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/coindeck/coindeck/internal/coingecko"
	"github.com/coindeck/coindeck/internal/config"
	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/log"
	"github.com/coindeck/coindeck/internal/market"
	"github.com/coindeck/coindeck/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("coindeck %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger. Fall back to a null logger if file logging fails;
	// writing to stderr would corrupt the alternate screen.
	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting coindeck", "version", Version)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("coindeck requires an interactive terminal")
	}

	// Create API client
	client := coingecko.NewClient(cfg.API.BaseURL, cfg.Timeout(), logger)

	// Initial view state from config
	currency, ok := domain.CurrencyByCode(cfg.Display.Currency)
	if !ok {
		return fmt.Errorf("unsupported currency %q", cfg.Display.Currency)
	}
	order, ok := domain.SortOrderByKey(cfg.Display.Order)
	if !ok {
		return fmt.Errorf("unsupported sort order %q", cfg.Display.Order)
	}
	view := market.NewView(currency, order, cfg.Display.PageSize)

	// Create TUI model
	model := tui.NewModel(client, view, cfg.Timeout())

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
