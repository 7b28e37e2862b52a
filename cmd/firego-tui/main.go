package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/logging"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: firego-tui <plan-file> [settings-file]")
		os.Exit(1)
	}

	settingsPath := ""
	if len(os.Args) > 2 {
		settingsPath = os.Args[2]
	}

	if err := run(os.Args[1], settingsPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(planPath, settingsPath string) error {
	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		return fmt.Errorf("plan file not found: %s", planPath)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	currency, err := output.ParseCurrency(settings.Output.Currency)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so engine logs only go to a file.
	engine := calculation.NewCalculationEngine()
	if settings.Logging.OutputFile != "" {
		logger, err := logging.New(settings.Logging, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		engine.SetLogger(logger.Sugar())
	}

	p := tea.NewProgram(
		tui.NewModel(planPath, tui.Options{Currency: currency, Engine: engine}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
