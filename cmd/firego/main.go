package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/logging"
	"github.com/rgehrsitz/firego/internal/output"
)

var hundred = decimal.NewFromInt(100)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once the root flags are parsed
type app struct {
	settingsPath string
	logLevel     string
	currencyFlag string

	settings *config.Settings
	logger   *zap.Logger
	currency output.Currency
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	a.settings = settings

	cur := settings.Output.Currency
	if a.currencyFlag != "" {
		cur = a.currencyFlag
	}
	if a.currency, err = output.ParseCurrency(cur); err != nil {
		return err
	}

	a.logger, err = logging.New(settings.Logging, a.logLevel)
	return err
}

func (a *app) engine(debugMode bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if a.logger != nil {
		engine.SetLogger(a.logger.Sugar())
	}
	engine.Debug = debugMode
	return engine
}

// loadPlan reads a plan file and applies an optional preset on top
func (a *app) loadPlan(path, preset string) (*domain.Plan, error) {
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		if err := config.ApplyPreset(plan, preset); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "firego",
		Short: "FIRE retirement projection CLI",
		Long: `Project savings year by year, find the capital needed to retire and
the age at which it is reached, and search for the changes that close a gap.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&a.settingsPath, "config", "", "Settings file (logging, output, server)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.currencyFlag, "currency", "", "Display currency (KRW, USD)")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		presetsCmd(),
		compareCmd(a),
		sweepCmd(a),
		solveCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func calculateCmd(a *app) *cobra.Command {
	var (
		format    string
		preset    string
		outputDir string
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Project a plan and report the FIRE number and age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0], preset)
			if err != nil {
				return err
			}

			report, err := a.engine(debugMode).Run(cmd.Context(), plan)
			if err != nil {
				return err
			}

			if format == "" {
				format = a.settings.Output.Format
			}
			f := output.GetFormatterByName(format, a.currency)
			if f == nil {
				return fmt.Errorf("unknown output format: %s (available: %v)", format, output.AvailableFormatterNames())
			}

			if outputDir != "" {
				path, err := output.WriteFormatted(f, report, outputDir, extensionFor(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (console, json, csv, trajectory-csv)")
	cmd.Flags().StringVar(&preset, "preset", "", "Apply a preset's cash flows (conservative, moderate, aggressive)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate values")
	return cmd
}

func extensionFor(formatter string) string {
	switch formatter {
	case "json":
		return "json"
	case "csv", "trajectory-csv":
		return "csv"
	default:
		return "txt"
	}
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadPlan(args[0], ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
			return nil
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in cash-flow presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePresets(cmd.OutOrStdout())
		},
	}
}

func writePresets(w io.Writer) error {
	fmt.Fprintf(w, "%-14s %14s %14s %14s %8s  %s\n", "Preset", "Income/mo", "Savings/mo", "Expenses/mo", "Return", "Description")
	for _, p := range config.ListPresets() {
		if _, err := fmt.Fprintf(w, "%-14s %14s %14s %14s %8s  %s\n",
			p.Name,
			output.KRW.Money(p.MonthlyIncome().InexactFloat64()),
			output.KRW.Money(p.MonthlyContribution().InexactFloat64()),
			output.KRW.Money(p.MonthlyExpensesWon().InexactFloat64()),
			p.NominalReturn.Mul(hundred).StringFixed(1)+"%",
			p.Description,
		); err != nil {
			return err
		}
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no settings
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "firego %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
