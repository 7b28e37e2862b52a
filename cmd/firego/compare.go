package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/firego/internal/compare"
	"github.com/rgehrsitz/firego/internal/transform"
)

func compareCmd(a *app) *cobra.Command {
	var (
		with          string
		transforms    []string
		format        string
		listTemplates bool
		debugMode     bool
	)

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan against alternative strategies",
		Long: `Compare a base plan against built-in strategy templates or ad-hoc transforms.

Examples:
  firego compare plan.yaml --with save_more_10pct,postpone_3yr
  firego compare plan.yaml --transform set_return:rate=0.05 --format csv
  firego compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}

			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required")
			}

			plan, err := a.loadPlan(args[0], "")
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(a.engine(debugMode)).Compare(cmd.Context(), plan, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
				ConfigPath: args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			return writeComparison(cmd.OutOrStdout(), set, format)
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Ad-hoc transform, name:key=value,... (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available templates")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate values")
	return cmd
}

func sweepCmd(a *app) *cobra.Command {
	var (
		param     string
		from, to  float64
		steps     int
		format    string
		debugMode bool
	)

	names := make([]string, 0, len(compare.SweepParameters()))
	for _, p := range compare.SweepParameters() {
		names = append(names, string(p))
	}

	cmd := &cobra.Command{
		Use:   "sweep [plan-file]",
		Short: "Run a plan across a range of one input",
		Long: `Vary one input across evenly spaced values and compare each run to the plan.

Examples:
  firego sweep plan.yaml --param return --from 0.04 --to 0.08 --steps 5
  firego sweep plan.yaml --param target-age --from 50 --to 60 --steps 11 --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := compare.SweepValues(from, to, steps)
			if err != nil {
				return err
			}

			plan, err := a.loadPlan(args[0], "")
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(a.engine(debugMode)).Sweep(cmd.Context(), plan, compare.SweepParameter(param), values)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}
			set.ConfigPath = args[0]
			return writeComparison(cmd.OutOrStdout(), set, format)
		},
	}

	cmd.Flags().StringVar(&param, "param", "", "Input to vary ("+strings.Join(names, ", ")+")")
	cmd.Flags().Float64Var(&from, "from", 0, "First value")
	cmd.Flags().Float64Var(&to, "to", 0, "Last value")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of values, ends included")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate values")
	_ = cmd.MarkFlagRequired("param")
	return cmd
}

func writeComparison(w io.Writer, set *compare.ComparisonSet, format string) error {
	var (
		out string
		err error
	)
	switch strings.ToLower(format) {
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "table", "console", "":
		out = (&compare.TableFormatter{}).Format(set)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format comparison: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}
