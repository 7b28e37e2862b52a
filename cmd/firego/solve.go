package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/firego/internal/breakeven"
)

func solveCmd(a *app) *cobra.Command {
	var (
		target           string
		format           string
		maxContribution  float64
		maxRetirementAge float64
		maxExpenses      float64
		debugMode        bool
	)

	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the break-even value of contribution, retirement age, return or expenses",
		Long: `Search for the value of one input that makes the plan reach its FIRE number
by the target age, holding everything else fixed. Target "all" solves each
input in turn.

Examples:
  firego solve plan.yaml
  firego solve plan.yaml --target contribution --max-contribution 5000000
  firego solve plan.yaml --target retirement-age --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0], "")
			if err != nil {
				return err
			}

			constraints := breakeven.Constraints{}
			if maxContribution > 0 {
				v := decimal.NewFromFloat(maxContribution)
				constraints.MaxContribution = &v
			}
			if maxRetirementAge > 0 {
				constraints.MaxRetirementAge = &maxRetirementAge
			}
			if maxExpenses > 0 {
				v := decimal.NewFromFloat(maxExpenses)
				constraints.MaxExpenses = &v
			}

			solver := breakeven.NewDefaultSolver(a.engine(debugMode))
			t := parseTarget(target)

			if t == breakeven.OptimizeAll {
				result, err := solver.OptimizeMultiDimensional(cmd.Context(), plan, constraints)
				if err != nil {
					return err
				}
				return writeMulti(cmd.OutOrStdout(), result, format)
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				BasePlan:    plan,
				Target:      t,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			return writeSingle(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "all", "Input to solve (contribution, retirement-age, return, expenses, all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().Float64Var(&maxContribution, "max-contribution", 0, "Upper bound for the monthly contribution")
	cmd.Flags().Float64Var(&maxRetirementAge, "max-retirement-age", 0, "Upper bound for the retirement age")
	cmd.Flags().Float64Var(&maxExpenses, "max-expenses", 0, "Upper bound for monthly expenses")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate values")
	return cmd
}

func parseTarget(s string) breakeven.OptimizationTarget {
	return breakeven.OptimizationTarget(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
}

func writeSingle(w io.Writer, result *breakeven.OptimizationResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "table", "":
		_, err := fmt.Fprint(w, (&breakeven.TableFormatter{}).Format(result))
		return err
	}
	return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
}

func writeMulti(w io.Writer, result *breakeven.MultiDimensionalResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "table", "":
		_, err := fmt.Fprint(w, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
		return err
	}
	return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
}
