package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var (
	eok = decimal.NewFromInt(100_000_000)
	man = decimal.NewFromInt(10_000)
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Target))
	if result.Request.BasePlan != nil && result.Request.BasePlan.Name != "" {
		sb.WriteString(fmt.Sprintf("Plan:                %s\n", result.Request.BasePlan.Name))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("Monthly Contribution: %s (%s%s)\n",
			formatShort(*result.OptimalContribution), deltaSymbol(result.DiffFromBase), formatShort(result.DiffFromBase)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:       %.1f (%s%s years)\n",
			*result.OptimalRetirementAge, deltaSymbol(result.DiffFromBase), result.DiffFromBase.StringFixed(1)))
	}
	if result.OptimalReturn != nil {
		sb.WriteString(fmt.Sprintf("Nominal Return:       %s%% (%s%spp)\n",
			result.OptimalReturn.Shift(2).StringFixed(2), deltaSymbol(result.DiffFromBase), result.DiffFromBase.Shift(2).StringFixed(2)))
	}
	if result.OptimalExpenses != nil {
		sb.WriteString(fmt.Sprintf("Monthly Expenses:     %s (%s%s)\n",
			formatShort(*result.OptimalExpenses), deltaSymbol(result.DiffFromBase), formatShort(result.DiffFromBase)))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("FIRE Number:          %s\n", formatShort(result.FireNumber)))
	if result.AchievedAge != nil {
		sb.WriteString(fmt.Sprintf("Achieved At Age:      %.0f\n", *result.AchievedAge))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN LEVERS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-16s %-8s %18s %18s %12s\n", "Lever", "Status", "Break-even", "Change", "FIRE Age"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		value, change := "-", "-"
		if res.Success {
			value, change = tf.leverValue(res)
		}
		age := "-"
		if res.AchievedAge != nil {
			age = fmt.Sprintf("%.0f", *res.AchievedAge)
		}
		status := "ok"
		if !res.Success {
			status = "none"
		}
		sb.WriteString(fmt.Sprintf("%-16s %-8s %18s %18s %12s\n",
			truncate(string(res.Target), 16), status, value, change, age))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) leverValue(res OptimizationResult) (string, string) {
	sign := deltaSymbol(res.DiffFromBase)
	switch {
	case res.OptimalContribution != nil:
		return formatShort(*res.OptimalContribution), sign + formatShort(res.DiffFromBase)
	case res.OptimalRetirementAge != nil:
		return fmt.Sprintf("%.1f", *res.OptimalRetirementAge), sign + res.DiffFromBase.StringFixed(1) + "y"
	case res.OptimalReturn != nil:
		return res.OptimalReturn.Shift(2).StringFixed(2) + "%", sign + res.DiffFromBase.Shift(2).StringFixed(2) + "pp"
	case res.OptimalExpenses != nil:
		return formatShort(*res.OptimalExpenses), sign + formatShort(res.DiffFromBase)
	}
	return "-", "-"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not achievable"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// formatShort renders won amounts in 억 and 만 units.
func formatShort(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(eok):
		return sign + d.Div(eok).StringFixed(2) + "억"
	case d.GreaterThanOrEqual(man):
		return sign + d.Div(man).StringFixed(0) + "만"
	}
	return sign + d.StringFixed(0)
}

func deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
