package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	eok = decimal.NewFromInt(100_000_000) // 억
	man = decimal.NewFromInt(10_000)      // 만
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plan variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FIRE PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "FIRE Number",
		numWidth, "FIRE Age",
		numWidth, "At Target",
		numWidth, "At Life Exp"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			// A smaller target is better
			sb.WriteString(fmt.Sprintf("  FIRE Number:      %s%s\n",
				tf.deltaSymbol(alt.FireNumberDiff),
				formatDecimal(alt.FireNumberDiff)))

			if alt.FireAgeDiff != nil && *alt.FireAgeDiff != 0 {
				sb.WriteString(fmt.Sprintf("  FIRE Age:         %+.0f years\n", *alt.FireAgeDiff))
			}

			if !alt.BalanceDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Balance @Target:  %s%s (%s%%)\n",
					tf.deltaSymbol(alt.BalanceDiffFromBase),
					formatDecimal(alt.BalanceDiffFromBase),
					alt.BalancePctFromBase.StringFixed(1)))
			}

			if !alt.ExtraMonthlyDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Extra Saving:     %s%s /month\n",
					tf.deltaSymbol(alt.ExtraMonthlyDiff),
					formatDecimal(alt.ExtraMonthlyDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	ageStr := "never"
	if result.AchievedAge != nil {
		ageStr = fmt.Sprintf("%.0f", *result.AchievedAge)
	} else if result.AchievableAge != nil {
		ageStr = fmt.Sprintf("%.0f (late)", *result.AchievableAge)
	} else if result.Status != "" && result.Status != "shortfall" {
		ageStr = "now"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, formatDecimal(result.FireNumber),
		numWidth, ageStr,
		numWidth, formatDecimal(result.BalanceAtTarget),
		numWidth, formatDecimal(result.BalanceAtLife))
}

// formatDecimal formats an amount in 억 and 만 units
func formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(eok) {
		return d.Div(eok).StringFixed(2) + "억"
	} else if d.Abs().GreaterThanOrEqual(man) {
		return d.Div(man).StringFixed(0) + "만"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.FireAgeDiff != nil && *alt.FireAgeDiff != 0 {
			change = fmt.Sprintf("%+.0fy", *alt.FireAgeDiff)
		} else if !alt.FireNumberDiff.IsZero() {
			change = tf.deltaSymbol(alt.FireNumberDiff) + formatDecimal(alt.FireNumberDiff)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
