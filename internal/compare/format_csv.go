package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Description",
		"FIRE Number",
		"Achieved Age",
		"Achievable Age",
		"Balance at Target",
		"Balance at Life Expectancy",
		"Extra Monthly Needed",
		"Status",
		"FIRE Number Diff",
		"FIRE Age Diff",
		"Balance Diff from Base",
		"Balance % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Description,
		result.FireNumber.StringFixed(0),
		formatAge(result.AchievedAge),
		formatAge(result.AchievableAge),
		result.BalanceAtTarget.StringFixed(0),
		result.BalanceAtLife.StringFixed(0),
		result.ExtraMonthlyNeeded.StringFixed(0),
		string(result.Status),
		result.FireNumberDiff.StringFixed(0),
		formatAge(result.FireAgeDiff),
		result.BalanceDiffFromBase.StringFixed(0),
		result.BalancePctFromBase.StringFixed(2),
	}
}

func formatAge(age *float64) string {
	if age == nil {
		return ""
	}
	return strconv.FormatFloat(*age, 'f', -1, 64)
}
