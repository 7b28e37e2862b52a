package output

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/firego/internal/domain"
)

// ConsoleFormatter prints headline numbers, the diagnosis, remedies and a
// condensed trajectory.
type ConsoleFormatter struct {
	Currency Currency
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	cur := c.Currency
	if cur == "" {
		cur = KRW
	}
	res, plan := r.Result, r.Plan
	ind := ResultIndicators(r)

	buf := &bytes.Buffer{}
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintln(buf, rule)
	if plan.Name != "" {
		fmt.Fprintf(buf, "FIRE PROJECTION: %s\n", plan.Name)
	} else {
		fmt.Fprintln(buf, "FIRE PROJECTION")
	}
	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "KEY RESULTS")
	fmt.Fprintln(buf, thin)
	fmt.Fprintf(buf, "FIRE Number:        %s\n", cur.Money(math.Max(0, res.FireNumber)))
	fmt.Fprintf(buf, "Current Savings:    %s\n", cur.Money(plan.Profile.CurrentSavings))
	fmt.Fprintf(buf, "Progress:           %.1f%%\n", res.Progress)
	fmt.Fprintf(buf, "Savings Rate:       %.1f%% (월 %s 저축 중)\n", res.SavingsRate, cur.Money(plan.CashFlows.MonthlyContribution))
	fmt.Fprintf(buf, "Years To FIRE:      %s\n", ind.YearsToFire)
	fmt.Fprintf(buf, "Outlook:            %s\n", ind.AgeAtFire)
	fmt.Fprintf(buf, "                    %s\n", ind.YearsToGo)
	fmt.Fprintf(buf, "Real Return:        %s\n", FormatPercent(res.RealReturn))
	fmt.Fprintf(buf, "Pension Start:      %.1f세", res.PensionStartAge)
	if res.BridgeYears > 0 {
		fmt.Fprintf(buf, " (bridge %.1f years)", res.BridgeYears)
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, ind.Message)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "DIAGNOSIS")
	fmt.Fprintln(buf, thin)
	for _, line := range Diagnosis(r, cur) {
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf)

	if advices := Advices(r, cur); len(advices) > 0 {
		fmt.Fprintln(buf, "SUGGESTIONS")
		fmt.Fprintln(buf, thin)
		for _, a := range advices {
			marker := "•"
			if a.Emphasis {
				marker = "!"
			}
			fmt.Fprintf(buf, "%s %s: %s\n", marker, a.Label, a.Text)
		}
		fmt.Fprintln(buf)
	}

	if len(res.Trajectory) > 0 {
		fmt.Fprintln(buf, "TRAJECTORY")
		fmt.Fprintln(buf, thin)
		fmt.Fprintf(buf, "%-6s %20s %20s\n", "Age", "Nominal", "Real (today)")
		last := len(res.Trajectory) - 1
		for i, p := range res.Trajectory {
			fire := res.AchievedAge != nil && p.Age == *res.AchievedAge
			if i%5 != 0 && i != last && !fire {
				continue
			}
			marker := ""
			if fire {
				marker = "  <- FIRE"
			}
			fmt.Fprintf(buf, "%-6.0f %20s %20s%s\n", p.Age, cur.Compact(p.NominalBalance), cur.Compact(p.RealBalance), marker)
		}
	}

	return buf.Bytes(), nil
}
