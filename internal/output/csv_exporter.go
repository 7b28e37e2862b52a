package output

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
)

// utf8BOM lets spreadsheet software detect UTF-8 for the Korean labels.
const utf8BOM = "\ufeff"

// CSVExporter writes the plan summary as two-column key/value rows: inputs,
// economic assumptions, results and the future cash events.
type CSVExporter struct {
	Currency Currency
}

func (c CSVExporter) Name() string { return "csv" }

func (c CSVExporter) Format(r *domain.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	cur := c.Currency
	if cur == "" {
		cur = KRW
	}
	plan, res := r.Plan, r.Result
	ind := ResultIndicators(r)

	rows := [][2]string{
		{"항목", "내용"},
		{"--- 기본 정보 ---", ""},
		{"현재 나이", fmt.Sprintf("%.1f세", plan.Profile.CurrentAge)},
		{"목표 은퇴 나이", fmt.Sprintf("%.1f세", plan.Profile.TargetAge)},
		{"기대 수명", fmt.Sprintf("%.1f세", plan.Profile.LifeExpectancy)},
		{"현재 총 자산", cur.Money(plan.Profile.CurrentSavings)},
		{"월 소득", cur.Money(plan.CashFlows.MonthlyIncome)},
		{"월 추가 저축액", cur.Money(plan.CashFlows.MonthlyContribution)},
		{"은퇴 후 월 생활비", cur.Money(plan.CashFlows.MonthlyExpenses)},
		{"은퇴 후 월 예상 연금", cur.Money(plan.CashFlows.MonthlyPension)},
		{"연금 개시 나이", fmt.Sprintf("%.1f세", res.PensionStartAge)},
		{"--- 경제 지표 ---", ""},
		{"기대 수익률", FormatPercent(plan.Assumptions.NominalReturn)},
		{"물가 상승률", FormatPercent(plan.Assumptions.Inflation)},
		{"은퇴 모델", config.ModelLabel(plan.Assumptions.PreservationRatio)},
		{"--- 결과 ---", ""},
		{"은퇴 목표 금액", cur.Money(math.Max(0, res.FireNumber))},
		{"은퇴 달성 시점", ind.AgeAtFire},
		{"목표 달성률", fmt.Sprintf("%.1f%%", res.Progress)},
		{"저축률", fmt.Sprintf("%.1f%%", res.SavingsRate)},
	}

	if len(plan.Events) > 0 {
		rows = append(rows, [2]string{"--- 미래 목돈 상세 ---", ""})
		for _, e := range plan.SortedEvents() {
			kind := "[지출]"
			if e.IsInflow() {
				kind = "[수입]"
			}
			rows = append(rows, [2]string{
				fmt.Sprintf("%s %s", kind, e.Name),
				fmt.Sprintf("%s세 | %s", formatYears(e.Age), cur.Money(math.Abs(e.Amount))),
			})
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString(utf8BOM)
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(quoteCell(row[0]))
		buf.WriteByte(',')
		buf.WriteString(quoteCell(row[1]))
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// quoteCell always quotes; encoding/csv only quotes when it must, and the
// spreadsheet import this file targets expects every cell quoted.
func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
