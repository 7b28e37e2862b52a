package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
)

// MaxDisplayedExtraReturn hides return-lever suggestions at or above this many
// percentage points; such a jump is not a realistic portfolio change. The
// engine still reports the value.
const MaxDisplayedExtraReturn = 20.0

// longDelayYears marks a fallback retirement age as a large postponement.
const longDelayYears = 10.0

// Indicators are the short status texts shown next to the headline numbers.
type Indicators struct {
	YearsToFire string `json:"yearsToFire"`
	AgeAtFire   string `json:"ageAtFire"`
	YearsToGo   string `json:"yearsToGo"`
	Message     string `json:"message"`
}

// ResultIndicators summarizes whether and when the plan reaches its target.
func ResultIndicators(r *domain.Report) Indicators {
	res, profile := r.Result, r.Plan.Profile
	switch res.Status {
	case domain.StatusOnTrack:
		years := 0.0
		if res.YearsToFire != nil {
			years = *res.YearsToFire
		}
		return Indicators{
			YearsToFire: formatYears(years) + "년",
			AgeAtFire:   fmt.Sprintf("%s세에 목표 달성 예상", formatYears(*res.AchievedAge)),
			YearsToGo:   fmt.Sprintf("목표 은퇴일(%s세)까지 넉넉합니다", formatYears(profile.TargetAge)),
			Message:     "현재 계획대로면 조기 은퇴도 가능해 보입니다!",
		}
	case domain.StatusAlreadySecured:
		return Indicators{
			YearsToFire: "0년",
			AgeAtFire:   "목표 달성 완료",
			YearsToGo:   "이미 충분한 자산을 확보하셨습니다",
			Message:     "축하합니다! 경제적 자유를 이루셨습니다.",
		}
	default:
		return Indicators{
			YearsToFire: "목표 미달성",
			AgeAtFire:   fmt.Sprintf("%s세 시점에 부족 예상", formatYears(profile.TargetAge)),
			YearsToGo:   "저축액을 높이거나 목표를 조정해 보세요",
			Message:     "목표 달성을 위해 조금 더 분발이 필요합니다.",
		}
	}
}

// Diagnosis explains the plan in a few sentences: retirement model, bridge
// period without pension, required capital and progress.
func Diagnosis(r *domain.Report, cur Currency) []string {
	res, plan := r.Result, r.Plan

	lines := []string{
		fmt.Sprintf("선택하신 전략은 '%s'입니다.", config.ModelLabel(plan.Assumptions.PreservationRatio)),
	}
	if res.BridgeYears > 0 {
		lines = append(lines, fmt.Sprintf("은퇴 후 약 %.1f년 동안은 연금 없이 생활비 전액을 자산에서 충당해야 합니다.", res.BridgeYears))
	}
	lines = append(lines,
		fmt.Sprintf("은퇴 후 월 부족분(%s)을 충당하며 %.1f세까지 자산 가치를 유지하기 위해 은퇴 시점(%.1f세)에 총 %s이 필요합니다.",
			cur.Money(res.MonthlyGap), plan.Profile.LifeExpectancy, plan.Profile.TargetAge, cur.Money(math.Max(0, res.FireNumber))),
		fmt.Sprintf("현재의 저축 페이스를 유지할 경우, 목표 자산의 %.1f%%를 이미 확보하신 상태입니다.", res.Progress),
	)
	return lines
}

// Advice is one displayable remedy.
type Advice struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis"` // the remedy is drastic, e.g. a long postponement
}

// Advices turns the engine's suggestion into display lines. Levers are
// independent alternatives.
func Advices(r *domain.Report, cur Currency) []Advice {
	s := r.Result.Suggestion
	if s == nil {
		return nil
	}
	targetAge := r.Plan.Profile.TargetAge

	var out []Advice
	if s.ExtraMonthly != nil && *s.ExtraMonthly > 0 {
		out = append(out, Advice{
			Label: "방법 A",
			Text: fmt.Sprintf("매달 %s(연간 %s)를 더 저축하면 계획대로 %.1f세에 은퇴가 가능합니다.",
				cur.Money(*s.ExtraMonthly), cur.Money(*s.ExtraMonthly*12), targetAge),
		})
	}
	if ShowExtraReturn(s) {
		out = append(out, Advice{
			Label: "방법 B",
			Text:  fmt.Sprintf("연평균 수익률을 %.1f%%p 더 높일 수 있는 투자 포트폴리오를 고려해 보세요.", *s.ExtraReturn),
		})
	}

	switch {
	case s.AchievableAge != nil:
		delay := *s.AchievableAge - targetAge
		out = append(out, Advice{
			Label:    "차선책",
			Text:     fmt.Sprintf("은퇴 시점을 %.1f세로 조정하세요. (은퇴 %.1f년 연기)", *s.AchievableAge, delay),
			Emphasis: delay > longDelayYears,
		})
	case len(out) == 0:
		out = append(out, Advice{
			Label: "조언",
			Text:  "현재 설정으로는 현실적인 대안을 계산하기 어렵습니다. 목표 금액을 낮추거나 은퇴 나이를 조정해 보세요.",
		})
	}
	return out
}

// ShowExtraReturn reports whether the return lever is realistic enough to display.
func ShowExtraReturn(s *domain.Suggestion) bool {
	return s != nil && s.ExtraReturn != nil && *s.ExtraReturn > 0 && *s.ExtraReturn < MaxDisplayedExtraReturn
}

// formatYears prints whole numbers without decimals and others with one.
func formatYears(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
