package domain

// Point is one yearly sample of the projection, taken before that year's
// events and monthly steps are applied.
type Point struct {
	Age            float64 `json:"age"`
	NominalBalance float64 `json:"nominalBalance"`
	RealBalance    float64 `json:"realBalance"`
}

// Trajectory is ordered by strictly increasing age.
type Trajectory []Point

// At returns the sample whose age equals age exactly.
func (t Trajectory) At(age float64) (Point, bool) {
	for _, p := range t {
		if p.Age == age {
			return p, true
		}
	}
	return Point{}, false
}

// Ages returns the sample ages in order.
func (t Trajectory) Ages() []float64 {
	ages := make([]float64, len(t))
	for i, p := range t {
		ages[i] = p.Age
	}
	return ages
}

// RealBalances returns the real balance series.
func (t Trajectory) RealBalances() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.RealBalance
	}
	return out
}

// NominalBalances returns the nominal balance series.
func (t Trajectory) NominalBalances() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.NominalBalance
	}
	return out
}

// FirstCrossing returns the first age at which the real balance reaches target,
// with no age restriction.
func (t Trajectory) FirstCrossing(target float64) *float64 {
	for _, p := range t {
		if p.RealBalance >= target {
			age := p.Age
			return &age
		}
	}
	return nil
}

// Suggestion lists single-lever remedies when the target is missed. Levers are
// independent alternatives, not a combined plan.
type Suggestion struct {
	// ExtraMonthly is the additional monthly saving that closes the shortfall.
	ExtraMonthly *float64 `json:"extraMonthly,omitempty"`
	// ExtraReturn is the required annual growth rate, in percent, that turns the
	// expected balance at retirement into the target.
	ExtraReturn *float64 `json:"extraReturn,omitempty"`
	// AchievableAge is the first age at which the current plan reaches the
	// target, if any.
	AchievableAge *float64 `json:"achievableAge,omitempty"`
	NeverReached  bool     `json:"neverReached"`
}

// Status classifies a projection for presentation.
type Status string

const (
	StatusOnTrack        Status = "on_track"
	StatusAlreadySecured Status = "already_secured"
	StatusShortfall      Status = "shortfall"
)

// Result is the output of one projection. It is never mutated after it is built.
type Result struct {
	FireNumber  float64     `json:"fireNumber"`
	Trajectory  Trajectory  `json:"trajectory"`
	AchievedAge *float64    `json:"achievedAge"`
	Suggestion  *Suggestion `json:"suggestion"`

	// Derived indicators.
	BaseAge         float64  `json:"baseAge"`
	RealReturn      float64  `json:"realReturn"`
	PensionStartAge float64  `json:"pensionStartAge"`
	MonthlyGap      float64  `json:"monthlyGap"`
	BridgeYears     float64  `json:"bridgeYears"`
	SavingsRate     float64  `json:"savingsRate"`
	Progress        float64  `json:"progress"`
	YearsToFire     *float64 `json:"yearsToFire,omitempty"`
	Status          Status   `json:"status"`
}

// Report pairs the normalized plan with its result.
type Report struct {
	Plan   Plan   `json:"plan"`
	Result Result `json:"result"`
}
