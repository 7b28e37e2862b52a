package calculation

import "math"

// MonthsPerYear is the number of compounding sub-periods in a year.
const MonthsPerYear = 12

// rateEpsilon is the per-month rate below which the annuity is treated as
// interest-free.
const rateEpsilon = 1e-6

// AnnuityPresentValue discounts an annual payment stream plus a terminal lump
// sum back to the start of the horizon. realRate is annual, periods is in years
// and periodicPayment is the amount paid per year. Compounding is monthly: the
// payment is spread evenly over twelve sub-periods.
func AnnuityPresentValue(realRate, periods, periodicPayment, futureValue float64) float64 {
	if periods <= 0 {
		return futureValue
	}

	rate := realRate / MonthsPerYear
	if math.Abs(rate) < rateEpsilon {
		// Same as (pmt/12)*(periods*12) but exact in annual units.
		return periodicPayment*periods + futureValue
	}

	n := periods * MonthsPerYear
	pmt := periodicPayment / MonthsPerYear
	discount := math.Pow(1+rate, -n)

	return pmt*(1-discount)/rate + futureValue*discount
}

// SinkingFundPayment is the level payment per sub-period that accumulates to
// amount after n sub-periods at rate r per sub-period. It returns 0 when no
// positive payment is defined (r <= 0, n <= 0 or amount <= 0).
func SinkingFundPayment(amount, r, n float64) float64 {
	if amount <= 0 || r <= 0 || n <= 0 {
		return 0
	}
	growth := math.Pow(1+r, n) - 1
	if growth <= 0 {
		return 0
	}
	return amount * r / growth
}

// RequiredGrowthRate is the constant annual rate that grows from into to over
// years. Inputs must be positive.
func RequiredGrowthRate(from, to, years float64) float64 {
	if from <= 0 || to <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(to/from, 1/years) - 1
}

// growthBase floors 1+rate so fractional and negative exponents stay finite.
func growthBase(rate float64) float64 {
	return math.Max(1+rate, minGrowthBase)
}
