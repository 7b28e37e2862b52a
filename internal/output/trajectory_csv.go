package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/rgehrsitz/firego/internal/domain"
)

// TrajectoryCSV writes one row per projected year for charting elsewhere.
type TrajectoryCSV struct{}

func (t TrajectoryCSV) Name() string { return "trajectory-csv" }

func (t TrajectoryCSV) Format(r *domain.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"age", "nominal_balance", "real_balance", "fire_number", "fire_reached"}); err != nil {
		return nil, err
	}

	target := wholeNumber(r.Result.FireNumber)
	for _, p := range r.Result.Trajectory {
		reached := r.Result.AchievedAge != nil && p.Age >= *r.Result.AchievedAge
		row := []string{
			strconv.FormatFloat(p.Age, 'f', -1, 64),
			wholeNumber(p.NominalBalance),
			wholeNumber(p.RealBalance),
			target,
			strconv.FormatBool(reached),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func wholeNumber(v float64) string {
	return strconv.FormatFloat(math.Round(finite(v)), 'f', 0, 64)
}
