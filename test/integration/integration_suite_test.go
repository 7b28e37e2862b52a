package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
)

var planFiles = []string{
	"../testdata/generic_plan.yaml",
	"../testdata/retired_plan.yaml",
	"../testdata/dated_plan.yaml",
	"../testdata/preset_plan.yaml",
}

func loadPlan(t *testing.T, path string) *domain.Plan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err, "should load %s", path)
	return plan
}

func runPlan(t *testing.T, plan *domain.Plan) *domain.Report {
	t.Helper()
	report, err := calculation.NewCalculationEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	return report
}

// TestIntegrationSmokeTest runs every fixture through the engine and every formatter
func TestIntegrationSmokeTest(t *testing.T) {
	for _, file := range planFiles {
		t.Run(filepath.Base(file), func(t *testing.T) {
			plan := loadPlan(t, file)
			report := runPlan(t, plan)

			assert.NotEmpty(t, report.Result.Trajectory)
			assert.GreaterOrEqual(t, report.Result.Progress, 0.0)
			assert.LessOrEqual(t, report.Result.Progress, 100.0)

			for _, name := range output.AvailableFormatterNames() {
				data, err := output.GetFormatterByName(name, output.KRW).Format(report)
				require.NoError(t, err, "format %s", name)
				assert.NotEmpty(t, data, "format %s", name)
			}
		})
	}
}

// TestIntegrationRegression checks that repeated runs agree
func TestIntegrationRegression(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		plan := loadPlan(t, "../testdata/generic_plan.yaml")

		first := runPlan(t, plan)
		second := runPlan(t, plan)
		assert.Equal(t, first.Result, second.Result)
	})

	t.Run("input_is_not_mutated", func(t *testing.T) {
		plan := loadPlan(t, "../testdata/generic_plan.yaml")
		before := plan.DeepCopy()

		runPlan(t, plan)
		assert.Equal(t, before, plan)
	})
}

// TestIntegrationDataValidation checks the invariants every report should hold
func TestIntegrationDataValidation(t *testing.T) {
	for _, file := range planFiles {
		t.Run(filepath.Base(file), func(t *testing.T) {
			plan := loadPlan(t, file)
			require.NoError(t, config.NewInputParser().ValidateConfiguration(plan))

			res := runPlan(t, plan).Result
			tr := res.Trajectory

			assert.Equal(t, calculation.BaseAge(plan.Profile), res.BaseAge)
			for i := 1; i < len(tr); i++ {
				assert.Equal(t, tr[i-1].Age+1, tr[i].Age, "ages advance one year at a time")
			}

			if res.AchievedAge != nil {
				point, ok := tr.At(*res.AchievedAge)
				require.True(t, ok)
				assert.GreaterOrEqual(t, point.RealBalance, res.FireNumber)
				assert.Equal(t, domain.StatusOnTrack, res.Status)
				require.NotNil(t, res.YearsToFire)
				assert.GreaterOrEqual(t, *res.YearsToFire, 0.0)
			} else {
				assert.Nil(t, res.YearsToFire)
			}
		})
	}
}

// TestIntegrationBenchmarks keeps the projection fast enough for interactive use
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	plan := loadPlan(t, "../testdata/generic_plan.yaml")
	engine := calculation.NewCalculationEngine()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		engine.Calculate(plan)
	}
	duration := time.Since(start)

	assert.Less(t, duration, 5*time.Second, "1000 projections should finish quickly")
	t.Logf("1000 projections in %v", duration)
}
