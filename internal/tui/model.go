package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/firego/internal/breakeven"
	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui/components"
	"github.com/rgehrsitz/firego/internal/tui/scenes"
	"github.com/rgehrsitz/firego/internal/tui/tuimsg"
)

// DefaultDebounce is how long slider edits settle before recalculating
const DefaultDebounce = 150 * time.Millisecond

// Options configures the TUI
type Options struct {
	Currency output.Currency
	Debounce time.Duration
	Engine   *calculation.CalculationEngine
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	planPath string
	basePlan *domain.Plan // as loaded from disk
	plan     *domain.Plan // with slider edits applied

	engine   *calculation.CalculationEngine
	solver   *breakeven.Solver
	currency output.Currency
	debounce time.Duration
	keys     scenes.KeyMap

	// seq increases with every edit. Debounce ticks, reports and solves
	// carry the seq they were started for, and only the latest one is used.
	seq        int
	pending    bool
	report     *domain.Report
	baseReport *domain.Report

	dashboardModel  *scenes.DashboardModel
	parametersModel *scenes.ParametersModel
	chartModel      *scenes.ChartModel
	trajectoryModel *scenes.TrajectoryModel
	leversModel     *scenes.LeversModel
	helpModel       *scenes.HelpModel
	spinner         *components.Spinner

	err error
}

// NewModel creates a new application model for the plan at planPath
func NewModel(planPath string, opts Options) Model {
	if opts.Currency == "" {
		opts.Currency = output.KRW
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Engine == nil {
		opts.Engine = calculation.NewCalculationEngine()
	}
	keys := scenes.DefaultKeyMap()

	return Model{
		currentScene:    SceneDashboard,
		planPath:        planPath,
		engine:          opts.Engine,
		solver:          breakeven.NewDefaultSolver(opts.Engine),
		currency:        opts.Currency,
		debounce:        opts.Debounce,
		keys:            keys,
		dashboardModel:  scenes.NewDashboardModel(opts.Currency),
		parametersModel: scenes.NewParametersModel(keys, opts.Currency),
		chartModel:      scenes.NewChartModel(keys, opts.Currency),
		trajectoryModel: scenes.NewTrajectoryModel(opts.Currency),
		leversModel:     scenes.NewLeversModel(keys),
		helpModel:       scenes.NewHelpModel(keys),
		spinner:         components.NewSpinner().WithMessage("recalculating"),
		width:           100,
		height:          30,
	}
}

// Init loads the plan file
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath)
}

// Report returns the latest projection, nil before the first calculation
func (m Model) Report() *domain.Report {
	return m.report
}

// Plan returns the plan with slider edits applied
func (m Model) Plan() *domain.Plan {
	return m.plan
}

// CurrentScene returns the scene being shown
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Pending reports whether an edit is waiting for its recalculation
func (m Model) Pending() bool {
	return m.pending
}

func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		plan, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.PlanLoadedMsg{Plan: plan}
	}
}

func debounceCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tuimsg.RecalculateMsg{Seq: seq}
	})
}

func calculateCmd(engine *calculation.CalculationEngine, seq int, plan *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		report, err := engine.Run(context.Background(), plan)
		return tuimsg.ReportReadyMsg{Seq: seq, Report: report, Err: err}
	}
}

func solveCmd(solver *breakeven.Solver, seq int, plan *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		result, err := solver.OptimizeAllTargets(context.Background(), plan)
		return tuimsg.SolveCompleteMsg{Seq: seq, Result: result, Err: err}
	}
}

type spinnerTickMsg struct{}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}
