package tui

// Scene is one screen of the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneParameters
	SceneChart
	SceneTrajectory
	SceneLevers
	SceneHelp
)

var sceneNames = map[Scene]string{
	SceneDashboard:  "Dashboard",
	SceneParameters: "Parameters",
	SceneChart:      "Chart",
	SceneTrajectory: "Trajectory",
	SceneLevers:     "Levers",
	SceneHelp:       "Help",
}

func (s Scene) String() string {
	if name, ok := sceneNames[s]; ok {
		return name
	}
	return "Unknown"
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}
