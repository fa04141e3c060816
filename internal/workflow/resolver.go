package workflow

// Action is a workflow transition the user may trigger.
type Action int

const (
	ActionStartAssessment Action = iota
	ActionGenerateLearningPath
	ActionViewLearningPath
)

func (a Action) String() string {
	switch a {
	case ActionStartAssessment:
		return "start-assessment"
	case ActionGenerateLearningPath:
		return "generate-learning-path"
	case ActionViewLearningPath:
		return "view-learning-path"
	default:
		return "unknown"
	}
}

// Route identifies a navigation target inside the client.
type Route string

const (
	RouteNone         Route = ""
	RouteAssessment   Route = "/assessment"
	RouteLearningPath Route = "/learning-path"
)

// Resolution is the semantics of one workflow step: which actions are
// permitted, where "continue" navigates, and how the step reads.
type Resolution struct {
	Actions        []Action
	ContinueTarget Route
	StatusText     string
}

// Permits reports whether the resolution allows the given action.
func (r Resolution) Permits(a Action) bool {
	for _, p := range r.Actions {
		if p == a {
			return true
		}
	}
	return false
}

// Locked reports whether no actions are available at this step.
func (r Resolution) Locked() bool {
	return len(r.Actions) == 0
}

// Resolve maps a workflow step to its semantics. Pure and total:
// unrecognized steps fail closed to the locked resolution.
func Resolve(step Step) Resolution {
	switch step {
	case StepAssessmentNotStarted:
		return Resolution{
			StatusText: "Assessment locked",
		}
	case StepAssessmentCompleted:
		return Resolution{
			Actions:        []Action{ActionStartAssessment},
			ContinueTarget: RouteAssessment,
			StatusText:     "Ready to take your assessment",
		}
	case StepRecommendationsGenerated:
		return Resolution{
			Actions:        []Action{ActionGenerateLearningPath},
			ContinueTarget: RouteLearningPath,
			StatusText:     "Assessment completed. Generate your learning path",
		}
	case StepLearningInProgress:
		return Resolution{
			Actions:        []Action{ActionViewLearningPath},
			ContinueTarget: RouteLearningPath,
			StatusText:     "Learning in progress",
		}
	case StepLearningCompleted:
		return Resolution{
			Actions:        []Action{ActionViewLearningPath},
			ContinueTarget: RouteLearningPath,
			StatusText:     "Learning path completed",
		}
	default:
		return Resolution{
			StatusText: "Unknown",
		}
	}
}
