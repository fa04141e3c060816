package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name       string
		step       Step
		actions    []Action
		target     Route
		statusText string
	}{
		{
			name:       "assessment not started is locked",
			step:       StepAssessmentNotStarted,
			actions:    nil,
			target:     RouteNone,
			statusText: "Assessment locked",
		},
		{
			// The server's naming inversion: ASSESSMENT_COMPLETED means
			// the assessment is available to start.
			name:    "assessment completed permits start",
			step:    StepAssessmentCompleted,
			actions: []Action{ActionStartAssessment},
			target:  RouteAssessment,
		},
		{
			name:    "recommendations generated permits generation",
			step:    StepRecommendationsGenerated,
			actions: []Action{ActionGenerateLearningPath},
			target:  RouteLearningPath,
		},
		{
			name:    "learning in progress permits viewing",
			step:    StepLearningInProgress,
			actions: []Action{ActionViewLearningPath},
			target:  RouteLearningPath,
		},
		{
			name:    "learning completed permits viewing",
			step:    StepLearningCompleted,
			actions: []Action{ActionViewLearningPath},
			target:  RouteLearningPath,
		},
		{
			name:       "unknown fails closed",
			step:       StepUnknown,
			actions:    nil,
			target:     RouteNone,
			statusText: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.step)
			assert.Equal(t, tt.actions, got.Actions)
			assert.Equal(t, tt.target, got.ContinueTarget)
			if tt.statusText != "" {
				assert.Equal(t, tt.statusText, got.StatusText)
			} else {
				assert.NotEmpty(t, got.StatusText)
			}
			assert.Equal(t, len(tt.actions) == 0, got.Locked())

			// Pure: repeated calls yield identical output.
			assert.Equal(t, got, Resolve(tt.step))
		})
	}
}

func TestResolutionPermits(t *testing.T) {
	r := Resolve(StepAssessmentCompleted)
	assert.True(t, r.Permits(ActionStartAssessment))
	assert.False(t, r.Permits(ActionGenerateLearningPath))
	assert.False(t, r.Permits(ActionViewLearningPath))

	locked := Resolve(StepUnknown)
	for _, a := range []Action{ActionStartAssessment, ActionGenerateLearningPath, ActionViewLearningPath} {
		assert.False(t, locked.Permits(a))
	}
}
