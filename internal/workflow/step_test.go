package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"ASSESSMENT_NOT_STARTED", StepAssessmentNotStarted},
		{"ASSESSMENT_COMPLETED", StepAssessmentCompleted},
		{"RECOMMENDATIONS_GENERATED", StepRecommendationsGenerated},
		{"LEARNING_IN_PROGRESS", StepLearningInProgress},
		{"LEARNING_COMPLETED", StepLearningCompleted},
		{"", StepUnknown},
		{"SOMETHING_ELSE", StepUnknown},
		{"assessment_completed", StepUnknown}, // case sensitive
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStep(tt.in), tt.in)
	}
}

func TestStepStringRoundTrip(t *testing.T) {
	steps := []Step{
		StepAssessmentNotStarted,
		StepAssessmentCompleted,
		StepRecommendationsGenerated,
		StepLearningInProgress,
		StepLearningCompleted,
	}
	for _, s := range steps {
		assert.Equal(t, s, ParseStep(s.String()))
	}
	assert.Equal(t, "UNKNOWN", StepUnknown.String())
}
