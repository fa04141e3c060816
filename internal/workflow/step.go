// Package workflow is the client-resident learning workflow engine: it
// mirrors the server-reported step, resolves what each step permits,
// and drives the remote transitions between steps.
package workflow

// Step is the server-authoritative workflow position. The client never
// infers a step locally; it reflects the last value fetched, with a
// short-lived optimistic override during learning-path generation.
type Step int

const (
	StepUnknown Step = iota
	StepAssessmentNotStarted
	StepAssessmentCompleted // server vocabulary for "assessment available to start"
	StepRecommendationsGenerated
	StepLearningInProgress
	StepLearningCompleted
)

// stepNames are the server's step identifiers. ASSESSMENT_COMPLETED
// really means the assessment is ready to start; the server owns the
// contract and the inversion is preserved as-is.
var stepNames = map[Step]string{
	StepAssessmentNotStarted:     "ASSESSMENT_NOT_STARTED",
	StepAssessmentCompleted:      "ASSESSMENT_COMPLETED",
	StepRecommendationsGenerated: "RECOMMENDATIONS_GENERATED",
	StepLearningInProgress:       "LEARNING_IN_PROGRESS",
	StepLearningCompleted:        "LEARNING_COMPLETED",
}

// ParseStep decodes a server step string at the ingress point. Values
// the client does not recognize parse to StepUnknown, which resolves to
// the locked semantics rather than any privileged action.
func ParseStep(s string) Step {
	for step, name := range stepNames {
		if name == s {
			return step
		}
	}
	return StepUnknown
}

// String returns the server identifier, or "UNKNOWN".
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
