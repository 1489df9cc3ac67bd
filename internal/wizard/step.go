// Package wizard implements the four-step test case workflow.
//
// Two pointers are tracked independently: Current is the furthest validated
// progress and gates forward navigation, Viewed is only what is rendered and
// may move freely. Completion of a step is always derived from the Store.
package wizard

// Step is a workflow stage
type Step int

const (
	StepUpload Step = iota
	StepAnalysis
	StepConfigure
	StepResults
)

// Steps lists the workflow in order
var Steps = []Step{StepUpload, StepAnalysis, StepConfigure, StepResults}

// String returns the step identifier
func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepAnalysis:
		return "analysis"
	case StepConfigure:
		return "configure"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// Title returns the label shown in the progress header
func (s Step) Title() string {
	switch s {
	case StepUpload:
		return "Upload Files"
	case StepAnalysis:
		return "File Analysis"
	case StepConfigure:
		return "Configure"
	case StepResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of Steps
func (s Step) Valid() bool {
	return s >= StepUpload && s <= StepResults
}

// ParseStep maps an identifier back to a Step
func ParseStep(name string) (Step, bool) {
	for _, s := range Steps {
		if s.String() == name {
			return s, true
		}
	}
	return StepUpload, false
}
