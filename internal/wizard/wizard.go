package wizard

import (
	"github.com/yildizm/tcgen/internal/common"
)

// State is the navigation part of the wizard
type State struct {
	Current    Step
	Viewed     Step
	Analyzing  bool
	Generating bool
	// Epoch increases on every reset; async completions carry the epoch they started in.
	Epoch int
}

// Wizard is the workflow state machine. Every transition reports whether it was applied;
// guard violations leave the wizard untouched.
type Wizard struct {
	state State
	store Store
}

// New returns a wizard at the upload step
func New() *Wizard {
	return &Wizard{}
}

// State returns the navigation state
func (w *Wizard) State() State { return w.state }

// Current returns the furthest validated step
func (w *Wizard) Current() Step { return w.state.Current }

// Viewed returns the rendered step
func (w *Wizard) Viewed() Step { return w.state.Viewed }

// Analyzing reports whether an analysis is in flight
func (w *Wizard) Analyzing() bool { return w.state.Analyzing }

// Generating reports whether a generation is in flight
func (w *Wizard) Generating() bool { return w.state.Generating }

// Epoch returns the reset counter
func (w *Wizard) Epoch() int { return w.state.Epoch }

// Store gives read access to the step data
func (w *Wizard) Store() *Store { return &w.store }

// Completed derives the completion flag of step from the stored data
func (w *Wizard) Completed(step Step) bool {
	switch step {
	case StepUpload:
		return w.store.files.Complete()
	case StepAnalysis:
		return w.store.analysis != nil
	case StepConfigure:
		return w.store.config != nil
	case StepResults:
		return w.state.Current == StepResults
	default:
		return false
	}
}

// CanEnter reports whether Current may move to step
func (w *Wizard) CanEnter(step Step) bool {
	if !step.Valid() {
		return false
	}
	if step <= w.state.Current {
		return true
	}
	return w.Completed(step - 1)
}

// SelectStep always moves Viewed to step. Current follows only when CanEnter allows it;
// the return value reports whether Current was set.
func (w *Wizard) SelectStep(step Step) bool {
	if !step.Valid() {
		return false
	}
	w.state.Viewed = step
	if !w.CanEnter(step) {
		return false
	}
	w.state.Current = step
	return true
}

// CompleteUpload stores a full upload pair. It does not advance the workflow.
func (w *Wizard) CompleteUpload(files common.UploadedFiles) bool {
	if !files.Complete() {
		return false
	}
	w.store.setFiles(files)
	return true
}

// SetFile stores one upload slot, as the uploader does per accepted file.
// Later steps are not touched.
func (w *Wizard) SetFile(slot common.FileSlot, handle *common.FileHandle) bool {
	if handle == nil || (slot != common.SlotMapping && slot != common.SlotTemplate) {
		return false
	}
	w.store.setFiles(w.store.files.With(slot, handle))
	return true
}

// RemoveFile empties one upload slot without touching later steps
func (w *Wizard) RemoveFile(slot common.FileSlot) bool {
	if w.store.files.Get(slot) == nil {
		return false
	}
	w.store.setFiles(w.store.files.With(slot, nil))
	return true
}

// TriggerAnalyze moves to the analysis step once both files are present and
// enters the analyzing sub-state. Only one analysis runs at a time.
func (w *Wizard) TriggerAnalyze() bool {
	if w.state.Analyzing || !w.Completed(StepUpload) {
		return false
	}
	w.state.Current = StepAnalysis
	w.state.Viewed = StepAnalysis
	w.state.Analyzing = true
	return true
}

// CompleteAnalysis stores result and moves to configuration. It applies to the
// pending analysis wherever the user navigated meanwhile.
func (w *Wizard) CompleteAnalysis(result *common.AnalysisResult) bool {
	if !w.state.Analyzing || result == nil {
		return false
	}
	w.state.Analyzing = false
	if !w.Completed(StepUpload) {
		return false
	}
	w.store.setAnalysis(result)
	w.state.Current = StepConfigure
	w.state.Viewed = StepConfigure
	return true
}

// AbortAnalysis leaves the analyzing sub-state without a result
func (w *Wizard) AbortAnalysis() bool {
	if !w.state.Analyzing {
		return false
	}
	w.state.Analyzing = false
	return true
}

// SubmitConfig stores a valid configuration and enters the generating sub-state.
// Only the configure step may submit, and only one generation runs at a time.
func (w *Wizard) SubmitConfig(cfg common.TestConfig) bool {
	if w.state.Generating || w.state.Current != StepConfigure || !w.Completed(StepAnalysis) {
		return false
	}
	if common.ValidateTestConfig(&cfg) != nil {
		return false
	}
	w.store.setConfig(cfg)
	w.state.Generating = true
	return true
}

// CompleteGeneration stores the generated test cases and moves to results
func (w *Wizard) CompleteGeneration(cases []common.TestCase) bool {
	if !w.state.Generating {
		return false
	}
	w.store.setTestCases(cases)
	w.state.Generating = false
	w.state.Current = StepResults
	w.state.Viewed = StepResults
	return true
}

// AbortGeneration leaves the generating sub-state without producing results.
// The submitted configuration is dropped so the configure step is incomplete again.
func (w *Wizard) AbortGeneration() bool {
	if !w.state.Generating {
		return false
	}
	w.state.Generating = false
	w.store.clearConfig()
	return true
}

// ClearFiles drops every artifact and returns to the upload step. Always applied.
func (w *Wizard) ClearFiles() bool {
	w.store.reset()
	w.state = State{
		Current: StepUpload,
		Viewed:  StepUpload,
		Epoch:   w.state.Epoch + 1,
	}
	return true
}
