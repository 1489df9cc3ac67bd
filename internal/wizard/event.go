package wizard

import "github.com/yildizm/tcgen/internal/common"

// Event is a wizard transition expressed as data
type Event interface {
	apply(w *Wizard) bool
}

type (
	SelectStepEvent         struct{ Step Step }
	CompleteUploadEvent     struct{ Files common.UploadedFiles }
	RemoveFileEvent         struct{ Slot common.FileSlot }
	TriggerAnalyzeEvent     struct{}
	CompleteAnalysisEvent   struct{ Result *common.AnalysisResult }
	SubmitConfigEvent       struct{ Config common.TestConfig }
	CompleteGenerationEvent struct{ Cases []common.TestCase }
	ClearFilesEvent         struct{}
)

// SetFileEvent stores a single upload slot
type SetFileEvent struct {
	Slot   common.FileSlot
	Handle *common.FileHandle
}

func (e SelectStepEvent) apply(w *Wizard) bool { return w.SelectStep(e.Step) }

func (e CompleteUploadEvent) apply(w *Wizard) bool { return w.CompleteUpload(e.Files) }

func (e SetFileEvent) apply(w *Wizard) bool { return w.SetFile(e.Slot, e.Handle) }

func (e RemoveFileEvent) apply(w *Wizard) bool { return w.RemoveFile(e.Slot) }

func (TriggerAnalyzeEvent) apply(w *Wizard) bool { return w.TriggerAnalyze() }

func (e CompleteAnalysisEvent) apply(w *Wizard) bool { return w.CompleteAnalysis(e.Result) }

func (e SubmitConfigEvent) apply(w *Wizard) bool { return w.SubmitConfig(e.Config) }

func (e CompleteGenerationEvent) apply(w *Wizard) bool { return w.CompleteGeneration(e.Cases) }

func (ClearFilesEvent) apply(w *Wizard) bool { return w.ClearFiles() }

// Apply is the pure form of the transitions: w is not modified, the successor is returned.
// Stored artifacts are immutable, so the copy shares them.
func Apply(w Wizard, ev Event) (Wizard, bool) {
	next := w
	applied := ev.apply(&next)
	return next, applied
}

// Replay applies events in order to a fresh wizard and counts the applied ones
func Replay(events ...Event) (Wizard, int) {
	var (
		w       Wizard
		applied int
	)
	for _, ev := range events {
		var ok bool
		if w, ok = Apply(w, ev); ok {
			applied++
		}
	}
	return w, applied
}
