package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/tcgen/internal/common"
)

func testFiles() common.UploadedFiles {
	return common.UploadedFiles{
		Mapping:  &common.FileHandle{Name: "mapping.xlsx", Size: 2048},
		Template: &common.FileHandle{Name: "template.csv", Size: 512},
	}
}

func testAnalysis() *common.AnalysisResult {
	return &common.AnalysisResult{
		TotalMappings:    1200,
		SourceTables:     8,
		TargetTables:     8,
		TemplateSections: []string{"Header"},
	}
}

func minimalConfig() common.TestConfig {
	return common.TestConfig{
		OutputFormat: "csv",
		QueryTypes:   []string{"count"},
		Complexity:   "basic",
		CommentLevel: "none",
	}
}

// analyzed returns a wizard parked at the configure step
func analyzed(t *testing.T) *Wizard {
	t.Helper()
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))
	require.True(t, w.TriggerAnalyze())
	require.True(t, w.CompleteAnalysis(testAnalysis()))
	return w
}

func TestNewWizardStartsAtUpload(t *testing.T) {
	w := New()

	assert.Equal(t, StepUpload, w.Current())
	assert.Equal(t, StepUpload, w.Viewed())
	assert.False(t, w.Generating())
	for _, s := range Steps {
		assert.False(t, w.Completed(s), s.String())
	}
}

func TestSelectStepAlwaysMovesViewed(t *testing.T) {
	w := New()
	sequence := []Step{StepResults, StepConfigure, StepUpload, StepAnalysis}

	for _, s := range sequence {
		w.SelectStep(s)
		assert.Equal(t, s, w.Viewed())
	}
	assert.Equal(t, StepUpload, w.Current(), "no step was completed")
}

func TestSelectStepGuardsForwardMoves(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) *Wizard
		target      Step
		wantApplied bool
		wantCurrent Step
	}{
		{
			name:        "fresh wizard cannot skip to results",
			setup:       func(t *testing.T) *Wizard { return New() },
			target:      StepResults,
			wantCurrent: StepUpload,
		},
		{
			name:        "fresh wizard cannot enter analysis",
			setup:       func(t *testing.T) *Wizard { return New() },
			target:      StepAnalysis,
			wantCurrent: StepUpload,
		},
		{
			name: "complete upload unlocks analysis",
			setup: func(t *testing.T) *Wizard {
				w := New()
				require.True(t, w.CompleteUpload(testFiles()))
				return w
			},
			target:      StepAnalysis,
			wantApplied: true,
			wantCurrent: StepAnalysis,
		},
		{
			name: "complete upload does not unlock configure",
			setup: func(t *testing.T) *Wizard {
				w := New()
				require.True(t, w.CompleteUpload(testFiles()))
				return w
			},
			target:      StepConfigure,
			wantCurrent: StepUpload,
		},
		{
			name:        "backward move is always allowed",
			setup:       analyzed,
			target:      StepUpload,
			wantApplied: true,
			wantCurrent: StepUpload,
		},
		{
			name:        "configure without config cannot enter results",
			setup:       analyzed,
			target:      StepResults,
			wantCurrent: StepConfigure,
		},
		{
			name:        "out of range step is ignored",
			setup:       func(t *testing.T) *Wizard { return New() },
			target:      Step(9),
			wantCurrent: StepUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.setup(t)
			applied := w.SelectStep(tt.target)

			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantCurrent, w.Current())
		})
	}
}

func TestCompleteUploadRequiresBothFiles(t *testing.T) {
	w := New()
	half := testFiles()
	half.Template = nil

	assert.False(t, w.CompleteUpload(half))
	assert.False(t, w.Completed(StepUpload))
	assert.False(t, w.TriggerAnalyze())

	require.True(t, w.CompleteUpload(testFiles()))
	assert.Equal(t, StepUpload, w.Current(), "upload does not advance on its own")
	assert.True(t, w.TriggerAnalyze())
	assert.Equal(t, StepAnalysis, w.Current())
	assert.Equal(t, StepAnalysis, w.Viewed())
}

func TestSetFileFillsOneSlot(t *testing.T) {
	w := New()
	csv := &common.FileHandle{Name: "data.csv", Size: 10}

	assert.True(t, w.SetFile(common.SlotMapping, csv))
	assert.Same(t, csv, w.Store().Files().Mapping)
	assert.Nil(t, w.Store().Files().Template)
	assert.False(t, w.Completed(StepUpload))

	assert.False(t, w.SetFile(common.SlotTemplate, nil))
	assert.False(t, w.SetFile(common.FileSlot(5), csv))

	assert.True(t, w.SetFile(common.SlotTemplate, csv))
	assert.True(t, w.Completed(StepUpload))
	assert.Equal(t, StepUpload, w.Current())
}

func TestRemoveFileBlocksAnalysis(t *testing.T) {
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))

	assert.True(t, w.RemoveFile(common.SlotTemplate))
	assert.False(t, w.RemoveFile(common.SlotTemplate), "slot already empty")
	assert.NotNil(t, w.Store().Files().Mapping)
	assert.False(t, w.TriggerAnalyze())
}

func TestCompleteAnalysisGuards(t *testing.T) {
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))
	assert.False(t, w.CompleteAnalysis(testAnalysis()), "analysis not triggered")

	require.True(t, w.TriggerAnalyze())
	assert.False(t, w.CompleteAnalysis(nil))
	assert.True(t, w.CompleteAnalysis(testAnalysis()))
	assert.Equal(t, StepConfigure, w.Current())
	assert.Equal(t, StepConfigure, w.Viewed())
	assert.Equal(t, 1200, w.Store().Analysis().TotalMappings)
}

func TestTriggerAnalyzeWhileAnalyzing(t *testing.T) {
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))
	require.True(t, w.TriggerAnalyze())
	assert.True(t, w.Analyzing())
	assert.False(t, w.TriggerAnalyze(), "one analysis at a time")

	assert.True(t, w.AbortAnalysis())
	assert.False(t, w.Analyzing())
	assert.False(t, w.AbortAnalysis())
	assert.False(t, w.CompleteAnalysis(testAnalysis()), "aborted analysis cannot complete")
	assert.True(t, w.TriggerAnalyze(), "may retry after abort")
}

func TestCompleteAnalysisAfterSteppingBack(t *testing.T) {
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))
	require.True(t, w.TriggerAnalyze())

	require.True(t, w.SelectStep(StepUpload))
	assert.True(t, w.Analyzing())

	assert.True(t, w.CompleteAnalysis(testAnalysis()))
	assert.False(t, w.Analyzing())
	assert.NotNil(t, w.Store().Analysis())
	assert.Equal(t, StepConfigure, w.Current())
	assert.Equal(t, StepConfigure, w.Viewed())
}

func TestCompleteAnalysisAfterFileRemoved(t *testing.T) {
	w := New()
	require.True(t, w.CompleteUpload(testFiles()))
	require.True(t, w.TriggerAnalyze())
	require.True(t, w.RemoveFile(common.SlotMapping))

	assert.False(t, w.CompleteAnalysis(testAnalysis()))
	assert.False(t, w.Analyzing())
	assert.Nil(t, w.Store().Analysis())
}

func TestSubmitConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *common.TestConfig)
		want   bool
	}{
		{name: "minimal config", mutate: func(c *common.TestConfig) {}, want: true},
		{name: "empty query types", mutate: func(c *common.TestConfig) { c.QueryTypes = nil }, want: false},
		{name: "missing output format", mutate: func(c *common.TestConfig) { c.OutputFormat = "" }, want: false},
		{name: "missing complexity", mutate: func(c *common.TestConfig) { c.Complexity = "" }, want: false},
		{name: "missing comments", mutate: func(c *common.TestConfig) { c.CommentLevel = "" }, want: false},
		{name: "unknown format", mutate: func(c *common.TestConfig) { c.OutputFormat = "pdf" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := analyzed(t)
			cfg := minimalConfig()
			tt.mutate(&cfg)

			assert.Equal(t, tt.want, w.SubmitConfig(cfg))
			assert.Equal(t, tt.want, w.Generating())
			assert.Equal(t, tt.want, w.Completed(StepConfigure))
		})
	}
}

func TestMinimalConfigReachesResults(t *testing.T) {
	w := analyzed(t)
	require.True(t, w.SubmitConfig(minimalConfig()))
	assert.False(t, w.SubmitConfig(minimalConfig()), "generation already running")

	cases := []common.TestCase{{ID: "tc-001", Name: "Row Count Validation"}}
	require.True(t, w.CompleteGeneration(cases))

	assert.Equal(t, StepResults, w.Current())
	assert.Equal(t, StepResults, w.Viewed())
	assert.False(t, w.Generating())
	assert.True(t, w.Completed(StepResults))
	tc, ok := w.Store().TestCase("tc-001")
	require.True(t, ok)
	assert.Equal(t, "Row Count Validation", tc.Name)
	assert.False(t, w.CompleteGeneration(cases), "no generation in flight")
}

func TestSubmitConfigRequiresConfigureStep(t *testing.T) {
	w := analyzed(t)
	require.True(t, w.SelectStep(StepUpload))

	assert.False(t, w.SubmitConfig(minimalConfig()))
	assert.Nil(t, w.Store().Config())
}

func TestAbortGeneration(t *testing.T) {
	w := analyzed(t)
	assert.False(t, w.AbortGeneration())

	require.True(t, w.SubmitConfig(minimalConfig()))
	assert.True(t, w.AbortGeneration())
	assert.Equal(t, StepConfigure, w.Current())
	assert.Nil(t, w.Store().Config())
	assert.False(t, w.Completed(StepConfigure))
	assert.False(t, w.SelectStep(StepResults), "results stay locked after a failed run")
	assert.Equal(t, StepConfigure, w.Current())
	assert.True(t, w.SubmitConfig(minimalConfig()), "may resubmit after abort")
}

func TestClearFilesResetsEverything(t *testing.T) {
	w := analyzed(t)
	require.True(t, w.SubmitConfig(minimalConfig()))
	require.True(t, w.CompleteGeneration([]common.TestCase{{ID: "tc-001"}}))
	epoch := w.Epoch()

	assert.True(t, w.ClearFiles())

	assert.Equal(t, StepUpload, w.Current())
	assert.Equal(t, StepUpload, w.Viewed())
	assert.Equal(t, epoch+1, w.Epoch())
	assert.False(t, w.Store().Files().Complete())
	assert.Nil(t, w.Store().Analysis())
	assert.Nil(t, w.Store().Config())
	assert.Empty(t, w.Store().TestCases())
	for _, s := range Steps {
		assert.False(t, w.Completed(s), s.String())
	}
}

func TestClearFilesDuringGenerationDropsCompletion(t *testing.T) {
	w := analyzed(t)
	require.True(t, w.SubmitConfig(minimalConfig()))

	w.ClearFiles()

	assert.False(t, w.Generating())
	assert.False(t, w.CompleteGeneration([]common.TestCase{{ID: "tc-001"}}))
	assert.Equal(t, StepUpload, w.Current())
}

func TestStoreConfigIsCopied(t *testing.T) {
	w := analyzed(t)
	cfg := minimalConfig()
	require.True(t, w.SubmitConfig(cfg))

	cfg.QueryTypes[0] = "null"
	stored := w.Store().Config()
	assert.Equal(t, []string{"count"}, stored.QueryTypes)

	stored.QueryTypes[0] = "mapping"
	assert.Equal(t, []string{"count"}, w.Store().Config().QueryTypes)
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	var w Wizard
	next, ok := Apply(w, CompleteUploadEvent{Files: testFiles()})
	require.True(t, ok)

	assert.False(t, w.Completed(StepUpload))
	assert.True(t, next.Completed(StepUpload))

	same, ok := Apply(next, SelectStepEvent{Step: StepResults})
	assert.False(t, ok)
	assert.Equal(t, StepResults, same.Viewed())
	assert.Equal(t, StepUpload, same.Current())
	assert.Equal(t, StepUpload, next.Viewed())
}

func TestReplayFullWorkflow(t *testing.T) {
	w, applied := Replay(
		SelectStepEvent{Step: StepConfigure},
		CompleteUploadEvent{Files: testFiles()},
		RemoveFileEvent{Slot: common.SlotMapping},
		TriggerAnalyzeEvent{},
		CompleteUploadEvent{Files: testFiles()},
		TriggerAnalyzeEvent{},
		CompleteAnalysisEvent{Result: testAnalysis()},
		SubmitConfigEvent{Config: common.TestConfig{OutputFormat: "csv"}},
		SubmitConfigEvent{Config: minimalConfig()},
		CompleteGenerationEvent{Cases: []common.TestCase{{ID: "tc-001"}}},
	)

	assert.Equal(t, 7, applied)
	assert.Equal(t, StepResults, w.Current())

	w, _ = Apply(w, ClearFilesEvent{})
	assert.Equal(t, StepUpload, w.Current())
	assert.Equal(t, 1, w.Epoch())
}

func TestParseStep(t *testing.T) {
	for _, s := range Steps {
		got, ok := ParseStep(s.String())
		require.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseStep("export")
	assert.False(t, ok)
	assert.Equal(t, "File Analysis", StepAnalysis.Title())
}
