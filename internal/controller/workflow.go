package controller

import (
	"context"

	"github.com/yildizm/tcgen/internal/analysis"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/export"
	"github.com/yildizm/tcgen/internal/formatter"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/monitor"
)

// AnalysisTask is an analysis started in Epoch
type AnalysisTask struct {
	Epoch int
	Files common.UploadedFiles
}

// GenerationTask is a generation started in Epoch
type GenerationTask struct {
	Epoch    int
	Analysis *common.AnalysisResult
	Config   common.TestConfig
}

// PackageTask is a download-all started in Epoch
type PackageTask struct {
	Epoch  int
	Report *formatter.Report
}

// BeginAnalysis moves the wizard to the analysis step and marks the analysis pending
func (c *Controller) BeginAnalysis() (AnalysisTask, error) {
	if err := c.requireSession(); err != nil {
		return AnalysisTask{}, err
	}
	if c.wizard.Analyzing() {
		return AnalysisTask{}, ErrBusy
	}
	if !c.wizard.TriggerAnalyze() {
		return AnalysisTask{}, analysis.ErrMissingFiles
	}
	task := AnalysisTask{Epoch: c.wizard.Epoch(), Files: c.wizard.Store().Files()}
	c.log.InfoWithFields("analysis started", []logger.Field{logger.F("files", task.Files.Fingerprint())})
	return task, nil
}

// RunAnalysis performs the simulated analysis
func (c *Controller) RunAnalysis(ctx context.Context, task AnalysisTask) (*common.AnalysisResult, error) {
	return track(c.svc.Monitor, monitor.OperationAnalysis, func() (*common.AnalysisResult, error) {
		return c.svc.Analysis.Analyze(ctx, task.Files)
	})
}

// FinishAnalysis stores result unless the workflow was reset since task began.
// Navigating away while the task runs does not discard it.
func (c *Controller) FinishAnalysis(task AnalysisTask, result *common.AnalysisResult, err error) (bool, error) {
	if c.stale(task.Epoch) {
		c.log.Debug("dropping analysis from epoch %d", task.Epoch)
		return false, nil
	}
	if err != nil {
		c.wizard.AbortAnalysis()
		c.log.WarnWithFields("analysis failed", []logger.Field{logger.Error(err)})
		return false, err
	}
	applied := c.wizard.CompleteAnalysis(result)
	if !applied {
		return false, analysis.ErrMissingFiles
	}
	c.log.InfoWithFields("analysis complete", []logger.Field{logger.F("mappings", result.TotalMappings)})
	return true, nil
}

// Analyze runs the analysis on the caller's goroutine
func (c *Controller) Analyze(ctx context.Context) (*common.AnalysisResult, error) {
	return blocking(ctx, c.BeginAnalysis, c.RunAnalysis, c.FinishAnalysis)
}

// BeginGeneration validates and submits cfg, entering the generating sub-state
func (c *Controller) BeginGeneration(cfg common.TestConfig) (GenerationTask, error) {
	if err := c.requireSession(); err != nil {
		return GenerationTask{}, err
	}
	if err := generator.ValidateConfig(cfg); err != nil {
		return GenerationTask{}, err
	}
	if c.wizard.Generating() {
		return GenerationTask{}, ErrBusy
	}
	if !c.wizard.SubmitConfig(cfg) {
		return GenerationTask{}, ErrStepUnavailable
	}
	store := c.wizard.Store()
	task := GenerationTask{
		Epoch:    c.wizard.Epoch(),
		Analysis: store.Analysis(),
		Config:   *store.Config(),
	}
	c.log.InfoWithFields("generation started", []logger.Field{
		logger.F("format", cfg.OutputFormat),
		logger.F("query_types", len(cfg.QueryTypes)),
	})
	return task, nil
}

// RunGeneration performs the simulated generation
func (c *Controller) RunGeneration(ctx context.Context, task GenerationTask) ([]common.TestCase, error) {
	return track(c.svc.Monitor, monitor.OperationGeneration, func() ([]common.TestCase, error) {
		return c.svc.Generator.Generate(ctx, task.Analysis, task.Config)
	})
}

// FinishGeneration stores the test cases and moves to results. A failed run drops
// the submitted configuration and leaves the configure step open for another submit.
func (c *Controller) FinishGeneration(task GenerationTask, cases []common.TestCase, err error) (bool, error) {
	if c.stale(task.Epoch) {
		c.log.Debug("dropping generation from epoch %d", task.Epoch)
		return false, nil
	}
	if err != nil {
		c.wizard.AbortGeneration()
		c.log.WarnWithFields("generation failed", []logger.Field{logger.Error(err)})
		return false, err
	}
	applied := c.wizard.CompleteGeneration(cases)
	if applied {
		c.log.InfoWithFields("generation complete", []logger.Field{logger.Count(len(cases))})
	}
	return applied, nil
}

// Generate runs the generation on the caller's goroutine
func (c *Controller) Generate(ctx context.Context, cfg common.TestConfig) ([]common.TestCase, error) {
	return blocking(ctx,
		func() (GenerationTask, error) { return c.BeginGeneration(cfg) },
		c.RunGeneration, c.FinishGeneration)
}

// BeginDownloadAll snapshots the report and marks the package build pending
func (c *Controller) BeginDownloadAll() (PackageTask, error) {
	if err := c.requireSession(); err != nil {
		return PackageTask{}, err
	}
	if c.downloadingAll {
		return PackageTask{}, ErrBusy
	}
	if len(c.wizard.Store().TestCases()) == 0 {
		return PackageTask{}, export.ErrNoTestCases
	}
	c.downloadingAll = true
	return PackageTask{Epoch: c.wizard.Epoch(), Report: c.Report()}, nil
}

// RunDownloadAll builds the package archive
func (c *Controller) RunDownloadAll(ctx context.Context, task PackageTask) (string, error) {
	return track(c.svc.Monitor, monitor.OperationPackage, func() (string, error) {
		return c.svc.Exporter.Package(ctx, task.Report)
	})
}

// FinishDownloadAll clears the pending flag
func (c *Controller) FinishDownloadAll(task PackageTask, path string, err error) (bool, error) {
	if c.stale(task.Epoch) {
		return false, nil
	}
	c.downloadingAll = false
	if err != nil {
		c.log.WarnWithFields("package failed", []logger.Field{logger.Error(err)})
		return false, err
	}
	c.log.InfoWithFields("package written", []logger.Field{logger.F("path", path)})
	return true, nil
}

// DownloadAll writes the package archive on the caller's goroutine
func (c *Controller) DownloadAll(ctx context.Context) (string, error) {
	return blocking(ctx, c.BeginDownloadAll, c.RunDownloadAll, c.FinishDownloadAll)
}

// blocking runs a Begin, Run, Finish sequence on the caller's goroutine
func blocking[T, R any](ctx context.Context, begin func() (T, error), run func(context.Context, T) (R, error), finish func(T, R, error) (bool, error)) (R, error) {
	var zero R
	task, err := begin()
	if err != nil {
		return zero, err
	}
	result, runErr := run(ctx, task)
	applied, err := finish(task, result, runErr)
	if err != nil {
		return zero, err
	}
	if !applied {
		return zero, ErrStepUnavailable
	}
	return result, nil
}

// track times fn under op
func track[R any](m *monitor.Collector, op monitor.OperationType, fn func() (R, error)) (R, error) {
	var result R
	err := m.Track(op, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
