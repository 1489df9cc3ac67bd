// Package controller owns the auth gate, the wizard and the mock services.
//
// Every mutation happens on the owner's goroutine. Asynchronous work is split in three:
// BeginX validates and marks the work pending, RunX performs the delayed task without
// touching controller state, FinishX applies the outcome. Tasks carry the wizard epoch
// they started in; outcomes from an older epoch are dropped.
package controller

import (
	"fmt"
	"time"

	"github.com/yildizm/tcgen/internal/analysis"
	"github.com/yildizm/tcgen/internal/auth"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/export"
	"github.com/yildizm/tcgen/internal/formatter"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/monitor"
	"github.com/yildizm/tcgen/internal/upload"
	"github.com/yildizm/tcgen/internal/wizard"
)

// Services are the mocked back ends used by the controller
type Services struct {
	Auth      *auth.Authenticator
	Analysis  *analysis.Engine
	Generator *generator.Generator
	Exporter  *export.Exporter
	Logger    *logger.Logger
	// Monitor times the simulated operations; nil disables timing
	Monitor *monitor.Collector
}

// Controller is the page-level state owner
type Controller struct {
	gate   *auth.Gate
	wizard *wizard.Wizard
	svc    Services
	log    *logger.Logger

	downloadingAll bool
}

// New creates a controller with a signed-out gate and a fresh wizard
func New(svc Services) *Controller {
	log := svc.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		gate:   auth.NewGate(),
		wizard: wizard.New(),
		svc:    svc,
		log:    log.WithComponent("controller"),
	}
}

// Stats returns the operation timings recorded so far
func (c *Controller) Stats() []monitor.OperationStats {
	return c.svc.Monitor.Snapshot()
}

// WriteMetrics exports the operation metrics as a Prometheus text file
func (c *Controller) WriteMetrics(path string) error {
	return c.svc.Monitor.WriteTextfile(path)
}

// Gate exposes the auth gate for rendering
func (c *Controller) Gate() *auth.Gate { return c.gate }

// Wizard exposes the wizard for rendering
func (c *Controller) Wizard() *wizard.Wizard { return c.wizard }

// Analyzing reports whether an analysis task is in flight
func (c *Controller) Analyzing() bool { return c.wizard.Analyzing() }

// DownloadingAll reports whether a package is being built
func (c *Controller) DownloadingAll() bool { return c.downloadingAll }

// OutputDir returns where downloads are written
func (c *Controller) OutputDir() string {
	if c.svc.Exporter == nil {
		return ""
	}
	return c.svc.Exporter.Dir()
}

// Epoch returns the current wizard epoch
func (c *Controller) Epoch() int { return c.wizard.Epoch() }

func (c *Controller) stale(epoch int) bool {
	return epoch != c.wizard.Epoch()
}

func (c *Controller) requireSession() error {
	if !c.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// ToggleMode switches between the login and signup screens
func (c *Controller) ToggleMode() {
	c.gate.ToggleMode()
}

// Logout clears the session and discards the workflow
func (c *Controller) Logout() {
	user := c.gate.Session().UserIdentifier
	c.gate.Logout()
	c.wizard.ClearFiles()
	c.downloadingAll = false
	c.log.InfoWithFields("signed out", []logger.Field{logger.F("user", user)})
}

// RequestPasswordReset sends the mock reset link
func (c *Controller) RequestPasswordReset(email string) error {
	return c.svc.Auth.RequestPasswordReset(email)
}

// SelectStep handles a click on a step tab
func (c *Controller) SelectStep(step wizard.Step) bool {
	applied := c.wizard.SelectStep(step)
	c.log.DebugWithFields("step selected", []logger.Field{
		logger.Step(step.String()),
		logger.F("applied", applied),
	})
	return applied
}

// UploadFile validates path and stores it in slot
func (c *Controller) UploadFile(slot common.FileSlot, path string) (*common.FileHandle, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	handle, err := upload.Open(path)
	if err != nil {
		c.log.WarnWithFields("upload rejected", []logger.Field{logger.F("slot", slot), logger.Error(err)})
		return nil, fmt.Errorf("%s upload: %w", slot, err)
	}
	c.wizard.SetFile(slot, handle)
	c.log.InfoWithFields("file uploaded", []logger.Field{
		logger.F("slot", slot),
		logger.F("name", handle.Name),
		logger.F("size", handle.SizeKB()),
	})
	return handle, nil
}

// RemoveFile clears one upload slot
func (c *Controller) RemoveFile(slot common.FileSlot) bool {
	return c.wizard.RemoveFile(slot)
}

// ClearFiles resets the workflow to the upload step
func (c *Controller) ClearFiles() {
	c.wizard.ClearFiles()
	c.downloadingAll = false
	c.log.Info("workflow cleared")
}

// TestCase looks up a generated test case
func (c *Controller) TestCase(id string) (common.TestCase, bool) {
	return c.wizard.Store().TestCase(id)
}

// Report describes the current run for summaries and packages
func (c *Controller) Report() *formatter.Report {
	store := c.wizard.Store()
	report := &formatter.Report{
		GeneratedAt: time.Now(),
		User:        c.gate.Session().UserIdentifier,
		Files:       store.Files(),
		Analysis:    store.Analysis(),
		TestCases:   store.TestCases(),
	}
	if cfg := store.Config(); cfg != nil {
		report.Config = *cfg
	}
	return report
}

// Download writes a single test case as <id>.sql
func (c *Controller) Download(id string) (string, error) {
	if err := c.requireSession(); err != nil {
		return "", err
	}
	tc, ok := c.wizard.Store().TestCase(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTestCase, id)
	}
	return track(c.svc.Monitor, monitor.OperationDownload, func() (string, error) {
		return c.svc.Exporter.WriteTestCase(tc)
	})
}
