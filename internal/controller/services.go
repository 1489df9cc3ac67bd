package controller

import (
	"fmt"

	"github.com/yildizm/tcgen/internal/analysis"
	"github.com/yildizm/tcgen/internal/auth"
	"github.com/yildizm/tcgen/internal/config"
	"github.com/yildizm/tcgen/internal/export"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/monitor"
)

// NewServices wires the mock back ends from cfg
func NewServices(cfg *config.Config, log *logger.Logger) (Services, error) {
	if log == nil {
		log = logger.Discard()
	}
	clock := cfg.Clock()

	engine, err := analysis.NewEngine(analysis.Options{
		Delay:     cfg.Workflow.AnalysisDelay,
		CacheSize: cfg.Workflow.CacheSize,
		Clock:     clock,
		Logger:    log,
	})
	if err != nil {
		return Services{}, fmt.Errorf("failed to create analysis engine: %w", err)
	}

	return Services{
		Auth: auth.NewAuthenticator(clock, auth.Delays{
			Login:  cfg.Auth.LoginDelay,
			Signup: cfg.Auth.SignupDelay,
		}, log.WithComponent("auth")),
		Analysis:  engine,
		Generator: generator.New(clock, cfg.Workflow.GenerationDelay, log),
		Exporter:  export.New(config.ExpandPath(cfg.Output.Directory), clock, cfg.Workflow.PackageDelay, log),
		Logger:    log,
		Monitor:   monitor.New(),
	}, nil
}

// FromConfig creates a controller with services built from cfg
func FromConfig(cfg *config.Config, log *logger.Logger) (*Controller, error) {
	svc, err := NewServices(cfg, log)
	if err != nil {
		return nil, err
	}
	return New(svc), nil
}
