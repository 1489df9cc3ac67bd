// Package generator produces the mock SQL test cases for a submitted configuration.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/simulate"
)

// DefaultDelay is the simulated generation time
const DefaultDelay = 3 * time.Second

// ErrNoAnalysis is returned when generation is requested before analysis
var ErrNoAnalysis = errors.New("analysis result is required")

// Generator turns a configuration into test cases after a simulated delay
type Generator struct {
	delay  time.Duration
	clock  simulate.Clock
	logger *logger.Logger
}

// New creates a generator. A nil clock uses wall time, a nil logger discards.
func New(clock simulate.Clock, delay time.Duration, log *logger.Logger) *Generator {
	if clock == nil {
		clock = simulate.Real()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{delay: delay, clock: clock, logger: log.WithComponent("generator")}
}

// ValidateConfig reports ErrMissingRequiredField or ErrInvalidOption for a bad configuration
func ValidateConfig(cfg common.TestConfig) error {
	return common.ValidateTestConfig(&cfg)
}

// Generate validates cfg, waits for the generation delay and returns one test case per selected query type
func (g *Generator) Generate(ctx context.Context, analysis *common.AnalysisResult, cfg common.TestConfig) ([]common.TestCase, error) {
	if analysis == nil {
		return nil, ErrNoAnalysis
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	start := time.Now()
	if err := simulate.Wait(ctx, g.clock, g.delay); err != nil {
		return nil, fmt.Errorf("generation interrupted: %w", err)
	}

	cases := Build(cfg)
	g.logger.InfoWithFields("test cases generated", []logger.Field{
		logger.Count(len(cases)),
		logger.F("format", cfg.OutputFormat),
		logger.F("complexity", cfg.Complexity),
		logger.Duration(time.Since(start)),
	})
	return cases, nil
}
