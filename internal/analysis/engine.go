// Package analysis synthesizes the mapping analysis shown after upload.
// File contents are never read; results are derived from the file handles.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/simulate"
)

const (
	// TotalMappings is the size of every synthesized analysis
	TotalMappings = 1200

	// PreviewLimit caps the number of mapping rows rendered
	PreviewLimit = 1000

	DefaultDelay     = 2500 * time.Millisecond
	DefaultCacheSize = 32
)

// ErrMissingFiles is returned when either upload slot is empty
var ErrMissingFiles = errors.New("both mapping and template files are required")

var (
	SourceTables = []string{
		"customer_raw", "orders_staging", "product_master", "sales_transactions",
		"inventory_data", "supplier_info", "category_master", "promotion_details",
	}
	TargetTables = []string{
		"dim_customer", "fact_sales", "dim_product", "fact_inventory",
		"dim_supplier", "dim_category", "fact_promotions", "bridge_customer_product",
	}
	TransformationTypes = []string{"Direct", "Transformed", "Lookup", "Calculated", "Aggregated"}
	TemplateSections    = []string{
		"Test Case Overview",
		"Data Validation Rules",
		"SQL Query Templates",
		"Expected Results Format",
		"Error Handling Scenarios",
	}
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	Delay     time.Duration
	CacheSize int
	Clock     simulate.Clock
	Logger    *logger.Logger
}

// Engine produces analysis results after a simulated processing delay
type Engine struct {
	delay  time.Duration
	clock  simulate.Clock
	cache  *lru.Cache[string, *common.AnalysisResult]
	logger *logger.Logger
}

// NewEngine creates an engine with a result cache keyed by file pair
func NewEngine(opts Options) (*Engine, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.Clock == nil {
		opts.Clock = simulate.Real()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	cache, err := lru.New[string, *common.AnalysisResult](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}

	return &Engine{
		delay:  opts.Delay,
		clock:  opts.Clock,
		cache:  cache,
		logger: opts.Logger.WithComponent("analysis"),
	}, nil
}

// Analyze waits for the processing delay and returns the result for files.
// Repeated calls for the same pair return the same result.
func (e *Engine) Analyze(ctx context.Context, files common.UploadedFiles) (*common.AnalysisResult, error) {
	if !files.Complete() {
		return nil, ErrMissingFiles
	}

	start := time.Now()
	if err := simulate.Wait(ctx, e.clock, e.delay); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	key := files.Fingerprint()
	if cached, ok := e.cache.Get(key); ok {
		e.logger.DebugWithFields("analysis served from cache", []logger.Field{logger.F("files", key)})
		return cached, nil
	}

	result := Synthesize(files)
	e.cache.Add(key, result)
	e.logger.InfoWithFields("analysis completed", []logger.Field{
		logger.Count(result.TotalMappings),
		logger.Duration(time.Since(start)),
	})
	return result, nil
}

// Cached reports how many file pairs have a memoized result
func (e *Engine) Cached() int {
	return e.cache.Len()
}

// Purge drops every memoized result
func (e *Engine) Purge() {
	e.cache.Purge()
}

// Synthesize builds the result for files without delay. The same pair always yields the same rows.
func Synthesize(files common.UploadedFiles) *common.AnalysisResult {
	rng := rand.New(rand.NewPCG(seed(files.Fingerprint()), 0x7463676e))

	rows := make([]common.MappingRow, TotalMappings)
	for i := range rows {
		source := SourceTables[rng.IntN(len(SourceTables))]
		target := TargetTables[rng.IntN(len(TargetTables))]
		rows[i] = common.MappingRow{
			SourceTable:        source,
			SourceColumn:       fmt.Sprintf("%s_col_%d", source, i+1),
			TargetTable:        target,
			TargetColumn:       fmt.Sprintf("%s_key_%d", target, i+1),
			TransformationType: TransformationTypes[rng.IntN(len(TransformationTypes))],
		}
	}

	return &common.AnalysisResult{
		TotalMappings:    TotalMappings,
		SourceTables:     len(SourceTables),
		TargetTables:     len(TargetTables),
		TemplateSections: append([]string(nil), TemplateSections...),
		MappingPreview:   rows,
	}
}

func seed(fingerprint string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fingerprint))
	return h.Sum64()
}
