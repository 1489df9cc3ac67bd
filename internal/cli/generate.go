package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/config"
	"github.com/yildizm/tcgen/internal/controller"
	"github.com/yildizm/tcgen/internal/formatter"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/monitor"
)

var (
	genMapping     string
	genTemplate    string
	genEmail       string
	genPassword    string
	genFormat      string
	genQueryTypes  []string
	genComplexity  string
	genComments    string
	genSummaryFile string
	genNoArchive   bool
	genIndividual  bool
	genStats       bool
	genMetricsFile string
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the whole workflow without the terminal UI",
		Long: `Sign in, upload the mapping document and template, analyze them, generate
test cases and package the download, then print a summary.

Generation options default to the "generation" section of the configuration.

Examples:
  tcgen generate -m mapping.xlsx -t template.xlsx
  tcgen generate -m mapping.csv -t template.txt --query-types count,null -o json
  tcgen generate -m mapping.xlsx -t template.xls --individual --no-archive`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addPipelineFlags(cmd)
	cmd.Flags().StringVar(&genSummaryFile, "summary-file", "", "save the summary to a file instead of stdout")
	cmd.Flags().BoolVar(&genNoArchive, "no-archive", false, "skip packaging all test cases into a zip")
	cmd.Flags().BoolVar(&genIndividual, "individual", false, "also write every test case as its own .sql file")
	cmd.Flags().BoolVar(&genStats, "stats", false, "print operation timings after the summary")

	return cmd
}

// addPipelineFlags registers the flags shared by generate and watch
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&genMapping, "mapping", "m", "", "mapping document (.xlsx, .xls, .csv, .txt)")
	cmd.Flags().StringVarP(&genTemplate, "template", "t", "", "test case template (.xlsx, .xls, .csv, .txt)")
	cmd.Flags().StringVar(&genEmail, "email", envOr("TCGEN_EMAIL", "analyst@example.com"), "account email")
	cmd.Flags().StringVar(&genPassword, "password", envOr("TCGEN_PASSWORD", "tcgen"), "account password")
	cmd.Flags().StringVar(&genFormat, "format", "", "output format (excel, word, csv, text)")
	cmd.Flags().StringSliceVar(&genQueryTypes, "query-types", nil, "query types (count, mapping, quality, business, null)")
	cmd.Flags().StringVar(&genComplexity, "complexity", "", "complexity (basic, intermediate, advanced)")
	cmd.Flags().StringVar(&genComments, "comments", "", "comment level (detailed, basic, none)")
	cmd.Flags().StringVar(&genMetricsFile, "metrics-file", "", "write operation metrics in the Prometheus text format to this file")
	_ = cmd.MarkFlagRequired("mapping")
	_ = cmd.MarkFlagRequired("template")
}

// ErrBinarySummary is returned when a binary summary would go to the terminal
var ErrBinarySummary = errors.New("pdf summaries need --summary-file")

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Output.SummaryFormat == "pdf" && genSummaryFile == "" {
		return ErrBinarySummary
	}

	log := newConsoleLogger(cmd.ErrOrStderr())
	ctrl, err := controller.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	opts := pipelineOptionsFromFlags(cfg)
	opts.Archive = !genNoArchive
	opts.Individual = genIndividual

	if _, err := runPipeline(cmd.Context(), ctrl, cmd.ErrOrStderr(), opts); err != nil {
		return err
	}

	if err := writeSummary(cmd.OutOrStdout(), cfg, ctrl, genSummaryFile); err != nil {
		return err
	}

	if genStats {
		fmt.Fprint(cmd.ErrOrStderr(), "\n"+monitor.FormatText(ctrl.Stats(), false))
	}
	return writeMetrics(ctrl)
}

// writeMetrics exports the metrics when --metrics-file is set
func writeMetrics(ctrl *controller.Controller) error {
	if genMetricsFile == "" {
		return nil
	}
	return ctrl.WriteMetrics(genMetricsFile)
}

// pipelineOptions describes one headless run
type pipelineOptions struct {
	Email        string
	Password     string
	MappingPath  string
	TemplatePath string
	Config       common.TestConfig
	Archive      bool
	Individual   bool
}

// pipelineResult lists what a headless run wrote
type pipelineResult struct {
	Analysis *common.AnalysisResult
	Cases    []common.TestCase
	Files    []string
	Archive  string
}

func pipelineOptionsFromFlags(cfg *config.Config) pipelineOptions {
	tc := cfg.Generation
	tc.QueryTypes = append([]string(nil), tc.QueryTypes...)
	if genFormat != "" {
		tc.OutputFormat = genFormat
	}
	if len(genQueryTypes) > 0 {
		tc.QueryTypes = genQueryTypes
	}
	if genComplexity != "" {
		tc.Complexity = genComplexity
	}
	if genComments != "" {
		tc.CommentLevel = genComments
	}

	return pipelineOptions{
		Email:        genEmail,
		Password:     genPassword,
		MappingPath:  genMapping,
		TemplatePath: genTemplate,
		Config:       tc,
	}
}

// runPipeline drives the controller through every wizard step
func runPipeline(ctx context.Context, ctrl *controller.Controller, progress io.Writer, opts pipelineOptions) (*pipelineResult, error) {
	if err := common.ValidateTestConfig(&opts.Config); err != nil {
		return nil, err
	}

	if !ctrl.Gate().Authenticated() {
		session, err := ctrl.Login(ctx, opts.Email, opts.Password)
		if err != nil {
			return nil, err
		}
		printStatus(progress, "user", "Signed in as %s", session.UserIdentifier)
	}

	for _, upload := range []struct {
		slot common.FileSlot
		path string
	}{
		{common.SlotMapping, opts.MappingPath},
		{common.SlotTemplate, opts.TemplatePath},
	} {
		handle, err := ctrl.UploadFile(upload.slot, upload.path)
		if err != nil {
			return nil, err
		}
		printStatus(progress, "upload", "%s: %s (%s)", upload.slot.Title(), handle.Name, handle.SizeKB())
	}

	printStatus(progress, "clock", "Analyzing files...")
	result, err := ctrl.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	printStatus(progress, "analysis", "%d mappings across %d source and %d target tables",
		result.TotalMappings, result.SourceTables, result.TargetTables)

	printStatus(progress, "clock", "Generating test cases...")
	cases, err := ctrl.Generate(ctx, opts.Config)
	if err != nil {
		return nil, err
	}
	printStatus(progress, "results", "%d test cases generated", len(cases))

	res := &pipelineResult{Analysis: result, Cases: cases}

	if opts.Individual {
		for _, tc := range cases {
			path, err := ctrl.Download(tc.ID)
			if err != nil {
				return nil, err
			}
			res.Files = append(res.Files, path)
		}
		printStatus(progress, "download", "%d files written to %s", len(res.Files), ctrl.OutputDir())
	}

	if opts.Archive {
		path, err := ctrl.DownloadAll(ctx)
		if err != nil {
			return nil, err
		}
		res.Archive = path
		printStatus(progress, "package", "Package written to %s", path)
	}

	return res, nil
}

// writeSummary renders the run report in the configured summary format
func writeSummary(stdout io.Writer, cfg *config.Config, ctrl *controller.Controller, path string) error {
	f, err := formatter.New(cfg.Output.SummaryFormat, useColor(cfg, stdout) && path == "")
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(ctrl.Report())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if path == "" {
		_, err = stdout.Write(output)
		return err
	}

	if err := os.WriteFile(path, output, 0o600); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	printStatus(stdout, "success", "Summary saved to %s", path)
	return nil
}

// useColor resolves the color mode for w
func useColor(cfg *config.Config, w io.Writer) bool {
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func newConsoleLogger(w io.Writer) *logger.Logger {
	return logger.NewWithWriter("tcgen", logger.VerboseFunc(isVerbose), w)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
