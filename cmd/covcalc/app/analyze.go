package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covcalc/internal/analysis"
	"github.com/zjy-dev/covcalc/internal/config"
	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/dump"
	"github.com/zjy-dev/covcalc/internal/filter"
	"github.com/zjy-dev/covcalc/internal/logger"
	"github.com/zjy-dev/covcalc/internal/report"
)

// NewAnalyzeCommand creates the "analyze" subcommand.
func NewAnalyzeCommand() *cobra.Command {
	var (
		configName string
		outputDir  string
		format     string
		workers    int
		logLevel   string
		filters    []string
	)

	cmd := &cobra.Command{
		Use:   "analyze <dump>...",
		Short: "Calculate coverage counters for every method of the given dumps.",
		Long: `Calculate coverage counters for every method of the given method dumps.

Each dump is a YAML (or JSON) document listing methods, their instructions with
line and branch execution results, and the directives recorded by coverage filters.
The configured filters run first, then each method is calculated once.

Configuration:
  Defaults are loaded from configs/covcalc.yaml under the 'config' section.
  Command line flags override the config file values.

Examples:
  # Print a text table for one dump
  covcalc analyze build/Foo.yaml

  # Write a markdown report with only recorded directives applied
  covcalc analyze --format markdown --filters directives build/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadNamed(configName)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if !cmd.Flags().Changed("output") {
				outputDir = cfg.Report.OutputDir
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Report.Format
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.LogLevel
			}
			if !cmd.Flags().Changed("filters") {
				filters = cfg.Filters
			}

			logger.Init(logLevel)
			logger.SetLevel(logLevel)
			if cfg.LogDir != "" {
				if err := logger.InitWithFile(logLevel, cfg.LogDir); err != nil {
					return err
				}
				defer logger.Close()
			}

			chain, err := filter.NewChain(filters, cfg.FilterOptions)
			if err != nil {
				return fmt.Errorf("failed to create filters: %w", err)
			}
			logger.Info("Filters: %v, workers: %d", chain.Names(), workers)

			analyzer := analysis.NewAnalyzer(chain, workers)
			for _, path := range args {
				if err := analyzeDump(cmd, analyzer, path, format, outputDir); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configName, "config", config.DefaultConfigName, "Config file name under configs/ (without extension)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "coverage_out", "Directory for markdown reports")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Report format: text or markdown")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of methods analyzed concurrently")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringSliceVar(&filters, "filters", nil, "Filter plugins to run, in order")

	return cmd
}

func analyzeDump(cmd *cobra.Command, analyzer *analysis.Analyzer, path, format, outputDir string) error {
	f, err := dump.ReadFile(path)
	if err != nil {
		return err
	}
	methods, err := f.FlowMethods()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	session := report.NewSession(path)
	logger.Info("Session %s: analyzing %d methods from %s", session.ID, len(methods), path)

	results, err := analyzer.AnalyzeAll(cmd.Context(), methods)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	switch format {
	case "markdown":
		reportPath, err := report.NewMarkdownReporter(outputDir).Save(session, results)
		if err != nil {
			return err
		}
		logger.Info("Report saved to %s", reportPath)
	case "text":
		if err := report.WriteText(cmd.OutOrStdout(), results); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	default:
		return fmt.Errorf("unknown report format %q", format)
	}

	logSummary(results)
	return nil
}

func logSummary(results []*coverage.MethodCoverage) {
	s := report.Summarize(results)
	logger.Info("Instructions %s, branches %s, lines %s, methods %s",
		s.Instructions, s.Branches, s.Lines, s.Methods)
}
