package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juste-un-gars/attrdoctor/internal/attributes"
	"github.com/juste-un-gars/attrdoctor/internal/config"
	"github.com/juste-un-gars/attrdoctor/internal/doctor"
	"github.com/juste-un-gars/attrdoctor/internal/logger"
	"github.com/juste-un-gars/attrdoctor/internal/scanner"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Report files with problematic attributes",
		Long: `Report files with problematic attributes. Exits with status 1 when at least
one path needs attention.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args, doctor.ModeCheck)
		},
	}
}

func newFixCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fix PATH...",
		Short: "Clear problematic attributes",
		Long: `Check every path and repair the ones with problematic attributes. Exits with
status 1 when a repair failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args, doctor.ModeFix)
		},
	}
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.App.LogLevel = opts.logLevel
		cfg.Logging.Levels.Console = opts.logLevel
	}
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("no-recursive") {
		cfg.Scan.Recursive = !opts.noRecursive
	}
	if flags.Changed("include-dirs") {
		cfg.Scan.IncludeDirs = opts.includeDirs
	}
	if flags.Changed("strict") {
		cfg.Linux.Strict = opts.strict
	}
	cfg.Scan.Exclusions = append(cfg.Scan.Exclusions, opts.exclusions...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	consoleLevel := cfg.Logging.Levels.Console
	if consoleLevel == "" {
		consoleLevel = cfg.App.LogLevel
	}
	return logger.New(logger.Config{
		Level:      consoleLevel,
		FileLevel:  cfg.Logging.Levels.File,
		OutputPath: cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.Rotation.MaxSizeMB,
		MaxFiles:   cfg.Logging.Rotation.MaxFiles,
		Compress:   cfg.Logging.Rotation.Compress,
	})
}

func runScan(cmd *cobra.Command, opts *globalOptions, paths []string, mode doctor.Mode) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()
	log = log.With(zap.String("command", string(mode)))

	excluder := scanner.NewExcluder(log.Zap())
	if err := excluder.AddPatterns(cfg.Scan.Exclusions); err != nil {
		return err
	}
	walker := scanner.NewWalker(excluder, scanner.Options{
		Recursive:      cfg.Scan.Recursive,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
		IncludeDirs:    cfg.Scan.IncludeDirs,
	}, log.Zap())

	diag := attributes.New(attributes.Options{
		LsattrPath:  cfg.Linux.LsattrPath,
		ToolTimeout: cfg.Linux.Timeout(),
		Strict:      cfg.Linux.Strict,
	}, log.Zap())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Debug("starting attribute scan",
		zap.Strings("paths", paths),
		zap.Int("exclusions", excluder.Len()))

	report, runErr := doctor.New(diag, walker, log.Zap()).Run(ctx, paths, mode)
	if err := report.Render(cmd.OutOrStdout(), cfg.Report.Format, opts.verbose); err != nil {
		log.Error("failed to write report", zap.Error(err))
		return fmt.Errorf("failed to write report: %w", err)
	}
	if ctx.Err() != nil {
		log.Info("scan interrupted", zap.Int("checked", report.Summary.Checked))
		return runErr
	}
	if runErr != nil {
		log.Warn("some paths could not be scanned", zap.Error(runErr))
	}
	if !report.Healthy() {
		return errUnhealthy
	}
	return nil
}
