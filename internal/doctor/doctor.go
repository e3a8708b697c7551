// Package doctor runs the attribute checker and fixer over files selected by
// the scanner and collects the outcome in a Report.
package doctor

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/juste-un-gars/attrdoctor/internal/attributes"
	"github.com/juste-un-gars/attrdoctor/internal/scanner"
)

// Mode selects what Run does with abnormal paths.
type Mode string

const (
	ModeCheck Mode = "check"
	ModeFix   Mode = "fix"
)

// Status is the per-path outcome.
type Status string

const (
	StatusOK       Status = "ok"
	StatusAbnormal Status = "abnormal"
	StatusFixed    Status = "fixed"
	StatusFailed   Status = "failed"
)

// Doctor walks roots and applies a Diagnoser to every visited path.
type Doctor struct {
	diag   attributes.Diagnoser
	walker *scanner.Walker
	logger *zap.Logger
}

// New creates a Doctor. A nil walker visits directories recursively without
// exclusions.
func New(diag attributes.Diagnoser, walker *scanner.Walker, logger *zap.Logger) *Doctor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if walker == nil {
		walker = scanner.NewWalker(nil, scanner.Options{Recursive: true}, logger)
	}
	return &Doctor{
		diag:   diag,
		walker: walker,
		logger: logger.With(zap.String("component", "doctor")),
	}
}

// Run inspects every root in order. Walk failures of one root are recorded and
// the next root is still processed; the returned error aggregates them. A
// cancelled context stops between files and returns the partial report.
func (d *Doctor) Run(ctx context.Context, roots []string, mode Mode) (*Report, error) {
	report := &Report{
		Mode:     mode,
		Platform: runtime.GOOS,
		Roots:    roots,
	}

	var errs error
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := d.walker.Walk(root, func(path string, metadata *scanner.FileMetadata) error {
			if err := ctx.Err(); err != nil {
				return scanner.WrapError(scanner.ErrScanAborted, "%v", err)
			}
			report.add(d.inspect(path, metadata, mode))
			return nil
		})
		if errors.Is(err, scanner.ErrScanAborted) {
			return report, ctx.Err()
		}
		if err != nil {
			d.logger.Warn("unable to scan path",
				zap.String("path", root),
				zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
			errs = multierr.Append(errs, err)
			continue
		}

		stats := d.walker.GetStatistics()
		d.logger.Debug("root scanned",
			zap.String("root", root),
			zap.String("stats", stats.String()))
		if stats.Placeholders > 0 {
			d.logger.Info("cloud placeholders found, repairing them downloads their content",
				zap.String("root", root),
				zap.Int("count", stats.Placeholders))
		}
	}

	d.logger.Info("attribute scan finished",
		zap.String("mode", string(mode)),
		zap.Int("checked", report.Summary.Checked),
		zap.Int("abnormal", report.Summary.Abnormal),
		zap.Int("fixed", report.Summary.Fixed),
		zap.Int("failed", report.Summary.Failed))
	return report, errs
}

func (d *Doctor) inspect(path string, metadata *scanner.FileMetadata, mode Mode) Entry {
	entry := Entry{Path: path, IsDir: metadata.IsDir, Status: StatusOK}

	if !d.diag.Check(path) {
		return entry
	}
	entry.Abnormal = true
	entry.Status = StatusAbnormal
	if mode != ModeFix {
		return entry
	}

	if !d.diag.Fix(path) {
		entry.Status = StatusFailed
		d.logger.Warn("unable to fix file attributes", zap.String("path", path))
		return entry
	}
	entry.Status = StatusFixed
	entry.StillAbnormal = d.diag.Check(path)
	return entry
}
