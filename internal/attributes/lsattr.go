package attributes

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const lsattrName = "lsattr"

type toolRunner func(ctx context.Context, timeout time.Duration, name string, args ...string) ToolResult

// lsattrDiagnoser lists inode attributes with e2fsprogs' lsattr. It never
// changes anything.
type lsattrDiagnoser struct {
	toolPath string
	timeout  time.Duration
	strict   bool
	lookPath func(string) (string, error)
	run      toolRunner
	probe    func(path string) []zap.Field
	logger   *zap.Logger
}

func newLsattrDiagnoser(opts Options, logger *zap.Logger) *lsattrDiagnoser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &lsattrDiagnoser{
		toolPath: opts.LsattrPath,
		timeout:  opts.toolTimeout(),
		strict:   opts.Strict,
		lookPath: exec.LookPath,
		run:      RunTool,
		probe:    probeInode,
		logger:   logger,
	}
}

func (d *lsattrDiagnoser) findTool() (string, error) {
	name := d.toolPath
	if name == "" {
		name = lsattrName
	}
	tool, err := d.lookPath(name)
	if err != nil {
		return "", newAttrError(ErrorCategoryUnavailable, name, "find_tool", ErrToolNotFound)
	}
	return tool, nil
}

// Check returns true for every path lsattr can list unless strict mode is on,
// in which case only immutable or append-only files are reported.
func (d *lsattrDiagnoser) Check(path string) bool {
	tool, err := d.findTool()
	if err != nil {
		d.logger.Warn("lsattr not found, check if e2fsprogs is installed",
			zap.String("path", path),
			zap.String("category", ErrorCategoryUnavailable))
		return false
	}

	// -d lists a directory itself rather than its entries; -- keeps names
	// starting with a dash from being read as options.
	res := d.run(context.Background(), d.timeout, tool, "-d", "--", path)
	switch res.Status {
	case ToolSucceeded:
	case ToolTimedOut:
		d.logger.Warn("unable to get file attributes",
			zap.String("path", path),
			zap.String("category", ErrorCategoryTimeout),
			zap.Duration("timeout", d.timeout))
		return false
	case ToolExitedNonZero:
		d.logger.Warn("unable to get file attributes",
			zap.String("path", path),
			zap.String("category", ErrorCategoryRead),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)))
		return false
	default:
		d.logger.Warn("unable to get file attributes",
			zap.String("path", path),
			zap.String("category", ErrorCategoryUnavailable),
			zap.Error(res.Err))
		return false
	}

	listing := strings.TrimSpace(res.Stdout)
	fields := []zap.Field{
		zap.String("path", path),
		zap.String("listing", listing),
		zap.Duration("elapsed", res.Elapsed),
	}
	if d.probe != nil {
		fields = append(fields, d.probe(path)...)
	}
	d.logger.Debug("file attributes", fields...)

	if !d.strict {
		return true
	}

	flags, err := ParseLsattr(listing)
	if err != nil {
		d.logger.Warn("unable to parse file attributes",
			zap.String("path", path),
			zap.String("listing", listing),
			zap.Error(err))
		return false
	}
	blocking := flags.Blocking()
	if len(blocking) == 0 {
		return false
	}
	d.logger.Debug("blocking attributes",
		zap.String("path", path),
		zap.Strings("flags", blocking))
	return true
}

// Fix is a no-op; inode attributes are left to the user.
func (d *lsattrDiagnoser) Fix(path string) bool {
	return true
}
