package attributes

import (
	"go.uber.org/zap"
)

// fileAPI is the slice of the Win32 file API the NTFS diagnoser needs.
type fileAPI interface {
	GetAttributes(path string) (Flags, error)
	SetAttributes(path string, attrs Flags) error
	DisableCompression(path string) error
	DisableSparse(path string) error
}

// ntfsDiagnoser implements Diagnoser on top of the Windows attribute bitmask.
type ntfsDiagnoser struct {
	api    fileAPI
	logger *zap.Logger
}

func newNTFSDiagnoser(api fileAPI, logger *zap.Logger) *ntfsDiagnoser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ntfsDiagnoser{api: api, logger: logger}
}

func (d *ntfsDiagnoser) Check(path string) bool {
	attrs, err := d.api.GetAttributes(path)
	if err != nil {
		d.warnRead(path, err)
		return false
	}
	if !attrs.IsAbnormal() {
		return false
	}

	d.logger.Debug(describe(attrs, path),
		zap.String("path", path),
		zap.String("attributes", joinNames(attrs)))
	return true
}

func (d *ntfsDiagnoser) Fix(path string) bool {
	attrs, err := d.api.GetAttributes(path)
	if err != nil {
		d.warnRead(path, err)
		return false
	}

	// SetFileAttributes cannot touch compression or sparseness, those need
	// their own FSCTL.
	target := Flags(0)
	if attrs&FlagArchive != 0 {
		target = FlagArchive
	}
	steps := []repairStep{{
		name: "clear_attributes",
		run:  func() error { return d.api.SetAttributes(path, target) },
	}}
	if attrs&FlagCompressed != 0 {
		steps = append(steps, repairStep{
			name: "disable_compression",
			run:  func() error { return d.api.DisableCompression(path) },
		})
	}
	if attrs&FlagSparseFile != 0 {
		steps = append(steps, repairStep{
			name: "disable_sparse",
			run:  func() error { return d.api.DisableSparse(path) },
		})
	}

	out := runRepair(d.logger, path, steps, repairStep{
		name: "force_archive",
		run:  func() error { return d.forceArchive(path) },
	})
	if out.Success() {
		d.logger.Debug("attributes repaired",
			zap.String("path", path),
			zap.String("before", attrs.String()),
			zap.Bool("fallback", out.FallbackOK))
	}
	return out.Success()
}

// forceArchive sets ARCHIVE on top of whatever is left.
func (d *ntfsDiagnoser) forceArchive(path string) error {
	current, err := d.api.GetAttributes(path)
	if err != nil {
		return err
	}
	return d.api.SetAttributes(path, current|FlagArchive)
}

func (d *ntfsDiagnoser) warnRead(path string, err error) {
	d.logger.Warn("unable to get file attributes",
		zap.String("path", path),
		zap.String("category", ErrorCategoryRead),
		zap.Uint32("error_code", errorCode(err)),
		zap.Error(err))
}
