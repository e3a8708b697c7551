//go:build !windows

package attributes

import "go.uber.org/zap"

func newPlatformDiagnoser(opts Options, logger *zap.Logger) Diagnoser {
	return newLsattrDiagnoser(opts, logger)
}
