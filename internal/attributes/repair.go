package attributes

import (
	"go.uber.org/zap"
)

// repairStep is one best-effort action of a repair sequence. A nil error means
// the step succeeded.
type repairStep struct {
	name string
	run  func() error
}

// repairOutcome records what happened to each step.
type repairOutcome struct {
	Failed      []string
	FallbackRan bool
	FallbackOK  bool
	AllStepsOK  bool
}

// Success is true when every step worked or the fallback did.
func (o repairOutcome) Success() bool {
	return o.AllStepsOK || o.FallbackOK
}

// runRepair executes steps in order without aborting on failure, then runs
// fallback once if any step failed.
func runRepair(logger *zap.Logger, path string, steps []repairStep, fallback repairStep) repairOutcome {
	out := repairOutcome{AllStepsOK: true}

	for _, step := range steps {
		if err := step.run(); err != nil {
			out.AllStepsOK = false
			out.Failed = append(out.Failed, step.name)
			logger.Warn("repair step failed",
				zap.String("path", path),
				zap.String("step", step.name),
				zap.String("category", errorCategory(err)),
				zap.Uint32("error_code", errorCode(err)),
				zap.Error(err))
			continue
		}
		logger.Debug("repair step succeeded",
			zap.String("path", path),
			zap.String("step", step.name))
	}

	if out.AllStepsOK || fallback.run == nil {
		return out
	}

	out.FallbackRan = true
	if err := fallback.run(); err != nil {
		logger.Warn("repair fallback failed",
			zap.String("path", path),
			zap.String("step", fallback.name),
			zap.String("category", errorCategory(err)),
			zap.Uint32("error_code", errorCode(err)),
			zap.Error(err))
		return out
	}

	out.FallbackOK = true
	logger.Info("repair fallback applied",
		zap.String("path", path),
		zap.String("step", fallback.name),
		zap.Strings("failed_steps", out.Failed))
	return out
}
