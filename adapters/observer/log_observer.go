package observer

import (
	"sync/atomic"

	"ecpass/internal"
	"ecpass/ports"
)

// LogObserver reports pipeline events through the leveled logger
type LogObserver struct {
	logger    *internal.Logger
	fallbacks atomic.Int64
}

// NewLogObserver creates an observer writing to logger
func NewLogObserver(logger *internal.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

var _ ports.PipelineObserver = (*LogObserver)(nil)

func (o *LogObserver) StageCompleted(stage ports.Stage, n int) {
	o.logger.Trace("stage %s completed (%d values)", stage, n)
}

// FallbackApplied is logged at debug level: the tanh substitute keeps the
// stream finite but hides that the formula diverged at this step.
func (o *LogObserver) FallbackApplied(index int) {
	o.fallbacks.Add(1)
	o.logger.Debug("step %d was non-finite, substituted tanh of previous value", index)
}

func (o *LogObserver) PasswordGenerated(length int, fallbacks int) {
	if fallbacks > 0 {
		o.logger.Warn("generated %d-character password; %d of %d steps used the tanh fallback", length, fallbacks, length-1)
		return
	}
	o.logger.Info("generated %d-character password", length)
}

func (o *LogObserver) GenerationFailed(stage ports.Stage, err error) {
	o.logger.Error("password generation failed at %s: %v", stage, err)
}

// Fallbacks returns the total number of substitutions seen so far
func (o *LogObserver) Fallbacks() int64 {
	return o.fallbacks.Load()
}
