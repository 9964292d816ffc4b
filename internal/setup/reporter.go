package setup

import (
	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

// Reporter receives step transitions as the run progresses. The console
// implementation logs them; tests substitute a recording reporter.
type Reporter interface {
	StepStarted(name string)
	StepFinished(result StepResult)
}

// ConsoleReporter reports step transitions through pkg/logging.
type ConsoleReporter struct{}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

func (c *ConsoleReporter) StepStarted(name string) {
	logging.Debug("setup", "Step %s started", name)
}

func (c *ConsoleReporter) StepFinished(result StepResult) {
	switch result.Class {
	case ClassOK:
		logging.Info("setup", "Step %s succeeded", result.Name)
	case ClassSkipped:
		logging.Warn("setup", "Step %s skipped: prerequisite did not succeed", result.Name)
	case ClassRecoverable:
		logging.Error("setup", result.Err, "Step %s failed, continuing", result.Name)
	case ClassFatal:
		logging.Error("setup", result.Err, "Step %s failed, aborting run", result.Name)
	}
}
