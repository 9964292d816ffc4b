package setup

import (
	"github.com/kameshsampath/polaris-spark-devbox/internal/compose"
	"github.com/kameshsampath/polaris-spark-devbox/internal/polaris"
)

// OutcomeClass classifies how a provisioning step ended. The workflow has
// two failure severities: fatal failures (no container, no root token) stop
// the run, recoverable failures (a single API call rejected) are recorded
// and the run continues with later independent steps.
type OutcomeClass int

const (
	ClassOK OutcomeClass = iota
	ClassRecoverable
	ClassFatal
	ClassSkipped
)

// String makes OutcomeClass satisfy the fmt.Stringer interface.
func (c OutcomeClass) String() string {
	switch c {
	case ClassOK:
		return "ok"
	case ClassRecoverable:
		return "failed"
	case ClassFatal:
		return "fatal"
	case ClassSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult records how one step of the sequence ended.
type StepResult struct {
	Name  string
	Class OutcomeClass
	Err   error
}

// Result is the provisioning context accumulated over a full run: every
// name, identifier, and secret a later consumer (artifact rendering, the
// console summary) needs.
type Result struct {
	ContainerID string

	RootCredential      compose.Credential
	PrincipalCredential polaris.Credential

	Host string
	Port string

	CatalogName       string
	PrincipalName     string
	PrincipalRoleName string
	CatalogRoleName   string

	Steps []StepResult
}

// Failed returns the steps that did not succeed (recoverable failures and
// skips; a fatal step ends the run and is reported via the error return).
func (r *Result) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Class == ClassRecoverable || s.Class == ClassSkipped {
			failed = append(failed, s)
		}
	}
	return failed
}
