package log

import (
	"time"

	"github.com/longkey1/exnota/internal/result"
)

// Step traces one call site: Start is logged on creation, then exactly one
// of Finish or Fail.
type Step struct {
	logger  *Logger
	name    string
	started time.Time
}

// Trace logs "<name>: Start" and returns the step
func (l *Logger) Trace(name string) *Step {
	l.Info(name+": Start", nil)
	return &Step{logger: l, name: name, started: time.Now()}
}

// Finish logs "<name>: Finish"
func (s *Step) Finish() {
	s.logger.Info(s.name+": Finish", map[string]any{
		"duration_ms": time.Since(s.started).Milliseconds(),
	})
}

// Fail logs "<name>: Error" with the error details
func (s *Step) Fail(err error) {
	fields := ErrorFields(err)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["duration_ms"] = time.Since(s.started).Milliseconds()
	s.logger.Error(s.name+": Error", fields)
}

// Done logs Finish when err is nil and Fail otherwise
func (s *Step) Done(err error) {
	if err == nil {
		s.Finish()
		return
	}
	s.Fail(err)
}

// Outcome logs Finish for a nil failure and Fail otherwise. Use it with
// Result.Err so a nil *result.Error is not mistaken for a non-nil error.
func (s *Step) Outcome(err *result.Error) {
	if err == nil {
		s.Finish()
		return
	}
	s.Fail(err)
}
