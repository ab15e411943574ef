// Package engine is the filter runtime: for each request and response it
// iterates the relevant rule list in configuration order, evaluates each
// rule, mutates headers/metadata, and skips on per-rule error. It is a
// thin driver sitting on top of the data model in internal/rewrite/model.
package engine

import (
	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

// RuleLogger is the host's logging sink for non-fatal runtime errors.
// Exactly one event is logged per rule skipped on error (a rule skipped
// because its condition is false is not logged); the core never aborts the
// process.
type RuleLogger interface {
	LogRuleError(dir model.Direction, rule model.Rule, err error)
}

// DiscardLogger drops every event. Used by tests and by bypassed/errored
// programs where there is nothing to log.
type DiscardLogger struct{}

func (DiscardLogger) LogRuleError(model.Direction, model.Rule, error) {}

// Filter binds a built Program to a RuleLogger and applies it to streams.
// A Filter is safe for concurrent use by many streams: Program is
// read-only after construction and Filter holds nothing else mutable.
type Filter struct {
	program *model.Program
	logger  RuleLogger
}

// New wraps program with logger. A nil logger defaults to DiscardLogger.
func New(program *model.Program, logger RuleLogger) *Filter {
	if logger == nil {
		logger = DiscardLogger{}
	}
	return &Filter{program: program, logger: logger}
}

// Ready reports whether the underlying Program built successfully.
func (f *Filter) Ready() bool {
	return f.program.Ready()
}

// ApplyRequest runs every request-side rule against headers/meta in
// configuration order. A no-op if the Program is errored (bypass mode).
func (f *Filter) ApplyRequest(headers host.HeaderMap, meta host.MetadataStore) {
	f.apply(model.Request, headers, meta)
}

// ApplyResponse runs every response-side rule against headers/meta in
// configuration order. A no-op if the Program is errored (bypass mode).
func (f *Filter) ApplyResponse(headers host.HeaderMap, meta host.MetadataStore) {
	f.apply(model.Response, headers, meta)
}

func (f *Filter) apply(dir model.Direction, headers host.HeaderMap, meta host.MetadataStore) {
	if !f.program.Ready() {
		return
	}
	bp := f.program.BooleanProgramFor(dir)
	for _, rule := range f.program.RulesFor(dir) {
		outcome, err := rule.Execute(bp, headers, meta)
		if outcome == model.SkippedError {
			f.logger.LogRuleError(dir, rule, err)
		}
	}
}
