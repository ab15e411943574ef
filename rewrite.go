// Package headerrewrite is the public facade over the filter's internal
// packages: build a Program once from configuration text, then apply it
// to many streams. It re-exports the internal types callers need rather
// than requiring them to import internal/rewrite/* directly.
package headerrewrite

import (
	"github.com/ritamzico/headerrewrite/internal/rewrite/dsl"
	"github.com/ritamzico/headerrewrite/internal/rewrite/engine"
	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

type (
	// Direction selects the request or response rule/boolean table.
	Direction = model.Direction
	// Program is the immutable artifact produced by Build.
	Program = model.Program
	// Filter applies a Program to individual streams.
	Filter = engine.Filter
	// RuleLogger receives non-fatal per-rule errors.
	RuleLogger = engine.RuleLogger
	// HeaderMap is the host-provided view over a stream's headers/path.
	HeaderMap = host.HeaderMap
	// MetadataStore is the host-provided view over stream dynamic metadata.
	MetadataStore = host.MetadataStore
)

// Request and Response name the two rule/boolean-table directions.
const (
	Request  = model.Request
	Response = model.Response
)

// DiscardLogger is a RuleLogger that drops every rule error.
var DiscardLogger = engine.DiscardLogger{}

// Build lexes and parses config into a Program. A malformed config never
// panics or returns an error here: it returns a Program whose Ready() is
// false, and that Program's Filter becomes a pass-through no-op at every
// ApplyRequest/ApplyResponse call (bypass mode). Callers that want to
// surface fatal errors should check Program.Err after Build.
func Build(config string) *Program {
	return dsl.Build(config)
}

// NewFilter binds a Program to a RuleLogger, producing the runtime object
// a proxy calls per stream. A nil logger discards rule errors.
func NewFilter(program *Program, logger RuleLogger) *Filter {
	return engine.New(program, logger)
}

// NewMemoryHeaderMap returns a dependency-free HeaderMap useful for tests
// and offline linting (not backed by a real net/http request/response).
func NewMemoryHeaderMap(isRequest bool) *host.MemoryHeaderMap {
	return host.NewMemoryHeaderMap(isRequest)
}

// NewMemoryMetadataStore returns a dependency-free MetadataStore.
func NewMemoryMetadataStore() *host.MemoryMetadataStore {
	return host.NewMemoryMetadataStore()
}
