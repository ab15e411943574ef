package model

import (
	"strings"

	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
)

// DynamicValue is a lazily-evaluated producer of a string from
// (headers, stream metadata). It is a closed sum type with four variants;
// callers evaluate it through this interface's Evaluate method.
type DynamicValue interface {
	// Evaluate returns the runtime string for dir/headers/meta, or a
	// RuleError if evaluation fails.
	Evaluate(dir Direction, headers host.HeaderMap, meta host.MetadataStore) (string, error)
}

// StaticValue returns its literal text verbatim.
type StaticValue string

func (v StaticValue) Evaluate(Direction, host.HeaderMap, host.MetadataStore) (string, error) {
	return string(v), nil
}

// HdrValue reads the Position-th comma-separated value of header Name.
// Position defaults to -1 (last) at parse time; negative positions index
// from the end.
type HdrValue struct {
	Name     string
	Position int
}

func (v HdrValue) Evaluate(_ Direction, headers host.HeaderMap, _ host.MetadataStore) (string, error) {
	joined, ok := headers.GetAllAsCommaString(v.Name)
	if !ok {
		return "", nil
	}
	parts := splitTrimNonEmpty(joined, ",")
	if len(parts) == 0 {
		return "", nil
	}
	idx := v.Position
	if idx < 0 {
		idx += len(parts)
	}
	if idx < 0 || idx >= len(parts) {
		return "", NewRuleError(KindPositionOutOfRange,
			"hdr(%s,%d): position out of range for %d segment(s)", v.Name, v.Position, len(parts))
	}
	return parts[idx], nil
}

// UrlpValue reads query parameter Param from the request's :path. Only
// valid on the request side; the parser rejects it on the response side,
// so Evaluate only ever runs against request headers.
type UrlpValue struct {
	Param string
}

func (v UrlpValue) Evaluate(_ Direction, headers host.HeaderMap, _ host.MetadataStore) (string, error) {
	path, ok := headers.Path()
	if !ok {
		return "", NewRuleError(KindMissingPath, "urlp(%s): no :path on this stream", v.Param)
	}
	_, query, hasQuery := strings.Cut(path, "?")
	if !hasQuery {
		return "", nil
	}
	for _, pair := range strings.Split(query, "&") {
		k, val, _ := strings.Cut(pair, "=")
		if k == v.Param {
			return val, nil
		}
	}
	return "", nil
}

// MetadataValue reads Key from the stream's dynamic metadata, namespaced
// under host.FilterName.
type MetadataValue struct {
	Key string
}

func (v MetadataValue) Evaluate(_ Direction, _ host.HeaderMap, meta host.MetadataStore) (string, error) {
	if meta == nil {
		return "", NewRuleError(KindNilMetadata, "metadata(%s): no stream metadata handle", v.Key)
	}
	val, _ := meta.Get(host.FilterName, v.Key)
	return val, nil
}

// splitTrimNonEmpty splits s on sep, trims whitespace from each segment,
// and drops empty segments.
func splitTrimNonEmpty(s, sep string) []string {
	raw := strings.Split(s, sep)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
