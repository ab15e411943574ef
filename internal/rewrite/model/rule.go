package model

import (
	"strings"

	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
)

// Outcome classifies what happened when a Rule was executed.
type Outcome int

const (
	// Applied means the rule's effect was written to headers/metadata.
	Applied Outcome = iota
	// SkippedCondition means the guard condition evaluated to false; not
	// an error, nothing to log.
	SkippedCondition
	// SkippedError means evaluating the condition, a dynamic value, or
	// applying the effect failed; the rule is skipped and the error is
	// logged by the runtime, but execution continues.
	SkippedError
)

// Rule is the closed sum type of header-level operations. Each variant
// implements Execute, which the engine calls through this interface.
type Rule interface {
	// Direction reports which rule list this rule belongs to.
	Direction() Direction
	// Execute evaluates the optional guard condition and dynamic values
	// against headers/meta and, if both succeed and the condition (if any)
	// is true, applies the rule's effect.
	Execute(bp *BooleanProgram, headers host.HeaderMap, meta host.MetadataStore) (Outcome, error)
}

func evalCond(cond *ConditionAST, bp *BooleanProgram, dir Direction, headers host.HeaderMap, meta host.MetadataStore) (proceed bool, outcome Outcome, err error) {
	if cond == nil {
		return true, Applied, nil
	}
	ok, err := cond.Evaluate(bp, dir, headers, meta)
	if err != nil {
		return false, SkippedError, err
	}
	if !ok {
		return false, SkippedCondition, nil
	}
	return true, Applied, nil
}

// SetHeaderRule implements "set-header": replace all values of Key with
// the single evaluated Value.
type SetHeaderRule struct {
	Dir   Direction
	Key   DynamicValue
	Value DynamicValue
	Cond  *ConditionAST
}

func (r *SetHeaderRule) Direction() Direction { return r.Dir }

func (r *SetHeaderRule) Execute(bp *BooleanProgram, headers host.HeaderMap, meta host.MetadataStore) (Outcome, error) {
	if proceed, outcome, err := evalCond(r.Cond, bp, r.Dir, headers, meta); !proceed {
		return outcome, err
	}
	key, err := r.Key.Evaluate(r.Dir, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	value, err := r.Value.Evaluate(r.Dir, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	headers.Set(key, value)
	return Applied, nil
}

// AppendHeaderRule implements "append-header": append each evaluated value
// under Key, preserving pre-existing values.
type AppendHeaderRule struct {
	Dir    Direction
	Key    DynamicValue
	Values []DynamicValue
	Cond   *ConditionAST
}

func (r *AppendHeaderRule) Direction() Direction { return r.Dir }

func (r *AppendHeaderRule) Execute(bp *BooleanProgram, headers host.HeaderMap, meta host.MetadataStore) (Outcome, error) {
	if proceed, outcome, err := evalCond(r.Cond, bp, r.Dir, headers, meta); !proceed {
		return outcome, err
	}
	key, err := r.Key.Evaluate(r.Dir, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	values := make([]string, len(r.Values))
	for i, dv := range r.Values {
		v, err := dv.Evaluate(r.Dir, headers, meta)
		if err != nil {
			return SkippedError, err
		}
		values[i] = v
	}
	for _, v := range values {
		headers.Append(key, v)
	}
	return Applied, nil
}

// SetPathRule implements "set-path": replace the path portion of :path,
// preserving any query string. Request only.
type SetPathRule struct {
	Path DynamicValue
	Cond *ConditionAST
}

func (r *SetPathRule) Direction() Direction { return Request }

func (r *SetPathRule) Execute(bp *BooleanProgram, headers host.HeaderMap, meta host.MetadataStore) (Outcome, error) {
	if proceed, outcome, err := evalCond(r.Cond, bp, Request, headers, meta); !proceed {
		return outcome, err
	}
	newPath, err := r.Path.Evaluate(Request, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	current, ok := headers.Path()
	if !ok {
		return SkippedError, NewRuleError(KindMissingPath, "set-path: no :path on this stream")
	}
	if _, query, hasQuery := strings.Cut(current, "?"); hasQuery {
		headers.SetPath(newPath + "?" + query)
	} else {
		headers.SetPath(newPath)
	}
	return Applied, nil
}

// SetMetadataRule implements "set-metadata": write evaluated_key ->
// evaluated_value into stream metadata under host.FilterName, overwriting
// any previous value. An empty evaluated key or value is an error.
type SetMetadataRule struct {
	Dir   Direction
	Key   DynamicValue
	Value DynamicValue
	Cond  *ConditionAST
}

func (r *SetMetadataRule) Direction() Direction { return r.Dir }

func (r *SetMetadataRule) Execute(bp *BooleanProgram, headers host.HeaderMap, meta host.MetadataStore) (Outcome, error) {
	if proceed, outcome, err := evalCond(r.Cond, bp, r.Dir, headers, meta); !proceed {
		return outcome, err
	}
	key, err := r.Key.Evaluate(r.Dir, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	value, err := r.Value.Evaluate(r.Dir, headers, meta)
	if err != nil {
		return SkippedError, err
	}
	if key == "" || value == "" {
		return SkippedError, NewRuleError(KindEmptyMetadataKeyOrValue, "set-metadata: key and value must both be non-empty")
	}
	if meta == nil {
		return SkippedError, NewRuleError(KindNilMetadata, "set-metadata: no stream metadata handle")
	}
	meta.Set(host.FilterName, key, value)
	return Applied, nil
}
