package model

import "fmt"

// ConfigError is a fatal, build-time error: a short machine-checkable Kind
// and a human Message, exposed through a constructor per Kind so callers
// never hand-assemble the struct.
type ConfigError struct {
	Kind    string
	Line    int // 1-indexed source line, 0 if not line-scoped
	Message string
}

func (e ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config error (%s) at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("config error (%s): %s", e.Kind, e.Message)
}

// The fatal error kinds a config build can produce.
const (
	KindUnknownDirection           = "UnknownDirection"
	KindUnknownOperation           = "UnknownOperation"
	KindMissingArgs                = "MissingArgs"
	KindUnknownMatchKind           = "UnknownMatchKind"
	KindBadArity                   = "BadArity"
	KindMalformedDynamicValue      = "MalformedDynamicValue"
	KindUrlpOnResponse             = "UrlpOnResponse"
	KindUndefinedBoolean           = "UndefinedBoolean"
	KindDuplicateBoolean           = "DuplicateBoolean"
	KindConditionArityMismatch     = "ConditionArityMismatch"
	KindConditionLeadingOperator   = "ConditionLeadingOperator"
	KindConditionTrailingOperator  = "ConditionTrailingOperator"
	KindConditionAdjacentOperators = "ConditionAdjacentOperators"
	KindConditionDanglingNot       = "ConditionDanglingNot"
)

func newConfigError(kind string, line int, format string, args ...any) ConfigError {
	return ConfigError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewConfigError builds a ConfigError of the given kind at the given
// 1-indexed line (0 for not line-scoped).
func NewConfigError(kind string, line int, format string, args ...any) ConfigError {
	return newConfigError(kind, line, format, args...)
}

// RuleError is a non-fatal, per-rule runtime error. Evaluating or applying
// a single rule may fail; only that rule is skipped.
type RuleError struct {
	Kind    string
	Message string
}

func (e RuleError) Error() string {
	return fmt.Sprintf("rule error (%s): %s", e.Kind, e.Message)
}

// The non-fatal runtime error kinds a rule execution can produce.
const (
	KindPositionOutOfRange      = "PositionOutOfRange"
	KindMissingPath             = "MissingPath"
	KindNilMetadata             = "NilMetadata"
	KindEmptyMetadataKeyOrValue = "EmptyMetadataKeyOrValue"
	KindUnknownBooleanVar       = "UnknownBooleanVar"
)

// NewRuleError builds a RuleError of the given kind.
func NewRuleError(kind, format string, args ...any) RuleError {
	return RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
