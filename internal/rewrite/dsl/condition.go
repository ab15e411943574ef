package dsl

import (
	"strings"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

// parseCondition parses the tokens following "if" into a model.ConditionAST,
// validated against bp. The syntactic fatal-error cases (leading, trailing
// and adjacent operators, dangling "not") are checked explicitly against a
// named Kind before participle ever sees the text — participle's grammar
// (grammar.go) already structurally forbids most of these shapes, but
// callers need a named error per violation, not a generic syntax error.
// The operand/operator count and undefined-boolean checks run after
// parsing.
func parseCondition(tokens []string, bp *model.BooleanProgram) (*model.ConditionAST, error) {
	if err := validateConditionTokens(tokens); err != nil {
		return nil, err
	}

	text := strings.Join(tokens, " ")
	ast, err := conditionParser.ParseString("", text)
	if err != nil {
		return nil, model.NewConfigError(model.KindConditionArityMismatch, 0,
			"if condition %q: %v", text, err)
	}

	operands := []model.ConditionOperand{{Name: ast.First.Name, Negated: ast.First.Not}}
	operators := make([]model.LogicalOp, 0, len(ast.Rest))
	for _, cont := range ast.Rest {
		op := model.And
		if cont.Op == "or" {
			op = model.Or
		}
		operators = append(operators, op)
		operands = append(operands, model.ConditionOperand{Name: cont.Term.Name, Negated: cont.Term.Not})
	}

	if len(operators) != len(operands)-1 {
		return nil, model.NewConfigError(model.KindConditionArityMismatch, 0,
			"if condition %q: %d operators for %d operands", text, len(operators), len(operands))
	}

	for _, operand := range operands {
		if _, ok := bp.Lookup(operand.Name); !ok {
			return nil, model.NewConfigError(model.KindUndefinedBoolean, 0,
				"if condition references undefined boolean %q", operand.Name)
		}
	}

	return &model.ConditionAST{Operands: operands, Operators: operators}, nil
}

// validateConditionTokens enforces the condition's syntactic rules
// (no leading/trailing/adjacent operators, no dangling "not") against the
// raw token stream, before any grammar is involved.
func validateConditionTokens(tokens []string) error {
	if len(tokens) == 0 {
		return model.NewConfigError(model.KindConditionArityMismatch, 0, "if condition must not be empty")
	}
	if isBinaryOp(tokens[0]) {
		return model.NewConfigError(model.KindConditionLeadingOperator, 0,
			"if condition cannot start with %q", tokens[0])
	}
	last := tokens[len(tokens)-1]
	if isBinaryOp(last) || last == "not" {
		return model.NewConfigError(model.KindConditionTrailingOperator, 0,
			"if condition cannot end with %q", last)
	}
	for i := 0; i < len(tokens)-1; i++ {
		if isBinaryOp(tokens[i]) && isBinaryOp(tokens[i+1]) {
			return model.NewConfigError(model.KindConditionAdjacentOperators, 0,
				"if condition has two adjacent operators: %q %q", tokens[i], tokens[i+1])
		}
		if tokens[i] == "not" && (isBinaryOp(tokens[i+1]) || tokens[i+1] == "not") {
			return model.NewConfigError(model.KindConditionDanglingNot, 0,
				"if condition: \"not\" must be followed by an operand, got %q", tokens[i+1])
		}
	}
	return nil
}

func isBinaryOp(tok string) bool {
	return tok == "and" || tok == "or"
}
