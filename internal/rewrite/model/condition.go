package model

import "github.com/ritamzico/headerrewrite/internal/rewrite/host"

// LogicalOp is the binary operator joining two condition operands.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

// ConditionOperand is a single (possibly negated) boolean-variable
// reference in a condition.
type ConditionOperand struct {
	Name    string
	Negated bool
}

// ConditionAST is a left-to-right list of operands joined by operators,
// with len(Operators) == len(Operands)-1. `not` is folded into the operand
// at parse time; `and` binds tighter than `or` at evaluate time.
type ConditionAST struct {
	Operands  []ConditionOperand
	Operators []LogicalOp
}

// Evaluate partitions the operand list into runs separated by `or`
// boundaries, ANDs each run left-to-right, then ORs the run results
// left-to-right. All operands are evaluated in order; the first operand
// error encountered aborts evaluation and is propagated to the caller, who
// skips the rule.
func (c ConditionAST) Evaluate(bp *BooleanProgram, dir Direction, headers host.HeaderMap, meta host.MetadataStore) (bool, error) {
	if len(c.Operands) == 0 {
		return false, nil
	}

	evalOperand := func(o ConditionOperand) (bool, error) {
		v, err := bp.Evaluate(o.Name, dir, headers, meta)
		if err != nil {
			return false, err
		}
		if o.Negated {
			v = !v
		}
		return v, nil
	}

	runResult, err := evalOperand(c.Operands[0])
	if err != nil {
		return false, err
	}

	overall := false

	closeRun := func() {
		overall = overall || runResult
	}

	for i, op := range c.Operators {
		next, err := evalOperand(c.Operands[i+1])
		if err != nil {
			return false, err
		}
		switch op {
		case And:
			runResult = runResult && next
		case Or:
			closeRun()
			runResult = next
		}
	}
	closeRun()
	return overall, nil
}
