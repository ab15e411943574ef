package dsl

import (
	"github.com/hashicorp/go-multierror"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

// Build lexes and parses config into a model.Program. It runs two passes
// over the lexed lines: first collect declarations, then resolve
// references against them.
//
//  1. Collect every set-bool definition into the matching direction's
//     BooleanProgram, so a boolean is visible to an "if" condition anywhere
//     in the config regardless of source order.
//  2. Parse every remaining rule line (in original file order) into a
//     model.Rule, resolving any "if <condition>" against the now-complete
//     boolean tables.
//
// All fatal errors encountered across both passes are collected with
// hashicorp/go-multierror rather than stopping at the first one, so a
// caller sees every problem in a bad config in one pass; Program.Err wraps
// the aggregate and Ready() becomes false, putting the whole filter into
// bypass mode.
func Build(config string) *model.Program {
	lines := Lex(config)

	program := &model.Program{
		RequestBools:  model.NewBooleanProgram(),
		ResponseBools: model.NewBooleanProgram(),
	}

	var errs *multierror.Error

	var ruleLines []Line
	for _, line := range lines {
		dir, op, err := dispatchLine(line)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if op != "set-bool" {
			ruleLines = append(ruleLines, line)
			continue
		}
		bp := program.BooleanProgramFor(dir)
		name, v, err := parseSetBool(dir, line.Tokens[2:])
		if err != nil {
			errs = multierror.Append(errs, withLine(err, line.Number))
			continue
		}
		if !bp.Define(name, v) {
			errs = multierror.Append(errs, model.NewConfigError(model.KindDuplicateBoolean, line.Number,
				"boolean %q is already defined for this direction", name))
		}
	}

	for _, line := range ruleLines {
		dir, _, err := dispatchLine(line)
		if err != nil {
			// Already reported in pass 1; unreachable here since dispatchLine
			// is deterministic, but guard rather than silently skip.
			errs = multierror.Append(errs, err)
			continue
		}
		bp := program.BooleanProgramFor(dir)
		rule, err := parseRule(dir, line, bp)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if rule.Direction() == model.Request {
			program.RequestRules = append(program.RequestRules, rule)
		} else {
			program.ResponseRules = append(program.ResponseRules, rule)
		}
	}

	if errs.ErrorOrNil() != nil {
		program.Err = errs
	}
	return program
}

// dispatchLine validates the direction keyword and operation name of a
// line without fully parsing its arguments.
func dispatchLine(line Line) (model.Direction, string, error) {
	if len(line.Tokens) < 2 {
		return 0, "", model.NewConfigError(model.KindMissingArgs, line.Number,
			"line has fewer than 2 tokens")
	}
	var dir model.Direction
	switch line.Tokens[0] {
	case "http-request":
		dir = model.Request
	case "http-response":
		dir = model.Response
	default:
		return 0, "", model.NewConfigError(model.KindUnknownDirection, line.Number,
			"unknown direction keyword %q", line.Tokens[0])
	}
	op := line.Tokens[1]
	min, ok := minArgs[op]
	if !ok {
		return 0, "", model.NewConfigError(model.KindUnknownOperation, line.Number,
			"unknown operation %q", op)
	}
	if len(line.Tokens) < min {
		return 0, "", model.NewConfigError(model.KindMissingArgs, line.Number,
			"%s requires at least %d tokens, got %d", op, min, len(line.Tokens))
	}
	return dir, op, nil
}
