package dsl

import "github.com/ritamzico/headerrewrite/internal/rewrite/model"

// minArgs is the minimum total token count for each operation's line
// (direction + operation tokens included).
var minArgs = map[string]int{
	"set-header":    4,
	"append-header": 4,
	"set-path":      3,
	"set-bool":      6,
	"set-metadata":  4,
}

// parseRule parses one already-direction-dispatched line (tokens[0] is the
// direction keyword, tokens[1] the operation) into a model.Rule, resolving
// any trailing "if <condition>" clause against bp. set-bool lines are
// handled separately by the builder via parseSetBool and never reach here.
func parseRule(dir model.Direction, line Line, bp *model.BooleanProgram) (model.Rule, error) {
	// dispatchLine (builder.go) already validated the direction keyword,
	// operation name, and minimum token count before this is called.
	op := line.Tokens[1]
	args := line.Tokens[2:]

	switch op {
	case "set-header":
		return parseSetHeaderRule(dir, line.Number, args, bp)
	case "append-header":
		return parseAppendHeaderRule(dir, line.Number, args, bp)
	case "set-path":
		return parseSetPathRule(dir, line.Number, args, bp)
	case "set-metadata":
		return parseSetMetadataRule(dir, line.Number, args, bp)
	default:
		return nil, model.NewConfigError(model.KindUnknownOperation, line.Number,
			"unknown operation %q", op)
	}
}

// splitCondition splits args at position minPositional: the first
// minPositional tokens are the positional arguments, and any tokens after
// the one at minPositional (where "if" is expected) are the condition.
// It does not check that token; parseCond rejects anything other than a
// literal "if" there as a bad-arity error (e.g. set-header rejects a second
// value unless it is literally "if").
func splitCondition(args []string, minPositional int) (before, condTokens []string, hasCond bool) {
	if len(args) == minPositional {
		return args, nil, false
	}
	return args[:minPositional], args[minPositional+1:], true
}

func parseCond(dir model.Direction, args []string, minPositional int, bp *model.BooleanProgram, op string, line int) ([]string, *model.ConditionAST, error) {
	before, condTokens, hasCond := splitCondition(args, minPositional)
	if len(args) > minPositional && args[minPositional] != "if" {
		return nil, nil, model.NewConfigError(model.KindBadArity, line,
			"%s: expected \"if\", got %q", op, args[minPositional])
	}
	if !hasCond {
		return before, nil, nil
	}
	cond, err := parseCondition(condTokens, bp)
	if err != nil {
		return nil, nil, withLine(err, line)
	}
	return before, cond, nil
}

func withLine(err error, line int) error {
	if ce, ok := err.(model.ConfigError); ok && ce.Line == 0 {
		ce.Line = line
		return ce
	}
	return err
}

func parseSetHeaderRule(dir model.Direction, line int, args []string, bp *model.BooleanProgram) (model.Rule, error) {
	before, cond, err := parseCond(dir, args, 2, bp, "set-header", line)
	if err != nil {
		return nil, err
	}
	key, err := parseDynamicValue(before[0], dir)
	if err != nil {
		return nil, withLine(err, line)
	}
	value, err := parseDynamicValue(before[1], dir)
	if err != nil {
		return nil, withLine(err, line)
	}
	return &model.SetHeaderRule{Dir: dir, Key: key, Value: value, Cond: cond}, nil
}

func parseAppendHeaderRule(dir model.Direction, line int, args []string, bp *model.BooleanProgram) (model.Rule, error) {
	ifIdx := -1
	for i, tok := range args {
		if tok == "if" {
			ifIdx = i
			break
		}
	}
	valueTokens := args
	var cond *model.ConditionAST
	if ifIdx >= 0 {
		valueTokens = args[:ifIdx]
		var err error
		cond, err = parseCondition(args[ifIdx+1:], bp)
		if err != nil {
			return nil, withLine(err, line)
		}
	}
	if len(valueTokens) < 2 {
		return nil, model.NewConfigError(model.KindBadArity, line,
			"append-header requires a key and at least one value")
	}
	key, err := parseDynamicValue(valueTokens[0], dir)
	if err != nil {
		return nil, withLine(err, line)
	}
	values := make([]model.DynamicValue, len(valueTokens)-1)
	for i, tok := range valueTokens[1:] {
		v, err := parseDynamicValue(tok, dir)
		if err != nil {
			return nil, withLine(err, line)
		}
		values[i] = v
	}
	return &model.AppendHeaderRule{Dir: dir, Key: key, Values: values, Cond: cond}, nil
}

func parseSetPathRule(dir model.Direction, line int, args []string, bp *model.BooleanProgram) (model.Rule, error) {
	before, cond, err := parseCond(dir, args, 1, bp, "set-path", line)
	if err != nil {
		return nil, err
	}
	path, err := parseDynamicValue(before[0], model.Request)
	if err != nil {
		return nil, withLine(err, line)
	}
	return &model.SetPathRule{Path: path, Cond: cond}, nil
}

func parseSetMetadataRule(dir model.Direction, line int, args []string, bp *model.BooleanProgram) (model.Rule, error) {
	before, cond, err := parseCond(dir, args, 2, bp, "set-metadata", line)
	if err != nil {
		return nil, err
	}
	key, err := parseDynamicValue(before[0], dir)
	if err != nil {
		return nil, withLine(err, line)
	}
	value, err := parseDynamicValue(before[1], dir)
	if err != nil {
		return nil, withLine(err, line)
	}
	return &model.SetMetadataRule{Dir: dir, Key: key, Value: value, Cond: cond}, nil
}
