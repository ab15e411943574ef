package dsl

import "github.com/ritamzico/headerrewrite/internal/rewrite/model"

// parseSetBool parses the tokens after "<dir> set-bool" — i.e.
// tokens[2:] of a full line — into a name and model.BooleanVar:
// "<name> <source-expr> -m <kind> [<comparand-expr>]".
func parseSetBool(dir model.Direction, args []string) (string, model.BooleanVar, error) {
	// Builder already enforced the 6-token minimum for the whole line,
	// which is args having at least 4 tokens here (name, source, -m, kind).
	name := args[0]
	sourceTok := args[1]
	if args[2] != "-m" {
		return "", model.BooleanVar{}, model.NewConfigError(model.KindBadArity, 0,
			"set-bool %q: expected \"-m\", got %q", name, args[2])
	}
	kind, ok := model.ParseMatchKind(args[3])
	if !ok {
		return "", model.BooleanVar{}, model.NewConfigError(model.KindUnknownMatchKind, 0,
			"set-bool %q: unknown match kind %q", name, args[3])
	}

	rest := args[4:]
	switch kind {
	case model.Found:
		if len(rest) != 0 {
			return "", model.BooleanVar{}, model.NewConfigError(model.KindBadArity, 0,
				"set-bool %q: \"found\" takes no comparand", name)
		}
	default:
		if len(rest) != 1 {
			return "", model.BooleanVar{}, model.NewConfigError(model.KindBadArity, 0,
				"set-bool %q: %q requires exactly one comparand, got %d", name, args[3], len(rest))
		}
	}

	source, err := parseDynamicValue(sourceTok, dir)
	if err != nil {
		return "", model.BooleanVar{}, err
	}

	comparand := model.DynamicValue(model.StaticValue(""))
	if kind != model.Found {
		comparand, err = parseDynamicValue(rest[0], dir)
		if err != nil {
			return "", model.BooleanVar{}, err
		}
	}

	return name, model.BooleanVar{Source: source, Kind: kind, Comparand: comparand}, nil
}
