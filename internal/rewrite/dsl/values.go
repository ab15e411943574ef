package dsl

import (
	"strconv"
	"strings"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

// parseDynamicValue converts one token into a model.DynamicValue. A token
// not wrapped in "%[...]" is a static literal. Recognition uses the exact
// 2-char prefix "%[" and 1-char suffix "]"; everything else about the
// inner function-call syntax is hand-walked rather than expressed as a
// context-free grammar: function name up to the first "(", arguments
// between the first "(" and the *last* ")", and that ")" must be the
// final character before "]".
func parseDynamicValue(token string, dir model.Direction) (model.DynamicValue, error) {
	if !strings.HasPrefix(token, "%[") {
		return model.StaticValue(token), nil
	}
	if !strings.HasSuffix(token, "]") {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"dynamic value %q is missing its closing ']'", token)
	}

	inner := token[2 : len(token)-1]
	openParen := strings.Index(inner, "(")
	if openParen < 0 {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"dynamic value %q is missing its '('", token)
	}
	fn := inner[:openParen]

	closeParen := strings.LastIndex(inner, ")")
	if closeParen < 0 || closeParen != len(inner)-1 {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"dynamic value %q: final ')' must be the last character before ']'", token)
	}
	args := splitArgs(inner[openParen+1 : closeParen])

	switch fn {
	case "hdr":
		return parseHdr(token, args)
	case "urlp":
		return parseUrlp(token, dir, args)
	case "metadata":
		return parseMetadata(token, args)
	default:
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"dynamic value %q: unknown function %q", token, fn)
	}
}

// splitArgs splits s on ",", trims whitespace from each piece, and drops
// empty pieces.
func splitArgs(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseHdr(token string, args []string) (model.DynamicValue, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"hdr() in %q takes 1 or 2 arguments, got %d", token, len(args))
	}
	name := strings.ToLower(args[0])
	position := -1
	if len(args) == 2 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
				"hdr() in %q: position %q is not an integer", token, args[1])
		}
		position = p
	}
	return model.HdrValue{Name: name, Position: position}, nil
}

func parseUrlp(token string, dir model.Direction, args []string) (model.DynamicValue, error) {
	if dir == model.Response {
		return nil, model.NewConfigError(model.KindUrlpOnResponse, 0,
			"urlp() in %q is only valid on the request side", token)
	}
	if len(args) != 1 {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"urlp() in %q takes exactly 1 argument, got %d", token, len(args))
	}
	return model.UrlpValue{Param: args[0]}, nil
}

func parseMetadata(token string, args []string) (model.DynamicValue, error) {
	if len(args) != 1 {
		return nil, model.NewConfigError(model.KindMalformedDynamicValue, 0,
			"metadata() in %q takes exactly 1 argument, got %d", token, len(args))
	}
	return model.MetadataValue{Key: args[0]}, nil
}
