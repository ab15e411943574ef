// Package serialize renders a built model.Program as JSON for
// introspection: a one-way, human/tool-readable dump, not a config format
// read back in — rewrite-lint and rewrite-proxy reload from DSL text via
// dsl.Build, never from this JSON.
package serialize

import (
	"encoding/json"
	"io"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

type dynamicValueView struct {
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	Position int    `json:"position,omitempty"`
	Param    string `json:"param,omitempty"`
	Key      string `json:"key,omitempty"`
	Literal  string `json:"literal,omitempty"`
}

func viewValue(v model.DynamicValue) dynamicValueView {
	switch dv := v.(type) {
	case model.StaticValue:
		return dynamicValueView{Kind: "static", Literal: string(dv)}
	case model.HdrValue:
		return dynamicValueView{Kind: "hdr", Name: dv.Name, Position: dv.Position}
	case model.UrlpValue:
		return dynamicValueView{Kind: "urlp", Param: dv.Param}
	case model.MetadataValue:
		return dynamicValueView{Kind: "metadata", Key: dv.Key}
	default:
		return dynamicValueView{Kind: "unknown"}
	}
}

type conditionOperandView struct {
	Name    string `json:"name"`
	Negated bool   `json:"negated,omitempty"`
}

type conditionView struct {
	Operands  []conditionOperandView `json:"operands"`
	Operators []string               `json:"operators"`
}

func viewCondition(c *model.ConditionAST) *conditionView {
	if c == nil {
		return nil
	}
	operands := make([]conditionOperandView, len(c.Operands))
	for i, o := range c.Operands {
		operands[i] = conditionOperandView{Name: o.Name, Negated: o.Negated}
	}
	operators := make([]string, len(c.Operators))
	for i, op := range c.Operators {
		if op == model.And {
			operators[i] = "and"
		} else {
			operators[i] = "or"
		}
	}
	return &conditionView{Operands: operands, Operators: operators}
}

type ruleView struct {
	Op        string            `json:"op"`
	Direction string            `json:"direction"`
	Key       *dynamicValueView `json:"key,omitempty"`
	Value     *dynamicValueView `json:"value,omitempty"`
	Values    []dynamicValueView `json:"values,omitempty"`
	Path      *dynamicValueView `json:"path,omitempty"`
	Condition *conditionView    `json:"condition,omitempty"`
}

func viewRule(r model.Rule) ruleView {
	dir := r.Direction().String()
	switch rule := r.(type) {
	case *model.SetHeaderRule:
		key, value := viewValue(rule.Key), viewValue(rule.Value)
		return ruleView{Op: "set-header", Direction: dir, Key: &key, Value: &value, Condition: viewCondition(rule.Cond)}
	case *model.AppendHeaderRule:
		key := viewValue(rule.Key)
		values := make([]dynamicValueView, len(rule.Values))
		for i, v := range rule.Values {
			values[i] = viewValue(v)
		}
		return ruleView{Op: "append-header", Direction: dir, Key: &key, Values: values, Condition: viewCondition(rule.Cond)}
	case *model.SetPathRule:
		path := viewValue(rule.Path)
		return ruleView{Op: "set-path", Direction: dir, Path: &path, Condition: viewCondition(rule.Cond)}
	case *model.SetMetadataRule:
		key, value := viewValue(rule.Key), viewValue(rule.Value)
		return ruleView{Op: "set-metadata", Direction: dir, Key: &key, Value: &value, Condition: viewCondition(rule.Cond)}
	default:
		return ruleView{Op: "unknown", Direction: dir}
	}
}

type booleanVarView struct {
	Name      string            `json:"name"`
	Source    dynamicValueView  `json:"source"`
	Kind      string            `json:"kind"`
	Comparand *dynamicValueView `json:"comparand,omitempty"`
}

func viewBooleanProgram(bp *model.BooleanProgram) []booleanVarView {
	names := bp.Names()
	out := make([]booleanVarView, 0, len(names))
	for _, name := range names {
		v, _ := bp.Lookup(name)
		view := booleanVarView{Name: name, Source: viewValue(v.Source), Kind: v.Kind.String()}
		if v.Kind != model.Found {
			comparand := viewValue(v.Comparand)
			view.Comparand = &comparand
		}
		out = append(out, view)
	}
	return out
}

// programView is the wire shape of a dumped Program.
type programView struct {
	Ready           bool             `json:"ready"`
	Error           string           `json:"error,omitempty"`
	RequestBooleans []booleanVarView `json:"request_booleans"`
	ResponseBooleans []booleanVarView `json:"response_booleans"`
	RequestRules    []ruleView       `json:"request_rules"`
	ResponseRules   []ruleView       `json:"response_rules"`
}

func toView(p *model.Program) programView {
	v := programView{Ready: p.Ready()}
	if p.Err != nil {
		v.Error = p.Err.Error()
	}
	v.RequestBooleans = viewBooleanProgram(p.RequestBools)
	v.ResponseBooleans = viewBooleanProgram(p.ResponseBools)

	v.RequestRules = make([]ruleView, len(p.RequestRules))
	for i, r := range p.RequestRules {
		v.RequestRules[i] = viewRule(r)
	}
	v.ResponseRules = make([]ruleView, len(p.ResponseRules))
	for i, r := range p.ResponseRules {
		v.ResponseRules[i] = viewRule(r)
	}
	return v
}

// WriteJSON writes a human-readable JSON description of p to w.
func WriteJSON(p *model.Program, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toView(p))
}

// MarshalJSON returns the same description WriteJSON writes, as a byte slice.
func MarshalJSON(p *model.Program) ([]byte, error) {
	return json.MarshalIndent(toView(p), "", "  ")
}
