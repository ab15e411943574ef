package dsl

import (
	"testing"

	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

func TestParseSetBool_Str(t *testing.T) {
	name, v, err := parseSetBool(model.Request, []string{"is_api", "%[hdr(host)]", "-m", "str", "api.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "is_api" {
		t.Errorf("got name %q, want %q", name, "is_api")
	}
	if v.Kind != model.Exact {
		t.Errorf("got kind %v, want Exact", v.Kind)
	}
}

func TestParseSetBool_Found_NoComparand(t *testing.T) {
	_, v, err := parseSetBool(model.Request, []string{"has_host", "%[hdr(host)]", "-m", "found"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != model.Found {
		t.Errorf("got kind %v, want Found", v.Kind)
	}
}

func TestParseSetBool_Found_RejectsComparand(t *testing.T) {
	_, _, err := parseSetBool(model.Request, []string{"has_host", "%[hdr(host)]", "-m", "found", "extra"})
	ce, ok := err.(model.ConfigError)
	if !ok || ce.Kind != model.KindBadArity {
		t.Errorf("expected ConfigError{Kind: KindBadArity}, got %#v", err)
	}
}

func TestParseSetBool_MissingDashM(t *testing.T) {
	_, _, err := parseSetBool(model.Request, []string{"a", "%[hdr(h)]", "str", "x"})
	ce, ok := err.(model.ConfigError)
	if !ok || ce.Kind != model.KindBadArity {
		t.Errorf("expected ConfigError{Kind: KindBadArity}, got %#v", err)
	}
}

func TestParseSetBool_UnknownMatchKind(t *testing.T) {
	_, _, err := parseSetBool(model.Request, []string{"a", "%[hdr(h)]", "-m", "weird", "x"})
	ce, ok := err.(model.ConfigError)
	if !ok || ce.Kind != model.KindUnknownMatchKind {
		t.Errorf("expected ConfigError{Kind: KindUnknownMatchKind}, got %#v", err)
	}
}
