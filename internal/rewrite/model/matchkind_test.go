package model

import "testing"

func TestBooleanVar_Str(t *testing.T) {
	v := BooleanVar{Source: StaticValue("api.example.com"), Kind: Exact, Comparand: StaticValue("api.example.com")}
	ok, err := v.Evaluate(Request, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected exact match to be true")
	}
}

func TestBooleanVar_Beg_SourceIsPrefixOfComparand(t *testing.T) {
	// spec's documented quirk: "beg" asks whether the *source* is a prefix
	// of the comparand, not the other way around.
	v := BooleanVar{Source: StaticValue("api"), Kind: Prefix, Comparand: StaticValue("api.example.com")}
	ok, err := v.Evaluate(Request, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected \"api\" to be a prefix of \"api.example.com\"")
	}

	reversed := BooleanVar{Source: StaticValue("api.example.com"), Kind: Prefix, Comparand: StaticValue("api")}
	ok, err = reversed.Evaluate(Request, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected the longer source not to be a prefix of the shorter comparand")
	}
}

func TestBooleanVar_Sub(t *testing.T) {
	v := BooleanVar{Source: StaticValue("foo"), Kind: Substr, Comparand: StaticValue("xxfooyy")}
	ok, err := v.Evaluate(Request, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected substring match")
	}
}

func TestBooleanVar_Found(t *testing.T) {
	present := BooleanVar{Source: StaticValue("x"), Kind: Found, Comparand: StaticValue("")}
	ok, err := present.Evaluate(Request, nil, nil)
	if err != nil || !ok {
		t.Errorf("expected found=true, got ok=%v err=%v", ok, err)
	}

	absent := BooleanVar{Source: StaticValue(""), Kind: Found, Comparand: StaticValue("")}
	ok, err = absent.Evaluate(Request, nil, nil)
	if err != nil || ok {
		t.Errorf("expected found=false, got ok=%v err=%v", ok, err)
	}
}

func TestBooleanVar_EmptySourceNeverMatchesExceptFound(t *testing.T) {
	v := BooleanVar{Source: StaticValue(""), Kind: Exact, Comparand: StaticValue("")}
	ok, err := v.Evaluate(Request, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("an empty source should never match, even against an empty comparand")
	}
}

func TestParseMatchKind(t *testing.T) {
	cases := []struct {
		token string
		want  MatchKind
		ok    bool
	}{
		{"str", Exact, true},
		{"beg", Prefix, true},
		{"sub", Substr, true},
		{"found", Found, true},
		{"nope", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseMatchKind(tc.token)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseMatchKind(%q) = (%v, %v), want (%v, %v)", tc.token, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBooleanProgram_DuplicateDefine(t *testing.T) {
	bp := NewBooleanProgram()
	v := BooleanVar{Source: StaticValue("x"), Kind: Found, Comparand: StaticValue("")}
	if !bp.Define("a", v) {
		t.Fatal("first definition of \"a\" should succeed")
	}
	if bp.Define("a", v) {
		t.Error("second definition of \"a\" should fail")
	}
}

func TestBooleanProgram_Names_InsertionOrder(t *testing.T) {
	bp := NewBooleanProgram()
	v := BooleanVar{Source: StaticValue("x"), Kind: Found, Comparand: StaticValue("")}
	bp.Define("c", v)
	bp.Define("a", v)
	bp.Define("b", v)

	names := bp.Names()
	want := []string{"c", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}
