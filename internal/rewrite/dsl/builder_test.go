package dsl

import (
	"testing"

	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

func TestBuild_SetHeaderReplacesExistingValue(t *testing.T) {
	program := Build("http-request set-header x-foo b")
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
	headers := host.NewMemoryHeaderMap(true).WithHeader("x-foo", "a")
	for _, r := range program.RequestRules {
		if _, err := r.Execute(program.RequestBools, headers, nil); err != nil {
			t.Fatalf("unexpected rule error: %v", err)
		}
	}
	got, _ := headers.GetAllAsCommaString("x-foo")
	if got != "b" {
		t.Errorf("got %q, want %q", got, "b")
	}
}

func TestBuild_AppendHeaderAddsToExistingValue(t *testing.T) {
	program := Build("http-request append-header x-foo b c")
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
	headers := host.NewMemoryHeaderMap(true).WithHeader("x-foo", "a")
	for _, r := range program.RequestRules {
		r.Execute(program.RequestBools, headers, nil)
	}
	got, _ := headers.GetAllAsCommaString("x-foo")
	if got != "a,b,c" {
		t.Errorf("got %q, want %q", got, "a,b,c")
	}
}

func TestBuild_SetBoolGatesSetHeaderExecution(t *testing.T) {
	config := "http-request set-bool is_api %[hdr(host)] -m str api.example.com\n" +
		"http-request set-header x-route api if is_api\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}

	matching := host.NewMemoryHeaderMap(true).WithHeader("host", "api.example.com")
	for _, r := range program.RequestRules {
		r.Execute(program.RequestBools, matching, nil)
	}
	if got, ok := matching.GetAllAsCommaString("x-route"); !ok || got != "api" {
		t.Errorf("got x-route=%q ok=%v, want \"api\"", got, ok)
	}

	other := host.NewMemoryHeaderMap(true).WithHeader("host", "other.example.com")
	for _, r := range program.RequestRules {
		r.Execute(program.RequestBools, other, nil)
	}
	if _, ok := other.GetAllAsCommaString("x-route"); ok {
		t.Error("x-route must not be set when is_api is false")
	}
}

func TestBuild_SetPathPreservesExistingQuery(t *testing.T) {
	program := Build("http-request set-path /new")
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
	headers := host.NewMemoryHeaderMap(true).WithPath("/old?u=1")
	for _, r := range program.RequestRules {
		r.Execute(program.RequestBools, headers, nil)
	}
	got, _ := headers.Path()
	if got != "/new?u=1" {
		t.Errorf("got %q, want %q", got, "/new?u=1")
	}
}

func TestBuild_AndBindsTighterThanOrInConditionEvaluation(t *testing.T) {
	config := "http-request set-bool a %[hdr(h)] -m str x\n" +
		"http-request set-bool b %[hdr(h)] -m str y\n" +
		"http-request set-bool c %[hdr(h)] -m found\n" +
		"http-request set-header marker ok if a or b and c\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}

	for _, h := range []string{"x", "y", "z"} {
		headers := host.NewMemoryHeaderMap(true).WithHeader("h", h)
		for _, r := range program.RequestRules {
			r.Execute(program.RequestBools, headers, nil)
		}
		got, ok := headers.GetAllAsCommaString("marker")
		wantSet := h == "x" || h == "y"
		if ok != wantSet {
			t.Errorf("h=%s: marker set=%v, want %v", h, ok, wantSet)
		}
		if ok && got != "ok" {
			t.Errorf("h=%s: marker=%q, want %q", h, got, "ok")
		}
	}
}

func TestBuild_SetMetadataThenReadBackInSetHeader(t *testing.T) {
	config := "http-request set-metadata saved %[hdr(mock_header)]\n" +
		"http-request set-header x-saved %[metadata(saved)]\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
	headers := host.NewMemoryHeaderMap(true).WithHeader("mock_header", "hello")
	meta := host.NewMemoryMetadataStore()
	for _, r := range program.RequestRules {
		if _, err := r.Execute(program.RequestBools, headers, meta); err != nil {
			t.Fatalf("unexpected rule error: %v", err)
		}
	}
	got, _ := headers.GetAllAsCommaString("x-saved")
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestBuild_MissingArgsIsFatalConfigError(t *testing.T) {
	program := Build("http-request set-header")
	if program.Ready() {
		t.Fatal("expected the program to fail to build")
	}
	ce, ok := asConfigError(program.Err)
	if !ok || ce.Kind != model.KindMissingArgs {
		t.Errorf("expected a MissingArgs ConfigError, got %v", program.Err)
	}
}

func TestBuild_UrlpOnResponseIsFatalConfigError(t *testing.T) {
	program := Build("http-response set-header x %[urlp(p)]")
	if program.Ready() {
		t.Fatal("expected the program to fail to build")
	}
	ce, ok := asConfigError(program.Err)
	if !ok || ce.Kind != model.KindUrlpOnResponse {
		t.Errorf("expected an UrlpOnResponse ConfigError, got %v", program.Err)
	}
}

func TestBuild_OutOfRangeHdrPositionSkipsRuleButContinues(t *testing.T) {
	config := "http-request set-header x %[hdr(h,5)]\n" +
		"http-request set-header y fixed\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
	headers := host.NewMemoryHeaderMap(true).WithHeader("h", "only-one")

	var errs int
	for _, r := range program.RequestRules {
		if _, err := r.Execute(program.RequestBools, headers, nil); err != nil {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("expected exactly one rule to error (out-of-range hdr position), got %d", errs)
	}
	got, ok := headers.GetAllAsCommaString("y")
	if !ok || got != "fixed" {
		t.Errorf("a later rule must still execute after an earlier rule errors, got y=%q ok=%v", got, ok)
	}
}

func TestBuild_DuplicateBooleanIsFatal(t *testing.T) {
	config := "http-request set-bool a %[hdr(h)] -m found\n" +
		"http-request set-bool a %[hdr(h)] -m found\n"
	program := Build(config)
	if program.Ready() {
		t.Fatal("expected the program to fail to build")
	}
	ce, ok := asConfigError(program.Err)
	if !ok || ce.Kind != model.KindDuplicateBoolean {
		t.Errorf("expected a DuplicateBoolean ConfigError, got %v", program.Err)
	}
}

func TestBuild_BooleanVisibleRegardlessOfDeclarationOrder(t *testing.T) {
	// The "if" clause appears on a line before its set-bool definition.
	config := "http-request set-header marker ok if is_api\n" +
		"http-request set-bool is_api %[hdr(host)] -m str api.example.com\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}
}

func TestBuild_UndefinedBooleanIsFatal(t *testing.T) {
	program := Build("http-request set-header marker ok if never_defined")
	if program.Ready() {
		t.Fatal("expected the program to fail to build")
	}
	ce, ok := asConfigError(program.Err)
	if !ok || ce.Kind != model.KindUndefinedBoolean {
		t.Errorf("expected an UndefinedBoolean ConfigError, got %v", program.Err)
	}
}

func TestBuild_DirectionIsolation(t *testing.T) {
	config := "http-request set-header x req-only\n" +
		"http-response set-header x resp-only\n"
	program := Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}

	reqHeaders := host.NewMemoryHeaderMap(true)
	for _, r := range program.RequestRules {
		r.Execute(program.RequestBools, reqHeaders, nil)
	}
	got, _ := reqHeaders.GetAllAsCommaString("x")
	if got != "req-only" {
		t.Errorf("got %q, want %q", got, "req-only")
	}

	respHeaders := host.NewMemoryHeaderMap(false)
	for _, r := range program.ResponseRules {
		r.Execute(program.ResponseBools, respHeaders, nil)
	}
	got, _ = respHeaders.GetAllAsCommaString("x")
	if got != "resp-only" {
		t.Errorf("got %q, want %q", got, "resp-only")
	}
}

// asConfigError unwraps the *multierror.Error Program.Err aggregates down
// to a single model.ConfigError, for tests that only expect one.
func asConfigError(err error) (model.ConfigError, bool) {
	type unwrapper interface {
		WrappedErrors() []error
	}
	if u, ok := err.(unwrapper); ok {
		errs := u.WrappedErrors()
		if len(errs) != 1 {
			return model.ConfigError{}, false
		}
		ce, ok := errs[0].(model.ConfigError)
		return ce, ok
	}
	ce, ok := err.(model.ConfigError)
	return ce, ok
}
