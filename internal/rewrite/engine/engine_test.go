package engine

import (
	"testing"

	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
	"github.com/ritamzico/headerrewrite/internal/rewrite/model"
)

type recordingLogger struct {
	calls int
}

func (l *recordingLogger) LogRuleError(model.Direction, model.Rule, error) {
	l.calls++
}

func TestFilter_BypassOnErroredProgram(t *testing.T) {
	program := &model.Program{Err: model.NewConfigError(model.KindMissingArgs, 1, "too few args")}
	filter := New(program, nil)

	if filter.Ready() {
		t.Fatal("an errored program must not report Ready")
	}

	headers := host.NewMemoryHeaderMap(true).WithHeader("x-foo", "a")
	filter.ApplyRequest(headers, nil)

	got, _ := headers.GetAllAsCommaString("x-foo")
	if got != "a" {
		t.Errorf("bypassed filter must not mutate headers, got %q", got)
	}
}

func TestFilter_AppliesRequestRulesOnly(t *testing.T) {
	program := &model.Program{
		RequestRules:  []model.Rule{&model.SetHeaderRule{Dir: model.Request, Key: model.StaticValue("x"), Value: model.StaticValue("req")}},
		ResponseRules: []model.Rule{&model.SetHeaderRule{Dir: model.Response, Key: model.StaticValue("x"), Value: model.StaticValue("resp")}},
		RequestBools:  model.NewBooleanProgram(),
		ResponseBools: model.NewBooleanProgram(),
	}
	filter := New(program, nil)

	reqHeaders := host.NewMemoryHeaderMap(true)
	filter.ApplyRequest(reqHeaders, nil)
	got, _ := reqHeaders.GetAllAsCommaString("x")
	if got != "req" {
		t.Errorf("got %q, want %q", got, "req")
	}

	respHeaders := host.NewMemoryHeaderMap(false)
	filter.ApplyResponse(respHeaders, nil)
	got, _ = respHeaders.GetAllAsCommaString("x")
	if got != "resp" {
		t.Errorf("got %q, want %q", got, "resp")
	}
}

func TestFilter_LogsAndContinuesOnRuleError(t *testing.T) {
	program := &model.Program{
		RequestRules: []model.Rule{
			&model.SetMetadataRule{Dir: model.Request, Key: model.StaticValue("k"), Value: model.StaticValue("")}, // errors: empty value
			&model.SetHeaderRule{Dir: model.Request, Key: model.StaticValue("x"), Value: model.StaticValue("still-runs")},
		},
		RequestBools:  model.NewBooleanProgram(),
		ResponseBools: model.NewBooleanProgram(),
	}
	logger := &recordingLogger{}
	filter := New(program, logger)

	headers := host.NewMemoryHeaderMap(true)
	filter.ApplyRequest(headers, host.NewMemoryMetadataStore())

	if logger.calls != 1 {
		t.Errorf("got %d logged rule errors, want 1", logger.calls)
	}
	got, _ := headers.GetAllAsCommaString("x")
	if got != "still-runs" {
		t.Errorf("a failed rule must not stop later rules from executing, got x=%q", got)
	}
}
