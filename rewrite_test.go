package headerrewrite_test

import (
	"testing"

	headerrewrite "github.com/ritamzico/headerrewrite"
)

func TestBuildAndApply_EndToEnd(t *testing.T) {
	config := "http-request set-bool is_api %[hdr(host)] -m str api.example.com\n" +
		"http-request set-header x-route api if is_api\n" +
		"http-response append-header x-served-by edge-1 edge-2\n"

	program := headerrewrite.Build(config)
	if !program.Ready() {
		t.Fatalf("expected program to build, got err: %v", program.Err)
	}

	filter := headerrewrite.NewFilter(program, headerrewrite.DiscardLogger)
	if !filter.Ready() {
		t.Fatal("expected filter to be ready")
	}

	req := headerrewrite.NewMemoryHeaderMap(true).WithHeader("host", "api.example.com")
	meta := headerrewrite.NewMemoryMetadataStore()
	filter.ApplyRequest(req, meta)

	if got, ok := req.GetAllAsCommaString("x-route"); !ok || got != "api" {
		t.Errorf("got (%q, %v), want (\"api\", true)", got, ok)
	}

	resp := headerrewrite.NewMemoryHeaderMap(false)
	filter.ApplyResponse(resp, meta)
	if got, ok := resp.GetAllAsCommaString("x-served-by"); !ok || got != "edge-1,edge-2" {
		t.Errorf("got (%q, %v), want (\"edge-1,edge-2\", true)", got, ok)
	}
}

func TestBuildAndApply_ErroredProgramBypasses(t *testing.T) {
	program := headerrewrite.Build("http-request set-header")
	if program.Ready() {
		t.Fatal("expected the program to fail to build")
	}

	filter := headerrewrite.NewFilter(program, nil)
	req := headerrewrite.NewMemoryHeaderMap(true).WithHeader("x", "unchanged")
	filter.ApplyRequest(req, headerrewrite.NewMemoryMetadataStore())

	if got, _ := req.GetAllAsCommaString("x"); got != "unchanged" {
		t.Errorf("expected bypass to leave headers untouched, got %q", got)
	}
}
