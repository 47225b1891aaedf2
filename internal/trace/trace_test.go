package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "": LevelOff} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must not emit file events")
	}
	if !LevelPhase.ShouldEmit(ScopeDriver) || !LevelDetail.ShouldEmit(ScopeFile) {
		t.Error("expected emit")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("off must not emit")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "check", 0)
	file := Begin(tr, ScopeFile, "parse:a.nwk", root.ID())
	file.WithExtra("tokens", "4").WithExtra("depth", "1")
	file.End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ check") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← parse:a.nwk") || !strings.Contains(lines[2], "(ok) {depth=1, tokens=4}") {
		t.Errorf("unexpected end line %q", lines[2])
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	span := Begin(tr, ScopeFile, "parse:a.nwk", 0)
	if span.ID() != 0 {
		t.Error("file span must be disabled at phase level")
	}
	span.End("")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopePass, "parse", 0).End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["kind"] != "end" || ev["scope"] != "pass" || ev["detail"] != "done" || ev["seq"] != float64(2) {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Fatal("tracer not found in context")
	}

	ctx, root := Start(ctx, ScopeDriver, "parse")
	if CurrentSpan(ctx).SpanID != root.ID() {
		t.Fatalf("span context not propagated")
	}
	_, child := Start(ctx, ScopeFile, "parse:x.nwk")
	child.End("")
	root.End("")

	if !strings.Contains(buf.String(), `"parent_id":`) {
		t.Errorf("child must carry parent id:\n%s", buf.String())
	}
}

func TestNopDefaults(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("expected Nop tracer")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Errorf("LevelOff must give a disabled tracer, got %v %v", tr, err)
	}
	if d := Begin(Nop, ScopeDriver, "x", 0).End(""); d != 0 {
		t.Errorf("nop span duration must be 0, got %v", d)
	}
}
