package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"newick/internal/driver"
	"newick/internal/tree"
)

// execute запускает rootCmd с args и возвращает stdout, stderr и ошибку.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.ExecuteContext(context.Background())
	runCleanups()
	return stdout.String(), stderr.String(), err
}

// resetFlags возвращает флаги к значениям по умолчанию: rootCmd общий для
// всех тестов, а Changed иначе переживает вызов.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestReadUIMode(t *testing.T) {
	for input, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(input)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if shouldUseTUI(uiModeOff) || !shouldUseTUI(uiModeOn) {
		t.Error("explicit modes must win over terminal detection")
	}
}

func TestResolveColor(t *testing.T) {
	cases := []struct {
		value string
		tty   bool
		want  bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"off", true, false},
	}
	for _, c := range cases {
		got, err := resolveColor(c.value, c.tty)
		if err != nil || got != c.want {
			t.Errorf("resolveColor(%q, %v) = %v, %v", c.value, c.tty, got, err)
		}
	}
	if _, err := resolveColor("rainbow", true); err == nil {
		t.Error("expected error for unknown color mode")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Errorf("nil error: got %d", got)
	}
	if got := exitCode(errMalformed); got != 1 {
		t.Errorf("malformed: got %d", got)
	}
	if got := exitCode(errors.New("boom")); got != 2 {
		t.Errorf("generic error: got %d", got)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, driver.Summary{Files: 3, OK: 2, Failed: 1, Cached: 1, Leaves: 5, Nodes: 3, MaxDepth: 2})
	want := "checked 3 files: 2 ok, 1 failed (1 cached)\ntrees: 5 leaves, 3 nodes, max depth 2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printSummary(&buf, driver.Summary{Files: 1, OK: 1, Warned: 1, Leaves: 1, MaxDepth: 1})
	if got := buf.String(); !strings.HasPrefix(got, "checked 1 file: 1 ok, 0 failed, 1 with warnings\n") {
		t.Errorf("got %q", got)
	}
}

func TestDemoCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "", "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if out != "((A,B),C,((D,E),F))\n" {
		t.Errorf("unexpected demo output %q", out)
	}
}

func TestParseStdinJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "(A, (B, C))", "parse", "--format", "json", "-")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var w tree.Wire
	if err := json.Unmarshal([]byte(out), &w); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	back, err := tree.FromWire(w)
	if err != nil {
		t.Fatal(err)
	}
	if got := tree.Render(back); got != "(A,(B,C))" {
		t.Errorf("got %q", got)
	}
}

func TestCheckReportsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "good.nwk"), "((A, B), C);\n")
	writeFile(t, filepath.Join(dir, "bad.nwk"), "(A, B\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), ")")

	out, errOut, err := execute(t, "", "check", "--ui", "off", ".")
	if !errors.Is(err, errMalformed) {
		t.Fatalf("expected malformed exit, got %v", err)
	}
	if !strings.Contains(out, "checked 2 files: 1 ok, 1 failed") {
		t.Errorf("unexpected summary %q", out)
	}
	if !strings.Contains(errOut, "SYN2002") {
		t.Errorf("expected unclosed paren diagnostic, got %q", errOut)
	}
}

func TestCheckJSONDiagnostics(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "a.nwk"), "A)")
	writeFile(t, filepath.Join(dir, "b.nwk"), "")

	out, _, err := execute(t, "", "check", "--ui", "off", "--diag-format", "json", ".")
	if !errors.Is(err, errMalformed) {
		t.Fatalf("expected malformed exit, got %v", err)
	}
	var payload struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Location struct {
				File string `json:"file"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if payload.Count != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", payload.Count)
	}
	// порядок по путям, а не по порядку загрузки
	if payload.Diagnostics[0].Code != "SYN2001" || payload.Diagnostics[1].Code != "SYN2003" {
		t.Errorf("unexpected order %+v", payload.Diagnostics)
	}
}

func TestManifestErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "newick.toml"), "[parse]\nunknown_key = 1\n")

	_, errOut, err := execute(t, "", "tokenize", "-")
	var exit *exitError
	if !errors.As(err, &exit) || exit.code != 2 {
		t.Fatalf("expected exit status 2, got %v", err)
	}
	if !strings.Contains(errOut, "PRJ5001") {
		t.Errorf("expected PRJ5001 diagnostic, got %q", errOut)
	}
}

func TestParseKeepsNamesUnlessNFC(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "units.nwk")
	writeFile(t, path, "(\u212B,\u2126)\n")

	out, _, err := execute(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.TrimSpace(out); got != "(\u212B,\u2126)" {
		t.Errorf("names changed without --nfc: %q", got)
	}

	out, _, err = execute(t, "", "parse", "--nfc", path)
	if err != nil {
		t.Fatalf("parse --nfc: %v", err)
	}
	if got := strings.TrimSpace(out); got != "(\u00C5,\u03A9)" {
		t.Errorf("--nfc: got %q", got)
	}

	// stdin никогда не нормализуется
	out, _, err = execute(t, "(\u212B)", "parse", "--nfc", "-")
	if err != nil {
		t.Fatalf("parse -: %v", err)
	}
	if got := strings.TrimSpace(out); got != "(\u212B)" {
		t.Errorf("stdin: got %q", got)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "a.nwk")
	writeFile(t, path, "(A,B)\n")

	if _, _, err := execute(t, "", "parse", "--cache", path); err != nil {
		t.Fatalf("parse --cache: %v", err)
	}
	entries := filepath.Join(dir, ".newick-cache", "trees")
	if _, err := os.Stat(entries); err != nil {
		t.Fatalf("expected cache entries: %v", err)
	}

	if _, _, err := execute(t, "", "parse", "--clear-cache", path); err != nil {
		t.Fatalf("parse --clear-cache: %v", err)
	}
	if _, err := os.Stat(entries); !os.IsNotExist(err) {
		t.Errorf("cache entries survived --clear-cache: %v", err)
	}
}
