package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plreport/plreport/internal/cli"
	"github.com/plreport/plreport/internal/cli/commands"
)

const sampleLog = `% PL-Unit: alpha ....... done
% PL-Unit: beta ...
	assertion failed for goal foo(X)
ERROR: /work/beta.pl:7:: test beta: failed
... done
% PL-Unit: gamma ... done
`

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() { commands.ExitCode = 0 })

	root := cli.NewRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestEndToEnd_ReportFromLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logPath, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "test_detail.xml")

	if err := execute(t, "report", logPath, "-o", outPath, "-q"); err != nil {
		t.Fatalf("plreport report failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`tests="3"`,
		`failures="1"`,
		`name="alpha"`,
		`name="beta"`,
		`name="gamma"`,
		`<failure>`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}

	// The failing case carries the full captured output
	if !strings.Contains(content, "assertion failed for goal") {
		t.Errorf("failure detail missing captured output:\n%s", content)
	}
}

func TestEndToEnd_CompilerErrorHaltsRun(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	content := "ERROR: /work/broken.pl:3:1: syntax error: operator expected\n" +
		"% PL-Unit: never_reached ... done\n"
	if err := os.WriteFile(logPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "test_detail.xml")

	if err := execute(t, "report", logPath, "-o", outPath, "-q"); err != nil {
		t.Fatalf("plreport report failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), `tests="1"`) {
		t.Errorf("expected only the compiler error case:\n%s", data)
	}
	if strings.Contains(string(data), "never_reached") {
		t.Errorf("test after compiler error should not be reported:\n%s", data)
	}
}

func TestEndToEnd_WebhookDelivery(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logPath, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "test_detail.xml")

	err := execute(t, "report", logPath, "-o", outPath, "-q",
		"--webhook-url", server.URL)
	if err != nil {
		t.Fatalf("plreport report failed: %v", err)
	}

	if len(received) == 0 {
		t.Fatal("webhook not delivered for failing run")
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(received, &payload); err != nil {
		t.Fatalf("webhook payload not JSON: %v", err)
	}
	if _, ok := payload["summary"]; !ok {
		t.Errorf("webhook payload missing summary: %v", payload)
	}
}

func TestEndToEnd_BatchRun(t *testing.T) {
	dir := t.TempDir()
	inputs := filepath.Join(dir, "inputs")
	if err := os.Mkdir(inputs, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(inputs, name), []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := execute(t, "run", "--inputs", inputs, "txt", "--", "true"); err != nil {
		t.Fatalf("plreport run failed: %v", err)
	}
	if commands.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", commands.ExitCode)
	}
}
