package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSONBytes(t *testing.T) {
	out := captureOutput(t, func() {
		printJSONBytes([]byte(`{"a":1}`))
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestPrintJSONBytesMalformedFallsBack(t *testing.T) {
	out := captureOutput(t, func() {
		printJSONBytes([]byte("not json"))
	})

	if strings.TrimSpace(out) != "not json" {
		t.Fatalf("expected raw passthrough, got %q", out)
	}
}

func TestJobsCommandPostsToAPI(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"processed":0}`))
	}))
	defer server.Close()

	cmd := rootCmd()
	cmd.SetArgs([]string{"jobs", "fd-interest", "--url", server.URL})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotMethod != http.MethodPost || gotPath != "/api/v1/jobs/fd-interest" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(out, `"processed": 0`) {
		t.Fatalf("expected pretty-printed report, got %q", out)
	}
}

func TestReconcileAccountCommandFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"account not found"}`))
	}))
	defer server.Close()

	cmd := rootCmd()
	cmd.SetArgs([]string{"reconcile", "account", "S-001-001-99999", "--url", server.URL})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
