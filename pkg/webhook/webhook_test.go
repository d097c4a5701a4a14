package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plreport/plreport/pkg/classify"
	"github.com/plreport/plreport/pkg/report"
)

func newTestReport() *report.Report {
	return report.NewReport(&classify.Result{
		Cases: []classify.TestCase{
			{Name: "alpha", Status: classify.StatusPassed},
			{Name: "beta", Status: classify.StatusFailed, Detail: "ERROR: b.pl:7::\n"},
		},
		Passed:         1,
		Failed:         1,
		LinesProcessed: 10,
	}, report.Metadata{
		SuiteName:   "nightly",
		Sources:     []string{"test.log"},
		GeneratedAt: time.Now(),
		Duration:    time.Second,
	})
}

func TestClient_Send_Success(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedAuth = r.Header.Get("Authorization")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(), SendOptions{
		URL: server.URL,
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}
	if receivedAuth != "" {
		t.Errorf("expected no auth header, got %s", receivedAuth)
	}

	// Verify payload is valid JSON containing expected fields
	var payload map[string]interface{}
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("failed to parse received payload: %v", err)
	}
	summary, ok := payload["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("payload missing summary: %v", payload)
	}
	if summary["tests"] != float64(2) {
		t.Errorf("summary.tests = %v, want 2", summary["tests"])
	}
}

func TestClient_Send_BearerToken(t *testing.T) {
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(), SendOptions{
		URL:   server.URL,
		Token: "secret123",
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if receivedAuth != "Bearer secret123" {
		t.Errorf("Authorization = %q, want Bearer secret123", receivedAuth)
	}
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(), SendOptions{
		URL: server.URL,
	})

	if resp.Success() {
		t.Error("expected failure for 500 response")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_ConnectionRefused(t *testing.T) {
	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(), SendOptions{
		URL:     "http://127.0.0.1:1/hook",
		Timeout: time.Second,
	})

	if resp.Success() {
		t.Error("expected failure for unreachable endpoint")
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}
