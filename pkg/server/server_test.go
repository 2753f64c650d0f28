package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/export/exporter"
	"sheetport-hq/sheetport/pkg/export/schema"
	"sheetport-hq/sheetport/pkg/source"
	"sheetport-hq/sheetport/pkg/telemetry/health"
	"sheetport-hq/sheetport/pkg/telemetry/metrics"
)

func testServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Export.OutputDir = t.TempDir()

	reg := schema.NewRegistry()
	if err := source.Register(reg); err != nil {
		t.Fatal(err)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	exp := exporter.New(reg, cfg.Export, exporter.WithMetrics(collector))

	checker := health.New(time.Second)
	checker.Register("output_dir", health.WritableDirCheck(cfg.Export.OutputDir))

	srv := NewServer(cfg, Deps{
		Exporter: exp,
		Source:   source.NewMemoryProvider(source.DemoDataset()),
		Health:   checker,
		Metrics:  collector,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, cfg
}

func TestServer_ExportThenDownload(t *testing.T) {
	ts, _ := testServer(t)

	form := url.Values{
		"class":          {"Board"},
		"exportType":     {"csv"},
		"exportFileName": {"boards"},
		"exportGroup":    {"summary"},
	}
	resp, err := http.PostForm(ts.URL+"/export", form)
	if err != nil {
		t.Fatalf("POST /export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect, got %d", resp.StatusCode)
	}
	if resp.Request.URL.Path != "/download" {
		t.Errorf("expected redirect to /download, ended at %s", resp.Request.URL.Path)
	}

	body, _ := io.ReadAll(resp.Body)
	want := "id,name,lists,cards\n" +
		"1,Roadmap,\"Todo\nDone\nBacklog\",3\n" +
		"2,Support,Inbox,1\n"
	if string(body) != want {
		t.Errorf("expected body %q, got %q", want, string(body))
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestServer_Routes(t *testing.T) {
	ts, _ := testServer(t)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "health", path: "/health", code: http.StatusOK},
		{name: "ready", path: "/ready", code: http.StatusOK},
		{name: "metrics", path: "/metrics", code: http.StatusOK},
		{name: "export redirect", path: "/export?class=Card&exportType=xlsx", code: http.StatusSeeOther},
		{name: "non-exportable type", path: "/export?class=Swimlane", code: http.StatusUnprocessableEntity},
		{name: "unknown type", path: "/export?class=Nope", code: http.StatusUnprocessableEntity},
		{name: "bad format", path: "/export?class=Card&exportType=pdf", code: http.StatusBadRequest},
		{name: "download outside", path: "/download?path=%2Fetc%2Fpasswd", code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.code {
				t.Errorf("expected %d, got %d", tt.code, resp.StatusCode)
			}
		})
	}
}

func TestServer_StartShutdown(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Export.OutputDir = t.TempDir()
	srv := NewServer(cfg, Deps{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil && !strings.Contains(err.Error(), "closed") {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	if srv.IsRunning() {
		t.Error("expected server to be stopped")
	}
}
