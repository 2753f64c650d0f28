package logging

import (
	"context"
	"testing"
)

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	if GetRequestID(ctx) != "" || GetExportType(ctx) != "" || GetTraceID(ctx) != "" {
		t.Fatal("expected empty values on bare context")
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithExport(ctx, "Card", "xlsx")
	ctx = WithTraceID(ctx, "trace-1")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"request id", GetRequestID(ctx), "req-1"},
		{"export type", GetExportType(ctx), "Card"},
		{"export format", GetExportFormat(ctx), "xlsx"},
		{"trace id", GetTraceID(ctx), "trace-1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	if got := len(contextAttrs(ctx)); got != 4 {
		t.Errorf("len(contextAttrs) = %d, want 4", got)
	}
}
