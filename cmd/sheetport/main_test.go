package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sheetport-hq/sheetport/pkg/cli"
)

// execute runs the root command with args against a memory source and
// returns stdout. Flag state is reset between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "export:\n  output_dir: " + filepath.Join(dir, "public") + "\nsource:\n  driver: memory\ntelemetry:\n  logging:\n    level: warn\n  metrics:\n    enabled: false\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return stdout.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "export", "--type", "Board", "--format", "csv", "--group", "summary", "--out", dir, "-o", "json")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var summary []exportRow
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("invalid json output %q: %v", out, err)
	}
	if len(summary) != 1 {
		t.Fatalf("expected 1 export, got %d", len(summary))
	}
	if want := filepath.Join(dir, "board.csv"); summary[0].Path != want {
		t.Errorf("expected path %s, got %s", want, summary[0].Path)
	}
	if summary[0].Rows != 2 {
		t.Errorf("expected 2 rows, got %d", summary[0].Rows)
	}

	data, err := os.ReadFile(summary[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	want := "id,name,lists,cards\n1,Roadmap,\"Todo\nDone\nBacklog\",3\n2,Support,Inbox,1\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "export", "--all", "--out", dir, "-o", "csv")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", out)
	}
	if lines[0] != "TYPE,ROWS,SHEETS,PATH" {
		t.Errorf("unexpected header %q", lines[0])
	}
	for _, name := range []string{"board.xlsx", "card.xlsx", "list.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "swimlane.xlsx")); !os.IsNotExist(err) {
		t.Error("non-exportable type must be skipped")
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no type", []string{"export"}},
		{"name with several types", []string{"export", "-t", "Board", "-t", "List", "--name", "x"}},
		{"unknown format", []string{"export", "-t", "Board", "--format", "ods"}},
		{"not exportable", []string{"export", "-t", "Swimlane"}},
		{"bad output", []string{"export", "-t", "Board", "-o", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "--out", t.TempDir())...)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := cli.ExitCode(err); code != cli.ExitUsage {
				t.Errorf("expected exit code %d, got %d (%v)", cli.ExitUsage, code, err)
			}
		})
	}
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types", "-o", "json")
	if err != nil {
		t.Fatalf("types failed: %v", err)
	}

	var list []typeRow
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid json output %q: %v", out, err)
	}

	exportable := map[string]bool{}
	for _, r := range list {
		exportable[r.Name] = r.Exportable
	}
	want := map[string]bool{"Board": true, "Card": true, "List": true, "Swimlane": false}
	for name, ok := range want {
		if got, found := exportable[name]; !found || got != ok {
			t.Errorf("expected %s exportable=%v, got %v (found %v)", name, ok, got, found)
		}
	}
}

func TestPruneCommand(t *testing.T) {
	out, err := execute(t, "prune", "--max-age", "1h", "-o", "json")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	var res pruneResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid json output %q: %v", out, err)
	}
	if len(res.Removed) != 0 {
		t.Errorf("expected nothing removed, got %v", res.Removed)
	}
}

func TestConfigCommands(t *testing.T) {
	out, err := execute(t, "config", "validate")
	if err != nil || strings.TrimSpace(out) != "Configuration valid" {
		t.Errorf("validate: %q, %v", out, err)
	}

	out, err = execute(t, "config", "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "driver: memory") {
		t.Errorf("expected effective source driver in %q", out)
	}
}

func TestServeDryRun(t *testing.T) {
	out, err := execute(t, "serve", "--dry-run", "--listen", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("serve --dry-run failed: %v", err)
	}
	if strings.TrimSpace(out) != "Configuration valid" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	origVersion := Version
	Version = "0.1.0-test"
	defer func() { Version = origVersion }()

	out, err := execute(t, "version", "-o", "json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	var info struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "0.1.0-test" {
		t.Errorf("Version = %q, want %q", info.Version, "0.1.0-test")
	}
}
