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

	"lessonpress/internal/analyzer"
	"lessonpress/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeLedger(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usage.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReportText(t *testing.T) {
	out, err := run(t, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Content Library Usage", "TYPE", "Recommendations"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReportJSONFromFile(t *testing.T) {
	path := writeLedger(t, "usage:\n  text: [paragraph]\n  quote: [quote_a, quote_b]\n")
	out, err := run(t, "report", "--json", "--ledger", path)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var report analyzer.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.UsedBlocks != 2 || report.UsedVariants != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestReportLive(t *testing.T) {
	orig := liveLedger
	t.Cleanup(func() { liveLedger = orig })

	liveLedger = func(context.Context) (analyzer.Ledger, error) {
		return analyzer.Ledger{models.BlockTypeDivider: {"divider"}}, nil
	}
	out, err := run(t, "report", "--live", "--json")
	if err != nil {
		t.Fatalf("report --live: %v", err)
	}
	if !strings.Contains(out, `"usedBlocks": 1`) {
		t.Errorf("live report:\n%s", out)
	}

	liveLedger = func(context.Context) (analyzer.Ledger, error) {
		return nil, errors.New("connection refused")
	}
	if _, err := run(t, "report", "--live"); err == nil || !strings.Contains(err.Error(), "read live usage") {
		t.Errorf("expected live read error, got %v", err)
	}

	if _, err := run(t, "report", "--live", "--ledger", "x.yaml"); err == nil {
		t.Error("--live and --ledger should be mutually exclusive")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ledger  string
		wantErr bool
		wantOut string
	}{
		{"default ledger", "", false, "ledger ok"},
		{"good file", "usage:\n  list: [bulleted]\n", false, "ledger ok: 1 block types"},
		{"unknown variant", "usage:\n  list: [spiral]\n", true, `variant "spiral" is not in the catalog`},
		{"unknown type", "usage:\n  hologram: [a]\n", true, `block type "hologram" is not in the catalog`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"validate"}
			if tt.ledger != "" {
				args = append(args, "--ledger", writeLedger(t, tt.ledger))
			}
			out, err := run(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errLedgerInvalid) {
				t.Errorf("err = %v, want errLedgerInvalid", err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output %q missing %q", out, tt.wantOut)
			}
		})
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(models.BlockTypes)+1 {
		t.Errorf("got %d lines, want header plus %d types", len(lines), len(models.BlockTypes))
	}
	if !strings.Contains(out, "statement-a") || !strings.Contains(out, "yes") {
		t.Errorf("catalog output:\n%s", out)
	}
}
