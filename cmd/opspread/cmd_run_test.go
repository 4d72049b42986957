package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/opspread/internal/config"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/logging"
	"github.com/nvandessel/opspread/internal/simulation"
)

func TestRunCmd_Text(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "run", "--length", "8", "--periods", "3", "--seed", "5")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if lines[0] != "0  XIIIIIII  7 1 0 0" {
		t.Errorf("line 0 = %q", lines[0])
	}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 6 {
			t.Fatalf("line %d has %d fields: %q", i, len(fields), line)
		}
		if len(fields[1]) != 8 {
			t.Errorf("line %d: pauli string %q has wrong length", i, fields[1])
		}
	}
}

func TestRunCmd_JSON(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "run", "--json", "--length", "12", "--periods", "4", "--initial", "Z@6", "--classes", "20")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var result simulation.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(result.Periods) != 4 || result.ChainLength != 12 || result.Classes != 20 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Initial.Pauli != "IIIIIIZIIIII" {
		t.Errorf("initial = %s", result.Initial.Pauli)
	}
	for _, pr := range result.Periods {
		if pr.Counts.Total() != 12 {
			t.Errorf("period %d counts %v do not sum to 12", pr.Period, pr.Counts)
		}
	}
}

func TestRunCmd_InvalidConfiguration(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name string
		args []string
	}{
		{"too many periods", []string{"run", "--periods", "11"}},
		{"zero length", []string{"run", "--length", "0"}},
		{"too long", []string{"run", "--length", "1000"}},
		{"bad phase rule", []string{"run", "--phase-rule", "fast"}},
		{"bad classes", []string{"run", "--classes", "19"}},
		{"bad initial", []string{"run", "--length", "4", "--initial", "X@4"}},
		{"duplicate initial site", []string{"run", "--length", "4", "--initial", "X@1,Z@1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestRunCmd_MetricsAndTrace(t *testing.T) {
	isolateHome(t)
	traceDir := t.TempDir()

	_, stderr, err := execute(t, "run", "--length", "6", "--periods", "2",
		"--metrics", "--trace-dir", traceDir, "--log-level", "debug")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "opspread_periods_total 2") {
		t.Errorf("metrics missing from stderr:\n%s", stderr)
	}
	if !strings.Contains(stderr, "period completed") {
		t.Errorf("debug logs missing from stderr:\n%s", stderr)
	}

	data, err := os.ReadFile(filepath.Join(traceDir, logging.TraceFileName))
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("trace has %d lines, want 2", got)
	}
}

func TestRunCmd_EnvAndFlagPrecedence(t *testing.T) {
	isolateHome(t)
	t.Setenv("OPSPREAD_LENGTH", "9")
	t.Setenv("OPSPREAD_PERIODS", "2")

	// Environment sets the length; the flag overrides the periods.
	out, _, err := execute(t, "run", "--json", "--periods", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var result simulation.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if result.ChainLength != 9 || len(result.Periods) != 1 {
		t.Errorf("ChainLength = %d, periods = %d; want 9, 1", result.ChainLength, len(result.Periods))
	}
}

func TestApplyRunFlags_OnlyChanged(t *testing.T) {
	cmd := newRunCmd()
	if err := cmd.ParseFlags([]string{"--seed", "42", "--phase-rule", "textbook"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg := config.Default()
	cfg.Simulation.ChainLength = 33
	if err := applyRunFlags(cmd, cfg); err != nil {
		t.Fatalf("applyRunFlags: %v", err)
	}
	if cfg.Simulation.Seed != 42 || cfg.Simulation.PhaseRule != constants.PhaseRuleTextbook {
		t.Errorf("flags not applied: %+v", cfg.Simulation)
	}
	if cfg.Simulation.ChainLength != 33 {
		t.Errorf("unchanged flag overrode config: ChainLength = %d", cfg.Simulation.ChainLength)
	}
}

func TestRunCmd_Render(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "run", "--length", "10", "--periods", "2", "--render", "text")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[0] != "  0 |X.........| 1" {
		t.Errorf("unexpected rendering:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "run.html")
	if _, _, err := execute(t, "run", "--length", "10", "--periods", "2", "--render", "html", "--out", path); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendering: %v", err)
	}
	if !strings.Contains(string(data), "<table>") {
		t.Error("HTML rendering missing table")
	}

	if _, _, err := execute(t, "run", "--render", "svg"); err == nil {
		t.Error("expected error for unknown render format")
	}
	if _, _, err := execute(t, "run", "--render", "html", "--open"); err == nil {
		t.Error("expected error for --open without --out")
	}
}
