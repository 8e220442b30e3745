package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/catalog"
	"github.com/spigell/pathfinder/internal/demodata"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/report"
	"github.com/spigell/pathfinder/internal/session"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

// defaultPrompter picks the first option and keeps every default rating.
// With interrupt set, every selection behaves like Ctrl+C.
type defaultPrompter struct {
	selects   int
	interrupt bool
}

func (p *defaultPrompter) Select(string, []string) (int, error) {
	if p.interrupt {
		return 0, promptui.ErrInterrupt
	}
	p.selects++
	return 0, nil
}

func (p *defaultPrompter) Rate(_ string, _ ikigai.Scale, current int) (int, error) {
	return current, nil
}

func (p *defaultPrompter) Text(string) (string, error) { return "", nil }

func testConfig(dir string) *Config {
	return &Config{
		NoColor: true,
		Report: &ReportConfig{
			OutputDir: dir,
			PDF:       &PDFConfig{Enabled: true, Timeout: time.Second},
		},
		AI: &AIConfig{},
	}
}

func testRunner(t *testing.T) (*runner, *observer.ObservedLogs, *bytes.Buffer) {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	out := &bytes.Buffer{}
	prompter := &defaultPrompter{}
	now := func() time.Time { return testNow }

	r := &runner{
		config:   testConfig(t.TempDir()),
		logger:   zap.New(core),
		session:  session.New(ikigai.FlowComprehensive, testNow),
		prompter: prompter,
		demo:     &demodata.Table{},
		out:      out,
		now:      now,
	}
	r.wizard = session.NewWizard(session.Deps{
		Logger:        r.logger,
		Questionnaire: assessment.Default(),
		Catalog:       catalog.Default(),
		Now:           now,
	}, prompter, session.DefaultSteps(nil))

	if err := r.assess(context.Background()); err != nil {
		t.Fatalf("assess: %v", err)
	}
	return r, logs, out
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "skills flow", mutate: func(c *Config) { c.Flow = "skills" }},
		{name: "unknown flow", mutate: func(c *Config) { c.Flow = "quick" }, wantErr: true},
		{name: "too many careers", mutate: func(c *Config) { c.TopN = 9 }, wantErr: true},
		{name: "ai without gemini", mutate: func(c *Config) { c.AI.Enabled = true }, wantErr: true},
		{name: "ai with gemini", mutate: func(c *Config) {
			c.AI.Enabled = true
			c.AI.Gemini = &GeminiConfig{Model: "gemini-2.5-flash"}
		}},
		{name: "missing report", mutate: func(c *Config) { c.Report = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(".")
			tt.mutate(config)

			err := validateConfig(config)
			if tt.wantErr && err == nil {
				t.Fatalf("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAssessPrintsSummary(t *testing.T) {
	r, _, out := testRunner(t)

	if !r.session.Done() {
		t.Fatalf("expected a finished session")
	}
	if !strings.Contains(out.String(), "Top careers") {
		t.Fatalf("expected console summary, got %q", out.String())
	}
}

func TestHandleActionSavesReports(t *testing.T) {
	r, logs, _ := testRunner(t)
	ctx := context.Background()

	if err := r.handleAction(ctx, ActionText); err != nil {
		t.Fatalf("text report: %v", err)
	}
	text, err := os.ReadFile(filepath.Join(r.config.Report.OutputDir, report.TextFileName))
	if err != nil {
		t.Fatalf("read text report: %v", err)
	}
	if !strings.HasPrefix(string(text), "\nPATH-FINDER: COMPLETE CAREER ANALYSIS REPORT\n") {
		t.Fatalf("unexpected text report start: %q", string(text[:40]))
	}

	if err := r.handleAction(ctx, ActionJSON); err != nil {
		t.Fatalf("json export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(r.config.Report.OutputDir, report.JSONFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	export, err := report.ParseExport(data)
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if export.SessionID != r.session.ID.String() {
		t.Fatalf("expected session id %s, got %s", r.session.ID, export.SessionID)
	}

	if got := logs.FilterMessage("report saved").Len(); got != 2 {
		t.Fatalf("expected 2 saved reports, got %d", got)
	}
}

func TestHandleActionUnavailable(t *testing.T) {
	r, logs, _ := testRunner(t)

	for _, action := range []string{ActionPDF, ActionCompare, ActionCoach} {
		if err := r.handleAction(context.Background(), action); err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
	}

	entries := logs.FilterMessage("action is unavailable").All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 unavailable actions, got %d", len(entries))
	}
	if entries[2].ContextMap()["reason"] != "ai coach is not configured" {
		t.Fatalf("unexpected coach reason: %v", entries[2].ContextMap())
	}

	if _, err := os.Stat(filepath.Join(r.config.Report.OutputDir, report.PDFFileName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no pdf file, got %v", err)
	}
}

func TestActionLabels(t *testing.T) {
	r, _, _ := testRunner(t)

	labels := r.actionLabels()
	if len(labels) != len(allActions) {
		t.Fatalf("expected %d labels, got %d", len(allActions), len(labels))
	}

	for i, action := range allActions {
		disabled := strings.HasSuffix(labels[i], unavailableSuffix)
		want := action == ActionPDF || action == ActionCompare || action == ActionCoach
		if disabled != want {
			t.Fatalf("%s: expected disabled=%v, got label %q", action, want, labels[i])
		}
	}
}

func TestHandleActionCompare(t *testing.T) {
	r, _, out := testRunner(t)
	top := r.session.Recommendations[0].Career.Name

	table, err := demodata.Parse(strings.NewReader("name,age,user_type,suggested_career\nAlice,29,student," + top + "\n"))
	if err != nil {
		t.Fatalf("parse demo data: %v", err)
	}
	r.demo = table
	out.Reset()

	if err := r.handleAction(context.Background(), ActionCompare); err != nil {
		t.Fatalf("compare: %v", err)
	}

	if !strings.Contains(out.String(), top+": Alice (29, student)") {
		t.Fatalf("expected demo profile for %s, got %q", top, out.String())
	}
	if !strings.Contains(out.String(), r.session.Recommendations[1].Career.Name+": no demo profiles") {
		t.Fatalf("expected empty comparison for second career, got %q", out.String())
	}
}

func TestHandleActionRetakeAndExit(t *testing.T) {
	r, logs, _ := testRunner(t)
	first := r.session.Recommendations[0].Career.Name

	if err := r.handleAction(context.Background(), ActionRetake); err != nil {
		t.Fatalf("retake: %v", err)
	}
	if !r.session.Done() {
		t.Fatalf("expected the retaken session to finish")
	}
	if r.session.Recommendations[0].Career.Name != first {
		t.Fatalf("expected the same answers to give the same top career")
	}
	if logs.FilterMessage("retaking the assessment").Len() != 1 {
		t.Fatalf("expected a retake log entry")
	}

	if err := r.handleAction(context.Background(), ActionExit); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
}

func TestHandleActionRetakeInterruptedKeepsResults(t *testing.T) {
	r, logs, _ := testRunner(t)
	id := r.session.ID
	first := r.session.Recommendations[0].Career.Name
	r.prompter.(*defaultPrompter).interrupt = true

	if err := r.handleAction(context.Background(), ActionRetake); !interrupted(err) {
		t.Fatalf("expected an interrupted retake, got %v", err)
	}
	if !r.session.Done() || r.session.ID != id {
		t.Fatalf("expected the previous session to be restored")
	}
	if r.session.Recommendations[0].Career.Name != first {
		t.Fatalf("expected %s to stay on top, got %s", first, r.session.Recommendations[0].Career.Name)
	}
	if logs.FilterMessage("retake abandoned; keeping previous results").Len() != 1 {
		t.Fatalf("expected an abandoned retake log entry")
	}

	if err := r.handleAction(context.Background(), ActionJSON); err != nil {
		t.Fatalf("json export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(r.config.Report.OutputDir, report.JSONFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if _, err := report.ParseExport(data); err != nil {
		t.Fatalf("parse export after interrupted retake: %v", err)
	}
}

func TestActionsNeedCompleteAssessment(t *testing.T) {
	r, logs, out := testRunner(t)
	r.session.Reset(testNow)
	out.Reset()

	labels := r.actionLabels()
	for i, action := range allActions {
		disabled := strings.HasSuffix(labels[i], unavailableSuffix)
		want := action != ActionRetake && action != ActionExit
		if disabled != want {
			t.Fatalf("%s: expected disabled=%v, got label %q", action, want, labels[i])
		}
	}

	if err := r.handleAction(context.Background(), ActionJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.config.Report.OutputDir, report.JSONFileName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no export for an incomplete assessment, got %v", err)
	}
	if logs.FilterMessage("action is unavailable").FilterField(zap.String("reason", "assessment is not complete")).Len() != 1 {
		t.Fatalf("expected an unavailable log entry")
	}
}

func TestHandleActionPlan(t *testing.T) {
	r, _, out := testRunner(t)
	out.Reset()

	if err := r.handleAction(context.Background(), ActionPlan); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out.String(), "Networking\n") {
		t.Fatalf("expected plan sections, got %q", out.String())
	}
}

func TestRenderExport(t *testing.T) {
	r, _, _ := testRunner(t)
	if err := r.handleAction(context.Background(), ActionJSON); err != nil {
		t.Fatalf("json export: %v", err)
	}
	path := filepath.Join(r.config.Report.OutputDir, report.JSONFileName)
	config := testConfig(r.config.Report.OutputDir)
	config.Report.PDF.ChromePath = "/nonexistent/chrome"

	text, err := renderExport(context.Background(), path, FormatText, config, testNow)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if !strings.Contains(string(text), "Generated on: March 14, 2026") {
		t.Fatalf("unexpected text output")
	}

	if _, err := renderExport(context.Background(), path, FormatJSON, config, testNow); err != nil {
		t.Fatalf("json: %v", err)
	}

	if _, err := renderExport(context.Background(), path, FormatPDF, config, testNow); !errors.Is(err, report.ErrPDFUnavailable) {
		t.Fatalf("expected ErrPDFUnavailable, got %v", err)
	}

	if _, err := renderExport(context.Background(), path, "docx", config, testNow); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestCareersTable(t *testing.T) {
	out := careersTable(catalog.Default(), true)

	for _, career := range catalog.Default().Careers() {
		if !strings.Contains(out, career.Name) {
			t.Fatalf("expected %s in table", career.Name)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes")
	}
}

func TestRedact(t *testing.T) {
	config := testConfig(".")
	config.AI.Gemini = &GeminiConfig{APIKey: "secret"}

	redacted := redact(config)

	if redacted.AI.Gemini.APIKey != "***" {
		t.Fatalf("expected the key to be hidden, got %q", redacted.AI.Gemini.APIKey)
	}
	if config.AI.Gemini.APIKey != "secret" {
		t.Fatalf("expected the original config to be untouched")
	}
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "2026")

	path, err := writeFile(dir, "out.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if path != filepath.Join(dir, "out.txt") {
		t.Fatalf("unexpected path %s", path)
	}
}
