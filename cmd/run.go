package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/ai/gemini"
	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/catalog"
	"github.com/spigell/pathfinder/internal/demodata"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/logger"
	"github.com/spigell/pathfinder/internal/matching"
	"github.com/spigell/pathfinder/internal/report"
	"github.com/spigell/pathfinder/internal/secrets"
	"github.com/spigell/pathfinder/internal/session"
)

const (
	ActionResults = "Show results"
	ActionPlan    = "Show action plan"
	ActionText    = "Download complete report (text)"
	ActionJSON    = "Save progress (JSON)"
	ActionPDF     = "Download PDF report"
	ActionCompare = "Compare with demo profiles"
	ActionCoach   = "Ask the AI coach"
	ActionRetake  = "Retake assessment"
	ActionExit    = "Exit"

	unavailableSuffix = " (unavailable)"
)

var errExit = errors.New("exit requested")

var allActions = []string{
	ActionResults, ActionPlan, ActionText, ActionJSON, ActionPDF,
	ActionCompare, ActionCoach, ActionRetake, ActionExit,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive career assessment",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("flow", "f", "", "assessment flow: comprehensive or skills (asked when empty)")
	runCmd.Flags().IntP("top-n", "n", 0, "number of career recommendations (0 uses the flow default)")
	runCmd.Flags().String("demo-data", "", "csv file with demo profiles to compare against")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for saved reports")
	runCmd.Flags().Bool("ai", false, "enable the AI coach")
	runCmd.Flags().Bool("pdf", true, "enable PDF export when a browser is available")

	viper.BindPFlag("flow", runCmd.Flags().Lookup("flow"))
	viper.BindPFlag("top-n", runCmd.Flags().Lookup("top-n"))
	viper.BindPFlag("demo-data", runCmd.Flags().Lookup("demo-data"))
	viper.BindPFlag("report.output-dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("ai.enabled", runCmd.Flags().Lookup("ai"))
	viper.BindPFlag("report.pdf.enabled", runCmd.Flags().Lookup("pdf"))
}

// runner holds everything the interactive session needs between actions.
type runner struct {
	config     *Config
	logger     *zap.Logger
	wizard     *session.Wizard
	session    *session.Session
	prompter   session.Prompter
	demo       *demodata.Table
	chromePath string
	out        io.Writer
	now        func() time.Time
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	baseLogger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		baseLogger.Fatal("getting a config", zap.Error(err))
	}

	baseLogger.Info("starting pathfinder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redact(config), "", "  ")
	baseLogger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	advisor, err := prepareAdvisor(ctx, config.AI, baseLogger)
	if err != nil {
		baseLogger.Warn("skipping AI coach", zap.Error(err))
	}

	r := &runner{
		config:     config,
		prompter:   terminalPrompter{},
		demo:       demodata.Load(config.DemoData, baseLogger),
		chromePath: preparePDF(config.Report.PDF, baseLogger),
		out:        os.Stdout,
		now:        time.Now,
	}
	r.session = session.New(ikigai.Flow(config.Flow), r.now())
	// The flow field is added by the wizard when the flow is chosen interactively.
	r.logger = logger.WithSession(baseLogger, r.session.ID.String(), string(r.session.Flow))
	r.wizard = session.NewWizard(session.Deps{
		Logger:        r.logger,
		Questionnaire: assessment.Default(),
		Catalog:       catalog.Default(),
		Advisor:       advisor,
		TopN:          config.TopN,
		Now:           r.now,
	}, r.prompter, session.DefaultSteps(advisor))

	for _, status := range session.Describe(r.wizard.Steps()) {
		r.logger.Debug("wizard step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	if err := r.assess(ctx); err != nil {
		if interrupted(err) {
			r.logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		r.logger.Fatal("assessment failed", zap.Error(err))
	}

	for {
		action, err := r.chooseAction()
		if err != nil {
			if interrupted(err) {
				return
			}
			r.logger.Fatal("exiting", zap.Error(err))
		}

		if err := r.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			if interrupted(err) {
				continue
			}
			r.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-file"),
	})
}

// assess runs the wizard to completion and prints the summary.
func (r *runner) assess(ctx context.Context) error {
	if err := r.wizard.Run(ctx, r.session); err != nil {
		return err
	}

	r.logger = r.wizard.Logger()
	r.logger.Info("assessment complete",
		zap.Int("recommendations", len(r.session.Recommendations)),
	)
	fmt.Fprint(r.out, report.Console(report.FromSession(r.session), r.config.NoColor))
	return nil
}

// actionLabels returns the menu entries, marking the ones that cannot run.
func (r *runner) actionLabels() []string {
	labels := make([]string, len(allActions))
	for i, action := range allActions {
		labels[i] = action
		if reason := r.unavailable(action); reason != "" {
			labels[i] += unavailableSuffix
		}
	}
	return labels
}

func (r *runner) chooseAction() (string, error) {
	idx, err := r.prompter.Select("What next?", r.actionLabels())
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(allActions) {
		return "", fmt.Errorf("action %d out of range", idx)
	}
	return allActions[idx], nil
}

// unavailable returns why an action cannot run, or an empty string.
func (r *runner) unavailable(action string) string {
	if !r.session.Done() && action != ActionRetake && action != ActionExit {
		return "assessment is not complete"
	}

	switch action {
	case ActionPDF:
		if r.chromePath == "" {
			return report.ErrPDFUnavailable.Error()
		}
	case ActionCompare:
		if r.demo.Empty() {
			return "no demo profiles loaded"
		}
	case ActionCoach:
		for _, status := range session.Describe(r.wizard.Steps()) {
			if status.Name == session.StepAIInsight && !status.Enabled {
				return status.Reason
			}
		}
	}
	return ""
}

func (r *runner) handleAction(ctx context.Context, action string) error {
	if reason := r.unavailable(action); reason != "" {
		r.logger.Warn("action is unavailable", zap.String("action", action), zap.String("reason", reason))
		return nil
	}

	result := report.FromSession(r.session)

	switch action {
	case ActionResults:
		fmt.Fprint(r.out, report.Console(result, r.config.NoColor))
		return nil
	case ActionPlan:
		printPlan(r.out, report.ActionPlan(result.Recommendations))
		return nil
	case ActionText:
		return r.save(report.TextFileName, []byte(report.Text(result, r.now())))
	case ActionJSON:
		data, err := report.NewExport(result, r.now()).Marshal()
		if err != nil {
			return err
		}
		return r.save(report.JSONFileName, data)
	case ActionPDF:
		pdf, err := report.PDF(ctx, result, r.now(), report.PDFOptions{
			ChromePath: r.chromePath,
			Timeout:    r.config.Report.PDF.Timeout,
		})
		if err != nil {
			// A browser that fails to print does not end the session.
			r.logger.Warn("pdf export failed", zap.Error(err))
			return nil
		}
		return r.save(report.PDFFileName, pdf)
	case ActionCompare:
		r.compare(result.Top(3))
		return nil
	case ActionCoach:
		return r.coach(ctx)
	case ActionRetake:
		return r.retake(ctx)
	case ActionExit:
		r.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// retake runs the assessment again. The previous results are restored when
// the new run does not finish.
func (r *runner) retake(ctx context.Context) error {
	previous := *r.session
	r.session.Reset(r.now())
	r.logger.Info("retaking the assessment")

	if err := r.assess(ctx); err != nil {
		*r.session = previous
		r.logger.Info("retake abandoned; keeping previous results", zap.Error(err))
		return err
	}
	return nil
}

func (r *runner) save(name string, data []byte) error {
	path, err := writeFile(r.config.Report.OutputDir, name, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	r.logger.Info("report saved", zap.String("filename", path), zap.Int("bytes", len(data)))
	return nil
}

func (r *runner) compare(recs []matching.Recommendation) {
	for _, rec := range recs {
		profiles := r.demo.BySuggestedCareer(rec.Career.Name)
		if len(profiles) == 0 {
			fmt.Fprintf(r.out, "%s: no demo profiles\n", rec.Career.Name)
			continue
		}

		people := make([]string, 0, len(profiles))
		for _, p := range profiles {
			people = append(people, fmt.Sprintf("%s (%d, %s)", p.Name, p.Age, p.UserType))
		}
		fmt.Fprintf(r.out, "%s: %s\n", rec.Career.Name, strings.Join(people, ", "))
	}
}

func (r *runner) coach(ctx context.Context) error {
	focus, err := r.prompter.Text("What should the coach focus on? (empty for a general review)")
	if err != nil {
		return err
	}

	if err := r.wizard.Coach(ctx, r.session, focus); err != nil {
		if errors.Is(err, session.ErrStepDisabled) {
			r.logger.Warn("action is unavailable", zap.String("action", ActionCoach), zap.Error(err))
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		// The previous insight answered a different focus, so nothing is printed.
		r.logger.Warn("coach request failed", zap.Error(err))
		fmt.Fprintln(r.out, "The coach could not answer right now. Try again later.")
		return nil
	}

	printInsight(r.out, r.session.Insight)
	return nil
}

func printPlan(w io.Writer, plan []report.Section) {
	if len(plan) == 0 {
		fmt.Fprintln(w, "No recommendations yet.")
		return
	}
	for _, section := range plan {
		fmt.Fprintln(w, section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
		fmt.Fprintln(w)
	}
}

func printInsight(w io.Writer, insight *ai.Insight) {
	if insight == nil {
		fmt.Fprintln(w, "The coach had nothing to add.")
		return
	}
	fmt.Fprintln(w, insight.Headline)
	for _, group := range []struct {
		title string
		items []string
	}{
		{"Strengths", insight.Strengths},
		{"Watch out for", insight.Risks},
		{"Suggested actions", insight.NextSteps},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", group.title)
		for _, item := range group.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

func writeFile(dir, name string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func interrupted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

// redact hides the inline api key from debug output.
func redact(config *Config) Config {
	out := *config
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.APIKey != "" {
		geminiCfg := *config.AI.Gemini
		geminiCfg.APIKey = "***"
		aiCfg := *config.AI
		aiCfg.Gemini = &geminiCfg
		out.AI = &aiCfg
	}
	return out
}

func prepareAdvisor(ctx context.Context, cfg *AIConfig, baseLogger *zap.Logger) (ai.Advisor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when the ai coach is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := baseLogger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	advisorLogger := logger.WithCommonFields(baseLogger, "gemini", generator.Model())
	return gemini.NewAdvisor(generator, cfg.Gemini.MaxLogLength, advisorLogger), nil
}

// preparePDF resolves the browser used for PDF export. An empty path turns
// the action off.
func preparePDF(cfg *PDFConfig, baseLogger *zap.Logger) string {
	if cfg == nil || !cfg.Enabled {
		return ""
	}

	path, err := report.DetectPDF(cfg.ChromePath)
	if err != nil {
		baseLogger.Info("pdf export disabled", zap.Error(err))
		return ""
	}

	baseLogger.Debug("pdf export enabled", zap.String("browser", path))
	return path
}
