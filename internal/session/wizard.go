package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/logger"
	"github.com/spigell/pathfinder/internal/skills"
)

const maxAttempts = 3

// ErrStepDisabled is returned when an optional step was requested but is off.
var ErrStepDisabled = errors.New("step is disabled")

// Prompter is the interaction surface the wizard needs.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(label string, items []string) (int, error)
	// Rate asks for a value on the scale, offering current as the default.
	Rate(label string, scale ikigai.Scale, current int) (int, error)
	Text(label string) (string, error)
}

// FlowLabels are the choices offered when a session has no flow yet, in the
// order of Flows.
var (
	Flows      = []ikigai.Flow{ikigai.FlowComprehensive, ikigai.FlowSkills}
	FlowLabels = []string{
		"Comprehensive assessment (rate fixed items 0-10)",
		"Skills assessment (rate 1-5 and add your own skills)",
	}
)

// Wizard drives a session through its layers with a Prompter.
type Wizard struct {
	deps     Deps
	prompter Prompter
	steps    []Step
}

func NewWizard(deps Deps, prompter Prompter, steps []Step) *Wizard {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Wizard{deps: deps, prompter: prompter, steps: steps}
}

// Logger returns the wizard's logger. It carries the flow once one is chosen.
func (w *Wizard) Logger() *zap.Logger {
	return w.deps.Logger
}

// Steps returns the wizard's pipeline.
func (w *Wizard) Steps() []Step {
	return w.steps
}

// Run walks the session from its current layer until recommendations are
// available.
func (w *Wizard) Run(ctx context.Context, s *Session) error {
	if !s.Flow.Valid() {
		if err := w.chooseFlow(s); err != nil {
			return err
		}
	}

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.Layer {
		case LayerPersonality:
			err = w.personality(ctx, s)
		case LayerIkigai:
			err = w.ikigai(ctx, s)
		case LayerCareer:
			err = w.career(ctx, s)
		default:
			err = fmt.Errorf("unexpected layer %s", s.Layer)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Coach asks the advisor again with new focus text. It fails with
// ErrStepDisabled when the AI step is off. Unlike the wizard run, an advisor
// error is returned and the previous insight is left untouched.
func (w *Wizard) Coach(ctx context.Context, s *Session, focus string) error {
	step, err := w.step(StepAIInsight)
	if err != nil {
		return err
	}
	if !step.IsEnabled() {
		return ErrStepDisabled
	}
	if err := step.Validate(w.deps, s); err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}
	if !s.Done() {
		return fmt.Errorf("%s: session is not complete", step.Name())
	}

	insight, err := w.deps.Advisor.Advise(ctx, s.Summary(focus))
	if err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}

	s.Insight = insight
	w.deps.Logger.Info("coach insight updated", zap.Bool("focused", focus != ""))
	return nil
}

func (w *Wizard) chooseFlow(s *Session) error {
	idx, err := w.prompter.Select("Choose your assessment", FlowLabels)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(Flows) {
		return fmt.Errorf("flow choice %d out of range", idx)
	}
	s.SetFlow(Flows[idx])
	w.deps.Logger = w.deps.Logger.With(zap.String(logger.FieldFlow, string(s.Flow)))
	return nil
}

func (w *Wizard) personality(ctx context.Context, s *Session) error {
	step, err := w.step(StepPersonality)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		if err := w.askQuestions(s); err != nil {
			return err
		}

		err := step.Validate(w.deps, s)
		if err == nil {
			break
		}
		if !errors.Is(err, assessment.ErrIncomplete) || attempt == maxAttempts {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
		w.deps.Logger.Warn("please answer every question", zap.Error(err))
	}

	return apply(ctx, w.deps, step, s)
}

func (w *Wizard) askQuestions(s *Session) error {
	questions := w.deps.Questionnaire.Questions()
	for i, question := range questions {
		if _, ok := s.Answers.Get(question.ID); ok {
			continue
		}

		items := make([]string, len(question.Options))
		for j, option := range question.Options {
			items[j] = option.Text
		}

		label := fmt.Sprintf("Question %d of %d: %s", i+1, len(questions), question.Prompt)
		idx, err := w.prompter.Select(label, items)
		if err != nil {
			return err
		}
		if err := s.Answers.Select(w.deps.Questionnaire, question.ID, idx); err != nil {
			w.deps.Logger.Warn("invalid answer", zap.Error(err))
		}
	}
	return nil
}

func (w *Wizard) ikigai(ctx context.Context, s *Session) error {
	step, err := w.step(StepIkigai)
	if err != nil {
		return err
	}
	if err := step.Validate(w.deps, s); err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}

	scale := s.Flow.Scale()
	for _, q := range ikigai.Quadrants {
		for _, item := range s.Flow.Items(q) {
			if err := w.rate(s, q, item, scale); err != nil {
				return err
			}
		}

		if s.Flow == ikigai.FlowSkills && q == ikigai.GoodAt {
			if err := w.extraSkills(s, scale); err != nil {
				return err
			}
		}
	}

	return apply(ctx, w.deps, step, s)
}

func (w *Wizard) rate(s *Session, q ikigai.Quadrant, item string, scale ikigai.Scale) error {
	current, ok := s.Ratings.Get(q).Get(item)
	if !ok {
		current = scale.Default
	}

	label := fmt.Sprintf("%s: %s", q.Title(), item)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		value, err := w.prompter.Rate(label, scale, current)
		if err != nil {
			return err
		}
		if value >= scale.Min && value <= scale.Max {
			return s.Ratings.Rate(q, item, value)
		}
		w.deps.Logger.Warn("rating out of range",
			zap.String("item", item),
			zap.Int("value", value),
			zap.Int("min", scale.Min),
			zap.Int("max", scale.Max),
		)
	}

	return fmt.Errorf("no valid rating for %q after %d attempts", item, maxAttempts)
}

// extraSkills collects free-text skills, stores them under their canonical
// name and asks for a rating of each new one.
func (w *Wizard) extraSkills(s *Session, scale ikigai.Scale) error {
	text, err := w.prompter.Text("Other skills you're good at (comma separated, empty to skip)")
	if err != nil {
		return err
	}

	for _, raw := range strings.Split(text, ",") {
		key, known := skills.Canonical(raw)
		if key == "" {
			continue
		}
		if _, rated := s.Ratings.GoodAt.Get(key); rated {
			continue
		}
		if !known {
			w.deps.Logger.Debug("skill not in synonym table", zap.String("skill", key))
		}
		if err := w.rate(s, ikigai.GoodAt, key, scale); err != nil {
			return err
		}
	}

	return nil
}

func (w *Wizard) career(ctx context.Context, s *Session) error {
	career, err := w.step(StepCareer)
	if err != nil {
		return err
	}
	if err := w.runStep(ctx, w.deps, career, s); err != nil {
		return err
	}

	insight, err := w.step(StepAIInsight)
	if err != nil {
		return nil
	}
	if !insight.IsEnabled() {
		return apply(ctx, w.deps, insight, s)
	}
	return w.runStep(ctx, w.deps, insight, s)
}

func (w *Wizard) runStep(ctx context.Context, deps Deps, step Step, s *Session) error {
	if err := step.Validate(deps, s); err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}
	return apply(ctx, deps, step, s)
}

func (w *Wizard) step(name string) (Step, error) {
	for _, step := range w.steps {
		if step.Name() == name {
			return step, nil
		}
	}
	return nil, fmt.Errorf("step %q is not configured", name)
}
