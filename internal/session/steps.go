package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/catalog"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/matching"
)

// Step names.
const (
	StepPersonality = "personality"
	StepIkigai      = "ikigai"
	StepCareer      = "career"
	StepAIInsight   = "ai_insight"
)

// Step is a single layer of the assessment pipeline.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps, s *Session) error
	Apply(ctx context.Context, deps Deps, s *Session) (Outcome, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger        *zap.Logger
	Questionnaire *assessment.Questionnaire
	Catalog       *catalog.Catalog
	Advisor       ai.Advisor
	// TopN overrides the flow's number of recommendations when positive.
	TopN int
	// Focus is passed to the advisor as user guidance.
	Focus string
	Now   func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Outcome describes the result of executing a step.
type Outcome struct {
	Layer Layer
	Items int
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and then applies the supplied steps in order.
func Run(ctx context.Context, deps Deps, steps []Step, s *Session) error {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(deps, s); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if err := apply(ctx, deps, step, s); err != nil {
			return err
		}
	}

	return nil
}

// apply runs a single step that has already been validated.
func apply(ctx context.Context, deps Deps, step Step, s *Session) error {
	if !step.IsEnabled() {
		if deps.Logger != nil {
			deps.Logger.Info("step disabled", zap.String("name", step.Name()))
		}
		return nil
	}

	outcome, err := step.Apply(ctx, deps, s)
	if err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}

	if deps.Logger != nil {
		deps.Logger.Info("wizard step",
			zap.String("name", step.Name()),
			zap.String("layer", outcome.Layer.String()),
			zap.Int("items", outcome.Items),
		)
	}

	return nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// DefaultSteps returns the three layers plus the AI insight step, which
// starts disabled unless an advisor is configured.
func DefaultSteps(advisor ai.Advisor) []Step {
	insight := NewAIInsight()
	if advisor == nil {
		insight.Disable("ai coach is not configured")
	}
	return []Step{NewPersonality(), NewIkigai(), NewCareer(), insight}
}

type personalityStep struct{}

// NewPersonality creates the step that turns answers into a trait profile.
func NewPersonality() Step {
	return &personalityStep{}
}

func (p *personalityStep) Name() string { return StepPersonality }

func (p *personalityStep) Disable(string) {}

func (p *personalityStep) IsEnabled() bool { return true }

func (p *personalityStep) Validate(deps Deps, s *Session) error {
	if deps.Questionnaire == nil {
		return errors.New("questionnaire is required")
	}
	if s.Answers == nil || !s.Answers.Complete(deps.Questionnaire) {
		answered := 0
		if s.Answers != nil {
			answered = s.Answers.Len()
		}
		return fmt.Errorf("%w: %d of %d answered", assessment.ErrIncomplete, answered, deps.Questionnaire.Len())
	}
	return nil
}

func (p *personalityStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	options := s.Answers.Selected()
	s.Profile = assessment.Aggregate(options)
	analysis := assessment.Analyze(s.Profile)
	s.Analysis = &analysis
	s.PersonalityCompletedAt = deps.now()
	s.Layer = LayerIkigai

	if deps.Logger != nil {
		deps.Logger.Debug("trait profile computed",
			zap.Any("traits", s.Profile.Map()),
			zap.Strings("strengths", analysis.Strengths),
		)
	}

	return Outcome{Layer: LayerPersonality, Items: len(options)}, nil
}

type ikigaiStep struct{}

// NewIkigai creates the step that freezes the quadrant ratings and scores
// their intersections.
func NewIkigai() Step {
	return &ikigaiStep{}
}

func (i *ikigaiStep) Name() string { return StepIkigai }

func (i *ikigaiStep) Disable(string) {}

func (i *ikigaiStep) IsEnabled() bool { return true }

func (i *ikigaiStep) Validate(_ Deps, s *Session) error {
	if !s.Flow.Valid() {
		return fmt.Errorf("unknown flow %q", s.Flow)
	}
	return nil
}

func (i *ikigaiStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	fillDefaults(s)

	s.Submitted = s.Ratings.Freeze()
	s.Intersections = ikigai.Calculate(s.Submitted, s.Flow.Variant())
	s.IkigaiCompletedAt = deps.now()
	s.Layer = LayerCareer

	if deps.Logger != nil {
		fields := make([]zap.Field, 0, len(s.Intersections))
		for _, in := range s.Intersections {
			fields = append(fields, zap.Float64(in.Name, in.Score))
		}
		deps.Logger.Debug("intersections computed", fields...)
	}

	items := 0
	for _, q := range ikigai.Quadrants {
		items += len(s.Submitted.Get(q))
	}
	return Outcome{Layer: LayerIkigai, Items: items}, nil
}

// fillDefaults rates every suggested item the user skipped at the flow's default.
func fillDefaults(s *Session) {
	def := s.Flow.Scale().Default
	for _, q := range ikigai.Quadrants {
		for _, item := range s.Flow.Items(q) {
			if _, ok := s.Ratings.Get(q).Get(item); !ok {
				_ = s.Ratings.Rate(q, item, def)
			}
		}
	}
}

type careerStep struct{}

// NewCareer creates the step that ranks the catalog.
func NewCareer() Step {
	return &careerStep{}
}

func (c *careerStep) Name() string { return StepCareer }

func (c *careerStep) Disable(string) {}

func (c *careerStep) IsEnabled() bool { return true }

func (c *careerStep) Validate(deps Deps, _ *Session) error {
	if deps.Catalog == nil || deps.Catalog.Len() == 0 {
		return errors.New("career catalog is required")
	}
	return nil
}

func (c *careerStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	if s.Intersections == nil {
		return Outcome{}, errors.New("ikigai layer has not been completed")
	}

	input := matching.Input{
		Flow:          s.Flow,
		Profile:       s.Profile,
		Ratings:       s.Submitted,
		Intersections: s.Intersections,
	}
	if s.Flow == ikigai.FlowSkills {
		input.Skills = s.Submitted.GoodAt.Map()
	}

	s.Recommendations = matching.Rank(input, deps.Catalog, deps.TopN)
	s.CompletedAt = deps.now()
	s.Layer = LayerComplete

	return Outcome{Layer: LayerCareer, Items: len(s.Recommendations)}, nil
}

type aiInsightStep struct {
	disabled bool
	reason   string
}

// NewAIInsight creates the optional step that asks the advisor for a
// coaching insight. A failing advisor disables the step instead of failing
// the session.
func NewAIInsight() Step {
	return &aiInsightStep{}
}

func (a *aiInsightStep) Name() string { return StepAIInsight }

func (a *aiInsightStep) Disable(reason string) {
	a.disabled = true
	a.reason = reason
}

func (a *aiInsightStep) IsEnabled() bool { return !a.disabled }

func (a *aiInsightStep) Validate(deps Deps, _ *Session) error {
	if deps.Advisor == nil {
		return errors.New("advisor is required when ai insight is enabled")
	}
	return nil
}

func (a *aiInsightStep) Apply(ctx context.Context, deps Deps, s *Session) (Outcome, error) {
	if len(s.Recommendations) == 0 {
		return Outcome{Layer: LayerComplete}, nil
	}

	insight, err := deps.Advisor.Advise(ctx, s.Summary(deps.Focus))
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.Warn("ai insight failed; disabling the step", zap.Error(err))
		}
		a.Disable(err.Error())
		return Outcome{Layer: LayerComplete}, nil
	}

	s.Insight = insight
	return Outcome{Layer: LayerComplete, Items: 1}, nil
}

func (a *aiInsightStep) Status() Status {
	details := map[string]string{
		"enabled": strconv.FormatBool(a.IsEnabled()),
	}
	return Status{Name: a.Name(), Enabled: a.IsEnabled(), Reason: a.reason, Details: details}
}
