package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Advisor asks Gemini for a coaching insight on a finished assessment.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxFocusRunes       = 300
	maxListItems        = 5
)

func NewAdvisor(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Advise(ctx context.Context, summary ai.Summary) (*ai.Insight, error) {
	if len(summary.Careers) == 0 {
		return nil, errors.New("at least one career recommendation is required")
	}

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	system := buildPrompt(summary.Focus)

	a.logger.Debug("gemini generate content request",
		zap.String("flow", summary.Flow),
		zap.Int("careers", len(summary.Careers)),
		zap.Int("prompt_length", utf8.RuneCountInString(system)+len(payload)),
		zap.String("payload_preview", utils.TruncateForLog(string(payload), a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, system, string(payload))
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	insight, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	insight.Raw = raw
	return insight, nil
}

func buildPrompt(focus string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Coach the user on the assessment below.\nFocus:\n{{USER_FOCUS}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{USER_FOCUS}}", sanitizeFocus(focus))
}

// sanitizeFocus flattens user text to a single bullet, strips control
// characters and bracketed role markers, and caps its length.
func sanitizeFocus(focus string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || r == '[' || r == ']' || r == '{' || r == '}' {
			return -1
		}
		return r
	}, focus)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if cleaned == "" {
		return "  - none"
	}

	runes := []rune(cleaned)
	if len(runes) > maxFocusRunes {
		cleaned = strings.TrimSpace(string(runes[:maxFocusRunes]))
	}

	return "  - " + cleaned
}

func parseResponse(raw string) (*ai.Insight, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	insight := &ai.Insight{
		Headline:  coerceString(data["headline"]),
		Strengths: coerceStrings(data["strengths"]),
		Risks:     coerceStrings(data["risks"]),
		NextSteps: coerceStrings(data["next_steps"]),
	}

	if insight.Headline == "" {
		return nil, errors.New("gemini response has no headline")
	}

	return insight, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, line := range strings.Split(val, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
			if line != "" {
				out = append(out, line)
			}
		}
	}

	if len(out) > maxListItems {
		out = out[:maxListItems]
	}
	return out
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
