package report

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/matching"
)

//go:embed export.schema.json
var exportSchema []byte

// File names used when writing reports to disk.
const (
	TextFileName = "career_analysis_complete.txt"
	JSONFileName = "career_analysis_data.json"
	PDFFileName  = "career_analysis_report.pdf"
)

// Export is the JSON document saved by "Save Progress".
type Export struct {
	SessionID            string                 `json:"session_id" validate:"required"`
	Flow                 ikigai.Flow            `json:"flow" validate:"required,oneof=comprehensive skills"`
	PsychometricResults  PsychometricResults    `json:"psychometric_results"`
	IkigaiData           ikigai.QuadrantRatings `json:"ikigai_data"`
	FinalRecommendations FinalRecommendations   `json:"final_recommendations"`
	AIInsight            *ai.Insight            `json:"ai_insight,omitempty" validate:"omitempty"`
	ExportedAt           time.Time              `json:"exported_at" validate:"required"`
}

// PsychometricResults is the personality layer of an export.
type PsychometricResults struct {
	TraitScores assessment.TraitProfile `json:"trait_scores"`
	Analysis    *assessment.Analysis    `json:"analysis,omitempty"`
	CompletedAt time.Time               `json:"completed_at"`
}

// FinalRecommendations is the career layer of an export.
type FinalRecommendations struct {
	Intersections   ikigai.Intersections      `json:"intersections" validate:"dive"`
	Recommendations []matching.Recommendation `json:"recommendations" validate:"dive"`
	CompletedAt     time.Time                 `json:"completed_at"`
}

// FieldError is a single problem found in an export document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in an export document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid export:")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// NewExport builds the export document of a result. Timestamps are kept at
// second precision so they render as RFC 3339.
func NewExport(r Result, now time.Time) *Export {
	intersections := r.Intersections
	if intersections == nil {
		intersections = ikigai.Intersections{}
	}
	recommendations := r.Recommendations
	if recommendations == nil {
		recommendations = []matching.Recommendation{}
	}

	return &Export{
		SessionID: r.SessionID,
		Flow:      r.Flow,
		PsychometricResults: PsychometricResults{
			TraitScores: r.Profile,
			Analysis:    r.Analysis,
			CompletedAt: seconds(r.PersonalityCompletedAt),
		},
		IkigaiData: r.Ratings.Freeze(),
		FinalRecommendations: FinalRecommendations{
			Intersections:   intersections,
			Recommendations: recommendations,
			CompletedAt:     seconds(r.CompletedAt),
		},
		AIInsight:  r.Insight,
		ExportedAt: seconds(now),
	}
}

// Marshal renders the export as indented JSON.
func (e *Export) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// Result converts the export back into a renderable result.
func (e *Export) Result() Result {
	return Result{
		SessionID:              e.SessionID,
		Flow:                   e.Flow,
		Profile:                e.PsychometricResults.TraitScores,
		Analysis:               e.PsychometricResults.Analysis,
		Ratings:                e.IkigaiData.Freeze(),
		Intersections:          e.FinalRecommendations.Intersections,
		Recommendations:        e.FinalRecommendations.Recommendations,
		Insight:                e.AIInsight,
		PersonalityCompletedAt: e.PsychometricResults.CompletedAt,
		CompletedAt:            e.FinalRecommendations.CompletedAt,
	}
}

// ParseExport checks a document against the export schema, decodes it and
// validates the decoded values. Schema and field problems are returned as a
// *ValidationError.
func ParseExport(data []byte) (*Export, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(exportSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("load export: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, ve
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&export); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			ve := &ValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
			for _, fe := range fieldErrs {
				ve.Errors = append(ve.Errors, FieldError{
					Field:   fe.Namespace(),
					Message: fmt.Sprintf("failed %q check", fe.Tag()),
				})
			}
			return nil, ve
		}
		return nil, fmt.Errorf("validate export: %w", err)
	}

	return &export, nil
}

func seconds(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
