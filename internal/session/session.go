// Package session holds the per-user assessment state and the wizard that
// walks a user through the personality, ikigai and career layers.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/matching"
)

// Layer is the wizard position of a session.
type Layer int

const (
	LayerPersonality Layer = iota + 1
	LayerIkigai
	LayerCareer
	LayerComplete
)

func (l Layer) String() string {
	switch l {
	case LayerPersonality:
		return "personality"
	case LayerIkigai:
		return "ikigai"
	case LayerCareer:
		return "career"
	case LayerComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session is the explicit context of one user's assessment. Nothing about a
// session is kept outside of it.
type Session struct {
	ID    uuid.UUID
	Flow  ikigai.Flow
	Layer Layer

	Answers  *assessment.Answers
	Profile  assessment.TraitProfile
	Analysis *assessment.Analysis

	// Ratings is the working copy edited during the ikigai layer. Submitted
	// is frozen when the layer completes.
	Ratings       ikigai.QuadrantRatings
	Submitted     ikigai.QuadrantRatings
	Intersections ikigai.Intersections

	Recommendations []matching.Recommendation
	Insight         *ai.Insight

	StartedAt              time.Time
	PersonalityCompletedAt time.Time
	IkigaiCompletedAt      time.Time
	CompletedAt            time.Time
}

// New starts a session at the personality layer.
func New(flow ikigai.Flow, now time.Time) *Session {
	s := &Session{ID: uuid.New(), Flow: flow}
	s.reset(now)
	return s
}

// Reset discards every answer and result and returns to the personality
// layer. The flow and id are kept.
func (s *Session) Reset(now time.Time) {
	s.reset(now)
}

func (s *Session) reset(now time.Time) {
	s.Layer = LayerPersonality
	s.Answers = assessment.NewAnswers()
	s.Profile = assessment.TraitProfile{}
	s.Analysis = nil
	s.Ratings = ikigai.QuadrantRatings{}
	if s.Flow.Valid() {
		s.Ratings = s.Flow.DefaultRatings()
	}
	s.Submitted = ikigai.QuadrantRatings{}
	s.Intersections = nil
	s.Recommendations = nil
	s.Insight = nil
	s.StartedAt = now
	s.PersonalityCompletedAt = time.Time{}
	s.IkigaiCompletedAt = time.Time{}
	s.CompletedAt = time.Time{}
}

// SetFlow switches the flow and reseeds the working ratings with its defaults.
func (s *Session) SetFlow(flow ikigai.Flow) {
	s.Flow = flow
	s.Ratings = flow.DefaultRatings()
}

// Done reports whether recommendations are available.
func (s *Session) Done() bool {
	return s.Layer == LayerComplete
}

// Summary is the anonymized view of a finished session handed to an advisor.
func (s *Session) Summary(focus string) ai.Summary {
	summary := ai.Summary{
		Flow:          string(s.Flow),
		Intersections: make(map[string]float64, len(s.Intersections)),
		Focus:         focus,
	}

	if !s.Profile.IsZero() {
		summary.Traits = s.Profile.Map()
	}
	if s.Analysis != nil {
		summary.Strengths = append(summary.Strengths, s.Analysis.Strengths...)
		summary.DevelopmentAreas = append(summary.DevelopmentAreas, s.Analysis.DevelopmentAreas...)
	}
	for _, in := range s.Intersections {
		summary.Intersections[in.Name] = in.Score
	}
	for _, rec := range s.Recommendations {
		summary.Careers = append(summary.Careers, ai.CareerSummary{
			Name:            rec.Career.Name,
			MatchPercentage: rec.MatchPercentage,
			Skills:          rec.Career.Skills,
			Highlights:      rec.Highlights,
		})
	}

	return summary
}
