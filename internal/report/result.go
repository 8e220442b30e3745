// Package report renders a finished assessment as plain text, JSON, PDF or a
// styled terminal summary.
package report

import (
	"time"

	"github.com/spigell/pathfinder/internal/ai"
	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/matching"
	"github.com/spigell/pathfinder/internal/session"
)

// Result is everything a report shows. It is built from a session or read
// back from a JSON export.
type Result struct {
	SessionID       string
	Flow            ikigai.Flow
	Profile         assessment.TraitProfile
	Analysis        *assessment.Analysis
	Ratings         ikigai.QuadrantRatings
	Intersections   ikigai.Intersections
	Recommendations []matching.Recommendation
	Insight         *ai.Insight

	PersonalityCompletedAt time.Time
	CompletedAt            time.Time
}

// FromSession snapshots a finished session.
func FromSession(s *session.Session) Result {
	return Result{
		SessionID:              s.ID.String(),
		Flow:                   s.Flow,
		Profile:                s.Profile,
		Analysis:               s.Analysis,
		Ratings:                s.Submitted.Freeze(),
		Intersections:          s.Intersections,
		Recommendations:        s.Recommendations,
		Insight:                s.Insight,
		PersonalityCompletedAt: s.PersonalityCompletedAt,
		CompletedAt:            s.CompletedAt,
	}
}

// Top returns at most n recommendations.
func (r Result) Top(n int) []matching.Recommendation {
	if len(r.Recommendations) <= n {
		return r.Recommendations
	}
	return r.Recommendations[:n]
}
