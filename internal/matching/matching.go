// Package matching scores catalog careers against a user's trait profile,
// skills and ikigai intersections, and ranks them.
package matching

import (
	"math"
	"sort"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/catalog"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/skills"
)

const (
	neutralFit = 0.5

	// skillBaseline is the value a required skill takes in the career vector.
	skillBaseline = 5.0
	skillScaleMax = 5.0

	multiIntersectionBoost = 1.3
	centerBonusThreshold   = 0.5
	centerBonusWeight      = 0.2
	minimumAlignment       = 0.15
	minimumCenter          = 0.3

	percentTolerance = 1e-9
)

// Weights of the combined score per flow.
const (
	ComprehensiveTraitWeight     = 0.4
	ComprehensiveAlignmentWeight = 0.6
	SkillsSkillWeight            = 0.5
	SkillsAlignmentWeight        = 0.5
)

// Input is everything the matcher knows about the user.
type Input struct {
	Flow          ikigai.Flow
	Profile       assessment.TraitProfile
	Skills        map[string]int
	Ratings       ikigai.QuadrantRatings
	Intersections ikigai.Intersections
}

// Recommendation is a ranked career with its component scores.
type Recommendation struct {
	Rank            int                  `json:"rank" validate:"gte=1"`
	Career          catalog.CareerRecord `json:"career"`
	TraitFit        float64              `json:"trait_fit" validate:"gte=0,lte=1"`
	SkillMatch      float64              `json:"skill_match" validate:"gte=0,lte=1"`
	Alignment       float64              `json:"alignment" validate:"gte=0,lte=1"`
	Combined        float64              `json:"combined" validate:"gte=0,lte=1"`
	MatchPercentage int                  `json:"match_percentage" validate:"gte=0,lte=100"`
	Highlights      []string             `json:"highlights,omitempty"`
}

// TopN is the number of recommendations a flow shows.
func TopN(flow ikigai.Flow) int {
	if flow == ikigai.FlowSkills {
		return 3
	}
	return 5
}

// TraitFit compares the user's traits with a career's ideal profile. Each
// overlapping trait scores 1-|user-ideal|/5, floored at 0; the result is the
// mean, or 0.5 when no trait overlaps.
func TraitFit(profile assessment.TraitProfile, ideal map[string]int) float64 {
	traits := make([]string, 0, len(ideal))
	for trait := range ideal {
		traits = append(traits, trait)
	}
	sort.Strings(traits)

	total := 0.0
	count := 0
	for _, trait := range traits {
		user, ok := profile.Score(trait)
		if !ok {
			continue
		}
		distance := math.Abs(user - float64(ideal[trait]))
		total += math.Max(0, 1-distance/assessment.MaxScore)
		count++
	}

	if count == 0 {
		return neutralFit
	}
	return total / float64(count)
}

// SkillMatch scores free-text user skills against a career's required
// skills: the cosine similarity of the user's ratings and a flat baseline on
// the required skills, plus the mean user rating on the required skills
// divided by 5. The result is capped at 1.
func SkillMatch(userSkills map[string]int, required []string) float64 {
	user := skills.Canonicalize(userSkills)

	requiredSet := make(map[string]struct{}, len(required))
	for _, skill := range required {
		key, _ := skills.Canonical(skill)
		if key != "" {
			requiredSet[key] = struct{}{}
		}
	}

	union := make(map[string]struct{}, len(user)+len(requiredSet))
	for key := range user {
		union[key] = struct{}{}
	}
	for key := range requiredSet {
		union[key] = struct{}{}
	}
	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	userVec := make([]float64, len(keys))
	careerVec := make([]float64, len(keys))
	for i, key := range keys {
		userVec[i] = float64(user[key])
		if _, ok := requiredSet[key]; ok {
			careerVec[i] = skillBaseline
		}
	}

	if sum(userVec) == 0 || sum(careerVec) == 0 {
		return 0
	}

	bonus := 0.0
	for key := range requiredSet {
		bonus += float64(user[key])
	}
	bonus = bonus / float64(len(requiredSet)) / skillScaleMax

	return math.Min(1, Cosine(userVec, careerVec)+bonus)
}

// Cosine returns the cosine similarity of two equally sized vectors, 0 when
// either has zero magnitude.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Alignment scores how well the user's intersections support a career. The
// mean of the career's relevant intersections (0.5 when it names none) is
// boosted by 1.3 when more than one is relevant. A zero result is lifted to
// 0.15 when the center exceeds 0.3, and a center above 0.5 adds a fifth of
// its score. The result is capped at 1.
func Alignment(intersections ikigai.Intersections, relevant []string) float64 {
	scores := make([]float64, 0, len(relevant))
	for _, name := range relevant {
		if in, ok := intersections.Find(name); ok {
			scores = append(scores, in.Score)
		}
	}

	result := neutralFit
	if len(scores) > 0 {
		result = sum(scores) / float64(len(scores))
		if len(scores) > 1 {
			result *= multiIntersectionBoost
		}
	}

	center := intersections.CenterScore()
	if result == 0 && center > minimumCenter {
		result = minimumAlignment
	}
	if center > centerBonusThreshold {
		result += center * centerBonusWeight
	}

	return math.Min(1, result)
}

// Combine weighs the component scores for the flow.
func Combine(flow ikigai.Flow, traitFit, skillMatch, alignment float64) float64 {
	if flow == ikigai.FlowSkills {
		return SkillsSkillWeight*skillMatch + SkillsAlignmentWeight*alignment
	}
	return ComprehensiveTraitWeight*traitFit + ComprehensiveAlignmentWeight*alignment
}

// Percentage truncates a unit score to a whole percentage.
func Percentage(score float64) int {
	return int(math.Floor(score*100 + percentTolerance))
}

// Highlights returns the career's quadrant items the user rated at or above
// the flow's high threshold, in quadrant order.
func Highlights(flow ikigai.Flow, ratings ikigai.QuadrantRatings, career catalog.CareerRecord) []string {
	high := flow.Scale().High
	seen := make(map[string]struct{})
	var out []string

	for _, q := range ikigai.Quadrants {
		rated := make(map[string]int)
		for _, rating := range ratings.Get(q) {
			rated[skills.Normalize(rating.Item)] = rating.Value
		}

		for _, tag := range career.Tags(q) {
			key := skills.Normalize(tag)
			if value, ok := rated[key]; !ok || value < high {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}

	return out
}

// Rank scores every career and returns the best topN, highest combined score
// first. Ties keep catalog order. topN <= 0 uses the flow's default.
func Rank(input Input, careers *catalog.Catalog, topN int) []Recommendation {
	if topN <= 0 {
		topN = TopN(input.Flow)
	}

	recommendations := make([]Recommendation, 0, careers.Len())
	for _, career := range careers.Careers() {
		rec := Recommendation{
			Career:    career,
			TraitFit:  TraitFit(input.Profile, career.TraitFit),
			Alignment: Alignment(input.Intersections, career.Intersections),
		}
		if input.Flow == ikigai.FlowSkills {
			rec.SkillMatch = SkillMatch(input.Skills, career.Skills)
		}
		rec.Combined = Combine(input.Flow, rec.TraitFit, rec.SkillMatch, rec.Alignment)
		rec.MatchPercentage = Percentage(rec.Combined)
		rec.Highlights = Highlights(input.Flow, input.Ratings, career)

		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Combined > recommendations[j].Combined
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	for i := range recommendations {
		recommendations[i].Rank = i + 1
	}

	return recommendations
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
