package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/catalog"
	"github.com/spigell/pathfinder/internal/ikigai"
)

func TestCombineComprehensiveLiteral(t *testing.T) {
	combined := Combine(ikigai.FlowComprehensive, 0.8, 0, 0.6)

	assert.InDelta(t, 0.68, combined, 1e-9)
	assert.Equal(t, 68, Percentage(combined))
}

func TestCombineSkills(t *testing.T) {
	combined := Combine(ikigai.FlowSkills, 0.9, 0.4, 0.6)

	assert.InDelta(t, 0.5, combined, 1e-9)
	assert.Equal(t, 50, Percentage(combined))
}

func TestCosineIdenticalVectors(t *testing.T) {
	v := []float64{5, 5, 0, 5}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, Cosine([]float64{1}, []float64{1, 1}))
}

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name     string
		user     map[string]int
		required []string
		expect   float64
	}{
		{
			name:     "identical to baseline is capped",
			user:     map[string]int{"programming": 5, "mathematics": 5},
			required: []string{"programming", "mathematics"},
			expect:   1,
		},
		{
			name:     "partial overlap",
			user:     map[string]int{"programming": 1, "writing": 5},
			required: []string{"programming", "mathematics"},
			expect:   0.1 + 5/(5.0990195135927845*7.0710678118654755),
		},
		{
			name:     "synonyms resolve before scoring",
			user:     map[string]int{"Coding": 1, "Copywriting": 5},
			required: []string{"programming", "mathematics"},
			expect:   0.1 + 5/(5.0990195135927845*7.0710678118654755),
		},
		{
			name:     "no user skills",
			user:     map[string]int{},
			required: []string{"programming"},
			expect:   0,
		},
		{
			name:     "no required skills",
			user:     map[string]int{"programming": 4},
			required: nil,
			expect:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, SkillMatch(tt.user, tt.required), 1e-9)
		})
	}
}

func TestTraitFit(t *testing.T) {
	profile := assessment.NewProfile(map[string]float64{
		assessment.Openness:          3,
		assessment.Conscientiousness: 3,
		assessment.Extraversion:      3,
		assessment.Agreeableness:     3,
		assessment.Neuroticism:       3,
	})

	assert.InDelta(t, 0.8, TraitFit(profile, map[string]int{"openness": 5, "conscientiousness": 3}), 1e-9)
	assert.InDelta(t, 0.5, TraitFit(profile, nil), 1e-9)
	assert.InDelta(t, 0.5, TraitFit(assessment.TraitProfile{}, map[string]int{"openness": 5}), 1e-9)
}

func intersections(passion, mission, profession, vocation, center float64) ikigai.Intersections {
	return ikigai.Intersections{
		{Name: ikigai.Passion, Score: passion},
		{Name: ikigai.Mission, Score: mission},
		{Name: ikigai.Profession, Score: profession},
		{Name: ikigai.Vocation, Score: vocation},
		{Name: ikigai.Center, Score: center},
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		name     string
		in       ikigai.Intersections
		relevant []string
		expect   float64
	}{
		{name: "single", in: intersections(0.6, 0.4, 0, 0, 0.25), relevant: []string{"Passion"}, expect: 0.6},
		{name: "boosted pair", in: intersections(0.6, 0.4, 0, 0, 0.25), relevant: []string{"Passion", "Mission"}, expect: 0.65},
		{name: "none named", in: intersections(0.6, 0.4, 0, 0, 0.25), relevant: nil, expect: 0.5},
		{name: "zero with low center", in: intersections(0.6, 0.4, 0, 0, 0.25), relevant: []string{"Profession"}, expect: 0},
		{name: "zero lifted", in: intersections(0.6, 0.4, 0, 0, 0.35), relevant: []string{"Profession"}, expect: 0.15},
		{name: "center bonus", in: intersections(0.6, 0.4, 0, 0, 0.6), relevant: []string{"Passion", "Mission"}, expect: 0.77},
		{name: "capped", in: intersections(0.9, 0.9, 0, 0, 0.9), relevant: []string{"Passion", "Mission"}, expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, Alignment(tt.in, tt.relevant), 1e-9)
		})
	}
}

func comprehensiveInput(t *testing.T) Input {
	t.Helper()

	ratings := ikigai.FlowComprehensive.DefaultRatings()
	require.NoError(t, ratings.Rate(ikigai.GoodAt, "Programming", 9))
	require.NoError(t, ratings.Rate(ikigai.Love, "Building Solutions", 8))

	return Input{
		Flow:          ikigai.FlowComprehensive,
		Profile:       assessment.NewProfile(nil),
		Ratings:       ratings,
		Intersections: ikigai.Calculate(ratings, ikigai.VariantCorrelation),
	}
}

func TestRankComprehensive(t *testing.T) {
	careers := catalog.Default()
	input := comprehensiveInput(t)

	recs := Rank(input, careers, 0)
	require.Len(t, recs, 5)

	order := make(map[string]int)
	for i, career := range careers.Careers() {
		order[career.Name] = i
	}

	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Rank)
		assert.Equal(t, Percentage(rec.Combined), rec.MatchPercentage)
		assert.InDelta(t, 0.4*rec.TraitFit+0.6*rec.Alignment, rec.Combined, 1e-9)
		if i == 0 {
			continue
		}
		prev := recs[i-1]
		assert.GreaterOrEqual(t, prev.Combined, rec.Combined)
		if prev.Combined == rec.Combined {
			assert.Less(t, order[prev.Career.Name], order[rec.Career.Name], "ties keep catalog order")
		}
	}

	assert.Equal(t, recs, Rank(input, careers, 0), "ranking must be deterministic")
}

func TestRankHighlights(t *testing.T) {
	recs := Rank(comprehensiveInput(t), catalog.Default(), 8)
	require.Len(t, recs, 8)

	for _, rec := range recs {
		if rec.Career.Name != "Software Engineer" {
			continue
		}
		assert.Equal(t, []string{"building_solutions", "programming"}, rec.Highlights)
		return
	}
	t.Fatalf("Software Engineer missing from full ranking")
}

func TestRankSkillsFlow(t *testing.T) {
	ratings := ikigai.FlowSkills.DefaultRatings()
	require.NoError(t, ratings.Rate(ikigai.GoodAt, "programming", 5))
	require.NoError(t, ratings.Rate(ikigai.GoodAt, "algorithms", 5))
	require.NoError(t, ratings.Rate(ikigai.PaidFor, "software_development", 5))

	input := Input{
		Flow:          ikigai.FlowSkills,
		Skills:        ratings.GoodAt.Map(),
		Ratings:       ratings,
		Intersections: ikigai.Calculate(ratings, ikigai.VariantOverlap),
	}

	recs := Rank(input, catalog.Default(), 0)
	require.Len(t, recs, 3)

	for _, rec := range recs {
		assert.Greater(t, rec.SkillMatch, 0.0, rec.Career.Name)
		assert.InDelta(t, 0.5*rec.SkillMatch+0.5*rec.Alignment, rec.Combined, 1e-9)
		assert.LessOrEqual(t, rec.Combined, 1.0)
	}
}
