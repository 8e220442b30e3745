package ikigai

import "math"

// Variant selects the algorithm used to score two quadrants.
type Variant int

const (
	VariantCorrelation Variant = iota
	VariantOverlap
)

// Intersection names.
const (
	Passion    = "Passion"
	Mission    = "Mission"
	Profession = "Profession"
	Vocation   = "Vocation"
	Center     = "Ikigai_Center"
)

const (
	correlationNeutral = 0.5
	relatedPenalty     = 0.8
	highRating         = 4
	fallbackBonus      = 2.0
	overlapScaleMax    = 5.0
)

// Intersection is the derived score of two quadrants, or of all four for the
// center.
type Intersection struct {
	Name        string   `json:"name" validate:"required"`
	Score       float64  `json:"score" validate:"gte=0,lte=1"`
	Description string   `json:"description"`
	Matched     []string `json:"matched,omitempty"`
}

// Intersections is the ordered result: Passion, Mission, Profession,
// Vocation, then the center.
type Intersections []Intersection

// Find returns the intersection with the given name.
func (is Intersections) Find(name string) (Intersection, bool) {
	for _, in := range is {
		if in.Name == name {
			return in, true
		}
	}
	return Intersection{}, false
}

// Score returns the score of a named intersection, zero when absent.
func (is Intersections) Score(name string) float64 {
	in, _ := is.Find(name)
	return in.Score
}

// CenterScore is the overall ikigai score.
func (is Intersections) CenterScore() float64 {
	return is.Score(Center)
}

// Pairs returns the four named intersections without the center.
func (is Intersections) Pairs() Intersections {
	out := make(Intersections, 0, 4)
	for _, in := range is {
		if in.Name != Center {
			out = append(out, in)
		}
	}
	return out
}

type pair struct {
	name        string
	description string
	a, b        Quadrant
}

var pairs = []pair{
	{name: Passion, description: "What you love and are good at", a: Love, b: GoodAt},
	{name: Mission, description: "What you love and the world needs", a: Love, b: WorldNeeds},
	{name: Profession, description: "What you're good at and can be paid for", a: GoodAt, b: PaidFor},
	{name: Vocation, description: "What the world needs and you can be paid for", a: WorldNeeds, b: PaidFor},
}

// Calculate scores the four pairwise intersections with the given variant and
// derives the center as their unweighted mean.
func Calculate(ratings QuadrantRatings, variant Variant) Intersections {
	out := make(Intersections, 0, len(pairs)+1)
	total := 0.0

	for _, p := range pairs {
		a, b := ratings.Get(p.a), ratings.Get(p.b)

		in := Intersection{Name: p.name, Description: p.description}
		switch variant {
		case VariantOverlap:
			in.Score, in.Matched = Overlap(a, b)
		default:
			in.Score = Correlation(a, b)
		}

		total += in.Score
		out = append(out, in)
	}

	out = append(out, Intersection{
		Name:        Center,
		Score:       total / float64(len(pairs)),
		Description: "Perfect balance of all four elements",
	})

	return out
}

// Correlation maps the Pearson correlation of two rating lists from [-1,1]
// to [0,1]. Values are paired by position. Empty lists, lists of different
// size and constant lists yield 0.5.
func Correlation(a, b Ratings) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return correlationNeutral
	}

	x, y := a.Values(), b.Values()
	meanX, meanY := mean(x), mean(y)

	var numerator, sumSqX, sumSqY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	if sumSqX == 0 || sumSqY == 0 {
		return correlationNeutral
	}

	r := numerator / math.Sqrt(sumSqX*sumSqY)
	return clampUnit((r + 1) / 2)
}

// Overlap scores two rating lists by shared items. An item of a found
// verbatim in b contributes the mean of both ratings; an item whose related
// concept is found in b contributes that mean times 0.8. Without any match a
// flat bonus applies when both sides hold a highly rated item. The total is
// normalized by matches*5. It also returns the matched elements of a, with
// near matches written as "item~related".
func Overlap(a, b Ratings) (float64, []string) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}

	lookup := b.Map()
	total := 0.0
	matches := 0
	matched := []string{}

	for _, rating := range a {
		if other, ok := lookup[rating.Item]; ok {
			total += float64(rating.Value+other) / 2
			matches++
			matched = append(matched, rating.Item)
			continue
		}

		for _, related := range relatedConcepts[rating.Item] {
			other, ok := lookup[related]
			if !ok {
				continue
			}
			total += float64(rating.Value+other) / 2 * relatedPenalty
			matches++
			matched = append(matched, rating.Item+"~"+related)
			break
		}
	}

	if matches == 0 {
		if a.HasAtLeast(highRating) && b.HasAtLeast(highRating) {
			return clampUnit(fallbackBonus / overlapScaleMax), matched
		}
		return 0, matched
	}

	return clampUnit(total / (float64(matches) * overlapScaleMax)), matched
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
