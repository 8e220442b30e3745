// Package ikigai rates the four life-purpose quadrants and scores how they
// intersect.
package ikigai

import "fmt"

// Quadrant identifies one of the four rated item sets.
type Quadrant string

const (
	Love       Quadrant = "love"
	GoodAt     Quadrant = "good_at"
	WorldNeeds Quadrant = "world_needs"
	PaidFor    Quadrant = "paid_for"
)

// Quadrants lists the quadrants in wizard order.
var Quadrants = []Quadrant{Love, GoodAt, WorldNeeds, PaidFor}

// Title is the label shown to users.
func (q Quadrant) Title() string {
	switch q {
	case Love:
		return "What You Love"
	case GoodAt:
		return "What You're Good At"
	case WorldNeeds:
		return "What World Needs"
	case PaidFor:
		return "What You Can Be Paid For"
	default:
		return string(q)
	}
}

// Rating is the value a user gave to a single quadrant item.
type Rating struct {
	Item  string `json:"item" validate:"required"`
	Value int    `json:"value" validate:"gte=0,lte=10"`
}

// Ratings is an ordered list of item ratings. Order is meaningful: the
// correlation variant pairs two quadrants position by position.
type Ratings []Rating

// Set updates an existing item or appends a new one, keeping order stable.
func (r Ratings) Set(item string, value int) Ratings {
	for i := range r {
		if r[i].Item == item {
			r[i].Value = value
			return r
		}
	}
	return append(r, Rating{Item: item, Value: value})
}

// Get returns the rating of an item.
func (r Ratings) Get(item string) (int, bool) {
	for _, rating := range r {
		if rating.Item == item {
			return rating.Value, true
		}
	}
	return 0, false
}

// Values returns the rating values in order.
func (r Ratings) Values() []float64 {
	out := make([]float64, len(r))
	for i, rating := range r {
		out[i] = float64(rating.Value)
	}
	return out
}

// Map returns the ratings keyed by item.
func (r Ratings) Map() map[string]int {
	out := make(map[string]int, len(r))
	for _, rating := range r {
		out[rating.Item] = rating.Value
	}
	return out
}

// HasAtLeast reports whether any item is rated at or above threshold.
func (r Ratings) HasAtLeast(threshold int) bool {
	for _, rating := range r {
		if rating.Value >= threshold {
			return true
		}
	}
	return false
}

func (r Ratings) clone() Ratings {
	if r == nil {
		return nil
	}
	out := make(Ratings, len(r))
	copy(out, r)
	return out
}

// QuadrantRatings holds the four rated quadrants of one session.
type QuadrantRatings struct {
	Love       Ratings `json:"love" validate:"dive"`
	GoodAt     Ratings `json:"good_at" validate:"dive"`
	WorldNeeds Ratings `json:"world_needs" validate:"dive"`
	PaidFor    Ratings `json:"paid_for" validate:"dive"`
}

// Get returns the ratings of a quadrant.
func (q *QuadrantRatings) Get(quadrant Quadrant) Ratings {
	switch quadrant {
	case Love:
		return q.Love
	case GoodAt:
		return q.GoodAt
	case WorldNeeds:
		return q.WorldNeeds
	case PaidFor:
		return q.PaidFor
	default:
		return nil
	}
}

// Rate sets the value of an item in a quadrant.
func (q *QuadrantRatings) Rate(quadrant Quadrant, item string, value int) error {
	switch quadrant {
	case Love:
		q.Love = q.Love.Set(item, value)
	case GoodAt:
		q.GoodAt = q.GoodAt.Set(item, value)
	case WorldNeeds:
		q.WorldNeeds = q.WorldNeeds.Set(item, value)
	case PaidFor:
		q.PaidFor = q.PaidFor.Set(item, value)
	default:
		return fmt.Errorf("unknown quadrant %q", quadrant)
	}
	return nil
}

// Freeze returns a deep copy that is safe to keep after submission.
func (q QuadrantRatings) Freeze() QuadrantRatings {
	return QuadrantRatings{
		Love:       q.Love.clone(),
		GoodAt:     q.GoodAt.clone(),
		WorldNeeds: q.WorldNeeds.clone(),
		PaidFor:    q.PaidFor.clone(),
	}
}
