package ikigai

// Flow selects how quadrants are rated and how intersections are computed.
type Flow string

const (
	// FlowComprehensive rates fixed items 0-10 and uses the correlation variant.
	FlowComprehensive Flow = "comprehensive"
	// FlowSkills rates items 1-5, accepts free-text skills and uses the
	// semantic-overlap variant.
	FlowSkills Flow = "skills"
)

// Scale is the rating range of a flow.
type Scale struct {
	Min     int
	Max     int
	Default int
	// High is the threshold from which an item counts as strongly rated.
	High int
}

// Scale returns the rating scale of the flow.
func (f Flow) Scale() Scale {
	if f == FlowSkills {
		return Scale{Min: 1, Max: 5, Default: 3, High: 4}
	}
	return Scale{Min: 0, Max: 10, Default: 5, High: 8}
}

// Variant returns the intersection algorithm used by the flow.
func (f Flow) Variant() Variant {
	if f == FlowSkills {
		return VariantOverlap
	}
	return VariantCorrelation
}

// Valid reports whether f names a known flow.
func (f Flow) Valid() bool {
	return f == FlowComprehensive || f == FlowSkills
}

var comprehensiveItems = map[Quadrant][]string{
	Love: {
		"Creative Problem Solving", "Helping Others", "Learning New Things",
		"Building Solutions", "Artistic Expression", "Leading Teams",
		"Analyzing Data", "Strategic Thinking", "Teaching Others", "Innovation",
	},
	GoodAt: {
		"Communication", "Analytical Thinking", "Programming", "Design Thinking",
		"Project Management", "Research", "Leadership", "Mathematics",
		"Writing", "Marketing",
	},
	WorldNeeds: {
		"Digital Transformation", "Climate Solutions", "Education Access",
		"Healthcare Innovation", "Social Equality", "Economic Opportunity",
		"Mental Health Support", "Data Privacy", "Smart Cities", "Elderly Care",
	},
	PaidFor: {
		"Software Development", "Consulting Services", "Content Creation",
		"Product Design", "Data Analysis", "Marketing", "Financial Services",
		"Healthcare Services", "Education", "Engineering",
	},
}

var skillsItems = map[Quadrant][]string{
	Love: {
		"creative_problem_solving", "helping_others", "learning_new_things",
		"building_solutions", "artistic_expression", "leading_teams",
		"analyzing_data", "strategic_thinking", "teaching_others", "innovation",
	},
	GoodAt: {
		"communication", "analytical_thinking", "programming", "design_thinking",
		"project_management", "research", "leadership", "mathematics",
		"writing", "marketing",
	},
	WorldNeeds: {
		"digital_transformation", "climate_solutions", "education_access",
		"healthcare_innovation", "social_equality", "economic_opportunity",
		"mental_health_support", "data_privacy", "smart_cities", "elderly_care",
	},
	PaidFor: {
		"software_development", "consulting_services", "content_creation",
		"product_design", "data_analysis", "marketing", "financial_services",
		"healthcare_services", "education", "engineering",
	},
}

// Items returns the suggested items of a quadrant for the flow.
func (f Flow) Items(q Quadrant) []string {
	source := comprehensiveItems
	if f == FlowSkills {
		source = skillsItems
	}
	items := source[q]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// DefaultRatings returns every suggested item rated at the flow's default.
func (f Flow) DefaultRatings() QuadrantRatings {
	scale := f.Scale()
	var ratings QuadrantRatings
	for _, q := range Quadrants {
		for _, item := range f.Items(q) {
			_ = ratings.Rate(q, item, scale.Default)
		}
	}
	return ratings
}

// relatedConcepts lists, for an item, the items of other quadrants that
// count as a near match. Lists are in preference order.
var relatedConcepts = map[string][]string{
	"creative_problem_solving": {"innovation", "problem_solving", "design_thinking", "engineering"},
	"helping_others":           {"mental_health_support", "healthcare_services", "elderly_care", "social_equality", "communication"},
	"learning_new_things":      {"research", "education", "education_access"},
	"building_solutions":       {"programming", "software_development", "engineering", "digital_transformation"},
	"artistic_expression":      {"design_thinking", "content_creation", "product_design", "writing"},
	"leading_teams":            {"leadership", "project_management", "consulting_services"},
	"analyzing_data":           {"analytical_thinking", "data_analysis", "research", "data_privacy"},
	"strategic_thinking":       {"project_management", "consulting_services", "economic_opportunity"},
	"teaching_others":          {"education", "education_access", "communication", "writing"},
	"innovation":               {"healthcare_innovation", "smart_cities", "digital_transformation", "product_design"},

	"communication":       {"content_creation", "marketing", "consulting_services", "education_access"},
	"analytical_thinking": {"data_analysis", "financial_services", "data_privacy"},
	"programming":         {"software_development", "engineering", "digital_transformation", "smart_cities"},
	"design_thinking":     {"product_design", "smart_cities"},
	"project_management":  {"consulting_services", "engineering"},
	"research":            {"data_analysis", "healthcare_innovation", "climate_solutions"},
	"leadership":          {"consulting_services", "leading_teams"},
	"mathematics":         {"financial_services", "engineering", "data_analysis"},
	"writing":             {"content_creation", "education"},
	"marketing":           {"content_creation", "economic_opportunity"},

	"digital_transformation": {"software_development", "consulting_services"},
	"climate_solutions":      {"engineering"},
	"education_access":       {"education", "content_creation"},
	"healthcare_innovation":  {"healthcare_services"},
	"social_equality":        {"education", "consulting_services"},
	"economic_opportunity":   {"financial_services", "consulting_services"},
	"mental_health_support":  {"healthcare_services"},
	"data_privacy":           {"software_development", "data_analysis"},
	"smart_cities":           {"engineering", "software_development"},
	"elderly_care":           {"healthcare_services"},
}

// Related returns the near-match concepts of an item.
func Related(item string) []string {
	related := relatedConcepts[item]
	out := make([]string, len(related))
	copy(out, related)
	return out
}
