package library

// HotThreshold is the popularity score at and above which a library is "hot".
const HotThreshold = 0.25

// Popularity labels.
const (
	PopularityUnknown     = "Unknown"
	PopularityDeclining   = "Declining"
	PopularityStable      = "Stable"
	PopularityGrowing     = "Growing"
	PopularityPopular     = "Popular"
	PopularityVeryPopular = "Very Popular"
)

// PopularityLabel maps a popularity score (download growth ratio) to a label
// and reports whether it is hot. A nil score is unknown and never hot.
func PopularityLabel(score *float64) (label string, hot bool) {
	if score == nil {
		return PopularityUnknown, false
	}
	p := *score
	switch {
	case p >= 0.5:
		label = PopularityVeryPopular
	case p >= HotThreshold:
		label = PopularityPopular
	case p >= 0.1:
		label = PopularityGrowing
	case p >= 0:
		label = PopularityStable
	default:
		label = PopularityDeclining
	}
	return label, p >= HotThreshold
}
