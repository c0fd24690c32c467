package match

// PreferenceMatch is the outcome of checking one candidate ID against a
// student's preference set.
type PreferenceMatch struct {
	Score         float64 `json:"score"`
	IsMatch       bool    `json:"is_match"`
	NoPreferences bool    `json:"no_preferences"`
}

// MatchField scores a program's field against the student's interests.
// No stated interests read as mild indifference (0.5). IDs are compared
// by exact equality.
func MatchField(preferences []string, fieldID string) PreferenceMatch {
	if len(preferences) == 0 {
		return PreferenceMatch{Score: 0.5, NoPreferences: true}
	}
	for _, p := range preferences {
		if p == fieldID {
			return PreferenceMatch{Score: 1.0, IsMatch: true}
		}
	}
	return PreferenceMatch{Score: 0.0}
}

// MatchLocation scores a program's country against the student's preferred
// countries. No stated preference reads as fully neutral (1.0): an
// intentionally different default than MatchField, since an absent country
// list means "anywhere" while an absent field list means "undecided".
func MatchLocation(preferences []string, countryID string) PreferenceMatch {
	if len(preferences) == 0 {
		return PreferenceMatch{Score: 1.0, NoPreferences: true}
	}
	for _, p := range preferences {
		if p == countryID {
			return PreferenceMatch{Score: 1.0, IsMatch: true}
		}
	}
	return PreferenceMatch{Score: 0.0}
}
