package similarity

// audience description shared by creators and advertiser targets
type Demographics struct {
	AgeRange   string `json:"age_range,omitempty"`
	GenderSkew string `json:"gender_skew,omitempty"`
	Location   string `json:"location,omitempty"`
	Interests  string `json:"interests,omitempty"`
}

// reports whether no dimension carries a value
func (d Demographics) IsZero() bool {
	return d.AgeRange == "" && d.GenderSkew == "" && d.Location == "" && d.Interests == ""
}

// weights for the four demographic dimensions
const (
	weightAge       = 0.3
	weightGender    = 0.2
	weightLocation  = 0.2
	weightInterests = 0.3
)

// weights for the combined score
const (
	weightPerformance = 0.5
	weightDemographic = 0.2
	weightTopic       = 0.2
	weightVector      = 0.1
)
