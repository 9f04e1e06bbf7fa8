package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeRange(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "25-34", "25-34", 1.0},
		{"nested in larger", "25-34", "18-44", 1.0},
		{"partial overlap", "18-24", "21-30", 4.0 / 7.0},
		{"disjoint", "18-24", "35-44", 0},
		{"touching edge", "18-24", "24-30", 1.0 / 7.0},
		{"unparsable", "adults", "18-24", 0},
		{"open ended", "65+", "60-70", 0},
		{"inverted", "34-25", "25-34", 0},
		{"padded", " 25 - 34 ", "25-34", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AgeRange(tt.a, tt.b), 1e-9)
		})
	}
}

func TestGenderSkew(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "Mostly Women", "mostly women", 1.0},
		{"whitespace", "  even  split ", "even split", 1.0},
		{"both even", "even split", "roughly even", 0.8},
		{"both women", "mostly women", "women 70%", 0.6},
		{"both men", "mostly men", "men skew", 0.6},
		{"men vs women", "mostly men", "mostly women", 0},
		{"empty", "", "mostly men", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GenderSkew(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, 1.0, Location("us", "US"))
	assert.Equal(t, 0.0, Location("US", "CA"))
	assert.Equal(t, 0.0, Location("", ""))
}

func TestInterests(t *testing.T) {
	assert.InDelta(t, 1.0, Interests("Cooking, Travel", "travel,cooking,cooking"), 1e-9)
	assert.InDelta(t, 1.0/3.0, Interests("cooking, travel", "travel, gaming"), 1e-9)
	assert.Equal(t, 0.0, Interests("", "travel"))
	assert.Equal(t, 0.0, Interests(" , ", "travel"))
}

func TestDemographic_IdenticalProfileScoresOne(t *testing.T) {
	profile := Demographics{
		AgeRange:   "25-34",
		GenderSkew: "mostly women",
		Location:   "US",
		Interests:  "cooking, travel, parenting",
	}

	assert.InDelta(t, 1.0, Demographic(profile, profile), 1e-9)

	// every dimension individually
	assert.InDelta(t, 1.0, AgeRange(profile.AgeRange, profile.AgeRange), 1e-9)
	assert.InDelta(t, 1.0, GenderSkew(profile.GenderSkew, profile.GenderSkew), 1e-9)
	assert.InDelta(t, 1.0, Location(profile.Location, profile.Location), 1e-9)
	assert.InDelta(t, 1.0, Interests(profile.Interests, profile.Interests), 1e-9)
}

func TestDemographic_RenormalizesOverPresentDimensions(t *testing.T) {
	creator := Demographics{AgeRange: "25-34", Location: "US"}
	target := Demographics{AgeRange: "25-34", Location: "CA", Interests: "travel"}

	// age (0.3 * 1.0) + location (0.2 * 0.0) over a total weight of 0.5
	assert.InDelta(t, 0.6, Demographic(creator, target), 1e-9)
}

func TestDemographic_NothingComparable(t *testing.T) {
	creator := Demographics{AgeRange: "25-34"}
	target := Demographics{Location: "US"}

	assert.Equal(t, 0.0, Demographic(creator, target))
	assert.Equal(t, 0.0, Demographic(Demographics{}, Demographics{}))
}
