package similarity

import (
	"strconv"
	"strings"
	"unicode"
)

// Demographic scores how well a creator's audience matches a target audience.
// Each dimension only counts when both sides supply it; weights are renormalized
// over the dimensions present. Returns 0 when nothing is comparable.
func Demographic(creator, target Demographics) float64 {
	var weighted, total float64

	add := func(a, b string, weight float64, score func(string, string) float64) {
		if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
			return
		}

		weighted += score(a, b) * weight
		total += weight
	}

	add(creator.AgeRange, target.AgeRange, weightAge, AgeRange)
	add(creator.GenderSkew, target.GenderSkew, weightGender, GenderSkew)
	add(creator.Location, target.Location, weightLocation, Location)
	add(creator.Interests, target.Interests, weightInterests, Interests)

	if total == 0 {
		return 0
	}

	return weighted / total
}

// AgeRange returns the overlap of two "min-max" ranges divided by the size of the
// smaller one. Disjoint or unparsable ranges score 0.
func AgeRange(a, b string) float64 {
	aMin, aMax, ok := parseAgeRange(a)
	if !ok {
		return 0
	}

	bMin, bMax, ok := parseAgeRange(b)
	if !ok {
		return 0
	}

	start := max(aMin, bMin)
	end := min(aMax, bMax)

	if start > end {
		return 0
	}

	overlap := end - start + 1
	smaller := min(aMax-aMin+1, bMax-bMin+1)

	return float64(overlap) / float64(smaller)
}

func parseAgeRange(s string) (int, int, bool) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return 0, 0, false
	}

	minAge, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, false
	}

	maxAge, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, false
	}

	if minAge > maxAge {
		return 0, 0, false
	}

	return minAge, maxAge, true
}

// GenderSkew compares two free-text gender skew labels
func GenderSkew(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == "" || b == "" {
		return 0
	}

	if a == b {
		return 1.0
	}

	aWords := words(a)
	bWords := words(b)

	if aWords["even"] && bWords["even"] {
		return 0.8
	}

	// "women" is its own word, so it never counts as a mention of "men"
	if (aWords["men"] && bWords["men"]) || (aWords["women"] && bWords["women"]) {
		return 0.6
	}

	return 0
}

// Location is a case-insensitive exact match
func Location(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == "" || a != b {
		return 0
	}

	return 1.0
}

// Interests is the Jaccard index of two comma-separated interest lists
func Interests(a, b string) float64 {
	return Jaccard(ParseList(a), ParseList(b))
}

// Jaccard index of two sets; 0 when either side is empty
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for item := range a {
		if _, ok := b[item]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}

// ParseList splits a comma-separated list into a lower-cased, de-duplicated set
func ParseList(s string) map[string]struct{} {
	set := make(map[string]struct{})

	for item := range strings.SplitSeq(s, ",") {
		item = normalize(item)
		if item != "" {
			set[item] = struct{}{}
		}
	}

	return set
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func words(s string) map[string]bool {
	set := make(map[string]bool)

	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		set[w] = true
	}

	return set
}
