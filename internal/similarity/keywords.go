package similarity

import "strings"

// Keywords returns the Jaccard index of a creator's keyword set and the target
// keywords. Entries may themselves be comma separated lists; matching is
// case-insensitive. 0 when either side is empty.
func Keywords(creator, target []string) float64 {
	return Jaccard(keywordSet(creator), keywordSet(target))
}

func keywordSet(entries []string) map[string]struct{} {
	return ParseList(strings.Join(entries, ","))
}
