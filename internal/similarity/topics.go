package similarity

import "strings"

// topic labels known to the similarity table, in display order
var topicNames = []string{
	"Food & Cooking",
	"Kitchen & Household",
	"Health & Wellness",
	"Lifestyle",
	"Parenting",
	"Travel",
	"Technology",
	"Fashion & Beauty",
	"Finance",
	"Gaming",
	"Sports & Fitness",
	"Education",
	"Entertainment",
	"Home & Garden",
	"Automotive",
	"Business",
}

// upper triangle of the topic matrix; the diagonal is implicitly 1.0
var topicPairs = map[[2]string]float64{
	{"Food & Cooking", "Kitchen & Household"}: 0.8,
	{"Food & Cooking", "Health & Wellness"}:   0.6,
	{"Food & Cooking", "Lifestyle"}:           0.5,
	{"Food & Cooking", "Parenting"}:           0.4,
	{"Food & Cooking", "Travel"}:              0.3,
	{"Food & Cooking", "Technology"}:          0.2,
	{"Food & Cooking", "Fashion & Beauty"}:    0.3,
	{"Food & Cooking", "Finance"}:             0.1,
	{"Food & Cooking", "Gaming"}:              0.1,
	{"Food & Cooking", "Sports & Fitness"}:    0.4,
	{"Food & Cooking", "Education"}:           0.2,
	{"Food & Cooking", "Entertainment"}:       0.2,
	{"Food & Cooking", "Home & Garden"}:       0.7,
	{"Food & Cooking", "Automotive"}:          0.1,
	{"Food & Cooking", "Business"}:            0.1,

	{"Kitchen & Household", "Health & Wellness"}: 0.5,
	{"Kitchen & Household", "Lifestyle"}:         0.6,
	{"Kitchen & Household", "Parenting"}:         0.5,
	{"Kitchen & Household", "Travel"}:            0.2,
	{"Kitchen & Household", "Technology"}:        0.3,
	{"Kitchen & Household", "Fashion & Beauty"}:  0.2,
	{"Kitchen & Household", "Finance"}:           0.1,
	{"Kitchen & Household", "Gaming"}:            0.1,
	{"Kitchen & Household", "Sports & Fitness"}:  0.3,
	{"Kitchen & Household", "Education"}:         0.2,
	{"Kitchen & Household", "Entertainment"}:     0.2,
	{"Kitchen & Household", "Home & Garden"}:     0.8,
	{"Kitchen & Household", "Automotive"}:        0.1,
	{"Kitchen & Household", "Business"}:          0.1,

	{"Health & Wellness", "Lifestyle"}:        0.7,
	{"Health & Wellness", "Parenting"}:        0.6,
	{"Health & Wellness", "Travel"}:           0.3,
	{"Health & Wellness", "Technology"}:       0.2,
	{"Health & Wellness", "Fashion & Beauty"}: 0.4,
	{"Health & Wellness", "Finance"}:          0.2,
	{"Health & Wellness", "Gaming"}:           0.1,
	{"Health & Wellness", "Sports & Fitness"}: 0.8,
	{"Health & Wellness", "Education"}:        0.3,
	{"Health & Wellness", "Entertainment"}:    0.2,
	{"Health & Wellness", "Home & Garden"}:    0.3,
	{"Health & Wellness", "Automotive"}:       0.1,
	{"Health & Wellness", "Business"}:         0.1,

	{"Lifestyle", "Parenting"}:        0.6,
	{"Lifestyle", "Travel"}:           0.5,
	{"Lifestyle", "Technology"}:       0.3,
	{"Lifestyle", "Fashion & Beauty"}: 0.7,
	{"Lifestyle", "Finance"}:          0.3,
	{"Lifestyle", "Gaming"}:           0.2,
	{"Lifestyle", "Sports & Fitness"}: 0.5,
	{"Lifestyle", "Education"}:        0.3,
	{"Lifestyle", "Entertainment"}:    0.4,
	{"Lifestyle", "Home & Garden"}:    0.6,
	{"Lifestyle", "Automotive"}:       0.2,
	{"Lifestyle", "Business"}:         0.2,

	{"Parenting", "Travel"}:           0.4,
	{"Parenting", "Technology"}:       0.2,
	{"Parenting", "Fashion & Beauty"}: 0.3,
	{"Parenting", "Finance"}:          0.4,
	{"Parenting", "Gaming"}:           0.1,
	{"Parenting", "Sports & Fitness"}: 0.4,
	{"Parenting", "Education"}:        0.7,
	{"Parenting", "Entertainment"}:    0.3,
	{"Parenting", "Home & Garden"}:    0.5,
	{"Parenting", "Automotive"}:       0.2,
	{"Parenting", "Business"}:         0.1,

	{"Travel", "Technology"}:       0.3,
	{"Travel", "Fashion & Beauty"}: 0.4,
	{"Travel", "Finance"}:          0.2,
	{"Travel", "Gaming"}:           0.1,
	{"Travel", "Sports & Fitness"}: 0.3,
	{"Travel", "Education"}:        0.4,
	{"Travel", "Entertainment"}:    0.5,
	{"Travel", "Home & Garden"}:    0.2,
	{"Travel", "Automotive"}:       0.3,
	{"Travel", "Business"}:         0.2,

	{"Technology", "Fashion & Beauty"}: 0.2,
	{"Technology", "Finance"}:          0.4,
	{"Technology", "Gaming"}:           0.6,
	{"Technology", "Sports & Fitness"}: 0.2,
	{"Technology", "Education"}:        0.5,
	{"Technology", "Entertainment"}:    0.4,
	{"Technology", "Home & Garden"}:    0.3,
	{"Technology", "Automotive"}:       0.4,
	{"Technology", "Business"}:         0.6,

	{"Fashion & Beauty", "Finance"}:          0.2,
	{"Fashion & Beauty", "Gaming"}:           0.1,
	{"Fashion & Beauty", "Sports & Fitness"}: 0.4,
	{"Fashion & Beauty", "Education"}:        0.2,
	{"Fashion & Beauty", "Entertainment"}:    0.5,
	{"Fashion & Beauty", "Home & Garden"}:    0.2,
	{"Fashion & Beauty", "Automotive"}:       0.1,
	{"Fashion & Beauty", "Business"}:         0.1,

	{"Finance", "Gaming"}:           0.1,
	{"Finance", "Sports & Fitness"}: 0.2,
	{"Finance", "Education"}:        0.4,
	{"Finance", "Entertainment"}:    0.1,
	{"Finance", "Home & Garden"}:    0.2,
	{"Finance", "Automotive"}:       0.3,
	{"Finance", "Business"}:         0.7,

	{"Gaming", "Sports & Fitness"}: 0.2,
	{"Gaming", "Education"}:        0.3,
	{"Gaming", "Entertainment"}:    0.8,
	{"Gaming", "Home & Garden"}:    0.1,
	{"Gaming", "Automotive"}:       0.1,
	{"Gaming", "Business"}:         0.1,

	{"Sports & Fitness", "Education"}:     0.3,
	{"Sports & Fitness", "Entertainment"}: 0.3,
	{"Sports & Fitness", "Home & Garden"}: 0.2,
	{"Sports & Fitness", "Automotive"}:    0.2,
	{"Sports & Fitness", "Business"}:      0.1,

	{"Education", "Entertainment"}: 0.3,
	{"Education", "Home & Garden"}: 0.2,
	{"Education", "Automotive"}:    0.2,
	{"Education", "Business"}:      0.4,

	{"Entertainment", "Home & Garden"}: 0.2,
	{"Entertainment", "Automotive"}:    0.1,
	{"Entertainment", "Business"}:      0.1,

	{"Home & Garden", "Automotive"}: 0.2,
	{"Home & Garden", "Business"}:   0.1,

	{"Automotive", "Business"}: 0.3,
}

// symmetric lookup keyed by normalized labels, built once from topicPairs
var topicTable = buildTopicTable()

func buildTopicTable() map[string]map[string]float64 {
	table := make(map[string]map[string]float64, len(topicNames))

	for _, name := range topicNames {
		key := normalize(name)
		table[key] = map[string]float64{key: 1.0}
	}

	for pair, score := range topicPairs {
		a, b := normalize(pair[0]), normalize(pair[1])
		table[a][b] = score
		table[b][a] = score
	}

	return table
}

// Topics returns the labels of the topic table
func Topics() []string {
	out := make([]string, len(topicNames))
	copy(out, topicNames)
	return out
}

// TopicPair returns the table similarity of two topic labels, 0 if either is unknown
func TopicPair(a, b string) float64 {
	row, ok := topicTable[normalize(a)]
	if !ok {
		return 0
	}

	return row[normalize(b)]
}

// Topic returns the best table similarity between a creator topic and any target topic
func Topic(creatorTopic string, targets []string) float64 {
	if strings.TrimSpace(creatorTopic) == "" {
		return 0
	}

	best := 0.0
	for _, target := range targets {
		best = max(best, TopicPair(creatorTopic, target))
	}

	return best
}
