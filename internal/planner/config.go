package planner

import (
	"os"
	"strconv"
)

// Config holds the planning knobs. Zero values are replaced by the defaults.
type Config struct {
	PoolLimit             int     // maximum candidates considered per plan
	PlacementCap          int     // maximum placements per creator
	BaselineCVR           float64 // expected CVR of creators without history
	ProrateMinRatio       float64 // smallest fraction of a placement worth funding
	FallbackMinSimilarity float64 // cosine floor for similarity fallback
	FallbackAnchors       int     // allocated creators used as fallback anchors
	DefaultClickEstimate  float64 // clicks per placement when nothing else is known
}

const (
	DefaultPoolLimit             = 500
	DefaultPlacementCap          = 3
	DefaultBaselineCVR           = 0.025
	DefaultProrateMinRatio       = 0.1
	DefaultFallbackMinSimilarity = 0.7
	DefaultFallbackAnchors       = 3
	DefaultClickEstimate         = 100
)

// tolerance used for every budget comparison
const epsilon = 1e-9

func DefaultConfig() Config {
	return Config{
		PoolLimit:             DefaultPoolLimit,
		PlacementCap:          DefaultPlacementCap,
		BaselineCVR:           DefaultBaselineCVR,
		ProrateMinRatio:       DefaultProrateMinRatio,
		FallbackMinSimilarity: DefaultFallbackMinSimilarity,
		FallbackAnchors:       DefaultFallbackAnchors,
		DefaultClickEstimate:  DefaultClickEstimate,
	}
}

// fills unset fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.PoolLimit <= 0 {
		c.PoolLimit = d.PoolLimit
	}

	if c.PlacementCap <= 0 {
		c.PlacementCap = d.PlacementCap
	}

	if c.BaselineCVR <= 0 {
		c.BaselineCVR = d.BaselineCVR
	}

	if c.ProrateMinRatio <= 0 {
		c.ProrateMinRatio = d.ProrateMinRatio
	}

	if c.FallbackMinSimilarity <= 0 {
		c.FallbackMinSimilarity = d.FallbackMinSimilarity
	}

	if c.FallbackAnchors <= 0 {
		c.FallbackAnchors = d.FallbackAnchors
	}

	if c.DefaultClickEstimate <= 0 {
		c.DefaultClickEstimate = d.DefaultClickEstimate
	}

	return c
}

// reads planner knobs from the environment; missing or invalid values keep the defaults
func LoadConfig() Config {
	d := DefaultConfig()

	return Config{
		PoolLimit:             envInt("PLANNER_POOL_LIMIT", d.PoolLimit),
		PlacementCap:          envInt("PLANNER_PLACEMENT_CAP", d.PlacementCap),
		BaselineCVR:           envFloat("PLANNER_BASELINE_CVR", d.BaselineCVR),
		ProrateMinRatio:       envFloat("PLANNER_PRORATE_MIN_RATIO", d.ProrateMinRatio),
		FallbackMinSimilarity: envFloat("PLANNER_FALLBACK_MIN_SIMILARITY", d.FallbackMinSimilarity),
		FallbackAnchors:       envInt("PLANNER_FALLBACK_ANCHORS", d.FallbackAnchors),
		DefaultClickEstimate:  envFloat("PLANNER_DEFAULT_CLICK_ESTIMATE", d.DefaultClickEstimate),
	}
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}

	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}

	return v
}
