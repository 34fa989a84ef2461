// Weighted social credit scoring for scraped Facebook profiles.
// Raw component scores live on a 0-100 scale, the weighted total is
// projected onto the 300-850 credit range.

package scoring

import "math"

const (
	// MinScore and MaxScore bound the published credit range.
	MinScore = 300
	MaxScore = 850

	// ScoreRange is the range label attached to every response.
	ScoreRange = "300-850"
)

// Profile holds the signals extracted from a profile page. Fields default to
// the parser's conservative estimates when a signal cannot be extracted.
type Profile struct {
	Username        string  `json:"username"`
	IsVerified      bool    `json:"is_verified"`
	Followers       int     `json:"followers"`
	Likes           int     `json:"likes"`
	PostsCount      int     `json:"posts_count"`
	EngagementRate  float64 `json:"engagement_rate"`
	BioLength       int     `json:"bio_length"`
	HasProfilePhoto bool    `json:"has_profile_photo"`
	HasCoverPhoto   bool    `json:"has_cover_photo"`
}

// Weights distributes the five scoring components. Loaded from config,
// must sum to 1.0 for the total to stay on the 0-100 scale.
type Weights struct {
	Verification float64 `yaml:"verification"`
	Followers    float64 `yaml:"followers"`
	Engagement   float64 `yaml:"engagement"`
	Completeness float64 `yaml:"completeness"`
	Activity     float64 `yaml:"activity"`
}

// DefaultWeights returns the production weight distribution.
func DefaultWeights() Weights {
	return Weights{
		Verification: 0.15,
		Followers:    0.30,
		Engagement:   0.25,
		Completeness: 0.15,
		Activity:     0.15,
	}
}

// Components holds the per-component scores, each on a 0-100 scale.
type Components struct {
	Verification float64
	Followers    float64
	Engagement   float64
	Completeness float64
	Activity     float64
}

// Result is the outcome of scoring a single profile.
type Result struct {
	Raw      Components
	Weighted Components
	Total    float64
	Tier     string
}

// BreakdownItem is a single component of the published score breakdown.
type BreakdownItem struct {
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
}

// Breakdown maps breakdown component names to their values.
type Breakdown map[string]BreakdownItem

// ProfileScore is the final scored output for one username.
type ProfileScore struct {
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Tier      string    `json:"tier"`
	Breakdown Breakdown `json:"breakdown"`
}

// Calculate computes the raw and weighted component scores for a profile.
func Calculate(p Profile, w Weights) Result {
	followers := p.Followers
	if followers < 1 {
		followers = 1
	}
	posts := p.PostsCount
	if posts < 1 {
		posts = 1
	}

	verifiedBonus := 0.0
	if p.IsVerified {
		verifiedBonus = 10
	}

	raw := Components{
		Followers:  math.Min(100, math.Log10(float64(followers))*20+verifiedBonus),
		Engagement: math.Min(100, p.EngagementRate*100),
		Activity:   math.Min(100, math.Log10(float64(posts))*25+verifiedBonus),
	}
	if p.IsVerified {
		raw.Verification = 100
	}
	if p.HasProfilePhoto {
		raw.Completeness += 40
	}
	if p.HasCoverPhoto {
		raw.Completeness += 30
	}
	raw.Completeness += math.Min(30, float64(p.BioLength)/10)

	weighted := Components{
		Verification: raw.Verification * w.Verification,
		Followers:    raw.Followers * w.Followers,
		Engagement:   raw.Engagement * w.Engagement,
		Completeness: raw.Completeness * w.Completeness,
		Activity:     raw.Activity * w.Activity,
	}

	return Result{
		Raw:      raw,
		Weighted: weighted,
		Total:    weighted.Verification + weighted.Followers + weighted.Engagement + weighted.Completeness + weighted.Activity,
		Tier:     Tier(followers, p.IsVerified),
	}
}

// Breakdown folds the raw components into the three published breakdown
// buckets: profile (verification + completeness, max 200), network
// (followers, max 100) and activity (engagement + activity, max 200).
func (r Result) Breakdown() Breakdown {
	return Breakdown{
		"profile_score": {
			Value: r.Raw.Verification + r.Raw.Completeness,
			Max:   200.0,
		},
		"network_score": {
			Value: r.Raw.Followers,
			Max:   100.0,
		},
		"activity_score": {
			Value: r.Raw.Engagement + r.Raw.Activity,
			Max:   200.0,
		},
	}
}

// ScaleToRange maps a 0-100 raw score onto the 300-850 credit range.
func ScaleToRange(raw float64) int {
	normalized := raw / 100
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return int(MinScore + (MaxScore-MinScore)*normalized)
}

// RiskLevel maps a scaled score to its published risk label. Takes a float
// so averaged scores are classified before rounding.
func RiskLevel(score float64) string {
	switch {
	case score >= 750:
		return "Very Low Risk"
	case score >= 650:
		return "Low Risk"
	case score >= 550:
		return "Medium Risk"
	case score >= 450:
		return "High Risk"
	default:
		return "Very High Risk"
	}
}

// Tier classifies a profile by reach. Verified accounts reach higher tiers
// with fewer followers.
func Tier(followers int, verified bool) string {
	if verified {
		switch {
		case followers >= 5_000_000:
			return "Elite"
		case followers >= 500_000:
			return "Premium"
		default:
			return "Standard"
		}
	}

	switch {
	case followers >= 10_000_000:
		return "Elite"
	case followers >= 1_000_000:
		return "Premium"
	case followers >= 100_000:
		return "Standard"
	default:
		return "Basic"
	}
}
