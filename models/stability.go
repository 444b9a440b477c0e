package models

// Trajectory is the qualitative classification of the income series
// spec §4.4 defines, in the first-match-wins order the stability analyzer
// evaluates them.
type Trajectory string

const (
	TrajectoryVolatile  Trajectory = "Volatile"
	TrajectorySeasonal  Trajectory = "Seasonal"
	TrajectoryGrowing   Trajectory = "Growing"
	TrajectoryDeclining Trajectory = "Declining"
	TrajectoryStable    Trajectory = "Stable"
)

// StabilityMetrics holds the full set of derived income-stability
// statistics spec §4.4 defines. All fields are finite; CV defaults to 1.0
// whenever the non-zero mean is 0.
type StabilityMetrics struct {
	CV                       float64    `json:"cv"`
	WeightedMonthlyMeanCents int64      `json:"weighted_monthly_mean_cents"`
	YoYGrowthPercent         float64    `json:"yoy_growth_percent"`
	DiversityScore           float64    `json:"diversity_score"` // 0-100
	SeasonalityIndex         float64    `json:"seasonality_index"` // 0-1
	Trajectory               Trajectory `json:"trajectory"`
	MaintenanceProbability   float64    `json:"maintenance_probability"` // 0.1-0.95
}
