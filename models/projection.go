package models

// ProjectionConfidence is the qualitative confidence band spec §4.5 assigns
// to the blended annual projection.
type ProjectionConfidence string

const (
	ConfidenceHigh   ProjectionConfidence = "High"
	ConfidenceMedium ProjectionConfidence = "Medium"
	ConfidenceLow    ProjectionConfidence = "Low"
)

// ProjectionMethod identifies which of the four methods was primary in the
// blend, per spec §4.5's override table.
type ProjectionMethod string

const (
	MethodTrailing ProjectionMethod = "Trailing"
	MethodWeighted ProjectionMethod = "WeightedMA"
	MethodSeasonal ProjectionMethod = "Seasonal"
	MethodTrend    ProjectionMethod = "Trend"
)

// AnnualizedProjection is the result of the four-method blended annual
// income projection spec §4.5 defines. Invariant: CILowCents <= FinalCents
// <= CIHighCents.
type AnnualizedProjection struct {
	Method1TrailingCents int64                `json:"method1_trailing"`
	Method2WeightedCents int64                `json:"method2_weighted"`
	Method3SeasonalCents int64                `json:"method3_seasonal"`
	Method4TrendCents    int64                `json:"method4_trend"`
	FinalCents           int64                `json:"final_cents"`
	CILowCents           int64                `json:"ci_low_cents"`
	CIHighCents          int64                `json:"ci_high_cents"`
	Confidence           ProjectionConfidence `json:"confidence"`
	PrimaryMethod        ProjectionMethod     `json:"primary_method"`
}
