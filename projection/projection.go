// Package projection implements the Projector spec §4.5 defines: four
// independent annualized-income estimates blended under a data-dependent
// weight table into a single figure with a confidence band.
//
// Grounded on the teacher's analytics/predictive.go
// CalculatePredictiveInsights — several independent estimators averaged
// under a fixed weight table, with an override rule when the input shape
// warrants it. The override conditions and weight tables here are
// spec-defined.
package projection

import (
	"math"
	"time"

	"incomeverify/models"
)

const recentWindow = 12

// weightSet is one row of spec §4.5's blending table.
type weightSet struct {
	trailing, weighted, seasonal, trend float64
	primary                             models.ProjectionMethod
}

var defaultWeights = weightSet{0.25, 0.35, 0.20, 0.20, models.MethodWeighted}

// Project computes the blended AnnualizedProjection from the dense monthly
// series (newest-first, as produced by package aggregation), the weighted
// monthly mean and CV carried in stability, the YoY growth percent, and the
// "now" month used to anchor the seasonal method's calendar-month targets.
func Project(monthsDesc []models.MonthlyIncome, stability models.StabilityMetrics, now models.YearMonth) models.AnnualizedProjection {
	recent := recentMonths(monthsDesc, recentWindow)
	n := len(monthsDesc)

	method1 := trailingAverage(recent)
	method2 := stability.WeightedMonthlyMeanCents * 12
	method3 := seasonalAdjusted(monthsDesc, recent, now)
	method4 := trendAdjusted(method1, stability.YoYGrowthPercent)

	weights := selectWeights(stability, n)

	finalF := weights.trailing*float64(method1) +
		weights.weighted*float64(method2) +
		weights.seasonal*float64(method3) +
		weights.trend*float64(method4)
	final := int64(math.Round(finalF))

	margin := int64(math.Round(float64(final) * stability.CV * 0.5))
	if margin < 0 {
		margin = -margin
	}
	ciLow := final - margin
	ciHigh := final + margin

	confidence := classifyConfidence(stability.CV, n)

	return models.AnnualizedProjection{
		Method1TrailingCents: method1,
		Method2WeightedCents: method2,
		Method3SeasonalCents: method3,
		Method4TrendCents:    method4,
		FinalCents:           final,
		CILowCents:           ciLow,
		CIHighCents:          ciHigh,
		Confidence:           confidence,
		PrimaryMethod:        weights.primary,
	}
}

// recentMonths returns the n most recent months, zero-padded (oldest-first)
// when the series is shorter than n, per spec §4.5's "pad with zeros".
func recentMonths(monthsDesc []models.MonthlyIncome, n int) []models.MonthlyIncome {
	take := monthsDesc
	if len(take) > n {
		take = take[:n]
	}
	if len(take) == n {
		return take
	}
	padded := make([]models.MonthlyIncome, n)
	copy(padded[n-len(take):], take)
	return padded
}

func trailingAverage(recent []models.MonthlyIncome) int64 {
	if len(recent) == 0 {
		return 0
	}
	var sum int64
	for _, m := range recent {
		sum += m.TotalCents
	}
	mean := float64(sum) / float64(len(recent))
	return int64(math.Round(mean * 12))
}

// seasonalAdjusted falls back to the trailing average when fewer than 12
// months of history exist; otherwise it sums, for each of the next 12
// calendar months starting at now, the historic average total for that
// calendar month (spec §4.5).
func seasonalAdjusted(monthsDesc []models.MonthlyIncome, recent []models.MonthlyIncome, now models.YearMonth) int64 {
	if len(monthsDesc) < 12 {
		return trailingAverage(recent)
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, m := range monthsDesc {
		sums[m.YearMonth.Month] += float64(m.TotalCents)
		counts[m.YearMonth.Month]++
	}

	var total float64
	for i := 0; i < 12; i++ {
		targetMonth := (now.Month-1+i)%12 + 1
		if counts[targetMonth] == 0 {
			continue
		}
		total += sums[targetMonth] / float64(counts[targetMonth])
	}
	return int64(math.Round(total))
}

func trendAdjusted(currentAnnual int64, yoy float64) int64 {
	return int64(math.Round(float64(currentAnnual) * (1 + yoy/100*0.5)))
}

func selectWeights(stability models.StabilityMetrics, n int) weightSet {
	switch {
	case stability.SeasonalityIndex > 0.25:
		return weightSet{0.15, 0.25, 0.40, 0.20, models.MethodSeasonal}
	case math.Abs(stability.YoYGrowthPercent) > 15:
		return weightSet{0.20, 0.30, 0.10, 0.40, models.MethodTrend}
	case stability.CV < 0.15:
		return weightSet{0.40, 0.30, 0.15, 0.15, models.MethodTrailing}
	default:
		return defaultWeights
	}
}

func classifyConfidence(cv float64, n int) models.ProjectionConfidence {
	switch {
	case cv < 0.2 && n >= 18:
		return models.ConfidenceHigh
	case cv > 0.4 || n < 6:
		return models.ConfidenceLow
	default:
		return models.ConfidenceMedium
	}
}

// CurrentMonth returns the YearMonth anchor for a clock time, used by
// callers to build the "now" argument to Project without importing time
// themselves beyond what they already hold.
func CurrentMonth(t time.Time) models.YearMonth {
	return models.YearMonth{Year: t.Year(), Month: int(t.Month())}
}
