// Package stability implements the StabilityAnalyzer spec §4.4 defines:
// coefficient of variation, weighted monthly mean, year-over-year growth,
// source diversity (HHI-based), seasonality, trajectory classification,
// and maintenance probability.
//
// Grounded on the teacher's analytics/cashflow.go and
// analytics/anomaly_detection_ml.go stddev/mean-over-float-slice idiom —
// the formulas themselves are spec-defined; the coding shape (small pure
// helpers composed into one exported Compute) follows the teacher.
package stability

import (
	"math"

	"incomeverify/models"
)

const recentMonthsWeighted = 6

// Compute derives the full StabilityMetrics set from a monthly income
// series (in the aggregator's descending, newest-first order) and the
// income sources contributing to it (spec §4.4).
func Compute(monthsDesc []models.MonthlyIncome, sources []models.IncomeSource) models.StabilityMetrics {
	cv := coefficientOfVariation(monthsDesc)
	weightedMean := weightedMonthlyMean(monthsDesc)
	yoy := yoyGrowthPercent(monthsDesc)
	diversity := diversityScore(sources)
	seasonality := seasonalityIndex(monthsDesc)
	trajectory := classifyTrajectory(cv, seasonality, yoy)
	maintenance := maintenanceProbability(cv, trajectory, len(sources))

	return models.StabilityMetrics{
		CV:                       round(cv, 3),
		WeightedMonthlyMeanCents: weightedMean,
		YoYGrowthPercent:         round(yoy, 1),
		DiversityScore:           diversity,
		SeasonalityIndex:         seasonality,
		Trajectory:               trajectory,
		MaintenanceProbability:   maintenance,
	}
}

func coefficientOfVariation(months []models.MonthlyIncome) float64 {
	var nonZero []float64
	for _, m := range months {
		if m.TotalCents != 0 {
			nonZero = append(nonZero, float64(m.TotalCents))
		}
	}
	mean, stddev := meanStddev(nonZero)
	if mean == 0 {
		return 1.0
	}
	return stddev / mean
}

func meanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	stddev = math.Sqrt(variance)
	return mean, stddev
}

// weightedMonthlyMean reindexes the series oldest-to-newest (spec §4.4:
// "index months 0 (oldest) ... N-1 (newest) after reversal") and weights
// the most recent recentMonthsWeighted months double.
func weightedMonthlyMean(monthsDesc []models.MonthlyIncome) int64 {
	if len(monthsDesc) == 0 {
		return 0
	}
	asc := reversed(monthsDesc)
	n := len(asc)

	var weightedSum, weightTotal float64
	for i, m := range asc {
		weight := 1.0
		if n-i <= recentMonthsWeighted {
			weight = 2.0
		}
		weightedSum += weight * float64(m.TotalCents)
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return int64(math.Round(weightedSum / weightTotal))
}

func reversed(months []models.MonthlyIncome) []models.MonthlyIncome {
	out := make([]models.MonthlyIncome, len(months))
	for i, m := range months {
		out[len(months)-1-i] = m
	}
	return out
}

// yoyGrowthPercent assumes monthsDesc[0] is the newest month (spec §4.4).
func yoyGrowthPercent(monthsDesc []models.MonthlyIncome) float64 {
	n := len(monthsDesc)
	if n < 12 {
		return 0
	}
	var recent int64
	for i := 0; i < 12; i++ {
		recent += monthsDesc[i].TotalCents
	}

	priorEnd := 24
	if priorEnd > n {
		priorEnd = n
	}
	priorLen := priorEnd - 12
	if priorLen < 6 {
		return 0
	}
	var prior int64
	for i := 12; i < priorEnd; i++ {
		prior += monthsDesc[i].TotalCents
	}

	if prior == 0 {
		if recent > 0 {
			return 100
		}
		return 0
	}
	return (float64(recent) - float64(prior)) / float64(prior) * 100
}

func diversityScore(sources []models.IncomeSource) float64 {
	if len(sources) == 0 {
		return 0
	}
	if len(sources) == 1 {
		return 20
	}

	var total int64
	for _, s := range sources {
		total += s.TotalCents
	}
	if total == 0 {
		return 20
	}

	var sumSquares float64
	for _, s := range sources {
		share := float64(s.TotalCents) / float64(total)
		sumSquares += share * share
	}
	base := (1 - sumSquares) * 100

	bonus := len(sources) - 1
	if bonus > 3 {
		bonus = 3
	}
	score := base + float64(bonus)*5
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func seasonalityIndex(monthsDesc []models.MonthlyIncome) float64 {
	if len(monthsDesc) < 12 {
		return 0
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, m := range monthsDesc {
		sums[m.YearMonth.Month] += float64(m.TotalCents)
		counts[m.YearMonth.Month]++
	}

	averages := make([]float64, 0, 12)
	for month := 1; month <= 12; month++ {
		if counts[month] == 0 {
			continue
		}
		averages = append(averages, sums[month]/float64(counts[month]))
	}

	mean, stddev := meanStddev(averages)
	if mean == 0 {
		return 0
	}
	idx := stddev / mean
	if idx < 0 {
		idx = 0
	}
	if idx > 1 {
		idx = 1
	}
	return idx
}

func classifyTrajectory(cv, seasonality, yoy float64) models.Trajectory {
	switch {
	case cv > 0.5:
		return models.TrajectoryVolatile
	case seasonality > 0.3:
		return models.TrajectorySeasonal
	case yoy > 10:
		return models.TrajectoryGrowing
	case yoy < -10:
		return models.TrajectoryDeclining
	default:
		return models.TrajectoryStable
	}
}

func maintenanceProbability(cv float64, trajectory models.Trajectory, sourceCount int) float64 {
	p := 0.5

	switch {
	case cv < 0.15:
		p += 0.2
	case cv < 0.30:
		p += 0.1
	case cv > 0.5:
		p -= 0.15
	}

	switch trajectory {
	case models.TrajectoryGrowing:
		p += 0.1
	case models.TrajectoryStable:
		p += 0.05
	case models.TrajectoryDeclining:
		p -= 0.15
	case models.TrajectoryVolatile:
		p -= 0.10
	}

	switch {
	case sourceCount >= 4:
		p += 0.1
	case sourceCount >= 2:
		p += 0.05
	case sourceCount == 1:
		p -= 0.05
	}

	if p < 0.1 {
		p = 0.1
	}
	if p > 0.95 {
		p = 0.95
	}
	return p
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
