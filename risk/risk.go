// Package risk implements the RiskAssessor spec §4.7 defines: a narrative
// risk score built from additive adjustments over the stability, source
// concentration, and debt metrics already computed upstream.
//
// Grounded on the teacher's analytics/predictive.go confidence-narrative
// assembly: start from a neutral baseline, walk a fixed rule list, and
// append one human-readable factor per triggered rule rather than
// returning a bare number.
package risk

import (
	"fmt"

	"incomeverify/models"
)

const neutralScore = 50

// Assess produces the RiskAssessment for a borrower's computed metrics,
// per spec §4.7.
func Assess(sources []models.IncomeSource, stability models.StabilityMetrics, debt models.DebtAnalysis) models.RiskAssessment {
	score := float64(neutralScore)
	var positives, risks []string

	switch {
	case stability.CV < 0.2:
		score -= 10
		positives = append(positives, fmt.Sprintf("Low income volatility (cv=%.2f)", stability.CV))
	case stability.CV > 0.4:
		score += 15
		risks = append(risks, fmt.Sprintf("High income volatility (cv=%.2f)", stability.CV))
	}

	switch stability.Trajectory {
	case models.TrajectoryGrowing:
		score -= 10
		positives = append(positives, "Income trajectory is growing")
	case models.TrajectoryDeclining:
		score += 20
		risks = append(risks, "Income trajectory is declining")
	case models.TrajectoryVolatile:
		score += 10
		risks = append(risks, "Income trajectory is volatile")
	}

	switch {
	case len(sources) >= 4:
		score -= 10
		positives = append(positives, fmt.Sprintf("%d diversified income sources", len(sources)))
	case len(sources) == 1:
		score += 15
		risks = append(risks, "Reliant on a single income source")
	}

	if dominant, share, ok := dominantSource(sources); ok && share > 0.70 {
		score += 10
		risks = append(risks, fmt.Sprintf("%s represents %.0f%% of total income", dominant, share*100))
	}

	switch {
	case debt.DTIPercent < 35:
		score -= 5
		positives = append(positives, fmt.Sprintf("Debt-to-income ratio of %.1f%% is manageable", debt.DTIPercent))
	case debt.DTIPercent > 50:
		score += 15
		risks = append(risks, fmt.Sprintf("Debt-to-income ratio of %.1f%% is elevated", debt.DTIPercent))
	}

	switch {
	case stability.MaintenanceProbability > 0.75:
		positives = append(positives, "High likelihood of sustained income")
	case stability.MaintenanceProbability < 0.5:
		risks = append(risks, "Lower likelihood of sustained income")
	}

	return models.RiskAssessment{
		Level:           classifyLevel(score),
		PositiveFactors: positives,
		RiskFactors:     risks,
		SuggestedAction: suggestedAction(stability.Trajectory),
	}
}

func dominantSource(sources []models.IncomeSource) (name string, share float64, ok bool) {
	if len(sources) == 0 {
		return "", 0, false
	}
	var total int64
	for _, s := range sources {
		total += s.TotalCents
	}
	if total == 0 {
		return "", 0, false
	}

	var best models.IncomeSource
	var bestShare float64
	for _, s := range sources {
		shareOf := float64(s.TotalCents) / float64(total)
		if shareOf > bestShare {
			bestShare = shareOf
			best = s
		}
	}
	return best.DisplayName, bestShare, true
}

func classifyLevel(score float64) models.RiskLevel {
	switch {
	case score < 40:
		return models.RiskLow
	case score < 65:
		return models.RiskModerate
	default:
		return models.RiskElevated
	}
}

func suggestedAction(trajectory models.Trajectory) string {
	switch trajectory {
	case models.TrajectoryGrowing:
		return "Continue building on this upward trend; lenders weigh sustained growth favorably."
	case models.TrajectoryDeclining:
		return "Consider adding a secondary income source before applying to offset the recent decline."
	case models.TrajectoryVolatile:
		return "Building a cash reserve can help smooth month-to-month swings in qualifying calculations."
	case models.TrajectorySeasonal:
		return "Highlight the seasonal pattern to lenders so dips aren't mistaken for instability."
	default:
		return "Maintaining this steady pattern strengthens future applications."
	}
}
