// Package scoring implements the LoanScorer spec §4.8 defines: six
// weighted components blended into a 0-100 Loan Readiness Score, a letter
// grade, loan-type qualification, and a prioritized recommendation list.
//
// Grounded on the teacher's analytics/predictive.go weighted-component
// blend shape and rules/category_rules.go's staircase-scoring idiom
// (ordered threshold ladder, first match wins). The amortization narrative
// in IncomeLevel borrows shopspring/decimal the way dafibh-fortuna-backend's
// calculation_service.go keeps money math out of float64 at the display
// boundary.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"incomeverify/models"
)

const (
	weightIncomeStability           = 0.25
	weightIncomeTrend                = 0.20
	weightIncomeDiversity            = 0.15
	weightDocumentationCompleteness  = 0.15
	weightIncomeLevel                = 0.15
	weightAccountAge                 = 0.10

	// RecommendationGainFactor is the fixed, non-tunable damping applied to
	// each component's potential gain when deriving potential_increase
	// (SPEC_FULL §12.3 — kept fixed pending product confirmation).
	RecommendationGainFactor = 0.5

	maxRecommendations = 5
)

var loanThresholds = map[models.LoanType]models.LoanThreshold{
	models.LoanMortgage: {Recommended: 75, Minimum: 60},
	models.LoanAuto:     {Recommended: 55, Minimum: 40},
	models.LoanPersonal: {Recommended: 50, Minimum: 35},
	models.LoanBusiness: {Recommended: 65, Minimum: 50},
	models.LoanHeloc:    {Recommended: 70, Minimum: 55},
}

// Input bundles every upstream figure the scorer needs, since spec §4.8's
// components each draw on a different prior stage's output.
type Input struct {
	Sources            []models.IncomeSource
	Stability          models.StabilityMetrics
	Projection         models.AnnualizedProjection
	Debt               models.DebtAnalysis
	Documents          models.DocumentationFlags
	MonthsAnalyzed     int
	TargetLoanAmountCents *int64
	TargetLoanType     *models.LoanType
	Now                time.Time
}

// Score computes the full LoanReadinessScore, per spec §4.8.
func Score(in Input) models.LoanReadinessScore {
	stability := incomeStabilityComponent(in.Stability)
	trend := incomeTrendComponent(in.Stability)
	diversity := incomeDiversityComponent(in.Sources)
	documentation := documentationComponent(in.Documents)
	level := incomeLevelComponent(in.Projection, in.Debt, in.TargetLoanAmountCents, in.TargetLoanType)
	accountAge := accountAgeComponent(in.MonthsAnalyzed)

	breakdown := [6]models.ScoreComponent{stability, trend, diversity, documentation, level, accountAge}

	var overallF float64
	for _, c := range breakdown {
		overallF += c.Weighted
	}
	overall := int(math.Round(overallF))

	grade := classifyGrade(overall)
	qualified, potential := qualifyLoanTypes(overall)

	return models.LoanReadinessScore{
		Overall:         overall,
		Grade:           grade,
		Breakdown:       breakdown,
		Recommendations: buildRecommendations(breakdown, in.Documents, len(in.Sources)),
		Qualified:       qualified,
		Potential:       potential,
		Thresholds:      loanThresholds,
		CalculatedAt:    in.Now,
	}
}

func component(name string, weight, raw float64, factors, tips []string) models.ScoreComponent {
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return models.ScoreComponent{
		Name:     name,
		Weight:   weight,
		Raw:      raw,
		Weighted: raw * weight,
		Factors:  factors,
		Tips:     tips,
	}
}

func incomeStabilityComponent(s models.StabilityMetrics) models.ScoreComponent {
	raw := stabilityStaircase(s.CV)
	var factors, tips []string
	if s.MaintenanceProbability > 0.8 {
		raw += 5
		factors = append(factors, "Strong likelihood of continued income")
	}
	if raw < 100 {
		tips = append(tips, "Reduce month-to-month income swings by maintaining a steady client or platform cadence")
	}
	factors = append(factors, "Income coefficient of variation of "+decimal.NewFromFloat(s.CV).Round(2).String())
	return component("IncomeStability", weightIncomeStability, raw, factors, tips)
}

func stabilityStaircase(cv float64) float64 {
	switch {
	case cv < 0.10:
		return 100
	case cv < 0.15:
		return 95
	case cv < 0.20:
		return 85
	case cv < 0.25:
		return 75
	case cv < 0.30:
		return 65
	case cv < 0.40:
		return 50
	case cv < 0.50:
		return 35
	default:
		return 20
	}
}

func incomeTrendComponent(s models.StabilityMetrics) models.ScoreComponent {
	raw := trendStaircase(s.YoYGrowthPercent)
	var factors, tips []string

	switch s.Trajectory {
	case models.TrajectoryGrowing:
		raw += 5
		factors = append(factors, "Income trajectory is growing year over year")
	case models.TrajectoryVolatile:
		raw -= 10
		factors = append(factors, "Income trajectory is volatile")
	case models.TrajectorySeasonal:
		factors = append(factors, "Income follows a seasonal pattern")
	}

	if raw < 100 {
		tips = append(tips, "Document a consistent or growing income trend over the next several months")
	}
	return component("IncomeTrend", weightIncomeTrend, raw, factors, tips)
}

func trendStaircase(yoy float64) float64 {
	switch {
	case yoy >= 20:
		return 100
	case yoy >= 10:
		return 90
	case yoy >= 5:
		return 80
	case yoy >= 0:
		return 70
	case yoy >= -5:
		return 55
	case yoy >= -15:
		return 40
	default:
		return 25
	}
}

func incomeDiversityComponent(sources []models.IncomeSource) models.ScoreComponent {
	active := 0
	for _, s := range sources {
		if s.MonthsActive >= 3 {
			active++
		}
	}

	var raw float64
	switch {
	case active >= 5:
		raw = 95
	case active == 4:
		raw = 90
	case active == 3:
		raw = 80
	case active == 2:
		raw = 65
	case active == 1:
		raw = 40
	default:
		raw = 0
	}

	var factors, tips []string
	maxShare := maxSourceShare(sources)
	switch {
	case maxShare > 0.70:
		raw -= 20
		factors = append(factors, "A single source dominates total income")
	case maxShare > 0.50:
		raw -= 10
		factors = append(factors, "Income is concentrated in one source")
	default:
		raw += 5
		factors = append(factors, "Income is reasonably spread across sources")
	}

	if active < 3 {
		tips = append(tips, "Add an additional verified income source")
	}
	return component("IncomeDiversity", weightIncomeDiversity, raw, factors, tips)
}

func maxSourceShare(sources []models.IncomeSource) float64 {
	var total int64
	for _, s := range sources {
		total += s.TotalCents
	}
	if total == 0 {
		return 0
	}
	var max float64
	for _, s := range sources {
		share := float64(s.TotalCents) / float64(total)
		if share > max {
			max = share
		}
	}
	return max
}

func documentationComponent(d models.DocumentationFlags) models.ScoreComponent {
	var raw float64
	var factors, tips []string

	if d.TaxReturns {
		raw += 30
		factors = append(factors, "Tax returns on file")
	} else {
		tips = append(tips, "Upload recent tax returns")
	}
	if d.Form1099 {
		raw += 25
		factors = append(factors, "1099 forms on file")
	} else {
		tips = append(tips, "Upload 1099 forms from gig platforms")
	}
	if d.BankStatements || d.LinkedAccounts >= 1 {
		raw += 25
		factors = append(factors, "Bank activity verified")
	} else {
		tips = append(tips, "Link a primary bank account or upload statements")
	}
	if d.W2 {
		raw += 10
		factors = append(factors, "W-2 on file")
	}
	if d.Other {
		raw += 10
	}
	if d.LinkedAccounts >= 2 {
		raw += 5
		factors = append(factors, "Multiple linked accounts")
	}

	return component("DocumentationCompleteness", weightDocumentationCompleteness, raw, factors, tips)
}

func incomeLevelComponent(projection models.AnnualizedProjection, debt models.DebtAnalysis, targetLoanCents *int64, targetLoanType *models.LoanType) models.ScoreComponent {
	annualUSD := float64(projection.FinalCents) / 100
	raw := levelStaircase(annualUSD)

	var factors, tips []string
	switch {
	case debt.DTIPercent < 30:
		raw += 10
		factors = append(factors, "Debt-to-income ratio is low")
	case debt.DTIPercent < 40:
		raw += 5
	case debt.DTIPercent < 50:
		// no adjustment
	default:
		raw -= 15
		factors = append(factors, "Debt-to-income ratio is high")
	}

	if raw < 95 {
		tips = append(tips, "Increase verified annual income or reduce recurring obligations")
	}

	if targetLoanCents != nil && targetLoanType != nil {
		factors = append(factors, amortizationNarrative(*targetLoanCents, *targetLoanType, debt))
	}

	return component("IncomeLevel", weightIncomeLevel, raw, factors, tips)
}

func levelStaircase(annualUSD float64) float64 {
	switch {
	case annualUSD >= 150000:
		return 95
	case annualUSD >= 100000:
		return 85
	case annualUSD >= 75000:
		return 75
	case annualUSD >= 50000:
		return 65
	case annualUSD >= 35000:
		return 50
	default:
		return 35
	}
}

// amortizationNarrative computes the estimated monthly payment for a
// hypothetical target loan, using a 7%/360-month amortization for
// Mortgage/Heloc and a 10%/60-month amortization otherwise (spec §4.8).
// This is narrative only — it never adjusts the raw score.
func amortizationNarrative(loanCents int64, loanType models.LoanType, debt models.DebtAnalysis) string {
	rateAnnual := decimal.NewFromFloat(0.10)
	months := 60
	if loanType == models.LoanMortgage || loanType == models.LoanHeloc {
		rateAnnual = decimal.NewFromFloat(0.07)
		months = 360
	}

	principal := decimal.NewFromInt(loanCents)
	monthlyRate := rateAnnual.Div(decimal.NewFromInt(12))

	one := decimal.NewFromInt(1)
	onePlusR := one.Add(monthlyRate)
	factor := onePlusR.Pow(decimal.NewFromInt(int64(months)))

	numerator := principal.Mul(monthlyRate).Mul(factor)
	denominator := factor.Sub(one)
	var payment decimal.Decimal
	if denominator.IsZero() {
		payment = principal.Div(decimal.NewFromInt(int64(months)))
	} else {
		payment = numerator.Div(denominator)
	}

	dollars := payment.Div(decimal.NewFromInt(100)).Round(2)
	return "Estimated monthly payment for the requested " + string(loanType) + " loan is $" + dollars.String() + " based on a reference amortization schedule"
}

func accountAgeComponent(monthsAnalyzed int) models.ScoreComponent {
	raw := accountAgeStaircase(monthsAnalyzed)
	var tips []string
	if raw < 100 {
		tips = append(tips, "Continue building transaction history over time")
	}
	return component("AccountAge", weightAccountAge, raw, nil, tips)
}

func accountAgeStaircase(months int) float64 {
	switch {
	case months >= 24:
		return 100
	case months >= 18:
		return 85
	case months >= 12:
		return 70
	case months >= 6:
		return 50
	case months >= 3:
		return 30
	default:
		return 15
	}
}

func classifyGrade(overall int) models.LetterGrade {
	switch {
	case overall >= 95:
		return models.GradeAPlus
	case overall >= 90:
		return models.GradeA
	case overall >= 85:
		return models.GradeBPlus
	case overall >= 80:
		return models.GradeB
	case overall >= 75:
		return models.GradeCPlus
	case overall >= 70:
		return models.GradeC
	case overall >= 60:
		return models.GradeD
	default:
		return models.GradeF
	}
}

func qualifyLoanTypes(overall int) (qualified, potential []models.LoanType) {
	order := []models.LoanType{models.LoanMortgage, models.LoanAuto, models.LoanPersonal, models.LoanBusiness, models.LoanHeloc}
	for _, lt := range order {
		th := loanThresholds[lt]
		switch {
		case overall >= th.Recommended:
			qualified = append(qualified, lt)
		case overall >= th.Minimum:
			potential = append(potential, lt)
		}
	}
	return qualified, potential
}

var timeframeByComponent = map[string]string{
	"IncomeStability":           "3-6 months",
	"IncomeTrend":               "6-12 months",
	"IncomeDiversity":           "1-3 months",
	"DocumentationCompleteness": "Immediate",
	"IncomeLevel":               "6-12 months",
	"AccountAge":                "Ongoing",
}

func buildRecommendations(breakdown [6]models.ScoreComponent, docs models.DocumentationFlags, sourceCount int) []models.Recommendation {
	var recs []models.Recommendation

	for _, c := range breakdown {
		potentialGain := (100 - c.Raw) * c.Weight
		for _, tip := range c.Tips {
			if tip == "" {
				continue
			}
			increase := int(math.Round(potentialGain * RecommendationGainFactor))
			recs = append(recs, models.Recommendation{
				Category:          c.Name,
				Action:            tip,
				PotentialIncrease: increase,
				Priority:          priorityFor(increase),
				Timeframe:         timeframeByComponent[c.Name],
			})
		}
	}

	if !docs.TaxReturns {
		recs = append(recs, models.Recommendation{
			Category:          "DocumentationCompleteness",
			Action:            "upload tax return",
			PotentialIncrease: 5,
			Priority:          models.PriorityHigh,
			Timeframe:         "Immediate",
		})
	}
	if docs.LinkedAccounts == 0 {
		recs = append(recs, models.Recommendation{
			Category:          "DocumentationCompleteness",
			Action:            "link primary bank",
			PotentialIncrease: 8,
			Priority:          models.PriorityHigh,
			Timeframe:         "Immediate",
		})
	}
	if sourceCount == 1 {
		recs = append(recs, models.Recommendation{
			Category:          "IncomeDiversity",
			Action:            "add a secondary source",
			PotentialIncrease: 10,
			Priority:          models.PriorityMedium,
			Timeframe:         "1-3 months",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PotentialIncrease > recs[j].PotentialIncrease
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func priorityFor(increase int) models.RecommendationPriority {
	switch {
	case increase >= 10:
		return models.PriorityHigh
	case increase >= 5:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
