package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incomeverify/models"
)

func TestScore_WeightsSumToOne(t *testing.T) {
	total := weightIncomeStability + weightIncomeTrend + weightIncomeDiversity +
		weightDocumentationCompleteness + weightIncomeLevel + weightAccountAge
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestScore_EmptyHistoryGradesLowAndUnqualified(t *testing.T) {
	result := Score(Input{
		Sources:        nil,
		Stability:      models.StabilityMetrics{CV: 1.0, Trajectory: models.TrajectoryStable},
		Projection:     models.AnnualizedProjection{FinalCents: 0},
		Debt:           models.DebtAnalysis{},
		Documents:      models.DocumentationFlags{},
		MonthsAnalyzed: 12,
		Now:            time.Now(),
	})

	assert.LessOrEqual(t, result.Overall, 35)
	assert.Equal(t, models.GradeF, result.Grade)
	assert.Empty(t, result.Qualified)
}

func TestScore_OverallMatchesWeightedSum(t *testing.T) {
	result := Score(Input{
		Sources:        []models.IncomeSource{{TotalCents: 1000000, MonthsActive: 12}},
		Stability:      models.StabilityMetrics{CV: 0.05, MaintenanceProbability: 0.9, Trajectory: models.TrajectoryStable},
		Projection:     models.AnnualizedProjection{FinalCents: 8000000},
		Debt:           models.DebtAnalysis{DTIPercent: 20},
		Documents:      models.DocumentationFlags{TaxReturns: true, Form1099: true, BankStatements: true, W2: true, LinkedAccounts: 2},
		MonthsAnalyzed: 24,
		Now:            time.Now(),
	})

	var expected float64
	for _, c := range result.Breakdown {
		expected += c.Weighted
	}
	assert.Equal(t, int(roundForTest(expected)), result.Overall)
}

func roundForTest(v float64) float64 {
	return float64(int(v + 0.5))
}

func TestScore_QualificationPartition(t *testing.T) {
	result := Score(Input{
		Sources:        []models.IncomeSource{{TotalCents: 1000000, MonthsActive: 12}},
		Stability:      models.StabilityMetrics{CV: 0.1, Trajectory: models.TrajectoryStable},
		Projection:     models.AnnualizedProjection{FinalCents: 6000000},
		Debt:           models.DebtAnalysis{DTIPercent: 25},
		Documents:      models.DocumentationFlags{TaxReturns: true, Form1099: true, LinkedAccounts: 1},
		MonthsAnalyzed: 24,
		Now:            time.Now(),
	})

	qualifiedSet := make(map[models.LoanType]bool)
	for _, lt := range result.Qualified {
		qualifiedSet[lt] = true
	}
	for _, lt := range result.Potential {
		assert.False(t, qualifiedSet[lt], "loan type %s present in both qualified and potential", lt)
	}
}

func TestScore_GradeMonotonicity(t *testing.T) {
	low := Score(Input{Stability: models.StabilityMetrics{CV: 1.0}, Projection: models.AnnualizedProjection{}, MonthsAnalyzed: 1, Now: time.Now()})
	high := Score(Input{
		Sources:        []models.IncomeSource{{TotalCents: 1000000, MonthsActive: 24}, {TotalCents: 1000000, MonthsActive: 24}},
		Stability:      models.StabilityMetrics{CV: 0.05, MaintenanceProbability: 0.9, Trajectory: models.TrajectoryGrowing, YoYGrowthPercent: 25},
		Projection:     models.AnnualizedProjection{FinalCents: 20000000},
		Debt:           models.DebtAnalysis{DTIPercent: 10},
		Documents:      models.DocumentationFlags{TaxReturns: true, Form1099: true, BankStatements: true, W2: true, LinkedAccounts: 3},
		MonthsAnalyzed: 24,
		Now:            time.Now(),
	})

	assert.GreaterOrEqual(t, high.Overall, low.Overall)
	assert.GreaterOrEqual(t, int(high.Grade), int(low.Grade))
}

func TestScore_RecommendationsCappedAtFiveSortedDescending(t *testing.T) {
	result := Score(Input{
		Sources:        []models.IncomeSource{{TotalCents: 100000, MonthsActive: 3}},
		Stability:      models.StabilityMetrics{CV: 0.45, Trajectory: models.TrajectoryVolatile},
		Projection:     models.AnnualizedProjection{FinalCents: 1000000},
		Debt:           models.DebtAnalysis{DTIPercent: 60},
		Documents:      models.DocumentationFlags{},
		MonthsAnalyzed: 3,
		Now:            time.Now(),
	})

	require.LessOrEqual(t, len(result.Recommendations), 5)
	for i := 0; i < len(result.Recommendations)-1; i++ {
		assert.GreaterOrEqual(t, result.Recommendations[i].PotentialIncrease, result.Recommendations[i+1].PotentialIncrease)
	}
}

func TestScore_AmortizationNarrativeAttachedWhenTargetLoanProvided(t *testing.T) {
	loanCents := int64(30000000)
	loanType := models.LoanMortgage
	result := Score(Input{
		Sources:               []models.IncomeSource{{TotalCents: 1000000, MonthsActive: 12}},
		Stability:             models.StabilityMetrics{CV: 0.1, Trajectory: models.TrajectoryStable},
		Projection:            models.AnnualizedProjection{FinalCents: 8000000},
		Debt:                  models.DebtAnalysis{DTIPercent: 25},
		Documents:             models.DocumentationFlags{TaxReturns: true},
		MonthsAnalyzed:        12,
		TargetLoanAmountCents: &loanCents,
		TargetLoanType:        &loanType,
		Now:                   time.Now(),
	})

	levelComponent := result.Breakdown[4] // IncomeLevel
	assert.Equal(t, "IncomeLevel", levelComponent.Name)

	found := false
	for _, f := range levelComponent.Factors {
		if len(f) > 0 && f[:9] == "Estimated" {
			found = true
		}
	}
	assert.True(t, found)
}
