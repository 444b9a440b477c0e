package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"incomeverify/models"
)

func TestAssess_DecliningTrajectoryIsElevated(t *testing.T) {
	stability := models.StabilityMetrics{CV: 0.45, Trajectory: models.TrajectoryDeclining, MaintenanceProbability: 0.4}
	sources := []models.IncomeSource{{DisplayName: "Acme", TotalCents: 100000}}
	debt := models.DebtAnalysis{DTIPercent: 55}

	result := Assess(sources, stability, debt)

	assert.Equal(t, models.RiskElevated, result.Level)
	assert.Contains(t, result.RiskFactors, "Income trajectory is declining")
}

func TestAssess_StableDiversifiedLowRisk(t *testing.T) {
	stability := models.StabilityMetrics{CV: 0.1, Trajectory: models.TrajectoryStable, MaintenanceProbability: 0.9}
	sources := []models.IncomeSource{
		{DisplayName: "A", TotalCents: 25000}, {DisplayName: "B", TotalCents: 25000},
		{DisplayName: "C", TotalCents: 25000}, {DisplayName: "D", TotalCents: 25000},
	}
	debt := models.DebtAnalysis{DTIPercent: 20}

	result := Assess(sources, stability, debt)

	assert.Equal(t, models.RiskLow, result.Level)
	assert.NotEmpty(t, result.PositiveFactors)
}

func TestAssess_DominantSourceNamed(t *testing.T) {
	stability := models.StabilityMetrics{CV: 0.2, Trajectory: models.TrajectoryStable, MaintenanceProbability: 0.6}
	sources := []models.IncomeSource{
		{DisplayName: "BigCo", TotalCents: 90000}, {DisplayName: "Small", TotalCents: 10000},
	}
	debt := models.DebtAnalysis{DTIPercent: 40}

	result := Assess(sources, stability, debt)

	found := false
	for _, f := range result.RiskFactors {
		if f == "BigCo represents 90% of total income" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAssess_SuggestedActionVariesByTrajectory(t *testing.T) {
	growing := Assess(nil, models.StabilityMetrics{Trajectory: models.TrajectoryGrowing}, models.DebtAnalysis{})
	declining := Assess(nil, models.StabilityMetrics{Trajectory: models.TrajectoryDeclining}, models.DebtAnalysis{})
	assert.NotEqual(t, growing.SuggestedAction, declining.SuggestedAction)
}
