package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearMonth_JSONRoundTrip(t *testing.T) {
	ym := YearMonth{Year: 2026, Month: 3}

	body, err := json.Marshal(ym)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03"`, string(body))

	var decoded YearMonth
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, ym, decoded)
}

func TestLetterGrade_MarshalsAsString(t *testing.T) {
	body, err := json.Marshal(GradeBPlus)
	require.NoError(t, err)
	assert.Equal(t, `"B+"`, string(body))
}

// TestLenderReport_StableFieldNames pins the external wire contract spec
// §6 requires: snake_case field names with a "_cents" suffix on money
// fields, so a lender's integration against a persisted report JSON
// doesn't silently break if Go field names are ever renamed.
func TestLenderReport_StableFieldNames(t *testing.T) {
	report := LenderReport{
		Metadata: ReportMetadata{
			ReportID:    "11111111-1111-1111-1111-111111111111",
			GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		IncomeOverview: IncomeOverview{AnnualProjectedCents: 4800000},
		IncomeSources: []IncomeSourceSummary{
			{IncomeSource: IncomeSource{ID: "source-0", TotalCents: 4800000}, ContributionPercentage: 100},
		},
		DebtToIncome: DebtAnalysis{DTIPercent: 12.5},
	}

	body, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Contains(t, decoded, "income_overview")
	assert.Contains(t, decoded, "income_sources")
	assert.Contains(t, decoded, "debt_to_income")

	metadata := decoded["metadata"].(map[string]any)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", metadata["report_id"])

	overview := decoded["income_overview"].(map[string]any)
	assert.Equal(t, float64(4800000), overview["annual_projected_cents"])

	sources := decoded["income_sources"].([]any)
	source0 := sources[0].(map[string]any)
	assert.Equal(t, float64(4800000), source0["total_cents"])
	assert.Equal(t, float64(100), source0["contribution_percentage"])
	assert.NotContains(t, source0, "Transactions")
}
