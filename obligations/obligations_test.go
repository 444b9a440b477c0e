package obligations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incomeverify/models"
)

func expenseTx(id string, amountCents int64, date, name string) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{ID: id, AmountCents: -amountCents, Date: d, Name: name, Kind: models.KindExpense}
}

func TestDetect_QualifiesRecurringRentObligation(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 150000, "2025-01-01", "Property Mgmt LLC Rent"),
		expenseTx("2", 150000, "2025-02-01", "Property Mgmt LLC Rent"),
		expenseTx("3", 150000, "2025-03-01", "Property Mgmt LLC Rent"),
	}

	debt := Detect(txs, 4800000)

	require.Len(t, debt.Obligations, 1)
	ob := debt.Obligations[0]
	assert.Equal(t, models.ObligationRent, ob.Category)
	assert.Equal(t, models.FrequencyMonthly, ob.Frequency)
	assert.Equal(t, int64(150000), ob.MonthlyCents)
	assert.True(t, ob.Estimated)
}

func TestDetect_RequiresAtLeastThreeOccurrences(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 150000, "2025-01-01", "Property Mgmt LLC Rent"),
		expenseTx("2", 150000, "2025-02-01", "Property Mgmt LLC Rent"),
	}
	debt := Detect(txs, 4800000)
	assert.Empty(t, debt.Obligations)
}

func TestDetect_RejectsOutOfToleranceAmounts(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 150000, "2025-01-01", "Random Charge"),
		expenseTx("2", 300000, "2025-02-01", "Random Charge"),
		expenseTx("3", 150000, "2025-03-01", "Random Charge"),
	}
	debt := Detect(txs, 4800000)
	assert.Empty(t, debt.Obligations)
}

func TestDetect_SmallOtherCategoryRejected(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 1000, "2025-01-01", "Misc Subscription"),
		expenseTx("2", 1000, "2025-02-01", "Misc Subscription"),
		expenseTx("3", 1000, "2025-03-01", "Misc Subscription"),
	}
	debt := Detect(txs, 4800000)
	assert.Empty(t, debt.Obligations)
}

func TestDetect_WeeklyFrequencyNormalization(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 10000, "2025-01-01", "Auto Pay Loan Weekly"),
		expenseTx("2", 10000, "2025-01-08", "Auto Pay Loan Weekly"),
		expenseTx("3", 10000, "2025-01-15", "Auto Pay Loan Weekly"),
		expenseTx("4", 10000, "2025-01-22", "Auto Pay Loan Weekly"),
	}
	debt := Detect(txs, 4800000)
	require.Len(t, debt.Obligations, 1)
	assert.Equal(t, models.FrequencyWeekly, debt.Obligations[0].Frequency)
	assert.Equal(t, models.ObligationLoan, debt.Obligations[0].Category)
	assert.InDelta(t, 43300, debt.Obligations[0].MonthlyCents, 1)
}

func TestDetect_DTIPercentCalculation(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 100000, "2025-01-01", "Chase Card Payment"),
		expenseTx("2", 100000, "2025-02-01", "Chase Card Payment"),
		expenseTx("3", 100000, "2025-03-01", "Chase Card Payment"),
	}
	debt := Detect(txs, 12000000) // 1,000,000 cents/mo projection

	assert.Equal(t, int64(100000), debt.TotalMonthlyObligationCents)
	assert.InDelta(t, 10.0, debt.DTIPercent, 0.1)
}

func TestDetect_ZeroProjectionYieldsZeroDTI(t *testing.T) {
	txs := []models.Transaction{
		expenseTx("1", 100000, "2025-01-01", "Chase Card Payment"),
		expenseTx("2", 100000, "2025-02-01", "Chase Card Payment"),
		expenseTx("3", 100000, "2025-03-01", "Chase Card Payment"),
	}
	debt := Detect(txs, 0)
	assert.Equal(t, 0.0, debt.DTIPercent)
}

func TestDetect_CaveatAlwaysPresent(t *testing.T) {
	debt := Detect(nil, 0)
	assert.NotEmpty(t, debt.Caveat)
}

func TestDetect_TopObligationsCappedAtFive(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 6; i++ {
		name := "Utility Provider " + string(rune('A'+i))
		for m := 1; m <= 3; m++ {
			txs = append(txs, expenseTx("x", int64(1000+i)*100, dateFor(m), name))
		}
	}
	debt := Detect(txs, 4800000)
	assert.LessOrEqual(t, len(debt.TopObligations), 5)
}

func dateFor(month int) string {
	return time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
