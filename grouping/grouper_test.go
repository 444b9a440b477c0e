package grouping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incomeverify/models"
)

func mkTx(id string, amountCents int64, date string, name, merchant string, kind models.TransactionKind, pending bool) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{
		ID:           id,
		AmountCents:  amountCents,
		Date:         d,
		Name:         name,
		MerchantName: merchant,
		Kind:         kind,
		Pending:      pending,
	}
}

func TestGroupSources_ClustersByPlatform(t *testing.T) {
	txs := []models.Transaction{
		mkTx("1", 10000, "2025-01-05", "UBER TRIP", "Uber", models.KindIncome, false),
		mkTx("2", 12000, "2025-02-05", "UBER TRIP", "Uber", models.KindIncome, false),
		mkTx("3", 5000, "2025-01-10", "Grubhub payout", "Grubhub", models.KindIncome, false),
	}

	sources := GroupSources(txs)

	require.Len(t, sources, 2)
	assert.Equal(t, "source-0", sources[0].ID)
	assert.Equal(t, int64(22000), sources[0].TotalCents) // Uber is larger, sorted first
	assert.Equal(t, "source-1", sources[1].ID)
}

func TestGroupSources_ExcludesPendingAndNonIncome(t *testing.T) {
	txs := []models.Transaction{
		mkTx("1", 10000, "2025-01-05", "Uber", "Uber", models.KindIncome, true),
		mkTx("2", -5000, "2025-01-05", "Uber", "Uber", models.KindExpense, false),
	}

	sources := GroupSources(txs)
	assert.Empty(t, sources)
}

func TestGroupSources_FallsBackToMerchantThenNamePrefix(t *testing.T) {
	txs := []models.Transaction{
		mkTx("1", 40000, "2025-01-05", "Consulting Invoice #1", "Acme Corp", models.KindIncome, false),
		mkTx("2", 40000, "2025-02-05", "Consulting Invoice #2", "Acme Corp", models.KindIncome, false),
		mkTx("3", 15000, "2025-01-05", "Freelance design work for client", "", models.KindIncome, false),
	}

	sources := GroupSources(txs)
	require.Len(t, sources, 2)
	assert.Equal(t, "Acme Corp", sources[0].DisplayName)
}

func TestGroupSources_MonthsActiveAndRecurring(t *testing.T) {
	txs := []models.Transaction{
		mkTx("1", 400000, "2025-01-01", "Client Payment", "Acme", models.KindIncome, false),
		mkTx("2", 400000, "2025-02-01", "Client Payment", "Acme", models.KindIncome, false),
		mkTx("3", 400000, "2025-03-01", "Client Payment", "Acme", models.KindIncome, false),
	}

	sources := GroupSources(txs)
	require.Len(t, sources, 1)
	src := sources[0]
	assert.Equal(t, uint16(3), src.MonthsActive)
	assert.Equal(t, int64(400000), src.MonthlyAvgCents)
	assert.True(t, src.Recurring)
}

func TestGroupSources_IDsStableAfterSort(t *testing.T) {
	txs := []models.Transaction{
		mkTx("1", 1000, "2025-01-05", "Small Source", "Small Inc", models.KindIncome, false),
		mkTx("2", 90000, "2025-01-05", "Big Source", "Big Inc", models.KindIncome, false),
	}

	sources := GroupSources(txs)
	require.Len(t, sources, 2)
	assert.Equal(t, "Big Inc", sources[0].DisplayName)
	assert.Equal(t, "source-0", sources[0].ID)
	assert.Equal(t, "Small Inc", sources[1].DisplayName)
	assert.Equal(t, "source-1", sources[1].ID)
}
