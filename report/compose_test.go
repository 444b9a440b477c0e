package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incomeverify/models"
)

func TestMaskName_FirstLastBecomesFirstInitial(t *testing.T) {
	assert.Equal(t, "Jane D.", maskName("Jane Doe"))
}

func TestMaskName_SingleWordPassesThrough(t *testing.T) {
	assert.Equal(t, "Cher", maskName("Cher"))
}

func TestMaskName_MultiWordUsesLastWordInitial(t *testing.T) {
	assert.Equal(t, "Maria C.", maskName("Maria De La Cruz"))
}

func TestMaskName_Empty(t *testing.T) {
	assert.Equal(t, "", maskName(""))
}

func TestDeriveVerificationStatus_NoDocsNoLinkedAccountsIsUnverified(t *testing.T) {
	status := deriveVerificationStatus(nil, nil, 0)
	assert.Equal(t, models.BorrowerUnverified, status)
}

func TestDeriveVerificationStatus_AllVerifiedIsVerified(t *testing.T) {
	docs := []models.DocumentVerification{{DocumentType: "1099", Status: models.DocumentVerified}}
	sources := []models.IncomeSource{{Verification: models.VerificationVerified}}
	status := deriveVerificationStatus(docs, sources, 1)
	assert.Equal(t, models.BorrowerVerified, status)
}

func TestDeriveVerificationStatus_PartialMixIsPartiallyVerified(t *testing.T) {
	docs := []models.DocumentVerification{{DocumentType: "1099", Status: models.DocumentPending}}
	sources := []models.IncomeSource{{Verification: models.VerificationVerified}}
	status := deriveVerificationStatus(docs, sources, 1)
	assert.Equal(t, models.BorrowerPartiallyVerified, status)
}

func TestAllocateContributions_SumsToOneHundred(t *testing.T) {
	sources := []models.IncomeSource{
		{ID: "source-0", TotalCents: 33333},
		{ID: "source-1", TotalCents: 33333},
		{ID: "source-2", TotalCents: 33334},
	}

	summaries := allocateContributions(sources)

	var sum int
	for _, s := range summaries {
		sum += s.ContributionPercentage
	}
	assert.Equal(t, 100, sum)
}

func TestAllocateContributions_ResidualGoesToLargestSource(t *testing.T) {
	sources := []models.IncomeSource{
		{ID: "source-0", TotalCents: 100000},
		{ID: "source-1", TotalCents: 1},
		{ID: "source-2", TotalCents: 1},
	}

	summaries := allocateContributions(sources)

	var sum int
	largest := summaries[0]
	for _, s := range summaries {
		sum += s.ContributionPercentage
		if s.TotalCents > largest.TotalCents {
			largest = s
		}
	}
	assert.Equal(t, 100, sum)
	assert.Equal(t, "source-0", largest.ID)
}

func TestAllocateContributions_EmptyYieldsNil(t *testing.T) {
	assert.Nil(t, allocateContributions(nil))
}

func TestAllocateContributions_ZeroTotalYieldsZeroPercentages(t *testing.T) {
	sources := []models.IncomeSource{{ID: "source-0", TotalCents: 0}, {ID: "source-1", TotalCents: 0}}
	summaries := allocateContributions(sources)
	for _, s := range summaries {
		assert.Equal(t, 0, s.ContributionPercentage)
	}
}

func TestCompose_IncludesDisclaimerAndMaskedBorrower(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	result := Compose(Input{
		Borrower: BorrowerInput{BorrowerID: "b-1", DisplayName: "Jane Doe", MemberSince: now},
		Sources:  []models.IncomeSource{{ID: "source-0", TotalCents: 100000}},
		Now:      now,
	})

	assert.Equal(t, "Jane D.", result.Borrower.DisplayNameMasked)
	assert.Contains(t, result.Disclaimer, "1099Pass is not a lender")
	assert.Equal(t, models.ReportFinal, result.Metadata.Status)
	require.Len(t, result.IncomeSources, 1)
	assert.Equal(t, 100, result.IncomeSources[0].ContributionPercentage)
}

func TestCompose_ExpiresAtIsNinetyDaysOut(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	result := Compose(Input{Borrower: BorrowerInput{BorrowerID: "b-1"}, Now: now})
	assert.Equal(t, now.Add(90*24*time.Hour), result.Metadata.ExpiresAt)
}

func TestTrajectoryDescription_CoversAllCases(t *testing.T) {
	assert.Equal(t, "upward trajectory", trajectoryDescription(models.TrajectoryGrowing))
	assert.Equal(t, "downward trajectory", trajectoryDescription(models.TrajectoryDeclining))
	assert.Equal(t, "volatile, unpredictable trajectory", trajectoryDescription(models.TrajectoryVolatile))
	assert.Equal(t, "seasonal trajectory", trajectoryDescription(models.TrajectorySeasonal))
	assert.Equal(t, "steady trajectory", trajectoryDescription(models.TrajectoryStable))
}
