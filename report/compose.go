// Package report implements the ReportComposer spec §4.9 defines: it
// assembles the immutable LenderReport artifact, masking borrower PII,
// deriving verification status, and allocating contribution percentages
// across income sources.
//
// Grounded on the teacher's analyzer/analyzer.go Analyze orchestrator,
// which is the one place in the teacher that assembles a final
// user-facing struct out of every earlier analysis stage.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"incomeverify/models"
)

const (
	reportVersion   = "1.0.0"
	reportValidity  = 90 * 24 * time.Hour
)

const disclaimerText = "This report is generated by 1099Pass from the borrower's self-reported and linked transaction history. 1099Pass is not a lender, does not guarantee loan approval, and makes no representation regarding creditworthiness. Lenders remain solely responsible for underwriting decisions."

// BorrowerInput is the raw borrower identity the composer masks before it
// ever reaches a LenderReport.
type BorrowerInput struct {
	BorrowerID  string    `json:"borrower_id"`
	DisplayName string    `json:"display_name"` // "First Last"
	City        string    `json:"city"`
	State       string    `json:"state"`
	MemberSince time.Time `json:"member_since"`
}

// Input bundles every prior pipeline stage's output the composer needs.
type Input struct {
	Borrower       BorrowerInput
	Sources        []models.IncomeSource
	MonthlyHistory []models.MonthlyIncome
	Projection     models.AnnualizedProjection
	Stability      models.StabilityMetrics
	Debt           models.DebtAnalysis
	Score          models.LoanReadinessScore
	Risk           models.RiskAssessment
	Documents      []models.DocumentVerification
	LinkedAccounts int
	Now            time.Time
}

// Compose assembles the full LenderReport, per spec §4.9.
func Compose(in Input) models.LenderReport {
	generatedAt := in.Now
	expiresAt := generatedAt.Add(reportValidity)

	status := models.ReportFinal
	if in.Now.After(expiresAt) {
		status = models.ReportExpired
	}

	metadata := models.ReportMetadata{
		ReportID:    uuid.NewString(),
		BorrowerID:  in.Borrower.BorrowerID,
		GeneratedAt: generatedAt,
		ExpiresAt:   expiresAt,
		Version:     reportVersion,
		Status:      status,
	}

	borrower := models.BorrowerSummary{
		DisplayNameMasked:  maskName(in.Borrower.DisplayName),
		City:               in.Borrower.City,
		State:              in.Borrower.State,
		MemberSince:        in.Borrower.MemberSince,
		VerificationStatus: deriveVerificationStatus(in.Documents, in.Sources, in.LinkedAccounts),
	}

	overview := models.IncomeOverview{
		AnnualProjectedCents:  in.Projection.FinalCents,
		MonthlyAverageCents:   in.Stability.WeightedMonthlyMeanCents,
		Trajectory:            in.Stability.Trajectory,
		TrajectoryDescription: trajectoryDescription(in.Stability.Trajectory),
		SourceCount:           len(in.Sources),
	}

	return models.LenderReport{
		Metadata:           metadata,
		Borrower:           borrower,
		IncomeOverview:      overview,
		IncomeSources:      allocateContributions(in.Sources),
		MonthlyHistory:     in.MonthlyHistory,
		LoanReadinessScore: in.Score,
		StabilityMetrics:   in.Stability,
		DebtToIncome:       in.Debt,
		Risk:               in.Risk,
		Documents:          in.Documents,
		Disclaimer:         disclaimerText,
	}
}

// maskName renders "First Last" as "First L.", per spec §4.9. Single-word
// names pass through unmasked (no last-initial information exists).
func maskName(displayName string) string {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	last := parts[len(parts)-1]
	initial := []rune(last)[0]
	return fmt.Sprintf("%s %s.", parts[0], strings.ToUpper(string(initial)))
}

func deriveVerificationStatus(documents []models.DocumentVerification, sources []models.IncomeSource, linkedAccounts int) models.BorrowerVerificationStatus {
	if len(documents) == 0 && linkedAccounts == 0 {
		return models.BorrowerUnverified
	}

	allDocsVerified := len(documents) > 0
	for _, d := range documents {
		if d.Status != models.DocumentVerified {
			allDocsVerified = false
			break
		}
	}

	allSourcesVerified := len(sources) > 0
	for _, s := range sources {
		if s.Verification != models.VerificationVerified {
			allSourcesVerified = false
			break
		}
	}

	if allDocsVerified && allSourcesVerified {
		return models.BorrowerVerified
	}
	return models.BorrowerPartiallyVerified
}

func trajectoryDescription(t models.Trajectory) string {
	switch t {
	case models.TrajectoryGrowing:
		return "upward trajectory"
	case models.TrajectoryDeclining:
		return "downward trajectory"
	case models.TrajectoryVolatile:
		return "volatile, unpredictable trajectory"
	case models.TrajectorySeasonal:
		return "seasonal trajectory"
	default:
		return "steady trajectory"
	}
}

// allocateContributions assigns each source a contribution_percentage
// summing to within 1 of 100, allocating any rounding residual to the
// largest source (spec §4.9). When every source has zero total income,
// every percentage stays 0 rather than crediting the residual to an
// arbitrary source.
func allocateContributions(sources []models.IncomeSource) []models.IncomeSourceSummary {
	if len(sources) == 0 {
		return nil
	}

	var total int64
	for _, s := range sources {
		total += s.TotalCents
	}

	summaries := make([]models.IncomeSourceSummary, len(sources))
	sum := 0
	largestIdx := 0
	for i, s := range sources {
		pct := 0
		if total != 0 {
			pct = int(roundHalfAwayFromZero(float64(s.TotalCents) / float64(total) * 100))
		}
		summaries[i] = models.IncomeSourceSummary{IncomeSource: s, ContributionPercentage: pct}
		sum += pct
		if s.TotalCents > sources[largestIdx].TotalCents {
			largestIdx = i
		}
	}

	residual := 100 - sum
	if residual != 0 && total != 0 {
		summaries[largestIdx].ContributionPercentage += residual
	}

	return summaries
}

func roundHalfAwayFromZero(v float64) float64 {
	if v < 0 {
		return -roundHalfAwayFromZero(-v)
	}
	return float64(int64(v + 0.5))
}
