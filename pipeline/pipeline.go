// Package pipeline wires the full analytics chain spec §2 defines:
// classify+group -> aggregate monthly -> metrics -> projection ->
// obligations/DTI -> risk -> score -> report. It is the only package that
// knows the stage order; every stage it calls stays a pure function over
// immutable inputs (spec §5).
//
// Grounded on the teacher's analyzer/analyzer.go Analyze method, which is
// the teacher's own single entry point threading a transaction list
// through every analytics stage in sequence and logging at the boundary
// only.
package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"incomeverify/aggregation"
	"incomeverify/catalog"
	"incomeverify/grouping"
	"incomeverify/models"
	"incomeverify/obligations"
	"incomeverify/projection"
	"incomeverify/report"
	"incomeverify/risk"
	"incomeverify/scoring"
	"incomeverify/stability"
)

// Request is every caller-supplied input the pipeline needs for one
// invocation (spec §6's boundary contracts, already pulled by the caller).
type Request struct {
	Transactions          []models.Transaction         `json:"transactions"`
	PeriodMonths          int                          `json:"period_months"`
	Now                   time.Time                    `json:"now"`
	Borrower              report.BorrowerInput         `json:"borrower"`
	Documents             []models.DocumentVerification `json:"documents"`
	DocumentationFlags    models.DocumentationFlags    `json:"documentation_flags"`
	TargetLoanAmountCents *int64                       `json:"target_loan_amount_cents,omitempty"`
	TargetLoanType        *models.LoanType             `json:"target_loan_type,omitempty"`
	// Platforms overrides the default gig-platform catalog; nil uses
	// catalog.Platforms (spec §5's "process-wide immutable configuration
	// passed in by the caller"). Not part of the JSON wire contract — it is
	// a catalog-injection seam for callers that construct a Request in Go,
	// never supplied over HTTP.
	Platforms []catalog.PlatformEntry `json:"-"`
}

// Run executes the deterministic pipeline once, per spec §2/§7. On
// malformed input it returns a *models.PipelineError and no report. It
// never recovers from InputError internally.
func Run(req Request, logger zerolog.Logger) (models.LenderReport, error) {
	if err := validate(req); err != nil {
		logger.Error().Err(err).Msg("pipeline input validation failed")
		return models.LenderReport{}, err
	}

	platforms := req.Platforms
	if platforms == nil {
		platforms = catalog.Platforms
	}

	logger.Info().Int("transactions", len(req.Transactions)).Int("period_months", req.PeriodMonths).Msg("pipeline started")

	sources := grouping.GroupSourcesWithCatalog(platforms, req.Transactions)
	sourceByTransactionID := indexSourcesByTransaction(sources)

	end := projection.CurrentMonth(req.Now)
	start := subtractMonths(end, req.PeriodMonths-1)

	monthsDesc := aggregation.BuildMonthlySeries(req.Transactions, start, end, sourceByTransactionID)

	stabilityMetrics := stability.Compute(monthsDesc, sources)
	proj := projection.Project(monthsDesc, stabilityMetrics, end)
	debt := obligations.Detect(req.Transactions, proj.FinalCents)
	riskAssessment := risk.Assess(sources, stabilityMetrics, debt)

	lrs := scoring.Score(scoring.Input{
		Sources:               sources,
		Stability:             stabilityMetrics,
		Projection:            proj,
		Debt:                  debt,
		Documents:             req.DocumentationFlags,
		MonthsAnalyzed:        monthsAnalyzed(req.PeriodMonths, len(monthsDesc)),
		TargetLoanAmountCents: req.TargetLoanAmountCents,
		TargetLoanType:        req.TargetLoanType,
		Now:                   req.Now,
	})

	lenderReport := report.Compose(report.Input{
		Borrower:       req.Borrower,
		Sources:        sources,
		MonthlyHistory: monthsDesc,
		Projection:     proj,
		Stability:      stabilityMetrics,
		Debt:           debt,
		Score:          lrs,
		Risk:           riskAssessment,
		Documents:      req.Documents,
		LinkedAccounts: req.DocumentationFlags.LinkedAccounts,
		Now:            req.Now,
	})

	logger.Info().
		Str("report_id", lenderReport.Metadata.ReportID).
		Int("overall_score", lrs.Overall).
		Str("grade", lrs.Grade.String()).
		Msg("pipeline completed")

	return lenderReport, nil
}

func validate(req Request) error {
	if req.PeriodMonths < 1 {
		return models.NewInputError("period_months must be at least 1", models.ErrInvalidPeriod)
	}
	if req.DocumentationFlags.LinkedAccounts < 0 {
		return models.NewInputError("linked_accounts cannot be negative", models.ErrInconsistentDocs)
	}
	for _, tx := range req.Transactions {
		if tx.Date.IsZero() {
			return models.NewInputError("transaction "+tx.ID+" has an invalid date", models.ErrInvalidDate)
		}
		if tx.Name == "" {
			return models.NewInputError("transaction "+tx.ID+" is missing a name", models.ErrMissingName)
		}
	}
	return nil
}

func indexSourcesByTransaction(sources []models.IncomeSource) map[string]string {
	index := make(map[string]string)
	for _, s := range sources {
		for _, tx := range s.Transactions {
			index[tx.ID] = s.ID
		}
	}
	return index
}

func subtractMonths(ym models.YearMonth, n int) models.YearMonth {
	totalMonths := ym.Year*12 + (ym.Month - 1) - n
	year := totalMonths / 12
	month := totalMonths%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	return models.YearMonth{Year: year, Month: month}
}

func monthsAnalyzed(periodMonths, seriesLen int) int {
	if seriesLen > 0 {
		return seriesLen
	}
	return periodMonths
}
