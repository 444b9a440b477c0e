package models

import "time"

// ReportStatus is the lender report's lifecycle flag, derived purely from
// whether now is past ExpiresAt.
type ReportStatus string

const (
	ReportFinal   ReportStatus = "Final"
	ReportExpired ReportStatus = "Expired"
)

// BorrowerVerificationStatus is the borrower-level verification tier spec
// §3/§4.9 defines — distinct from the per-IncomeSource VerificationStatus
// because it additionally has a "partially" tier.
type BorrowerVerificationStatus string

const (
	BorrowerVerified           BorrowerVerificationStatus = "Verified"
	BorrowerPartiallyVerified  BorrowerVerificationStatus = "PartiallyVerified"
	BorrowerUnverified         BorrowerVerificationStatus = "Unverified"
)

// DocumentStatus is the verification state of one supporting document.
type DocumentStatus string

const (
	DocumentVerified    DocumentStatus = "Verified"
	DocumentPending     DocumentStatus = "Pending"
	DocumentNotProvided DocumentStatus = "NotProvided"
)

// DocumentVerification is one entry in the unordered document-verification
// set the core consumes as a boundary contract (spec §6).
type DocumentVerification struct {
	DocumentType string         `json:"document_type"`
	Status       DocumentStatus `json:"status"`
	VerifiedAt   *time.Time     `json:"verified_at,omitempty"`
}

// DocumentationFlags is the scoring boundary contract spec §6 defines:
// booleans plus a linked-account count, used only by the DocumentationCompleteness
// score component and the verification-status derivation.
type DocumentationFlags struct {
	TaxReturns     bool `json:"tax_returns"`
	Form1099       bool `json:"form_1099"`
	BankStatements bool `json:"bank_statements"`
	W2             bool `json:"w2"`
	Other          bool `json:"other"`
	LinkedAccounts int  `json:"linked_accounts"`
}

// ReportMetadata is the LenderReport envelope spec §3 defines.
type ReportMetadata struct {
	ReportID    string       `json:"report_id"`
	BorrowerID  string       `json:"borrower_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Version     string       `json:"version"`
	Status      ReportStatus `json:"status"`
}

// BorrowerSummary is the masked borrower identity block spec §4.9 produces.
type BorrowerSummary struct {
	DisplayNameMasked  string                     `json:"display_name_masked"`
	City               string                     `json:"city"`
	State              string                     `json:"state"`
	MemberSince        time.Time                  `json:"member_since"`
	VerificationStatus BorrowerVerificationStatus `json:"verification_status"`
}

// IncomeOverview is the headline income summary block of the report.
type IncomeOverview struct {
	AnnualProjectedCents int64      `json:"annual_projected_cents"`
	MonthlyAverageCents  int64      `json:"monthly_average_cents"`
	Trajectory           Trajectory `json:"trajectory"`
	TrajectoryDescription string    `json:"trajectory_description"`
	SourceCount          int        `json:"source_count"`
}

// IncomeSourceSummary is the per-source report line item, including the
// contribution percentage invariant spec §4.9 defines (sum within 1 of
// 100 after rounding, residual allocated to the largest source).
type IncomeSourceSummary struct {
	IncomeSource
	ContributionPercentage int `json:"contribution_percentage"`
}

// LenderReport is the complete signed-shareable artifact spec §3 defines.
type LenderReport struct {
	Metadata           ReportMetadata         `json:"metadata"`
	Borrower           BorrowerSummary        `json:"borrower"`
	IncomeOverview     IncomeOverview         `json:"income_overview"`
	IncomeSources      []IncomeSourceSummary  `json:"income_sources"`
	MonthlyHistory     []MonthlyIncome        `json:"monthly_history"`
	LoanReadinessScore LoanReadinessScore     `json:"loan_readiness_score"`
	StabilityMetrics   StabilityMetrics       `json:"stability_metrics"`
	DebtToIncome       DebtAnalysis           `json:"debt_to_income"`
	Risk               RiskAssessment         `json:"risk"`
	Documents          []DocumentVerification `json:"documents"`
	Disclaimer         string                 `json:"disclaimer"`
}
