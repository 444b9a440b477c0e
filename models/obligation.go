package models

// ObligationFrequency is the cadence an obligation recurs on, per spec §4.6.
type ObligationFrequency string

const (
	FrequencyWeekly   ObligationFrequency = "Weekly"
	FrequencyBiweekly ObligationFrequency = "Biweekly"
	FrequencyMonthly  ObligationFrequency = "Monthly"
)

// ObligationCategory classifies a recurring obligation by what it pays for.
type ObligationCategory string

const (
	ObligationLoan       ObligationCategory = "Loan"
	ObligationCreditCard ObligationCategory = "CreditCard"
	ObligationRent       ObligationCategory = "Rent"
	ObligationUtility    ObligationCategory = "Utility"
	ObligationOther      ObligationCategory = "Other"
)

// Obligation is a detected recurring expense cluster normalized to a
// monthly cadence, per spec §4.6. Estimated is always true: the core never
// has a lender-confirmed obligation, only a statistically inferred one.
type Obligation struct {
	Name         string              `json:"name"`
	MonthlyCents int64               `json:"monthly_cents"`
	Frequency    ObligationFrequency `json:"frequency"`
	Category     ObligationCategory  `json:"category"`
	Estimated    bool                `json:"estimated"`
}

// DebtAnalysis is the obligation detector's full output, including the
// DTI percentage computed against the blended annual projection.
type DebtAnalysis struct {
	TotalMonthlyObligationCents int64        `json:"total_monthly_obligation_cents"`
	DTIPercent                  float64      `json:"dti_percent"`
	Obligations                 []Obligation `json:"obligations"`
	// TopObligations surfaces the 5 largest obligations by monthly amount,
	// supplementing spec §4.9's report assembly (SPEC_FULL §11).
	TopObligations []Obligation `json:"top_obligations,omitempty"`
	Caveat         string       `json:"caveat"`
}
