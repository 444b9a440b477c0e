package models

import "time"

// IncomeSource is a clustered group of income transactions sharing a
// counterparty identity, per spec §3/§4.2.
//
// Invariants (enforced by package grouping, never by callers):
//   TotalCents == sum of Transactions[i].AmountCents
//   MonthlyAvgCents == round(TotalCents / max(MonthsActive, 1))
//   MonthsActive == count of distinct (year, month) among Transactions
//   Recurring == (len(Transactions) >= MonthsActive)
type IncomeSource struct {
	ID              string             `json:"id"`
	DisplayName     string             `json:"display_name"`
	Type            IncomeSourceType   `json:"type"`
	GigPlatform     *GigPlatform       `json:"gig_platform,omitempty"`
	TotalCents      int64              `json:"total_cents"`
	MonthlyAvgCents int64              `json:"monthly_avg_cents"`
	MonthsActive    uint16             `json:"months_active"`
	FirstSeen       time.Time          `json:"first_seen"`
	LastSeen        time.Time          `json:"last_seen"`
	Recurring       bool               `json:"recurring"`
	Verification    VerificationStatus `json:"verification"`
	// Transactions is excluded from the external report wire format
	// (json:"-"): spec §3 lists it as part of the entity for the pipeline's
	// own bookkeeping, but a lender-facing report that echoed every raw
	// transaction back would dwarf the rest of the document for no added
	// verification value. Callers needing the underlying rows already have
	// them — they are what produced this IncomeSource.
	Transactions []Transaction `json:"-"`

	// matchedPattern records which catalog pattern (if any) drove the
	// classification of this source's representative transaction. It is
	// diagnostic only — never serialized into the lender report, per
	// SPEC_FULL §11's explainability note.
	matchedPattern string
}

// SetMatchedPattern records the classifier pattern that identified this
// source's counterparty, for DebugTrace. Called only by package grouping.
func (s *IncomeSource) SetMatchedPattern(pattern string) {
	s.matchedPattern = pattern
}

// DebugTrace returns a human-readable explanation of why this source was
// classified the way it was. Not part of the wire report contract.
func (s IncomeSource) DebugTrace() string {
	if s.matchedPattern == "" {
		return string(s.Type) + ": no catalog pattern matched"
	}
	return string(s.Type) + ": matched pattern \"" + s.matchedPattern + "\""
}
