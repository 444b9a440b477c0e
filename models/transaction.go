package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionKind partitions a Transaction into the three wire kinds spec §3
// recognizes. Pending transactions and Transfer transactions are excluded
// from both income and obligation analyses by every downstream stage.
type TransactionKind string

const (
	KindIncome   TransactionKind = "Income"
	KindExpense  TransactionKind = "Expense"
	KindTransfer TransactionKind = "Transfer"
)

// IncomeSourceType is the closed sum spec §3 defines for IncomeSource.Type.
type IncomeSourceType string

const (
	SourceGigPlatform    IncomeSourceType = "GigPlatform"
	SourceContractor1099 IncomeSourceType = "Contractor1099"
	SourceSelfEmployment IncomeSourceType = "SelfEmployment"
	SourceInvestment     IncomeSourceType = "Investment"
	SourceRental         IncomeSourceType = "Rental"
	SourceOther          IncomeSourceType = "Other"
)

// GigPlatform is the closed, extensible-via-catalog enum of gig platforms
// spec §3 names. Extension happens by growing catalog.Platforms, never by
// adding new Go types (spec §9 — "extension is done by growing the
// table, not by adding subclasses").
type GigPlatform string

const (
	PlatformUber       GigPlatform = "Uber"
	PlatformLyft       GigPlatform = "Lyft"
	PlatformDoorDash   GigPlatform = "DoorDash"
	PlatformGrubhub    GigPlatform = "Grubhub"
	PlatformInstacart  GigPlatform = "Instacart"
	PlatformAmazonFlex GigPlatform = "AmazonFlex"
	PlatformTaskRabbit GigPlatform = "TaskRabbit"
	PlatformFiverr     GigPlatform = "Fiverr"
	PlatformUpwork     GigPlatform = "Upwork"
	PlatformEtsy       GigPlatform = "Etsy"
	PlatformShopify    GigPlatform = "Shopify"
	PlatformRover      GigPlatform = "Rover"
	PlatformTuro       GigPlatform = "Turo"
	PlatformAirbnb     GigPlatform = "Airbnb"
	PlatformPostmates  GigPlatform = "Postmates"
	PlatformShipt      GigPlatform = "Shipt"
)

// Transaction is the immutable input record spec §3 defines. AmountCents is
// signed: positive means income, negative means expense, matching the
// "signed integer cents" money model spec §3/§9 mandates.
type Transaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	AmountCents  int64           `json:"amount_cents"`
	Date         time.Time       `json:"date"` // calendar date; bucketing uses this verbatim in UTC, see SPEC_FULL §12.1
	Name         string          `json:"name"`
	MerchantName string          `json:"merchant_name,omitempty"`
	Category     []string        `json:"category,omitempty"`
	Pending      bool            `json:"pending"`
	Kind         TransactionKind `json:"kind"`
	SourceHint   *IncomeSourceType `json:"source_hint,omitempty"`
}

// ClassificationText is name + " " + merchantName, unlowered — the same
// concatenation classifier.Classify builds and lowercases before scanning.
func (t Transaction) ClassificationText() string {
	return t.Name + " " + t.MerchantName
}

// YearMonth returns the dense-series bucket key for t, per spec §3's
// "month bucketing uses UTC year-month from the date field as-is" rule.
func (t Transaction) YearMonth() YearMonth {
	return YearMonth{Year: t.Date.Year(), Month: int(t.Date.Month())}
}

// YearMonth is a calendar year/month pair used for dense monthly bucketing.
// It intentionally carries no time.Time/location so bucketing cannot drift
// across a timezone conversion (SPEC_FULL §12.1).
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// String renders as "YYYY-MM".
func (ym YearMonth) String() string {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// MarshalJSON renders ym as the "YYYY-MM" string spec §3 specifies for
// MonthlyIncome.year_month, rather than Go's default {"Year":...,"Month":...}.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ym.String() + `"`), nil
}

// UnmarshalJSON parses the "YYYY-MM" wire format back into a YearMonth.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return fmt.Errorf("models: invalid year_month %q: %w", s, err)
	}
	ym.Year = t.Year()
	ym.Month = int(t.Month())
	return nil
}

// Before reports whether ym chronologically precedes other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the calendar month immediately following ym.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// VerificationStatus is the per-source and per-borrower verification tier.
type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "Verified"
	VerificationUnverified VerificationStatus = "Unverified"
	VerificationPending    VerificationStatus = "Pending"
)
