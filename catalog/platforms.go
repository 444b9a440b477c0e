// Package catalog holds the fixed, process-wide-immutable gig-platform
// pattern table and income-source keyword fallbacks spec §3/§4.1 define.
// Extension happens by appending to Platforms, never by adding Go types
// (spec §9) — the catalog is plain configuration data, injected by the
// caller and never mutated after construction (spec §5).
//
// Grounded on the teacher's rules/category_rules.go: a big static
// keyword-to-category table scanned in a stable declared order, first
// match wins.
package catalog

import "incomeverify/models"

// PlatformEntry pairs a gig platform with the lowercase substring patterns
// that identify it in transaction text.
type PlatformEntry struct {
	Platform models.GigPlatform
	// DisplayName is the canonical brand name used in IncomeSource.DisplayName.
	DisplayName string
	// Patterns are lowercase substrings scanned against
	// Transaction.ClassificationText(), lowercased.
	Patterns []string
}

// Platforms is the default catalog. Iteration order is stable and is the
// tie-break for ambiguous text that matches more than one platform's
// patterns (spec §4.1 — "iteration order of the catalog is stable and is
// the tie-break").
var Platforms = []PlatformEntry{
	{models.PlatformUber, "Uber", []string{"uber"}},
	{models.PlatformLyft, "Lyft", []string{"lyft"}},
	{models.PlatformDoorDash, "DoorDash", []string{"doordash", "door dash"}},
	{models.PlatformGrubhub, "Grubhub", []string{"grubhub", "grub hub"}},
	{models.PlatformInstacart, "Instacart", []string{"instacart"}},
	{models.PlatformAmazonFlex, "Amazon Flex", []string{"amazon flex", "amzn flex", "flex driver"}},
	{models.PlatformTaskRabbit, "TaskRabbit", []string{"taskrabbit", "task rabbit"}},
	{models.PlatformFiverr, "Fiverr", []string{"fiverr"}},
	{models.PlatformUpwork, "Upwork", []string{"upwork"}},
	{models.PlatformEtsy, "Etsy", []string{"etsy"}},
	{models.PlatformShopify, "Shopify", []string{"shopify"}},
	{models.PlatformRover, "Rover", []string{"rover.com", "rover pet", " rover "}},
	{models.PlatformTuro, "Turo", []string{"turo"}},
	{models.PlatformAirbnb, "Airbnb", []string{"airbnb"}},
	{models.PlatformPostmates, "Postmates", []string{"postmates"}},
	{models.PlatformShipt, "Shipt", []string{"shipt"}},
}

// InvestmentKeywords trigger IncomeSourceType Investment when no gig
// platform pattern matches (spec §4.1).
var InvestmentKeywords = []string{"dividend", "interest", "investment"}

// RentalKeywords trigger IncomeSourceType Rental when no gig platform
// pattern matches and no investment keyword matches (spec §4.1).
var RentalKeywords = []string{"rent", "rental", "lease"}
