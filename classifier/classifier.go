// Package classifier implements the PlatformClassifier spec §4.1 defines:
// a pure function matching transaction text against the fixed gig-platform
// catalog, falling back to keyword rules, and finally a generic contractor
// bucket. It never panics on unrecognized text.
//
// Grounded on the teacher's classifier/classifier.go pipeline shape
// (normalize text, scan signals in priority order, return a classification
// plus the evidence that produced it) and rules.ClassifyCategoryWithMetadata's
// "first match wins, record why" structure.
package classifier

import (
	"strings"

	"incomeverify/catalog"
	"incomeverify/models"
)

// Result is the classification plus the evidence behind it — the
// explainability metadata SPEC_FULL §11 supplements onto spec §4.1's bare
// (type, platform) pair.
type Result struct {
	Type           models.IncomeSourceType
	Platform       *models.GigPlatform
	MatchedPattern string // empty when classification fell through to a keyword/default rule
}

// Classify matches name/merchantName against the gig-platform catalog,
// falling back to investment/rental keywords, and finally Contractor1099.
// It never panics: unknown text returns (Contractor1099, nil, "").
func Classify(name, merchantName string) Result {
	return ClassifyWithCatalog(catalog.Platforms, name, merchantName)
}

// ClassifyWithCatalog is Classify parameterized on an injected platform
// catalog, per spec §5's "platform catalogs... are process-wide immutable
// after construction; treat them as scoped configuration passed in by the
// caller."
func ClassifyWithCatalog(platforms []catalog.PlatformEntry, name, merchantName string) Result {
	text := strings.ToLower(strings.TrimSpace(name + " " + merchantName))

	for _, entry := range platforms {
		for _, pattern := range entry.Patterns {
			if strings.Contains(text, pattern) {
				platform := entry.Platform
				return Result{Type: models.SourceGigPlatform, Platform: &platform, MatchedPattern: pattern}
			}
		}
	}

	for _, kw := range catalog.InvestmentKeywords {
		if strings.Contains(text, kw) {
			return Result{Type: models.SourceInvestment, MatchedPattern: kw}
		}
	}

	for _, kw := range catalog.RentalKeywords {
		if strings.Contains(text, kw) {
			return Result{Type: models.SourceRental, MatchedPattern: kw}
		}
	}

	return Result{Type: models.SourceContractor1099}
}

// DisplayName returns the brand name for a gig platform, or the title-cased
// key for a generic group, per spec §4.2's display-name rule.
func DisplayName(platforms []catalog.PlatformEntry, platform models.GigPlatform, genericKey string) string {
	for _, entry := range platforms {
		if entry.Platform == platform {
			return entry.DisplayName
		}
	}
	return titleCase(genericKey)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
