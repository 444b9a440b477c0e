// Package grouping implements the SourceGrouper spec §4.2 defines:
// clustering income transactions into IncomeSource entities by a
// precedence-ordered grouping key (gig platform, then merchant name, then
// a name prefix).
//
// Grounded on the teacher's analytics/recurring_detection.go
// groupByCounterparty signature-priority pattern (merchant name, then a
// narration fingerprint, then a beneficiary identifier) — generalized here
// to spec §4.2's platform/merchant/name-prefix precedence.
package grouping

import (
	"fmt"
	"sort"
	"strings"

	"incomeverify/catalog"
	"incomeverify/classifier"
	"incomeverify/models"
)

const namePrefixLen = 20

type groupKey struct {
	kind    string // "platform", "merchant", or "name"
	literal string // the raw key value (platform name, merchant, or name prefix)
}

type groupAccumulator struct {
	key          groupKey
	classification classifier.Result
	transactions []models.Transaction
}

// GroupSources clusters income transactions (kind=Income, non-pending)
// into sorted, stably-IDed IncomeSource entities, per spec §4.2. Callers
// must pre-filter to income transactions; GroupSources defensively
// re-filters in case they didn't.
func GroupSources(transactions []models.Transaction) []models.IncomeSource {
	return GroupSourcesWithCatalog(catalog.Platforms, transactions)
}

// GroupSourcesWithCatalog is GroupSources parameterized on an injected
// platform catalog (spec §5).
func GroupSourcesWithCatalog(platforms []catalog.PlatformEntry, transactions []models.Transaction) []models.IncomeSource {
	groups := make(map[groupKey]*groupAccumulator)
	var order []groupKey

	for _, tx := range transactions {
		if tx.Kind != models.KindIncome || tx.Pending {
			continue
		}

		result := classifier.ClassifyWithCatalog(platforms, tx.Name, tx.MerchantName)
		key := groupingKey(result, tx)

		acc, ok := groups[key]
		if !ok {
			acc = &groupAccumulator{key: key, classification: result}
			groups[key] = acc
			order = append(order, key)
		}
		acc.transactions = append(acc.transactions, tx)
	}

	type keyedSource struct {
		source models.IncomeSource
		key    string // lowercased grouping-key literal, for the tie-break
	}

	keyed := make([]keyedSource, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		if len(acc.transactions) == 0 {
			continue
		}
		keyed = append(keyed, keyedSource{source: buildSource(platforms, acc), key: strings.ToLower(key.literal)})
	}

	sort.Slice(keyed, func(i, j int) bool {
		if keyed[i].source.TotalCents != keyed[j].source.TotalCents {
			return keyed[i].source.TotalCents > keyed[j].source.TotalCents
		}
		if !keyed[i].source.FirstSeen.Equal(keyed[j].source.FirstSeen) {
			return keyed[i].source.FirstSeen.Before(keyed[j].source.FirstSeen)
		}
		return keyed[i].key < keyed[j].key
	})

	sources := make([]models.IncomeSource, len(keyed))
	for i, ks := range keyed {
		ks.source.ID = fmt.Sprintf("source-%d", i)
		sources[i] = ks.source
	}

	return sources
}

// groupingKey implements spec §4.2's precedence: gig platform enum first,
// then lowercased trimmed merchant name, then the lowercased first 20
// characters of name.
func groupingKey(result classifier.Result, tx models.Transaction) groupKey {
	if result.Platform != nil {
		return groupKey{kind: "platform", literal: string(*result.Platform)}
	}
	if merchant := strings.ToLower(strings.TrimSpace(tx.MerchantName)); merchant != "" {
		return groupKey{kind: "merchant", literal: merchant}
	}
	name := strings.ToLower(strings.TrimSpace(tx.Name))
	if len(name) > namePrefixLen {
		name = name[:namePrefixLen]
	}
	return groupKey{kind: "name", literal: name}
}

func buildSource(platforms []catalog.PlatformEntry, acc *groupAccumulator) models.IncomeSource {
	txs := acc.transactions
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	var total int64
	months := make(map[models.YearMonth]struct{})
	for _, tx := range txs {
		total += tx.AmountCents
		months[tx.YearMonth()] = struct{}{}
	}
	monthsActive := uint16(len(months))

	var monthlyAvg int64
	if monthsActive > 0 {
		monthlyAvg = roundDiv(total, int64(monthsActive))
	} else {
		monthlyAvg = total
	}

	displayName := displayNameFor(platforms, acc.key, acc.classification)

	source := models.IncomeSource{
		DisplayName:     displayName,
		Type:            acc.classification.Type,
		GigPlatform:     acc.classification.Platform,
		TotalCents:      total,
		MonthlyAvgCents: monthlyAvg,
		MonthsActive:    monthsActive,
		FirstSeen:       txs[0].Date,
		LastSeen:        txs[len(txs)-1].Date,
		Recurring:       len(txs) >= int(monthsActive),
		Verification:    models.VerificationUnverified,
		Transactions:    txs,
	}
	source.SetMatchedPattern(acc.classification.MatchedPattern)
	return source
}

func displayNameFor(platforms []catalog.PlatformEntry, key groupKey, result classifier.Result) string {
	if result.Platform != nil {
		return classifier.DisplayName(platforms, *result.Platform, key.literal)
	}
	return classifier.DisplayName(platforms, "", key.literal)
}

// roundDiv performs round-half-away-from-zero integer division, the
// convention spec §3 uses for MonthlyAvgCents.
func roundDiv(numerator, denominator int64) int64 {
	if denominator == 0 {
		return numerator
	}
	neg := (numerator < 0) != (denominator < 0)
	if numerator < 0 {
		numerator = -numerator
	}
	if denominator < 0 {
		denominator = -denominator
	}
	result := (numerator*2 + denominator) / (2 * denominator)
	if neg {
		return -result
	}
	return result
}
