// Package obligations implements the ObligationDetector spec §4.6 defines:
// clustering expense transactions into recurring obligations by a name
// fingerprint, classifying each by category and cadence, and rolling the
// result into a monthly debt-to-income figure.
//
// Grounded on the teacher's analytics/recurring_detection.go
// RecurringPaymentDetector.groupByCounterparty + calculateRecurringConfidence
// — a name-fingerprint grouping with a tolerance-band qualification test,
// generalized here to spec §4.6's ±10%-of-mean rule and category/frequency
// keyword tables.
package obligations

import (
	"math"
	"sort"
	"strings"

	"incomeverify/models"
)

const (
	fingerprintLen  = 25
	minOccurrences  = 3
	toleranceFrac   = 0.10
	otherMinCents   = 5000
	topObligations  = 5
)

var fixedCaveat = "Obligation amounts are statistically inferred from transaction history and are not independently verified with creditors. Actual balances and payment terms may differ."

var loanKeywords = []string{"loan", "mortgage", "auto pay", "student"}

var creditCardKeywords = []string{
	"visa", "mastercard", "amex", "american express", "discover",
	"capital one", "chase card", "citi", "synchrony", "credit card",
}

var rentKeywords = []string{"rent", "landlord", "property mgmt", "property management"}

var utilityKeywords = []string{"electric", "gas", "water", "utility", "internet", "phone"}

// Detect clusters expense transactions into DebtAnalysis, per spec §4.6.
// annualProjectionCents is the blended annual income projection (spec
// §4.5), used to compute DTIPercent; a zero projection yields DTI 0.
func Detect(transactions []models.Transaction, annualProjectionCents int64) models.DebtAnalysis {
	groups := groupByFingerprint(transactions)

	var obligations []models.Obligation
	for _, g := range groups {
		if ob, ok := qualify(g); ok {
			obligations = append(obligations, ob)
		}
	}

	sort.Slice(obligations, func(i, j int) bool {
		return obligations[i].MonthlyCents > obligations[j].MonthlyCents
	})

	var total int64
	for _, ob := range obligations {
		total += ob.MonthlyCents
	}

	top := obligations
	if len(top) > topObligations {
		top = top[:topObligations]
	}

	dti := 0.0
	if annualProjectionCents != 0 {
		monthlyProjection := float64(annualProjectionCents) / 12
		dti = math.Round(float64(total)/monthlyProjection*100*10) / 10
	}

	return models.DebtAnalysis{
		TotalMonthlyObligationCents: total,
		DTIPercent:                  dti,
		Obligations:                 obligations,
		TopObligations:              append([]models.Obligation(nil), top...),
		Caveat:                      fixedCaveat,
	}
}

type fingerprintGroup struct {
	fingerprint  string
	displayName  string
	transactions []models.Transaction
}

func groupByFingerprint(transactions []models.Transaction) []*fingerprintGroup {
	index := make(map[string]*fingerprintGroup)
	var order []string

	for _, tx := range transactions {
		if tx.Kind != models.KindExpense || tx.Pending {
			continue
		}
		fp := fingerprint(tx.Name)
		g, ok := index[fp]
		if !ok {
			g = &fingerprintGroup{fingerprint: fp, displayName: strings.TrimSpace(tx.Name)}
			index[fp] = g
			order = append(order, fp)
		}
		g.transactions = append(g.transactions, tx)
	}

	groups := make([]*fingerprintGroup, 0, len(order))
	for _, fp := range order {
		groups = append(groups, index[fp])
	}
	return groups
}

func fingerprint(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) > fingerprintLen {
		s = s[:fingerprintLen]
	}
	return s
}

func qualify(g *fingerprintGroup) (models.Obligation, bool) {
	txs := g.transactions
	if len(txs) < minOccurrences {
		return models.Obligation{}, false
	}

	var sum float64
	for _, tx := range txs {
		sum += math.Abs(float64(tx.AmountCents))
	}
	mean := sum / float64(len(txs))

	for _, tx := range txs {
		amt := math.Abs(float64(tx.AmountCents))
		if math.Abs(amt-mean) > mean*toleranceFrac {
			return models.Obligation{}, false
		}
	}

	category := classifyCategory(g.displayName)
	if category == models.ObligationOther && mean < otherMinCents {
		return models.Obligation{}, false
	}

	frequency := classifyFrequency(txs)
	monthly := normalizeMonthly(mean, frequency)

	return models.Obligation{
		Name:         g.displayName,
		MonthlyCents: int64(math.Round(monthly)),
		Frequency:    frequency,
		Category:     category,
		Estimated:    true,
	}, true
}

func classifyCategory(name string) models.ObligationCategory {
	text := strings.ToLower(name)
	if containsAny(text, loanKeywords) {
		return models.ObligationLoan
	}
	if containsAny(text, creditCardKeywords) {
		return models.ObligationCreditCard
	}
	if containsAny(text, rentKeywords) {
		return models.ObligationRent
	}
	if containsAny(text, utilityKeywords) {
		return models.ObligationUtility
	}
	return models.ObligationOther
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func classifyFrequency(txs []models.Transaction) models.ObligationFrequency {
	sorted := append([]models.Transaction(nil), txs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	if len(sorted) < 2 {
		return models.FrequencyMonthly
	}

	var totalDays float64
	for i := 1; i < len(sorted); i++ {
		totalDays += sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
	}
	meanGap := totalDays / float64(len(sorted)-1)

	switch {
	case meanGap < 10:
		return models.FrequencyWeekly
	case meanGap < 20:
		return models.FrequencyBiweekly
	default:
		return models.FrequencyMonthly
	}
}

func normalizeMonthly(amount float64, frequency models.ObligationFrequency) float64 {
	switch frequency {
	case models.FrequencyWeekly:
		return amount * 4.33
	case models.FrequencyBiweekly:
		return amount * 2.17
	default:
		return amount
	}
}
