package models

import (
	"fmt"
	"strings"
	"time"
)

// LetterGrade is the ordered grade scale spec §3/§4.8 defines, declared in
// ascending order so grade comparisons can use plain integer ordering.
type LetterGrade int

const (
	GradeF LetterGrade = iota
	GradeD
	GradeC
	GradeCPlus
	GradeB
	GradeBPlus
	GradeA
	GradeAPlus
)

func (g LetterGrade) String() string {
	switch g {
	case GradeAPlus:
		return "A+"
	case GradeA:
		return "A"
	case GradeBPlus:
		return "B+"
	case GradeB:
		return "B"
	case GradeCPlus:
		return "C+"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	default:
		return "F"
	}
}

// MarshalJSON renders the grade as its letter string ("A+", "B", ...)
// rather than the underlying ordinal, since LetterGrade's int representation
// is an internal comparison convenience, not part of the wire contract.
func (g LetterGrade) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.String() + `"`), nil
}

// UnmarshalJSON parses the letter-string wire format back into a LetterGrade.
func (g *LetterGrade) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	for candidate := GradeF; candidate <= GradeAPlus; candidate++ {
		if candidate.String() == s {
			*g = candidate
			return nil
		}
	}
	return fmt.Errorf("models: invalid letter grade %q", s)
}

// LoanType is one of the five lender products spec §3/§4.8 scores against.
type LoanType string

const (
	LoanMortgage LoanType = "Mortgage"
	LoanAuto     LoanType = "Auto"
	LoanPersonal LoanType = "Personal"
	LoanBusiness LoanType = "Business"
	LoanHeloc    LoanType = "Heloc"
)

// LoanThreshold is the fixed {recommended, minimum} pair per loan type,
// spec §4.8.
type LoanThreshold struct {
	Recommended int `json:"recommended"`
	Minimum     int `json:"minimum"`
}

// ScoreComponent is one of the six weighted components making up the LRS,
// spec §3/§4.8.
type ScoreComponent struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Raw      float64  `json:"raw"` // 0-100
	Weighted float64  `json:"weighted"`
	Factors  []string `json:"factors,omitempty"`
	Tips     []string `json:"tips,omitempty"`
}

// RecommendationPriority is the urgency band spec §4.8 assigns.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityLow    RecommendationPriority = "LOW"
)

// Recommendation is one actionable step to raise the LRS, spec §4.8.
type Recommendation struct {
	Category          string                  `json:"category"`
	Action            string                  `json:"action"`
	PotentialIncrease int                     `json:"potential_increase"`
	Priority          RecommendationPriority  `json:"priority"`
	Timeframe         string                  `json:"timeframe"`
}

// LoanReadinessScore is the complete scored output spec §3/§4.8 defines.
// Invariant: Overall == round(sum of Breakdown[i].Weighted); sum of
// weights == 1.00; Qualified and Potential never share a LoanType.
type LoanReadinessScore struct {
	Overall         int                         `json:"overall"`
	Grade           LetterGrade                 `json:"grade"`
	Breakdown       [6]ScoreComponent           `json:"breakdown"`
	Recommendations []Recommendation            `json:"recommendations"`
	Qualified       []LoanType                  `json:"qualified"`
	Potential       []LoanType                  `json:"potential"`
	Thresholds      map[LoanType]LoanThreshold  `json:"thresholds"`
	CalculatedAt    time.Time                   `json:"calculated_at"`
}
