package models

// RiskLevel is the coarse narrative risk band spec §4.7 assigns.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskElevated RiskLevel = "Elevated"
)

// RiskAssessment is the narrative risk summary spec §4.7 produces: a
// 0-100-ish adjusted score (not itself reported), a level, and the
// factor lists that explain it.
type RiskAssessment struct {
	Level           RiskLevel `json:"level"`
	PositiveFactors []string  `json:"positive_factors,omitempty"`
	RiskFactors     []string  `json:"risk_factors,omitempty"`
	// SuggestedAction is a single extra narrative sentence keyed off
	// trajectory, supplementing spec §4.7 per SPEC_FULL §11.
	SuggestedAction string `json:"suggested_action"`
}
