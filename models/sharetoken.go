package models

import "time"

// ShareToken is the sole mutable entity in the system, per spec §3/§5.
// Only Revoked, AccessCount, LastAccessedAt, LastAccessedIP change after
// creation; everything else is fixed at issuance.
type ShareToken struct {
	Token          string     `json:"token"`
	ReportID       string     `json:"report_id"`
	BorrowerID     string     `json:"borrower_id"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	Revoked        bool       `json:"revoked"`
	AccessCount    uint64     `json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	LastAccessedIP string     `json:"last_accessed_ip,omitempty"`
}

// IsValid reports whether the token may be used to access its report at
// instant now: not revoked and not yet expired.
func (t ShareToken) IsValid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
