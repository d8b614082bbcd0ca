package domain

import "time"

// AuditFields holds the timestamps every persisted entity carries.
// Both values come from the injected clock, never from time.Now directly.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
