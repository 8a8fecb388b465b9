package types

import "time"

// Audit action/target/status tags. String tags rather than enums so new
// event kinds never need a migration.
const (
	AuditActionLogin = "LOGIN"
	AuditTargetUser  = "USER"

	AuditStatusSuccess = "SUCCESS"
	AuditStatusFail    = "FAIL"
)

// AuditLogEntry is an immutable, append-only security event record.
// UserID is nil when the acting identity could not be resolved (e.g. a login
// attempt against an unknown email).
type AuditLogEntry struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id"`
	Action    string    `json:"action" example:"LOGIN"`
	Target    string    `json:"target" example:"USER"`
	Status    string    `json:"status" example:"SUCCESS"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	OldValue  []byte    `json:"old_value,omitempty"` // Serialized snapshot, nullable.
	NewValue  []byte    `json:"new_value,omitempty"` // Serialized snapshot, nullable.
	CreatedAt time.Time `json:"created_at"`

	// Joined from users when the acting user is still resolvable.
	UserName  *string `json:"user_name,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
}

// ClientContext carries the request attributes recorded with every audit
// entry. Extracted at the HTTP boundary so the service layer stays free of
// *http.Request.
type ClientContext struct {
	IPAddress string
	UserAgent string
}
