package domain

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// KeyProfileID is the authenticated profile identifier resolved from the link token
	KeyProfileID ContextKey = "ProfileID"
	// KeyTenantID is the tenant the request operates under
	KeyTenantID ContextKey = "TenantID"
)
