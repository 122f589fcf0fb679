package constants

// ContextKeyUserID is the session and gin context key holding the
// authenticated user's ID.
const ContextKeyUserID = "user_id"

// SessionCookieName is the cookie under which the session is stored.
const SessionCookieName = "sitecrew_session"

// Password rules
const MinPasswordLength = 8

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
