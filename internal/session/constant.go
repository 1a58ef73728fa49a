package session

import "time"

// Log prefixes
const (
	LogPrefixCreate     = "internal.session.Create"
	LogPrefixActive     = "internal.session.Active"
	LogPrefixInvalidate = "internal.session.InvalidateProject"
)

// Defaults
const (
	DefaultTTL              = 30 * time.Minute
	DefaultMaxConversations = 1000
)
