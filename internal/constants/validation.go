package constants

import "time"

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MaxDescLength     = 500
	MinMessageLength  = 10
)

// Token Lifetimes
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	ResetTokenTTL   = time.Hour
)

// Validation Patterns
const (
	ConfigKeyPattern = `^[a-zA-Z0-9_]+$`
)
