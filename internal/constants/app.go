package constants

// Application Information
const (
	AppName    = "Template Base"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix = "tbase:"
	CacheKeyUser   = CacheKeyPrefix + "user:"
	CacheKeyConfig = CacheKeyPrefix + "config:"
	CacheKeyBlog   = CacheKeyPrefix + "blog:"
)

// Auth Cookies
const (
	CookieAccessToken  = "token"
	CookieRefreshToken = "refreshToken"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
