package constants

import "time"

const (
	JWTSecretMinLength = 32
	BcryptCost         = 12

	DefaultTokenTTL       = 10 * time.Hour
	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxRequestSize = 1 << 20

	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 15 * time.Second
	ServerWriteTimeout      = 15 * time.Second
	ServerIdleTimeout       = 60 * time.Second

	DBPoolMetricsInterval = 30 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond    = 1.0
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.5
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 20.0
	RateLimitGeneralBurst              = 40
)

// TraceIDKeyType keeps the trace id context key shared between the HTTP
// middleware that sets it and the logger that reads it.
type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
