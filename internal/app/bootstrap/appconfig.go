// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level, CORS, request limits). AppConfig is everything specific to
// MentorHub: the Mongo connection, session cookies, the acceptance
// snapshot keys, audit logging, and operational timeouts.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Acceptance snapshot cookies (the per-viewer "seen acceptances" state)
	SnapshotHashKey  string // HMAC key for the acceptance snapshot cookies
	SnapshotBlockKey string // Optional AES key; blank disables encryption

	// Audit logging: "all" (db+log), "db", "log", or "off" per category
	AuditLogAuth  string
	AuditLogAdmin string

	// Admin bootstrap: promotes or creates this user as admin on startup
	BootstrapAdminEmail string
	BootstrapAdminName  string
}
