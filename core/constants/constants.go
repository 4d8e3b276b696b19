package constants

import "time"

// Context keys
const (
	ContextRequestID = "request_id"
)

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Date and time layouts used across the planner
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Presence grid behaviour
const (
	// ToastAutoDismissMS is how long a success toast stays visible on the client.
	ToastAutoDismissMS = 3000

	// GridSessionTTL bounds how long an abandoned grid selection survives in Redis.
	GridSessionTTL = 30 * time.Minute
)

// Export file naming
const (
	ExportFilenamePattern           = "calendar_data_%d_%d.json"
	ConsultantExportFilenamePattern = "calendar_%s_%d_%d.json"
	ArchiveKeyPrefix                = "exports"
)
