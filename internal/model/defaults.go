package model

// Shared defaults used by both the server and TUI binaries.
const (
	DefaultLogsDir      = "logs"
	DefaultMaxRecords   = 85000
	DefaultTopAddresses = 20
	DefaultHTTPPort     = 8000
)
