package lumen

// Application-wide defaults consumed by the config package.
const (
	DefaultAppName    = "lumen-chat"
	DefaultConfigPath = "/etc/lumen-chat"

	DefaultDatabaseDir = ".lumen"
	DefaultDatabaseDSN = ".lumen/chat.db"

	// DefaultOwnerID stands in for the requesting user until an
	// authenticated identity exists.
	DefaultOwnerID = "temp-user"
)
