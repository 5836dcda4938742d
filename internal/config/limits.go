package config

import "time"

const (
	// MaxUploadBytes is the largest PDF accepted for upload (10 MiB).
	// Matches the backend's own cap so oversized files are rejected
	// locally, before any bytes cross the network.
	MaxUploadBytes = 10 * 1024 * 1024

	// PDFSuffix is the required filename suffix for uploads. The match
	// is case-sensitive: the backend indexes by the literal suffix.
	PDFSuffix = ".pdf"

	// NotificationTTL is how long a transient notification stays active
	// before it self-clears.
	NotificationTTL = 3 * time.Second

	// DefaultConversationID names the single conversation a session owns.
	// The id is still passed end-to-end on every request so the protocol
	// generalizes to many conversations.
	DefaultConversationID = "default"
)
