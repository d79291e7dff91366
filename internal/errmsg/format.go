// Package errmsg provides consistent error formatting for operator-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Reconciliation operations
	OpScanLibrary  Op = "scan library"
	OpLoadWanted   Op = "load wanted list"
	OpPersistState Op = "persist match state"

	// Emit operations
	OpWritePlaylist Op = "write playlist"
	OpWriteReport   Op = "write unmatched report"
	OpNotify        Op = "send notification"

	// Trigger operations
	OpWatchLibrary Op = "watch library volume"

	// Initialization
	OpInitialize Op = "initialize daemon"
)

// Format creates an operator-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
