package services

import "strings"

const nonPersistentNote = " (remote service does not persist changes)"

// confirmation returns the formatter for write confirmations. Against a
// non-persistent backend "User deleted successfully!" becomes
// "User deleted (remote service does not persist changes)".
func confirmation(mockBackend bool) func(string) string {
	if !mockBackend {
		return func(msg string) string { return msg }
	}
	return func(msg string) string {
		return strings.TrimSuffix(msg, " successfully!") + nonPersistentNote
	}
}
