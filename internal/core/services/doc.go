// Package services implements the core directory logic: the page cache,
// the debounced cross-page search aggregator, delete reconciliation,
// the entry editor, sessions and notifications.
//
// Services depend only on domain types and port interfaces. Adapters are
// supplied by the composition root in cmd/userdir.
package services
