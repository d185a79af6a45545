// Package domain defines the core entities of the directory client.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Entry: A directory record (id, names, email, avatar)
//   - Page: One page of the remote listing
//   - Session: An authenticated session
//   - ViewState: The derived state of the listing view
//   - OpError: The typed error surfaced by every operation
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
