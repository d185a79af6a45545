// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - DirectoryClient: The remote user-directory API (reqres adapter)
//   - SessionStore: Durable session token storage (SQLite adapter)
//   - ConfigStore: Application configuration (TOML adapter)
//   - Navigator: The navigation layer (TUI router)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
