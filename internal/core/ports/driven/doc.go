// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SplitReader: Reads a stored split (Arrow, JSON Lines, memory)
//   - TextNormaliser: Cleans raw text
//   - RecordProcessor / RecordPipeline: Derive processed record fields
//   - ReportWriter: Presents summaries and integrity reports
//   - ConfigStore: Application configuration
//   - ChangeWatcher: Reports changes under a dataset root
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunHistoryStore: Persists run summaries. Without it, history is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser or postprocessor package
package driven
