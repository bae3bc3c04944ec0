// Package domain defines the core entities of the preprocessing pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: One stored example (text plus loneliness annotation)
//   - Split: A named, ordered collection of records
//   - Dataset: The train, validation and test splits
//   - ProcessedRecord / ProcessedDataset: The pipeline output
//   - SplitReport / RunSummary: Integrity validation results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
