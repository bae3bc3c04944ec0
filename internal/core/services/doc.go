// Package services implements the driving port interfaces.
// Services contain the pipeline logic (loading, preprocessing, validation)
// and orchestrate calls to driven ports (adapters).
//
// Services depend only on ports, never on adapters.
package services
