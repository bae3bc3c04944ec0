// Package connectors bridges figprep to the places datasets live.
// Each connector knows how to observe one kind of storage for changes.
package connectors
