// Package task holds task records and the repository that owns them.
//
// A repository keeps tasks in insertion order and persists the whole
// collection as a single JSON array:
//
//	[
//	  {
//	    "name": "Buy milk",
//	    "description": "2%",
//	    "priority": "Low",
//	    "add_time": "2024-01-01T09:30:00+02:00"
//	  }
//	]
//
// # Priority Values
//
//   - "Low"
//   - "Medium"
//   - "High"
//
// # Persistence
//
// Saving is create-only: SaveToFile refuses to touch an existing file and
// never leaves a truncated file behind. Loading reads and validates the whole
// file against the embedded JSON Schema before replacing the repository
// contents, so a failed load leaves the repository as it was.
//
// # Lookup
//
// Names are not required to be unique. Every name-based operation acts on the
// first task, in insertion order, whose name matches exactly.
package task
