// Package gpuprice normalizes GPU rental pricing published on cloud-provider
// marketing pages into one tabular schema. Each provider publishes pricing in
// a different, semi-structured layout (card grids, data-tables, embedded JSON
// payloads); a family of provider-specific parsers consumes the raw markup and
// emits the same normalized row shape, and a merge stage combines per-provider
// output into a single corpus with run metadata.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package gpuprice
