package gpuprice

// RowWriter serializes normalized rows to output artifacts.
type RowWriter interface {
	// WriteCSV writes rows as CSV with the fixed eight-column header.
	// A zero-row slice still produces a header-only file.
	WriteCSV(path string, rows []Row) error

	// WriteJSON writes rows as a pretty-printed JSON array.
	// Absent optional fields serialize as null.
	WriteJSON(path string, rows []Row) error
}

// RowReader loads previously serialized rows, e.g. for aggregation or
// offline snapshot testing.
type RowReader interface {
	ReadCSV(path string) ([]Row, error)
	ReadJSON(path string) ([]Row, error)
}
